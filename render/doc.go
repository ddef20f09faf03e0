// Package render is a small CPU ray tracer for glyph3d objects.
//
// It casts one or more primary rays per pixel, shades the nearest hit
// with a Lambert term from a single directional light, and optionally
// casts shadow rays. The image is split into tiles that are traced on a
// worker pool; Render checks the context between tiles.
//
//	u, _ := layout.Compile(f, "Hi", 0.2, glyph3d.Vec3{})
//	scene := &render.Scene{Objects: []glyph3d.Object{u}, Light: render.DefaultLight()}
//	img, err := render.Render(ctx, scene, render.FitCamera(u.BoundingBox(), 40), 640, 240)
//
// The camera follows the left-handed convention: x right, y up, looking
// along +z, so extruded text faces the viewer with its front caps.
package render
