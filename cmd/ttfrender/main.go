// Command ttfrender ray traces a text string as extruded 3D glyphs and
// writes the result as a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/font"
	"github.com/gogpu/glyph3d/layout"
	"github.com/gogpu/glyph3d/render"
)

func main() {
	var (
		text     = flag.String("text", "glyph3d", "text to render")
		fontPath = flag.String("font", "", "TrueType font file (default: Go Regular)")
		depth    = flag.Float64("depth", 0.3, "extrusion depth in em units")
		offset   = flag.String("offset", "0,0,0", "extra x,y,z offset added after each character")
		rotate   = flag.String("rotate", "0,0,0", "x,y,z rotation of the text in degrees")
		charset  = flag.String("charset", "utf-8", "charset of -text: "+strings.Join(font.Charsets(), ", "))
		kern     = flag.Bool("kern", false, "shape the text with HarfBuzz (kerning)")
		width    = flag.Int("width", 800, "image width")
		height   = flag.Int("height", 300, "image height")
		samples  = flag.Int("samples", 2, "rays per pixel along each axis")
		shadows  = flag.Bool("shadows", false, "cast shadow rays")
		workers  = flag.Int("workers", 0, "tracing goroutines (default: GOMAXPROCS)")
		output   = flag.String("output", "text.png", "output file")
		verbose  = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		glyph3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	off, err := parseVec(*offset)
	if err != nil {
		log.Fatalf("Invalid -offset: %v", err)
	}
	rot, err := parseVec(*rotate)
	if err != nil {
		log.Fatalf("Invalid -rotate: %v", err)
	}

	f, err := loadFont(*fontPath, font.WithCharset(*charset))
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	shaper := layout.ShaperBuiltin
	if *kern {
		shaper = layout.ShaperHarfbuzz
	}
	obj, err := layout.Compile(f, f.Decode([]byte(*text)), *depth, off, layout.WithShaper(shaper))
	if err != nil {
		log.Fatalf("Failed to lay out text: %v", err)
	}
	obj.Rotate(rot)

	scene := &render.Scene{
		Objects:    []glyph3d.Object{obj},
		Light:      render.DefaultLight(),
		Color:      color.RGBA{R: 230, G: 180, B: 60, A: 255},
		Background: color.RGBA{R: 24, G: 32, B: 48, A: 255},
	}
	cam := render.FitCamera(obj.BoundingBox(), 30)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, err := render.Render(ctx, scene, cam, *width, *height,
		render.WithWorkers(*workers),
		render.WithSamples(*samples),
		render.WithShadows(*shadows))
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Rendered %q with %s to %s (%dx%d, %d glyphs)\n",
		*text, f.Name(), *output, *width, *height, obj.Len())
}

func loadFont(path string, opts ...font.Option) (*font.Font, error) {
	if path == "" {
		return font.GoRegular(opts...)
	}
	return font.Open(path, opts...)
}

// parseVec parses "x,y,z".
func parseVec(s string) (glyph3d.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return glyph3d.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return glyph3d.Vec3{}, err
		}
		v[i] = x
	}
	return glyph3d.V3(v[0], v[1], v[2]), nil
}

func savePNG(path string, img image.Image) error {
	// #nosec G304 -- output path is provided by the user
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
