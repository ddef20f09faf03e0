package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/internal/parallel"
)

// Render traces scene through cam into a new width x height image.
//
// If ctx is canceled, tiles not yet started are skipped and the context
// error is returned with the partial image.
func Render(ctx context.Context, scene *Scene, cam Camera, width, height int, opts ...Option) (*image.RGBA, error) {
	if scene == nil {
		return nil, ErrNilScene
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	tiles := parallel.Tiles(width, height, cfg.tileSize)

	pool := parallel.NewPool(cfg.workers)
	defer pool.Close()

	t := tracer{scene: scene, cam: cam, cfg: cfg, width: width, height: height}
	start := time.Now()
	err := pool.Run(ctx, len(tiles), func(i int) {
		t.tile(img, tiles[i])
	})

	glyph3d.Logger().Debug("render: done",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("tiles", len(tiles)),
		slog.Int("workers", pool.Workers()),
		slog.Duration("elapsed", time.Since(start)),
		slog.Any("err", err))

	return img, err
}

type tracer struct {
	scene         *Scene
	cam           Camera
	cfg           config
	width, height int
}

// tile traces the pixels of r. Tiles are disjoint, so concurrent calls
// write disjoint parts of img.
func (t *tracer) tile(img *image.RGBA, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, t.pixel(x, y))
		}
	}
}

func (t *tracer) pixel(x, y int) color.RGBA {
	n := t.cfg.samples
	aspect := float64(t.width) / float64(t.height)

	var sr, sg, sb, sa int
	for j := range n {
		for i := range n {
			fx := float64(x) + (float64(i)+0.5)/float64(n)
			fy := float64(y) + (float64(j)+0.5)/float64(n)
			u := 2*fx/float64(t.width) - 1
			v := 1 - 2*fy/float64(t.height)

			c := t.scene.shade(t.cam.Ray(u, v, aspect), t.cfg.shadows)
			sr += int(c.R)
			sg += int(c.G)
			sb += int(c.B)
			sa += int(c.A)
		}
	}
	if n == 1 {
		return color.RGBA{R: uint8(sr), G: uint8(sg), B: uint8(sb), A: uint8(sa)}
	}
	k := n * n
	return color.RGBA{
		R: uint8((sr + k/2) / k),
		G: uint8((sg + k/2) / k),
		B: uint8((sb + k/2) / k),
		A: uint8((sa + k/2) / k),
	}
}
