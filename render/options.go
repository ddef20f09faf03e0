package render

// Option configures Render.
type Option func(*config)

type config struct {
	workers  int
	tileSize int
	samples  int
	shadows  bool
}

func defaultConfig() config {
	return config{samples: 1}
}

// WithWorkers sets the number of tracing goroutines. Zero or less uses
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithTileSize sets the edge length of the square tiles the image is
// split into.
func WithTileSize(n int) Option {
	return func(c *config) {
		c.tileSize = n
	}
}

// WithSamples casts n x n rays per pixel on a regular grid and averages
// them. Values below 1 are treated as 1.
func WithSamples(n int) Option {
	return func(c *config) {
		c.samples = max(n, 1)
	}
}

// WithShadows enables shadow rays toward the light.
func WithShadows(on bool) Option {
	return func(c *config) {
		c.shadows = on
	}
}
