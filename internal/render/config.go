package render

type Config struct {
	ExtentX  float64 `envconfig:"KDRANGE_RENDER_EXTENT_X" default:"75"`
	ExtentY  float64 `envconfig:"KDRANGE_RENDER_EXTENT_Y" default:"62"`
	MaxDepth int     `envconfig:"KDRANGE_RENDER_MAX_DEPTH" default:"-1"`
}
