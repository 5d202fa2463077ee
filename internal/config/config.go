package kdrange

import (
	"github.com/go-sod/kdrange/internal/build"
	"github.com/go-sod/kdrange/internal/database"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/metric"
	"github.com/go-sod/kdrange/internal/preset"
	"github.com/go-sod/kdrange/internal/query"
	"github.com/go-sod/kdrange/internal/render"
	"github.com/go-sod/kdrange/internal/setup"
)

var (
	_ setup.DatabaseConfigProvider = (*Config)(nil)
	_ setup.PresetConfigProvider   = (*Config)(nil)
	_ setup.IndexConfigProvider    = (*Config)(nil)
	_ setup.MetricConfigProvider   = (*Config)(nil)

	_ setup.DatabaseConfigProvider = (*ToolConfig)(nil)
	_ setup.PresetConfigProvider   = (*ToolConfig)(nil)
)

// Config is the service configuration.
type Config struct {
	SrvAddr     string `envconfig:"KDRANGE_ADDR" default:":8787"`
	GRPCAddr    string `envconfig:"KDRANGE_GRPC_ADDR" default:":8788"`
	MaxConns    int    `envconfig:"KDRANGE_MAX_CONNS" default:"1024"`
	BearerToken string `envconfig:"KDRANGE_BEARER_TOKEN"`
	Build       build.Config
	Search      query.Config
	Render      render.Config
	Database    database.Config
	Preset      preset.Config
	Index       index.Config
	Metric      metric.Config
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) PresetConfig() *preset.Config {
	return &c.Preset
}

func (c *Config) IndexConfig() *index.Config {
	return &c.Index
}

func (c *Config) MetricConfig() *metric.Config {
	return &c.Metric
}

// ToolConfig is the command line configuration: presets only.
type ToolConfig struct {
	Database database.Config
	Preset   preset.Config
}

func (c *ToolConfig) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *ToolConfig) PresetConfig() *preset.Config {
	return &c.Preset
}
