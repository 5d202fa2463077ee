package setup

import (
	"context"
	"fmt"

	"github.com/go-sod/kdrange/internal/database"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/metric"
	"github.com/go-sod/kdrange/internal/preset"
	presetdb "github.com/go-sod/kdrange/internal/preset/database"
	"github.com/go-sod/kdrange/internal/preset/redis"
	"github.com/go-sod/kdrange/internal/srvenv"
	"github.com/kelseyhightower/envconfig"
)

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type PresetConfigProvider interface {
	PresetConfig() *preset.Config
}

type IndexConfigProvider interface {
	IndexConfig() *index.Config
}

type MetricConfigProvider interface {
	MetricConfig() *metric.Config
}

// Setup fills config from the environment and builds the env for every
// provider config implements.
func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var (
		db        *database.DB
		presetCfg *preset.Config
	)
	if presetConfigProvider, ok := config.(PresetConfigProvider); ok {
		presetCfg = presetConfigProvider.PresetConfig()
	}

	// The bolt file is only needed by the bolt preset backend.
	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok && (presetCfg == nil || presetCfg.Backend == preset.BackendBolt) {
		logger.Info("Configuring db")
		dbFromEnv, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		db = dbFromEnv
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDatabase(db))
	}

	if presetCfg != nil {
		logger.Infof("Configuring presets, backend %s", presetCfg.Backend)
		provideFn, err := ProvidePresetsFor(presetCfg, db)
		if err != nil {
			closeDB(ctx, db)
			return nil, fmt.Errorf("unable create presets provide function: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithPresets(provideFn))
	}

	if indexConfigProvider, ok := config.(IndexConfigProvider); ok {
		logger.Info("Configuring tree registry")
		cfg := indexConfigProvider.IndexConfig()
		serverEnvOpts = append(serverEnvOpts, srvenv.WithRegistry(index.New(index.WithMaxTrees(cfg.MaxTrees))))
	}

	if metricConfigProvider, ok := config.(MetricConfigProvider); ok {
		logger.Info("Configuring metrics")
		if err := metric.Register(); err != nil {
			closeDB(ctx, db)
			return nil, err
		}
		exporter, err := metric.NewExporter(metricConfigProvider.MetricConfig())
		if err != nil {
			closeDB(ctx, db)
			return nil, fmt.Errorf("unable create metric exporter: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithMetrics(exporter))
	}

	return srvenv.New(serverEnvOpts...), nil
}

func ProvidePresetsFor(cfg *preset.Config, db *database.DB) (preset.ProvideFn, error) {
	switch cfg.Backend {
	case preset.BackendBolt:
		if db == nil {
			return nil, fmt.Errorf("preset backend %s requires a database", cfg.Backend)
		}
		return func(context.Context) (preset.Store, error) {
			return presetdb.New(db), nil
		}, nil
	case preset.BackendRedis:
		return func(ctx context.Context) (preset.Store, error) {
			store, err := redis.New(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return store, nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown preset backend: %s", cfg.Backend)
	}
}

func closeDB(ctx context.Context, db *database.DB) {
	if db == nil {
		return
	}
	if err := db.Close(ctx); err != nil {
		logging.FromContext(ctx).Errorf("close db: %v", err)
	}
}
