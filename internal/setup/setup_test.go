package setup

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-sod/kdrange/internal/database"
	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/preset"
	"github.com/go-sod/kdrange/internal/preset/model"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
)

type testConfig struct {
	Database database.Config
	Preset   preset.Config
	Index    index.Config
}

func (c *testConfig) DatabaseConfig() *database.Config { return &c.Database }
func (c *testConfig) PresetConfig() *preset.Config     { return &c.Preset }
func (c *testConfig) IndexConfig() *index.Config       { return &c.Index }

func TestSetup(t *testing.T) {
	t.Setenv("KDRANGE_DB_FILE", filepath.Join(t.TempDir(), "setup.db"))
	t.Setenv("KDRANGE_INDEX_MAX_TREES", "2")
	ctx := context.Background()

	var cfg testConfig
	env, err := Setup(ctx, &cfg)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer env.Close(ctx)

	if cfg.Preset.Backend != preset.BackendBolt {
		t.Errorf("default backend, got: %s, expected: %s", cfg.Preset.Backend, preset.BackendBolt)
	}
	if env.Database() == nil {
		t.Fatalf("bolt backend must open the database")
	}
	if env.Metrics() != nil {
		t.Errorf("metrics must stay disabled without a metric config")
	}

	registry := env.Registry()
	for i := 0; i < 3; i++ {
		registry.Add(kdtree.Build(), "test")
	}
	if registry.Len() != 2 {
		t.Errorf("registry size, got: %d, expected: %d", registry.Len(), 2)
	}

	store, err := env.Presets(ctx)
	if err != nil {
		t.Fatalf("open presets: %v", err)
	}
	p := model.NewPreset("one", []kdtree.Point{{X: 1, Y: 2}}, geom.Rect{Upper: kdtree.Point{X: 2, Y: 2}}, time.Now())
	if err := store.Store(ctx, p); err != nil {
		t.Fatalf("store preset: %v", err)
	}
	again, err := env.Presets(ctx)
	if err != nil || again != store {
		t.Errorf("presets must be opened once, got: %v %v", again, err)
	}
	got, err := again.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get preset: %v", err)
	}
	if got.Name != p.Name {
		t.Errorf("preset name, got: %s, expected: %s", got.Name, p.Name)
	}
}

func TestProvidePresetsFor(t *testing.T) {
	tests := []struct {
		name      string
		backend   preset.Backend
		db        *database.DB
		expectErr bool
	}{
		{name: "bolt_without_db", backend: preset.BackendBolt, expectErr: true},
		{name: "redis", backend: preset.BackendRedis},
		{name: "unknown", backend: "MEMCACHED", expectErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fn, err := ProvidePresetsFor(&preset.Config{Backend: test.backend}, test.db)
			if (err != nil) != test.expectErr {
				t.Fatalf("provide, got: %v, expected error: %v", err, test.expectErr)
			}
			if err == nil && fn == nil {
				t.Errorf("provide function must not be nil")
			}
		})
	}
}
