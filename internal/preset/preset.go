// Package preset manages saved point sets and the order they are cycled in.
package preset

import (
	"context"
	"errors"
	"sort"

	"github.com/go-sod/kdrange/internal/preset/model"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("preset not found")

type Backend string

const (
	BackendBolt  Backend = "BOLT"
	BackendRedis Backend = "REDIS"
)

type Config struct {
	Backend       Backend `envconfig:"KDRANGE_PRESET_BACKEND" default:"BOLT"`
	RedisAddr     string  `envconfig:"KDRANGE_PRESET_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string  `envconfig:"KDRANGE_PRESET_REDIS_PASSWORD"`
	RedisDB       int     `envconfig:"KDRANGE_PRESET_REDIS_DB" default:"0"`
}

type Lister interface {
	List(ctx context.Context) ([]model.Preset, error)
}

type Store interface {
	Lister
	Store(ctx context.Context, p model.Preset) error
	Get(ctx context.Context, id uuid.UUID) (model.Preset, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}

type ProvideFn func(ctx context.Context) (Store, error)

// SortPresets orders presets by creation time, then by name.
func SortPresets(presets []model.Preset) {
	sort.SliceStable(presets, func(i, j int) bool {
		if !presets[i].CreatedAt.Equal(presets[j].CreatedAt) {
			return presets[i].CreatedAt.Before(presets[j].CreatedAt)
		}
		return presets[i].Name < presets[j].Name
	})
}
