// Package redis stores presets in Redis: one JSON value per preset plus a
// sorted set ordering preset ids by creation time.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/go-redis/redis/v8"
	"github.com/go-sod/kdrange/internal/preset"
	"github.com/go-sod/kdrange/internal/preset/model"
	"github.com/google/uuid"
)

const (
	keyPrefix = "kdrange:preset:"
	indexKey  = "kdrange:presets"
)

var _ preset.Store = (*Store)(nil)

type Store struct {
	client *goredis.Client
}

func New(ctx context.Context, cfg *preset.Config) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Store(ctx context.Context, p model.Preset) error {
	bytes, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal preset: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, keyPrefix+p.ID.String(), bytes, 0)
	pipe.ZAdd(ctx, indexKey, &goredis.Z{Score: float64(p.CreatedAt.UnixNano()), Member: p.ID.String()})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store preset %s: %w", p.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (model.Preset, error) {
	bytes, err := s.client.Get(ctx, keyPrefix+id.String()).Bytes()
	if errors.Is(err, goredis.Nil) {
		return model.Preset{}, fmt.Errorf("get preset %s: %w", id, preset.ErrNotFound)
	}
	if err != nil {
		return model.Preset{}, fmt.Errorf("get preset %s: %w", id, err)
	}
	var p model.Preset
	if err := json.Unmarshal(bytes, &p); err != nil {
		return model.Preset{}, fmt.Errorf("unmarshal preset %s: %w", id, err)
	}
	return p, nil
}

func (s *Store) List(ctx context.Context) ([]model.Preset, error) {
	ids, err := s.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list preset ids: %w", err)
	}
	presets := make([]model.Preset, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse preset id %q: %w", raw, err)
		}
		p, err := s.Get(ctx, id)
		if errors.Is(err, preset.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	preset.SortPresets(presets)
	return presets, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.client.Del(ctx, keyPrefix+id.String()).Result()
	if err != nil {
		return fmt.Errorf("delete preset %s: %w", id, err)
	}
	if err := s.client.ZRem(ctx, indexKey, id.String()).Err(); err != nil {
		return fmt.Errorf("delete preset %s from index: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete preset %s: %w", id, preset.ErrNotFound)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
