package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-sod/kdrange/internal/database"
	"github.com/go-sod/kdrange/internal/preset"
	"github.com/go-sod/kdrange/internal/preset/model"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("preset:")

var _ preset.Store = (*DB)(nil)

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

type DB struct {
	sDB *database.DB
}

func (db *DB) Store(_ context.Context, p model.Preset) error {
	bytes, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal preset: %w", err)
	}
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		if err := b.Put([]byte(p.ID.String()), bytes); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}
	return nil
}

func (db *DB) Get(_ context.Context, id uuid.UUID) (model.Preset, error) {
	var p model.Preset
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return preset.ErrNotFound
		}
		v := b.Get([]byte(id.String()))
		if v == nil {
			return preset.ErrNotFound
		}
		return json.Unmarshal(v, &p)
	})
	if err != nil {
		return model.Preset{}, fmt.Errorf("get preset %s: %w", id, err)
	}
	return p, nil
}

func (db *DB) List(_ context.Context) ([]model.Preset, error) {
	var presets []model.Preset
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var p model.Preset
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("unmarshal preset %s: %w", k, err)
			}
			presets = append(presets, p)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}
	preset.SortPresets(presets)
	return presets, nil
}

func (db *DB) Delete(_ context.Context, id uuid.UUID) error {
	return db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil || b.Get([]byte(id.String())) == nil {
			return fmt.Errorf("delete preset %s: %w", id, preset.ErrNotFound)
		}
		return b.Delete([]byte(id.String()))
	})
}

// Close is a no-op: the underlying database is owned by the caller.
func (db *DB) Close() error {
	return nil
}
