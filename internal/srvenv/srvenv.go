package srvenv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-sod/kdrange/internal/database"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/preset"
)

var ErrNoPresets = errors.New("presets are not configured")

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	database *database.DB
	registry *index.Registry
	metrics  http.Handler
	presetFn preset.ProvideFn

	mtx     sync.Mutex
	presets preset.Store
}

func (s *SrvEnv) Database() *database.DB {
	return s.database
}

// Registry returns the tree registry, creating a default one when none was
// configured.
func (s *SrvEnv) Registry() *index.Registry {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.registry == nil {
		s.registry = index.New()
	}
	return s.registry
}

// Metrics returns the metrics scrape handler or nil.
func (s *SrvEnv) Metrics() http.Handler {
	return s.metrics
}

// Presets opens the preset store on first use. Later calls return the same
// store.
func (s *SrvEnv) Presets(ctx context.Context) (preset.Store, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.presets != nil {
		return s.presets, nil
	}
	if s.presetFn == nil {
		return nil, ErrNoPresets
	}
	store, err := s.presetFn(ctx)
	if err != nil {
		return nil, fmt.Errorf("open presets: %w", err)
	}
	s.presets = store
	return store, nil
}

func WithDatabase(db *database.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.database = db
		return s
	}
}

func WithRegistry(r *index.Registry) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.registry = r
		return s
	}
}

func WithMetrics(h http.Handler) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.metrics = h
		return s
	}
}

func WithPresets(fn preset.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.presetFn = fn
		return s
	}
}

func (s *SrvEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	var errs []error
	if s.presets != nil {
		if err := s.presets.Close(); err != nil {
			errs = append(errs, err)
		}
		s.presets = nil
	}
	if s.database != nil {
		if err := s.database.Close(ctx); err != nil {
			errs = append(errs, err)
		}
		s.database = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("close env: %v", errs)
	}
	return nil
}
