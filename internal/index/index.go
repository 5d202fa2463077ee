// Package index keeps the trees built by the service, addressable by id.
package index

import (
	"errors"
	"sync"
	"time"

	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("tree not found")

type Config struct {
	MaxTrees int `envconfig:"KDRANGE_INDEX_MAX_TREES" default:"64"`
}

// Entry is a registered tree. The tree itself is immutable and may be
// queried without holding any lock.
type Entry struct {
	ID        uuid.UUID
	Tree      *kdtree.Tree
	Source    string
	CreatedAt time.Time
}

type Option func(*Registry)

func WithMaxTrees(n int) Option {
	return func(r *Registry) {
		r.maxTrees = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

func New(opts ...Option) *Registry {
	r := &Registry{
		entries:  map[uuid.UUID]Entry{},
		maxTrees: 64,
		now:      time.Now,
	}
	for _, f := range opts {
		f(r)
	}
	return r
}

// Registry holds at most maxTrees entries, evicting the oldest on overflow.
type Registry struct {
	mtx      sync.RWMutex
	entries  map[uuid.UUID]Entry
	order    []uuid.UUID
	maxTrees int
	now      func() time.Time
}

func (r *Registry) Add(tree *kdtree.Tree, source string) Entry {
	e := Entry{ID: uuid.New(), Tree: tree, Source: source, CreatedAt: r.now()}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.entries[e.ID] = e
	r.order = append(r.order, e.ID)
	for r.maxTrees > 0 && len(r.order) > r.maxTrees {
		delete(r.entries, r.order[0])
		r.order = r.order[1:]
	}
	return e
}

func (r *Registry) Get(id uuid.UUID) (Entry, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *Registry) Remove(id uuid.UUID) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if _, ok := r.entries[id]; !ok {
		return ErrNotFound
	}
	delete(r.entries, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns the entries from oldest to newest.
func (r *Registry) List() []Entry {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	entries := make([]Entry, 0, len(r.entries))
	for _, id := range r.order {
		entries = append(entries, r.entries[id])
	}
	return entries
}

func (r *Registry) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.entries)
}
