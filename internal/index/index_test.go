package index

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/google/uuid"
)

func TestRegistry_Eviction(t *testing.T) {
	t.Parallel()
	r := New(WithMaxTrees(2))
	first := r.Add(kdtree.Build(kdtree.Point{X: 1, Y: 1}), "first")
	second := r.Add(kdtree.Build(), "second")
	third := r.Add(kdtree.Build(), "third")

	if r.Len() != 2 {
		t.Errorf("registry length, got: %d, expected: 2", r.Len())
	}
	if _, err := r.Get(first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("oldest entry must be evicted, got: %v", err)
	}
	entries := r.List()
	if len(entries) != 2 || entries[0].ID != second.ID || entries[1].ID != third.ID {
		t.Errorf("listed entries, got: %+v", entries)
	}
}

func TestRegistry_GetRemove(t *testing.T) {
	t.Parallel()
	r := New()
	e := r.Add(kdtree.Build(kdtree.Point{X: 1, Y: 2}), "test")
	got, err := r.Get(e.ID)
	if err != nil || got.Tree.Len() != 1 || got.Source != "test" {
		t.Errorf("get entry, got: %+v %v", got, err)
	}
	if err := r.Remove(e.ID); err != nil {
		t.Errorf("remove entry: %v", err)
	}
	if err := r.Remove(e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove twice, got: %v, expected: %v", err, ErrNotFound)
	}
	if _, err := r.Get(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("get unknown id, got: %v, expected: %v", err, ErrNotFound)
	}
	if len(r.List()) != 0 {
		t.Errorf("registry must be empty")
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()
	r := New(WithMaxTrees(8))
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e := r.Add(kdtree.Build(kdtree.Point{X: float64(i)}), "concurrent")
			if got, err := r.Get(e.ID); err == nil {
				got.Tree.Search(kdtree.Point{X: -1, Y: -1}, kdtree.Point{X: 100, Y: 1})
			}
		}(i)
	}
	wg.Wait()
	if r.Len() != 8 {
		t.Errorf("registry length, got: %d, expected: 8", r.Len())
	}
}
