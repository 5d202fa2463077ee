package preset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/preset/model"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
)

type listerFn func(ctx context.Context) ([]model.Preset, error)

func (f listerFn) List(ctx context.Context) ([]model.Preset, error) {
	return f(ctx)
}

func TestCycler(t *testing.T) {
	t.Parallel()
	now := time.Now()
	presets := []model.Preset{
		model.NewPreset("a", nil, geom.Rect{}, now),
		model.NewPreset("b", nil, geom.Rect{}, now),
		model.NewPreset("c", nil, geom.Rect{}, now),
	}
	c, err := NewCycler(context.Background(), listerFn(func(context.Context) ([]model.Preset, error) {
		return presets, nil
	}))
	if err != nil {
		t.Fatalf("the error should not be returned, got: %v", err)
	}

	steps := []struct {
		move     func() (model.Preset, bool)
		expected string
	}{
		{move: c.Current, expected: "a"},
		{move: c.Prev, expected: "c"},
		{move: c.Prev, expected: "b"},
		{move: c.Next, expected: "c"},
		{move: c.Next, expected: "a"},
	}
	for i, step := range steps {
		got, ok := step.move()
		if !ok || got.Name != step.expected {
			t.Errorf("step %d, got: %q (%v), expected: %q", i, got.Name, ok, step.expected)
		}
	}
}

func TestCycler_Empty(t *testing.T) {
	t.Parallel()
	c, err := NewCycler(context.Background(), listerFn(func(context.Context) ([]model.Preset, error) {
		return nil, nil
	}))
	if err != nil {
		t.Fatalf("the error should not be returned, got: %v", err)
	}
	if _, ok := c.Next(); ok {
		t.Errorf("an empty cycler must not yield presets")
	}
	if _, ok := c.Prev(); ok {
		t.Errorf("an empty cycler must not yield presets")
	}

	listErr := errors.New("test error")
	if _, err := NewCycler(context.Background(), listerFn(func(context.Context) ([]model.Preset, error) {
		return nil, listErr
	})); !errors.Is(err, listErr) {
		t.Errorf("cycler list error, got: %v, expected: %v", err, listErr)
	}
}

const gridTOML = `
[[preset]]
name = "grid"
points = [[0.0, 3.0], [1.0, 3.0], [2.0, 3.0], [3.0, 3.0], [0.0, 0.0]]
lower = [0.0, 0.0]
upper = [4.0, 3.0]

[[preset]]
name = "single"
points = [[5.5, -1.0]]
lower = [-1.0, -1.0]
upper = [1.0, 1.0]
`

func TestDecode(t *testing.T) {
	t.Parallel()
	now := time.Now()
	presets, err := Decode(gridTOML, now)
	if err != nil {
		t.Fatalf("decode presets: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("decoded presets, got: %d, expected: 2", len(presets))
	}
	grid := presets[0]
	if grid.Name != "grid" || len(grid.Points) != 5 || grid.Points[1] != (kdtree.Point{X: 1, Y: 3}) {
		t.Errorf("decoded grid preset, got: %+v", grid)
	}
	if grid.Range.Upper != (kdtree.Point{X: 4, Y: 3}) {
		t.Errorf("decoded grid range, got: %v", grid.Range)
	}
	if !presets[1].CreatedAt.After(grid.CreatedAt) {
		t.Errorf("file order must be kept by creation time")
	}
	if got := len(grid.Tree().Search(grid.Range.Lower, grid.Range.Upper).Matched); got != 5 {
		t.Errorf("grid preset matches, got: %d, expected: 5", got)
	}

	encoded, err := Encode(presets)
	if err != nil {
		t.Fatalf("encode presets: %v", err)
	}
	again, err := Decode(encoded, now)
	if err != nil {
		t.Fatalf("decode encoded presets: %v\n%s", err, encoded)
	}
	if len(again) != 2 || again[1].Points[0] != presets[1].Points[0] {
		t.Errorf("re-decoded presets, got: %+v", again)
	}
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		data     string
		expected error
	}{
		{name: "three_dims", data: "[[preset]]\npoints = [[1.0, 2.0, 3.0]]\nlower = [0.0, 0.0]\nupper = [1.0, 1.0]\n", expected: geom.ErrDimNotEqual},
		{name: "inverted", data: "[[preset]]\npoints = []\nlower = [2.0, 0.0]\nupper = [1.0, 1.0]\n", expected: geom.ErrInvalidRect},
	}
	for _, test := range tests {
		if _, err := Decode(test.data, time.Now()); !errors.Is(err, test.expected) {
			t.Errorf("%s: decode, got: %v, expected: %v", test.name, err, test.expected)
		}
	}
}
