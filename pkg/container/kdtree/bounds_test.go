package kdtree

import (
	"reflect"
	"testing"
)

func TestTree_Bounds(t *testing.T) {
	t.Parallel()
	tree := Build(diagonal()...)
	tests := []struct {
		name     string
		index    int
		axis     Axis
		expected Range
	}{
		{name: "root", index: 0, axis: AxisY, expected: Range{-10, 10}},
		{name: "left_child", index: 1, axis: AxisX, expected: Range{-10, 3}},
		{name: "right_child", index: 2, axis: AxisX, expected: Range{3, 10}},
		{name: "right_of_y_split", index: 4, axis: AxisY, expected: Range{1, 10}},
		{name: "left_of_y_split", index: 5, axis: AxisY, expected: Range{-10, 5}},
		{name: "out_of_range", index: 99, axis: AxisX, expected: Range{-10, 10}},
		{name: "negative", index: -3, axis: AxisX, expected: Range{-10, 10}},
	}
	for _, test := range tests {
		if got := tree.Bounds(test.index, test.axis, 10); got != test.expected {
			t.Errorf("%s bounds, got: %v, expected: %v", test.name, got, test.expected)
		}
	}
}

func TestTree_BoundsDeep(t *testing.T) {
	t.Parallel()
	var points []Point
	for i := 0; i < 15; i++ {
		points = append(points, Point{float64(i), float64(i)})
	}
	tree := Build(points...)
	// index 8 holds (2, 2). Its parent 3 (1, 1) splits on X, grandparent 1
	// (3, 3) splits on Y and is skipped, the root (7, 7) splits on X again.
	if p, _ := tree.NodeAt(8); p != (Point{2, 2}) {
		t.Fatalf("node at 8, got: %v, expected: (2, 2)", p)
	}
	if got, expected := tree.Bounds(8, AxisX, 100), (Range{1, 7}); got != expected {
		t.Errorf("bounds of node 8 on X, got: %v, expected: %v", got, expected)
	}
	if got, expected := tree.Bounds(3, AxisY, 100), (Range{-100, 3}); got != expected {
		t.Errorf("bounds of node 3 on Y, got: %v, expected: %v", got, expected)
	}
}

func TestTree_BoundsEmptySlot(t *testing.T) {
	t.Parallel()
	tree := Build(Point{1, 0}, Point{2, 0})
	if got, expected := tree.Bounds(2, AxisX, 5), (Range{-5, 5}); got != expected {
		t.Errorf("empty slot bounds, got: %v, expected: %v", got, expected)
	}
}

func TestTree_Segments(t *testing.T) {
	t.Parallel()
	tree := Build(diagonal()...)
	extent := Point{10, 20}
	expected := []Segment{
		{Index: 0, Depth: 0, Axis: AxisX, From: Point{3, -20}, To: Point{3, 20}},
		{Index: 1, Depth: 1, Axis: AxisY, From: Point{-10, 1}, To: Point{3, 1}},
		{Index: 2, Depth: 1, Axis: AxisY, From: Point{3, 5}, To: Point{10, 5}},
	}
	if got := tree.Segments(1, extent); !reflect.DeepEqual(got, expected) {
		t.Errorf("segments, got: %+v, expected: %+v", got, expected)
	}
	if got := tree.Segments(-1, extent); len(got) != tree.Len() {
		t.Errorf("segments of all levels, got: %d, expected: %d", len(got), tree.Len())
	}
	if got := Build().Segments(-1, extent); len(got) != 0 {
		t.Errorf("segments of an empty tree, got: %v", got)
	}
}
