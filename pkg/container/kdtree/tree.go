/*
 * Copyright 2020 Dennis Kuhnert
 * Copyright 2020 Ivanov Nikita
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package kdtree implements a balanced, build-once 2D k-d tree stored as an
// implicit complete binary tree: index 0 is the root and the children of
// index i live at 2i+1 and 2i+2.
//
// A built Tree is never written again, so any number of goroutines may query
// it concurrently.
//
// Points equal in both coordinates are stored once. Coordinates are not
// validated; NaN values leave the ordering undefined.
package kdtree

import (
	"fmt"
	"sort"
	"strings"
)

type slot struct {
	point Point
	ok    bool
}

type Tree struct {
	nodes []slot
	len   int
}

// Build constructs a balanced tree from points. The input slice is not
// modified. Capacity follows the input count; equal points are stored once.
func Build(points ...Point) *Tree {
	byX := sortedBy(points, AxisX)
	byY := sortedBy(points, AxisY)

	t := &Tree{
		nodes: make([]slot, capacityFor(len(points))),
		len:   len(byX),
	}
	t.split(0, AxisX, [2][]Point{AxisX: byX, AxisY: byY})
	return t
}

// capacityFor returns the smallest 2^k-1 strictly greater than n, or 0 for n == 0.
func capacityFor(n int) int {
	size := 1
	for size <= n {
		size *= 2
	}
	return size - 1
}

// split stores the median of streams[axis] at index and recurses into the
// two halves. Both streams always hold the same set of points.
func (t *Tree) split(index int, axis Axis, streams [2][]Point) {
	primary, secondary := streams[axis], streams[axis.Next()]
	if len(primary) == 0 {
		return
	}

	mid := len(primary) / 2
	median := primary[mid]
	t.nodes[index] = slot{point: median, ok: true}
	if len(primary) == 1 {
		return
	}

	secondaryLo := make([]Point, 0, mid)
	secondaryHi := make([]Point, 0, len(primary)-mid-1)
	for _, p := range secondary {
		switch p.Compare(median, axis) {
		case -1:
			secondaryLo = append(secondaryLo, p)
		case 1:
			secondaryHi = append(secondaryHi, p)
		}
	}

	var lo, hi [2][]Point
	lo[axis], lo[axis.Next()] = primary[:mid], secondaryLo
	hi[axis], hi[axis.Next()] = primary[mid+1:], secondaryHi

	t.split(Left(index), axis.Next(), lo)
	t.split(Right(index), axis.Next(), hi)
}

type sortPoints struct {
	axis   Axis
	points []Point
}

func (b *sortPoints) Len() int {
	return len(b.points)
}

func (b *sortPoints) Less(i, j int) bool {
	return b.points[i].Compare(b.points[j], b.axis) < 0
}

func (b *sortPoints) Swap(i, j int) {
	b.points[i], b.points[j] = b.points[j], b.points[i]
}

// sortedBy returns a sorted, duplicate-free copy of points ordered by the
// tuple (coord_axis, coord_other).
func sortedBy(points []Point, axis Axis) []Point {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Sort(&sortPoints{axis: axis, points: sorted})

	uniq := sorted[:0]
	for i, p := range sorted {
		if i > 0 && p == uniq[len(uniq)-1] {
			continue
		}
		uniq = append(uniq, p)
	}
	return uniq
}

// Capacity returns the size of the slot array.
func (t *Tree) Capacity() int {
	return len(t.nodes)
}

// Len returns the number of stored points.
func (t *Tree) Len() int {
	return t.len
}

// NodeAt returns the point stored at index. It reports false for empty slots
// and out-of-range indexes.
func (t *Tree) NodeAt(index int) (Point, bool) {
	if index < 0 || index >= len(t.nodes) {
		return Point{}, false
	}
	s := t.nodes[index]
	return s.point, s.ok
}

// Points returns the stored points in index order.
func (t *Tree) Points() []Point {
	points := make([]Point, 0, t.len)
	for _, s := range t.nodes {
		if s.ok {
			points = append(points, s.point)
		}
	}
	return points
}

func (t *Tree) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tree of size %d\n", len(t.nodes))
	for level := 1; level <= len(t.nodes); level *= 2 {
		b.WriteString(" --> [")
		for i := level - 1; i < 2*level-1; i++ {
			if i > level-1 {
				b.WriteByte(' ')
			}
			if p, ok := t.NodeAt(i); ok {
				b.WriteString(p.String())
			} else {
				b.WriteString("-")
			}
		}
		b.WriteString("]\n")
	}
	return b.String()
}

// Depth returns the depth of index in the implicit tree.
func Depth(index int) int {
	d := 0
	for index > 0 {
		index = Parent(index)
		d++
	}
	return d
}

// Parent returns the parent index, or -1 for the root.
func Parent(index int) int {
	if index <= 0 {
		return -1
	}
	return (index - 1) / 2
}

func Left(index int) int {
	return 2*index + 1
}

func Right(index int) int {
	return 2*index + 2
}
