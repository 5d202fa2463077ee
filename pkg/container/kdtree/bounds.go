package kdtree

// Bounds returns the tightest interval on axis implied by the ancestors of
// index, starting from (-axisMax, axisMax). Empty slots and out-of-range
// indexes get the starting interval.
//
// Only every other ancestor is examined, beginning with the parent: those
// are the ones splitting on the axis opposite to the node's own.
func (t *Tree) Bounds(index int, axis Axis, axisMax float64) Range {
	r := Range{Min: -axisMax, Max: axisMax}
	point, ok := t.NodeAt(index)
	if !ok {
		return r
	}

	var minFound, maxFound bool
	for i := Parent(index); i > -1 && !(minFound && maxFound); i = Parent(Parent(i)) {
		ancestor, ok := t.NodeAt(i)
		if !ok {
			continue
		}
		c := ancestor.Coord(axis)
		switch ancestor.Compare(point, axis) {
		case 1:
			if r.Max > c {
				r.Max = c
				maxFound = true
			}
		case -1:
			if r.Min < c {
				r.Min = c
				minFound = true
			}
		}
	}
	return r
}

// Segment is the drawn extent of a node's splitting line.
type Segment struct {
	Index int   `json:"index"`
	Depth int   `json:"depth"`
	Axis  Axis  `json:"axis"`
	From  Point `json:"from"`
	To    Point `json:"to"`
}

// Segments returns the splitting line of every stored node up to maxDepth
// (inclusive, negative for all levels), clipped by its ancestors and by
// extent on either side of the origin. Nodes splitting on X yield vertical
// segments, nodes splitting on Y horizontal ones.
func (t *Tree) Segments(maxDepth int, extent Point) []Segment {
	var segments []Segment
	for level, depth := 1, 0; level <= len(t.nodes); level, depth = level*2, depth+1 {
		if maxDepth >= 0 && depth > maxDepth {
			break
		}
		axis := AxisAt(depth)
		for i := level - 1; i < 2*level-1 && i < len(t.nodes); i++ {
			p, ok := t.NodeAt(i)
			if !ok {
				continue
			}
			seg := Segment{Index: i, Depth: depth, Axis: axis}
			if axis == AxisX {
				r := t.Bounds(i, AxisY, extent.Y)
				seg.From, seg.To = Point{X: p.X, Y: r.Min}, Point{X: p.X, Y: r.Max}
			} else {
				r := t.Bounds(i, AxisX, extent.X)
				seg.From, seg.To = Point{X: r.Min, Y: p.Y}, Point{X: r.Max, Y: p.Y}
			}
			segments = append(segments, seg)
		}
	}
	return segments
}
