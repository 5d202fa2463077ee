package kdtree

// Result holds the output of a single range search.
type Result struct {
	// Matched are the stored points inside the query rectangle.
	Matched []Point
	// Visited are all examined nodes, in the order they were examined.
	Visited []Point
}

type searcher struct {
	tree         *Tree
	lower, upper Point
	result       Result
}

// Search returns the stored points inside the closed rectangle
// [lower.X, upper.X] x [lower.Y, upper.Y] together with the traversal that
// found them. An inverted rectangle yields an empty Result.
func (t *Tree) Search(lower, upper Point) Result {
	if lower.X > upper.X || lower.Y > upper.Y {
		return Result{}
	}
	s := searcher{tree: t, lower: lower, upper: upper}
	s.search(0, AxisX)
	return s.result
}

func (s *searcher) search(index int, axis Axis) {
	point, ok := s.tree.NodeAt(index)
	if !ok {
		return
	}
	s.result.Visited = append(s.result.Visited, point)

	switch c := point.Coord(axis); {
	case c < s.lower.Coord(axis):
		s.search(Right(index), axis.Next())
	case c > s.upper.Coord(axis):
		s.search(Left(index), axis.Next())
	default:
		if point.In(s.lower, s.upper) {
			s.result.Matched = append(s.result.Matched, point)
		}
		s.search(Left(index), axis.Next())
		s.search(Right(index), axis.Next())
	}
}
