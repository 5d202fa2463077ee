package kdtree

import "fmt"

// Axis selects the coordinate a node splits on.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// AxisAt returns the splitting axis for nodes at the given depth.
func AxisAt(depth int) Axis {
	return Axis(depth % 2)
}

// Next returns the axis used one level below a.
func (a Axis) Next() Axis {
	return a ^ 1
}

func (a Axis) String() string {
	if a == AxisX {
		return "X"
	}
	return "Y"
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Coord returns the coordinate of p on axis a.
func (p Point) Coord(a Axis) float64 {
	if a == AxisX {
		return p.X
	}
	return p.Y
}

// Compare orders p and q by the tuple (coord_a, coord_other).
// It returns -1, 0 or +1.
func (p Point) Compare(q Point, a Axis) int {
	switch pa, qa := p.Coord(a), q.Coord(a); {
	case pa < qa:
		return -1
	case pa > qa:
		return 1
	}
	switch pb, qb := p.Coord(a.Next()), q.Coord(a.Next()); {
	case pb < qb:
		return -1
	case pb > qb:
		return 1
	}
	return 0
}

// In reports whether p lies in the closed rectangle spanned by lower and upper.
func (p Point) In(lower, upper Point) bool {
	return lower.X <= p.X && p.X <= upper.X && lower.Y <= p.Y && p.Y <= upper.Y
}

// Range is a closed interval on a single axis.
type Range struct {
	Min, Max float64
}

func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
