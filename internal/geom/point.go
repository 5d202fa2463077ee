package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-sod/kdrange/pkg/container/kdtree"
)

var (
	ErrNonFinite   = errors.New("coordinate is NaN or infinite")
	ErrDimNotEqual = errors.New("vectors dimension is not equal")
)

// Finite reports whether both coordinates of p are finite numbers.
func Finite(p kdtree.Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// ValidatePoints rejects point sets the tree cannot order.
func ValidatePoints(points []kdtree.Point) error {
	for i, p := range points {
		if !Finite(p) {
			return fmt.Errorf("point %d (%v, %v): %w", i, p.X, p.Y, ErrNonFinite)
		}
	}
	return nil
}

// FromVectors converts [x, y] pairs into points.
func FromVectors(vecs [][]float64) ([]kdtree.Point, error) {
	points := make([]kdtree.Point, len(vecs))
	for i, v := range vecs {
		if len(v) != 2 {
			return nil, fmt.Errorf("vector %d has %d dimensions: %w", i, len(v), ErrDimNotEqual)
		}
		points[i] = kdtree.Point{X: v[0], Y: v[1]}
	}
	return points, nil
}
