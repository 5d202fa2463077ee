package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sod/kdrange/pkg/container/kdtree"
)

// pointValue is a flag holding a point written as "x,y".
type pointValue struct {
	point kdtree.Point
	set   bool
}

func (v *pointValue) String() string {
	if v == nil || !v.set {
		return ""
	}
	return fmt.Sprintf("%g,%g", v.point.X, v.point.Y)
}

func (v *pointValue) Set(s string) error {
	p, err := parsePoint(s)
	if err != nil {
		return err
	}
	v.point, v.set = p, true
	return nil
}

func (v *pointValue) Type() string {
	return "point"
}

func parsePoint(s string) (kdtree.Point, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(s), "()"), ",")
	if len(parts) != 2 {
		return kdtree.Point{}, fmt.Errorf("point %q must be x,y", s)
	}
	var coords [2]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return kdtree.Point{}, fmt.Errorf("point %q: %w", s, err)
		}
		coords[i] = f
	}
	return kdtree.Point{X: coords[0], Y: coords[1]}, nil
}
