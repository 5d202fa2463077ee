package main

import (
	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/spf13/cobra"
)

type demoCase struct {
	name   string
	points []kdtree.Point
	ranges []geom.Rect
}

func demoCases() []demoCase {
	var diagonal []kdtree.Point
	for i := 0; i < 7; i++ {
		diagonal = append(diagonal, kdtree.Point{X: float64(i), Y: float64(i)})
	}
	boundary := []kdtree.Point{
		{X: 0, Y: 3}, {X: 1, Y: 3}, {X: 2, Y: 3}, {X: 3, Y: 3},
		{X: 0, Y: 2}, {X: 3, Y: 2},
		{X: 0, Y: 1}, {X: 3, Y: 1},
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0},
	}
	rect := func(lx, ly, ux, uy float64) geom.Rect {
		return geom.Rect{Lower: kdtree.Point{X: lx, Y: ly}, Upper: kdtree.Point{X: ux, Y: uy}}
	}
	return []demoCase{
		{name: "diagonal", points: diagonal, ranges: []geom.Rect{rect(2, 2, 4, 4)}},
		{
			name:   "boundary",
			points: boundary,
			ranges: []geom.Rect{rect(0, 0, 4, 3), rect(1, 0, 2, 4), rect(1, 1, 1, 1), rect(0, 1, 0, 1)},
		},
		{name: "empty", ranges: []geom.Rect{rect(0, 0, 4, 3)}},
	}
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Build the reference point sets and print their trees and queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range demoCases() {
				printf(cmd, "== %s\n", c.name)
				tree := kdtree.Build(c.points...)
				printf(cmd, "%s", tree)
				for _, r := range c.ranges {
					printResult(cmd, r, r.Search(tree))
				}
			}
			return nil
		},
	}
}

func printResult(cmd *cobra.Command, r geom.Rect, res kdtree.Result) {
	printf(cmd, "query %v-%v\n  matched %d %v\n  visited %d %v\n", r.Lower, r.Upper, len(res.Matched), res.Matched, len(res.Visited), res.Visited)
}
