package main

import (
	"fmt"

	"github.com/go-sod/kdrange/internal/generate"
	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/preset/model"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type pointsFlags struct {
	count   int
	extentX int
	extentY int
	maxSpan int
	lower   pointValue
	upper   pointValue
}

func (f *pointsFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.count, "count", 20, "number of random points")
	cmd.Flags().IntVar(&f.extentX, "extent-x", 37, "points lie in [-extent-x, extent-x] on x")
	cmd.Flags().IntVar(&f.extentY, "extent-y", 31, "points lie in [-extent-y, extent-y] on y")
	cmd.Flags().IntVar(&f.maxSpan, "max-span", 10, "largest side of a random query rectangle")
	cmd.Flags().Var(&f.lower, "lower", "lower query corner x,y, random when unset")
	cmd.Flags().Var(&f.upper, "upper", "upper query corner x,y, random when unset")
}

func (f *pointsFlags) extent() generate.Extent {
	return generate.Extent{X: f.extentX, Y: f.extentY}
}

// rect returns the query rectangle from the corner flags, falling back to
// fallback for unset corners.
func (f *pointsFlags) rect(fallback geom.Rect) (geom.Rect, error) {
	r := fallback
	if f.lower.set {
		r.Lower = f.lower.point
	}
	if f.upper.set {
		r.Upper = f.upper.point
	}
	if err := r.Validate(); err != nil {
		return geom.Rect{}, err
	}
	return r, nil
}

func newSearchCmd() *cobra.Command {
	var (
		flags    pointsFlags
		presetID string
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Build a tree over random or preset points and run one range query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				points []kdtree.Point
				rect   geom.Rect
			)
			if presetID != "" {
				p, err := loadPreset(cmd, presetID)
				if err != nil {
					return err
				}
				points, rect = p.Points, p.Range
			} else {
				generated, err := generate.PointSet(flags.count, flags.extent())
				if err != nil {
					return err
				}
				points, rect = generated, generate.Range(flags.extent(), flags.maxSpan)
			}
			rect, err := flags.rect(rect)
			if err != nil {
				return err
			}

			tree := kdtree.Build(points...)
			printf(cmd, "%s", tree)
			printResult(cmd, rect, rect.Search(tree))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&presetID, "preset", "", "id of a stored preset to search instead of random points")
	return cmd
}

func loadPreset(cmd *cobra.Command, rawID string) (model.Preset, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return model.Preset{}, fmt.Errorf("invalid preset id %q: %w", rawID, err)
	}
	store, closeFn, err := openPresets(cmd)
	if err != nil {
		return model.Preset{}, err
	}
	defer closeFn()
	p, err := store.Get(cmd.Context(), id)
	if err != nil {
		return model.Preset{}, fmt.Errorf("get preset %s: %w", id, err)
	}
	return p, nil
}
