package model

import (
	"time"

	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/google/uuid"
)

func NewPreset(name string, points []kdtree.Point, r geom.Rect, createdAt time.Time) Preset {
	return Preset{
		ID:        uuid.New(),
		Name:      name,
		Points:    points,
		Range:     r,
		CreatedAt: createdAt,
	}
}

// Preset is a saved point set together with the query rectangle shown for it.
type Preset struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Points    []kdtree.Point `json:"points"`
	Range     geom.Rect      `json:"range"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (p Preset) Validate() error {
	if err := geom.ValidatePoints(p.Points); err != nil {
		return err
	}
	return p.Range.Validate()
}

// Tree builds the tree over the preset points.
func (p Preset) Tree() *kdtree.Tree {
	return kdtree.Build(p.Points...)
}
