package preset

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/preset/model"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
)

type tomlFile struct {
	Presets []tomlPreset `toml:"preset"`
}

type tomlPreset struct {
	Name   string      `toml:"name"`
	Points [][]float64 `toml:"points"`
	Lower  []float64   `toml:"lower"`
	Upper  []float64   `toml:"upper"`
}

// Decode parses presets from TOML. Coordinates are floats:
//
//	[[preset]]
//	name = "grid"
//	points = [[0.0, 3.0], [1.0, 3.0], [2.0, 3.0]]
//	lower = [0.0, 0.0]
//	upper = [4.0, 3.0]
//
// Presets get consecutive creation times starting at now so that their file
// order is kept when cycling.
func Decode(data string, now time.Time) ([]model.Preset, error) {
	var f tomlFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	presets := make([]model.Preset, 0, len(f.Presets))
	for i, tp := range f.Presets {
		points, err := geom.FromVectors(tp.Points)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", tp.Name, err)
		}
		corners, err := geom.FromVectors([][]float64{tp.Lower, tp.Upper})
		if err != nil {
			return nil, fmt.Errorf("preset %q range: %w", tp.Name, err)
		}
		p := model.NewPreset(tp.Name, points, geom.Rect{Lower: corners[0], Upper: corners[1]}, now.Add(time.Duration(i)))
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", tp.Name, err)
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// Encode writes presets in the format accepted by Decode.
func Encode(presets []model.Preset) (string, error) {
	f := tomlFile{Presets: make([]tomlPreset, 0, len(presets))}
	for _, p := range presets {
		f.Presets = append(f.Presets, tomlPreset{
			Name:   p.Name,
			Points: vectors(p.Points),
			Lower:  []float64{p.Range.Lower.X, p.Range.Lower.Y},
			Upper:  []float64{p.Range.Upper.X, p.Range.Upper.Y},
		})
	}
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(f); err != nil {
		return "", fmt.Errorf("encode toml: %w", err)
	}
	return b.String(), nil
}

func vectors(points []kdtree.Point) [][]float64 {
	vecs := make([][]float64, len(points))
	for i, p := range points {
		vecs[i] = []float64{p.X, p.Y}
	}
	return vecs
}
