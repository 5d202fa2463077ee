package preset

import (
	"context"
	"fmt"

	"github.com/go-sod/kdrange/internal/preset/model"
)

// Cycler walks a snapshot of the stored presets, wrapping around at both
// ends. It is not safe for concurrent use.
type Cycler struct {
	presets []model.Preset
	pos     int
}

func NewCycler(ctx context.Context, lister Lister) (*Cycler, error) {
	presets, err := lister.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	return &Cycler{presets: presets}, nil
}

func (c *Cycler) Len() int {
	return len(c.presets)
}

// Current returns the selected preset. It reports false when there are no
// presets.
func (c *Cycler) Current() (model.Preset, bool) {
	if len(c.presets) == 0 {
		return model.Preset{}, false
	}
	return c.presets[c.pos], true
}

func (c *Cycler) Next() (model.Preset, bool) {
	if len(c.presets) > 0 {
		c.pos = (c.pos + 1) % len(c.presets)
	}
	return c.Current()
}

func (c *Cycler) Prev() (model.Preset, bool) {
	if len(c.presets) > 0 {
		c.pos = (c.pos - 1 + len(c.presets)) % len(c.presets)
	}
	return c.Current()
}
