package build

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/httputil"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/metric"
	"github.com/go-sod/kdrange/internal/preset"
	"github.com/go-sod/kdrange/internal/preset/model"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/google/uuid"
)

type PresetGetter interface {
	Get(ctx context.Context, id uuid.UUID) (model.Preset, error)
}

type Request struct {
	Points   []kdtree.Point `json:"points,omitempty"`
	PresetID string         `json:"presetId,omitempty"`
}

type Response struct {
	TreeID   string     `json:"treeId"`
	Capacity int        `json:"capacity"`
	Len      int        `json:"len"`
	Source   string     `json:"source"`
	Range    *geom.Rect `json:"range,omitempty"`
}

// NewHandler returns the handler building trees from inline points or from
// a stored preset. presets may be nil, disabling preset builds.
func NewHandler(cfg *Config, registry *index.Registry, presets PresetGetter) (http.Handler, error) {
	if registry == nil {
		return nil, errors.New("build handler requires a tree registry")
	}
	return &handler{
		cfg:      cfg,
		registry: registry,
		presets:  presets,
	}, nil
}

type handler struct {
	cfg      *Config
	registry *index.Registry
	presets  PresetGetter
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	if !httputil.DecodeJSON(ctx, w, r, h.cfg.MaxBodyBytes, &req) {
		return
	}

	var (
		points = req.Points
		source = "inline"
		rect   *geom.Rect
	)
	switch {
	case req.PresetID != "" && len(req.Points) > 0:
		httputil.RespBadRequest(ctx, w, "points and presetId are mutually exclusive")
		return
	case req.PresetID != "":
		p, ok := h.loadPreset(ctx, w, req.PresetID)
		if !ok {
			return
		}
		points, source, rect = p.Points, "preset:"+p.Name, &p.Range
	}

	if len(points) > h.cfg.MaxPoints {
		httputil.RespBadRequest(ctx, w, "too many points, max allowed is %d", h.cfg.MaxPoints)
		return
	}
	if err := geom.ValidatePoints(points); err != nil {
		httputil.RespBadRequest(ctx, w, "%v", err)
		return
	}

	tree := kdtree.Build(points...)
	entry := h.registry.Add(tree, source)
	metric.RecordBuild(ctx, source, tree)
	logger.Infof("built tree %s from %s: %d points, capacity %d", entry.ID, source, tree.Len(), tree.Capacity())

	httputil.RespJSON(ctx, w, Response{
		TreeID:   entry.ID.String(),
		Capacity: tree.Capacity(),
		Len:      tree.Len(),
		Source:   source,
		Range:    rect,
	})
}

func (h *handler) loadPreset(ctx context.Context, w http.ResponseWriter, rawID string) (model.Preset, bool) {
	if h.presets == nil {
		httputil.RespBadRequest(ctx, w, "presets are not configured")
		return model.Preset{}, false
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		httputil.RespBadRequest(ctx, w, "invalid presetId %q", rawID)
		return model.Preset{}, false
	}
	p, err := h.presets.Get(ctx, id)
	if errors.Is(err, preset.ErrNotFound) {
		httputil.RespJSONError(w, http.StatusNotFound, "preset not found")
		return model.Preset{}, false
	}
	if err != nil {
		httputil.RespInternalError(ctx, w, "load preset %s: %v", id, err)
		return model.Preset{}, false
	}
	return p, true
}
