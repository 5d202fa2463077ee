package query

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/httputil"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/metric"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Request struct {
	TreeID string      `json:"treeId"`
	Ranges []geom.Rect `json:"ranges"`
}

type Result struct {
	Range   geom.Rect      `json:"range"`
	Matched []kdtree.Point `json:"matched"`
	Visited []kdtree.Point `json:"visited"`
}

type Response struct {
	TreeID  string   `json:"treeId"`
	Results []Result `json:"results"`
}

func NewHandler(cfg *Config, registry *index.Registry) (http.Handler, error) {
	if registry == nil {
		return nil, errors.New("search handler requires a tree registry")
	}
	return &handler{
		cfg:      cfg,
		registry: registry,
	}, nil
}

type handler struct {
	cfg      *Config
	registry *index.Registry
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)

	if !httputil.DecodeJSON(ctx, w, r, h.cfg.MaxBodyBytes, &req) {
		return
	}
	if len(req.Ranges) == 0 {
		httputil.RespBadRequest(ctx, w, "at least one range is required")
		return
	}
	if len(req.Ranges) > h.cfg.MaxRanges {
		httputil.RespBadRequest(ctx, w, "too many ranges, max allowed is %d", h.cfg.MaxRanges)
		return
	}
	for i, rect := range req.Ranges {
		if err := rect.Validate(); err != nil {
			httputil.RespBadRequest(ctx, w, "range %d: %v", i, err)
			return
		}
	}

	entry, ok := Lookup(ctx, w, h.registry, req.TreeID)
	if !ok {
		return
	}

	results, err := Search(ctx, entry.Tree, req.Ranges)
	if err != nil {
		httputil.RespInternalError(ctx, w, "search processing error, %v", err)
		return
	}
	logger.Debugf("searched tree %s with %d ranges", entry.ID, len(req.Ranges))

	httputil.RespJSON(ctx, w, Response{TreeID: entry.ID.String(), Results: results})
}

// Search runs every rectangle against tree concurrently. Results keep the
// order of ranges.
func Search(ctx context.Context, tree *kdtree.Tree, ranges []geom.Rect) ([]Result, error) {
	results := make([]Result, len(ranges))
	errGrp, gctx := errgroup.WithContext(ctx)
	for i, rect := range ranges {
		i, rect := i, rect
		errGrp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("range %d: %w", i, err)
			}
			res := rect.Search(tree)
			metric.RecordSearch(gctx, res)
			results[i] = Result{
				Range:   rect,
				Matched: orEmpty(res.Matched),
				Visited: orEmpty(res.Visited),
			}
			return nil
		})
	}
	if err := errGrp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func orEmpty(points []kdtree.Point) []kdtree.Point {
	if points == nil {
		return []kdtree.Point{}
	}
	return points
}

// Lookup resolves a tree id, writing the error response itself.
func Lookup(ctx context.Context, w http.ResponseWriter, registry *index.Registry, rawID string) (index.Entry, bool) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		httputil.RespBadRequest(ctx, w, "invalid treeId %q", rawID)
		return index.Entry{}, false
	}
	entry, err := registry.Get(id)
	if errors.Is(err, index.ErrNotFound) {
		httputil.RespJSONError(w, http.StatusNotFound, "tree not found")
		return index.Entry{}, false
	}
	if err != nil {
		httputil.RespInternalError(ctx, w, "lookup tree %s: %v", id, err)
		return index.Entry{}, false
	}
	return entry, true
}
