// Package render serves what a drawing layer needs from a tree: every
// stored node with its depth and axis, and the clipped splitting segments.
package render

import (
	"math"
	"net/http"
	"strconv"

	"github.com/go-sod/kdrange/internal/httputil"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/query"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
)

type Node struct {
	Index int          `json:"index"`
	Depth int          `json:"depth"`
	Axis  kdtree.Axis  `json:"axis"`
	Point kdtree.Point `json:"point"`
}

type Response struct {
	TreeID   string           `json:"treeId"`
	Capacity int              `json:"capacity"`
	Len      int              `json:"len"`
	Nodes    []Node           `json:"nodes"`
	Segments []kdtree.Segment `json:"segments"`
}

func NewHandler(cfg *Config, registry *index.Registry) (http.Handler, error) {
	return &handler{cfg: cfg, registry: registry}, nil
}

type handler struct {
	cfg      *Config
	registry *index.Registry
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodGet {
		httputil.RespJSONError(w, http.StatusMethodNotAllowed, "method "+r.Method+" is not allowed")
		return
	}

	q := r.URL.Query()
	extent := kdtree.Point{X: h.cfg.ExtentX, Y: h.cfg.ExtentY}
	depth := h.cfg.MaxDepth
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"extentX", &extent.X}, {"extentY", &extent.Y}} {
		if v := q.Get(p.name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
				httputil.RespBadRequest(ctx, w, "invalid %s %q", p.name, v)
				return
			}
			*p.dst = f
		}
	}
	if v := q.Get("depth"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			httputil.RespBadRequest(ctx, w, "invalid depth %q", v)
			return
		}
		depth = d
	}

	entry, ok := query.Lookup(ctx, w, h.registry, q.Get("treeId"))
	if !ok {
		return
	}
	httputil.RespJSON(ctx, w, Describe(entry, depth, extent))
}

// Describe lists the nodes and segments of a registered tree.
func Describe(entry index.Entry, maxDepth int, extent kdtree.Point) Response {
	tree := entry.Tree
	resp := Response{
		TreeID:   entry.ID.String(),
		Capacity: tree.Capacity(),
		Len:      tree.Len(),
		Nodes:    make([]Node, 0, tree.Len()),
		Segments: tree.Segments(maxDepth, extent),
	}
	for i := 0; i < tree.Capacity(); i++ {
		if p, ok := tree.NodeAt(i); ok {
			d := kdtree.Depth(i)
			resp.Nodes = append(resp.Nodes, Node{Index: i, Depth: d, Axis: kdtree.AxisAt(d), Point: p})
		}
	}
	if resp.Segments == nil {
		resp.Segments = []kdtree.Segment{}
	}
	return resp
}
