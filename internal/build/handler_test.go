package build

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/preset"
	"github.com/go-sod/kdrange/internal/preset/model"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"github.com/google/uuid"
)

type presetsFn func(ctx context.Context, id uuid.UUID) (model.Preset, error)

func (f presetsFn) Get(ctx context.Context, id uuid.UUID) (model.Preset, error) {
	return f(ctx, id)
}

func TestHandler(t *testing.T) {
	grid := model.NewPreset("grid", []kdtree.Point{{X: 0, Y: 3}, {X: 1, Y: 3}, {X: 3, Y: 0}},
		geom.Rect{Upper: kdtree.Point{X: 4, Y: 3}}, time.Now())
	presets := presetsFn(func(_ context.Context, id uuid.UUID) (model.Preset, error) {
		if id == grid.ID {
			return grid, nil
		}
		return model.Preset{}, preset.ErrNotFound
	})

	tests := []struct {
		name         string
		body         string
		expectedCode int
		expectedLen  int
		expectedCap  int
	}{
		{name: "positive_inline", body: `{"points": [{"x": 0, "y": 0}, {"x": 1, "y": 1}, {"x": 1, "y": 1}]}`, expectedCode: http.StatusOK, expectedLen: 2, expectedCap: 3},
		{name: "positive_empty", body: `{"points": []}`, expectedCode: http.StatusOK},
		{name: "positive_preset", body: `{"presetId": "` + grid.ID.String() + `"}`, expectedCode: http.StatusOK, expectedLen: 3, expectedCap: 3},
		{name: "unknown_preset", body: `{"presetId": "` + uuid.New().String() + `"}`, expectedCode: http.StatusNotFound},
		{name: "invalid_preset", body: `{"presetId": "nope"}`, expectedCode: http.StatusBadRequest},
		{name: "invalid_preset_quotes", body: `{"presetId": "a\"b"}`, expectedCode: http.StatusBadRequest},
		{name: "unknown_field", body: `{"pointz": []}`, expectedCode: http.StatusBadRequest},
		{name: "both", body: `{"presetId": "` + grid.ID.String() + `", "points": [{"x": 1, "y": 1}]}`, expectedCode: http.StatusBadRequest},
		{name: "too_many", body: `{"points": [{"x": 0, "y": 0}, {"x": 1, "y": 1}, {"x": 2, "y": 2}, {"x": 3, "y": 3}, {"x": 4, "y": 4}]}`, expectedCode: http.StatusBadRequest},
		{name: "malformed", body: `{"points": [`, expectedCode: http.StatusBadRequest},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			registry := index.New()
			h, err := NewHandler(&Config{RequestTimeout: time.Second, MaxPoints: 4, MaxBodyBytes: 1 << 20}, registry, presets)
			if err != nil {
				t.Fatalf("create handler: %v", err)
			}
			r := httptest.NewRequest(http.MethodPost, "/build", strings.NewReader(test.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			if w.Code != test.expectedCode {
				t.Fatalf("response code, got: %d, expected: %d, body: %s", w.Code, test.expectedCode, w.Body.String())
			}
			if w.Code != http.StatusOK {
				var errResp struct {
					Error string `json:"error"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil || errResp.Error == "" {
					t.Errorf("error body must be a json error, got: %s, decode: %v", w.Body.String(), err)
				}
				if registry.Len() != 0 {
					t.Errorf("a failed build must not register a tree")
				}
				return
			}
			var resp Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Len != test.expectedLen || resp.Capacity != test.expectedCap {
				t.Errorf("built tree, got len %d capacity %d, expected: %d %d", resp.Len, resp.Capacity, test.expectedLen, test.expectedCap)
			}
			id, err := uuid.Parse(resp.TreeID)
			if err != nil {
				t.Fatalf("parse tree id: %v", err)
			}
			if _, err := registry.Get(id); err != nil {
				t.Errorf("tree %s must be registered, got: %v", id, err)
			}
		})
	}
}

func TestNewHandler_NoRegistry(t *testing.T) {
	if _, err := NewHandler(&Config{}, nil, nil); err == nil {
		t.Errorf("a handler without registry must be rejected")
	}
}
