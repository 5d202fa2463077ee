package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-sod/kdrange/internal/build"
	"github.com/go-sod/kdrange/internal/httputil"
	"github.com/go-sod/kdrange/internal/index"
	"github.com/go-sod/kdrange/internal/query"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  kdtree.Point
		expectErr bool
	}{
		{name: "plain", input: "1,2", expected: kdtree.Point{X: 1, Y: 2}},
		{name: "spaces_parens", input: " (1.5, -2) ", expected: kdtree.Point{X: 1.5, Y: -2}},
		{name: "one_coord", input: "1", expectErr: true},
		{name: "three_coords", input: "1,2,3", expectErr: true},
		{name: "not_a_number", input: "a,2", expectErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := parsePoint(test.input)
			if (err != nil) != test.expectErr {
				t.Fatalf("parse %q, got error: %v, expected error: %v", test.input, err, test.expectErr)
			}
			if got != test.expected {
				t.Errorf("parse %q, got: %v, expected: %v", test.input, got, test.expected)
			}
		})
	}
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "demo")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	for _, want := range []string{
		"Tree of size 7\n --> [(3, 3)]\n --> [(1, 1) (5, 5)]\n",
		"query (2, 2)-(4, 4)\n  matched 3 ",
		"query (0, 0)-(4, 3)\n  matched 12 ",
		"query (1, 0)-(2, 4)\n  matched 4 ",
		"query (1, 1)-(1, 1)\n  matched 0 ",
		"query (0, 1)-(0, 1)\n  matched 1 [(0, 1)]",
		"Tree of size 0\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("demo output misses %q, got:\n%s", want, out)
		}
	}
}

func TestSearch_Corners(t *testing.T) {
	out, err := execute(t, "search", "--count", "9", "--extent-x", "1", "--extent-y", "1", "--lower=-1,-1", "--upper=1,1")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "matched 9 ") {
		t.Errorf("every lattice point must match, got:\n%s", out)
	}

	if _, err := execute(t, "search", "--lower=2,2", "--upper=1,1"); err == nil {
		t.Errorf("an inverted rectangle must be rejected")
	}
	if _, err := execute(t, "search", "--count", "10", "--extent-x", "1", "--extent-y", "1"); err == nil {
		t.Errorf("more points than lattice cells must be rejected")
	}
	for _, cmd := range []string{"search", "generate", "remote"} {
		if _, err := execute(t, cmd, "--count", "-1"); err == nil {
			t.Errorf("%s with a negative count must be rejected", cmd)
		}
	}
}

func TestPresets(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KDRANGE_DB_FILE", filepath.Join(dir, "cli.db"))
	t.Setenv("KDRANGE_PRESET_BACKEND", "BOLT")

	file := filepath.Join(dir, "presets.toml")
	data := `
[[preset]]
name = "grid"
points = [[0.0, 3.0], [1.0, 3.0], [2.0, 3.0], [3.0, 3.0]]
lower = [1.0, 0.0]
upper = [2.0, 4.0]
`
	if err := os.WriteFile(file, []byte(data), 0600); err != nil {
		t.Fatalf("write presets: %v", err)
	}
	if _, err := execute(t, "preset", "import", file); err != nil {
		t.Fatalf("import: %v", err)
	}
	id, err := execute(t, "generate", "--count", "5", "--extent-x", "3", "--extent-y", "3", "--name", "random")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	id = strings.TrimSpace(id)

	out, err := execute(t, "preset", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "grid") || !strings.Contains(out, id) {
		t.Errorf("list output misses presets, got:\n%s", out)
	}

	out, err = execute(t, "preset", "play")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out, "== grid") || !strings.Contains(out, "== random") || !strings.Contains(out, "matched 2 ") {
		t.Errorf("play output misses presets, got:\n%s", out)
	}

	out, err = execute(t, "search", "--preset", id)
	if err != nil {
		t.Fatalf("search preset: %v", err)
	}
	if !strings.Contains(out, "Tree of size 7") {
		t.Errorf("search over a 5 point preset, got:\n%s", out)
	}

	if _, err := execute(t, "preset", "delete", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	out, err = execute(t, "preset", "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, `name = "grid"`) || strings.Contains(out, `name = "random"`) {
		t.Errorf("export after delete, got:\n%s", out)
	}
}

func TestRemote(t *testing.T) {
	registry := index.New()
	buildHandler, err := build.NewHandler(&build.Config{RequestTimeout: time.Second, MaxPoints: 100, MaxBodyBytes: 1 << 20}, registry, nil)
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	searchHandler, err := query.NewHandler(&query.Config{RequestTimeout: time.Second, MaxRanges: 4, MaxBodyBytes: 1 << 20}, registry)
	if err != nil {
		t.Fatalf("search handler: %v", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/build", httputil.RequireBearer("secret", buildHandler))
	mux.Handle("/search", httputil.RequireBearer("secret", searchHandler))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	out, err := execute(t, "remote", "--addr", srv.URL, "--token", "secret",
		"--count", "9", "--extent-x", "1", "--extent-y", "1", "--lower=-1,-1", "--upper=1,1")
	if err != nil {
		t.Fatalf("remote: %v", err)
	}
	if !strings.Contains(out, "9 points, capacity 15") || !strings.Contains(out, "matched 9 ") {
		t.Errorf("remote output, got:\n%s", out)
	}
	if registry.Len() != 1 {
		t.Errorf("registered trees, got: %d, expected: %d", registry.Len(), 1)
	}

	if _, err := execute(t, "remote", "--addr", srv.URL, "--token", "wrong", "--count", "3"); err == nil {
		t.Errorf("a wrong token must fail")
	}
}
