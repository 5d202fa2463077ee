// Package metric records tree build and search statistics with OpenCensus
// and exposes them in the Prometheus format.
package metric

import (
	"context"
	"fmt"
	"net/http"

	"contrib.go.opencensus.io/exporter/prometheus"
	"github.com/go-sod/kdrange/pkg/container/kdtree"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

type Config struct {
	Namespace string `envconfig:"KDRANGE_METRIC_NAMESPACE" default:"kdrange"`
}

var (
	Builds   = stats.Int64("kdrange/builds", "Number of trees built", stats.UnitDimensionless)
	Stored   = stats.Int64("kdrange/stored_points", "Points stored per built tree", stats.UnitDimensionless)
	Searches = stats.Int64("kdrange/searches", "Number of range searches", stats.UnitDimensionless)
	Visited  = stats.Int64("kdrange/visited_points", "Nodes visited per range search", stats.UnitDimensionless)
	Matched  = stats.Int64("kdrange/matched_points", "Points matched per range search", stats.UnitDimensionless)

	SourceKey = tag.MustNewKey("source")
)

var sizeBuckets = view.Distribution(0, 1, 4, 16, 64, 256, 1024, 4096, 16384, 65536)

var Views = []*view.View{
	{Name: "builds", Measure: Builds, Aggregation: view.Count(), TagKeys: []tag.Key{SourceKey}},
	{Name: "stored_points", Measure: Stored, Aggregation: sizeBuckets},
	{Name: "searches", Measure: Searches, Aggregation: view.Count()},
	{Name: "visited_points", Measure: Visited, Aggregation: sizeBuckets},
	{Name: "matched_points", Measure: Matched, Aggregation: sizeBuckets},
}

// Register registers the views; registering them again is a no-op.
func Register() error {
	if err := view.Register(Views...); err != nil {
		return fmt.Errorf("register views: %w", err)
	}
	return nil
}

// NewExporter returns the Prometheus scrape handler for the registered views.
func NewExporter(cfg *Config) (http.Handler, error) {
	pe, err := prometheus.NewExporter(prometheus.Options{Namespace: cfg.Namespace})
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	return pe, nil
}

func RecordBuild(ctx context.Context, source string, tree *kdtree.Tree) {
	if tagged, err := tag.New(ctx, tag.Upsert(SourceKey, source)); err == nil {
		ctx = tagged
	}
	stats.Record(ctx, Builds.M(1), Stored.M(int64(tree.Len())))
}

func RecordSearch(ctx context.Context, result kdtree.Result) {
	stats.Record(ctx,
		Searches.M(1),
		Visited.M(int64(len(result.Visited))),
		Matched.M(int64(len(result.Matched))),
	)
}
