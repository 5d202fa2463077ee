package main

import (
	"strings"
	"time"

	"github.com/go-sod/kdrange/internal/build"
	"github.com/go-sod/kdrange/internal/generate"
	"github.com/go-sod/kdrange/internal/geom"
	"github.com/go-sod/kdrange/internal/httputil"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/query"
	"github.com/spf13/cobra"
)

func newRemoteCmd() *cobra.Command {
	var (
		flags    pointsFlags
		addr     string
		token    string
		user     string
		password string
		timeout  time.Duration
		presetID string
	)
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Build and search a tree on a running kdrange service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := httputil.HTTPClientConfig{BearerToken: token, Timeout: timeout}
			if user != "" {
				cfg.BasicAuth = &httputil.BasicAuth{Username: user, Password: password}
			}
			client, err := httputil.NewClientFromConfig(cfg)
			if err != nil {
				return err
			}

			buildReq := build.Request{PresetID: presetID}
			rect := generate.Range(flags.extent(), flags.maxSpan)
			if presetID == "" {
				if buildReq.Points, err = generate.PointSet(flags.count, flags.extent()); err != nil {
					return err
				}
			}
			var built build.Response
			base := strings.TrimRight(addr, "/")
			if err := httputil.PostJSON(cmd.Context(), client, base+"/build", buildReq, &built); err != nil {
				return err
			}
			if built.Range != nil {
				rect = *built.Range
			}
			if rect, err = flags.rect(rect); err != nil {
				return err
			}
			logging.FromContext(cmd.Context()).Debugf("built remote tree %s from %s", built.TreeID, built.Source)
			printf(cmd, "tree %s: %d points, capacity %d\n", built.TreeID, built.Len, built.Capacity)

			var found query.Response
			searchReq := query.Request{TreeID: built.TreeID, Ranges: []geom.Rect{rect}}
			if err := httputil.PostJSON(cmd.Context(), client, base+"/search", searchReq, &found); err != nil {
				return err
			}
			for _, res := range found.Results {
				printf(cmd, "query %v-%v\n  matched %d %v\n  visited %d\n", res.Range.Lower, res.Range.Upper, len(res.Matched), res.Matched, len(res.Visited))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "http://localhost:8787", "service base url")
	cmd.Flags().StringVar(&token, "token", "", "bearer token")
	cmd.Flags().StringVar(&user, "user", "", "basic auth user")
	cmd.Flags().StringVar(&password, "password", "", "basic auth password")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	cmd.Flags().StringVar(&presetID, "preset", "", "build from a preset stored on the service")
	return cmd
}
