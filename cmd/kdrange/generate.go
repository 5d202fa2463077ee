package main

import (
	"fmt"
	"time"

	"github.com/go-sod/kdrange/internal/generate"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/preset/model"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		flags pointsFlags
		name  string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Store a random point set and query rectangle as a preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := generate.PointSet(flags.count, flags.extent())
			if err != nil {
				return err
			}
			rect, err := flags.rect(generate.Range(flags.extent(), flags.maxSpan))
			if err != nil {
				return err
			}
			if name == "" {
				name = fmt.Sprintf("random-%d", flags.count)
			}
			p := model.NewPreset(name, points, rect, time.Now())

			store, closeFn, err := openPresets(cmd)
			if err != nil {
				return err
			}
			defer closeFn()
			if err := store.Store(cmd.Context(), p); err != nil {
				return fmt.Errorf("store preset: %w", err)
			}
			logging.FromContext(cmd.Context()).Infof("stored preset %s with %d points", p.ID, len(p.Points))
			printf(cmd, "%s\n", p.ID)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "preset name")
	return cmd
}
