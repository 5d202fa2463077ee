package main

import (
	"context"
	"fmt"

	kdrange "github.com/go-sod/kdrange/internal/config"
	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/preset"
	"github.com/go-sod/kdrange/internal/setup"
	"github.com/spf13/cobra"
)

// openPresets opens the configured preset store. The returned function
// releases it.
func openPresets(cmd *cobra.Command) (preset.Store, func(), error) {
	ctx := cmd.Context()
	env, err := setup.Setup(ctx, &kdrange.ToolConfig{})
	if err != nil {
		return nil, nil, fmt.Errorf("setup.Setup: %w", err)
	}
	closeFn := func() {
		if err := env.Close(context.Background()); err != nil {
			logging.FromContext(ctx).Errorf("env.Close: %v", err)
		}
	}
	store, err := env.Presets(ctx)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return store, closeFn, nil
}
