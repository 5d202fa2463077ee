package main

import (
	"fmt"
	"os"

	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/shutdown"
	"github.com/spf13/cobra"
)

func main() {
	ctx, done := shutdown.New()
	defer done()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.FromContext(ctx).Debugf("command failed: %v", err)
		done()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logLevel string
		devLog   bool
	)
	root := &cobra.Command{
		Use:           "kdrange",
		Short:         "Build 2-d kd-trees and run orthogonal range queries against them",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel == "" && !devLog {
				return
			}
			logger := logging.NewLogger(logLevel, devLog)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides KDRANGE_LOG_LEVEL")
	root.PersistentFlags().BoolVar(&devLog, "log-dev", false, "human readable development logging")

	root.AddCommand(
		newDemoCmd(),
		newSearchCmd(),
		newGenerateCmd(),
		newPresetCmd(),
		newRemoteCmd(),
	)
	return root
}

func printf(cmd *cobra.Command, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
