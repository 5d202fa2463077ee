package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/go-sod/kdrange/internal/logging"
	"github.com/go-sod/kdrange/internal/preset"
	"github.com/go-sod/kdrange/internal/preset/model"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved point sets",
	}
	cmd.AddCommand(
		newPresetImportCmd(),
		newPresetExportCmd(),
		newPresetListCmd(),
		newPresetDeleteCmd(),
		newPresetPlayCmd(),
	)
	return cmd
}

func newPresetImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file.toml]",
		Short: "Store the presets of a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			presets, err := preset.Decode(string(data), time.Now())
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			store, closeFn, err := openPresets(cmd)
			if err != nil {
				return err
			}
			defer closeFn()
			for _, p := range presets {
				if err := store.Store(cmd.Context(), p); err != nil {
					return fmt.Errorf("store preset %s: %w", p.Name, err)
				}
				printf(cmd, "%s %s\n", p.ID, p.Name)
			}
			logging.FromContext(cmd.Context()).Infof("imported %d presets from %s", len(presets), args[0])
			return nil
		},
	}
}

func newPresetExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print every stored preset as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := listPresets(cmd)
			if err != nil {
				return err
			}
			out, err := preset.Encode(presets)
			if err != nil {
				return err
			}
			printf(cmd, "%s", out)
			return nil
		},
	}
}

func newPresetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored presets in cycling order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := listPresets(cmd)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tPOINTS\tRANGE")
			for _, p := range presets {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%v-%v\n", p.ID, p.Name, len(p.Points), p.Range.Lower, p.Range.Upper)
			}
			return w.Flush()
		},
	}
}

func newPresetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a stored preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid preset id %q: %w", args[0], err)
			}
			store, closeFn, err := openPresets(cmd)
			if err != nil {
				return err
			}
			defer closeFn()
			if err := store.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete preset %s: %w", id, err)
			}
			printf(cmd, "deleted %s\n", id)
			return nil
		},
	}
}

func newPresetPlayCmd() *cobra.Command {
	var (
		steps   int
		reverse bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Cycle through the stored presets, searching each one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := openPresets(cmd)
			if err != nil {
				return err
			}
			defer closeFn()
			cycler, err := preset.NewCycler(cmd.Context(), store)
			if err != nil {
				return err
			}
			if cycler.Len() == 0 {
				printf(cmd, "no presets stored\n")
				return nil
			}
			if steps <= 0 {
				steps = cycler.Len()
			}

			p, _ := cycler.Current()
			for i := 0; i < steps; i++ {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				playPreset(cmd, p)
				if reverse {
					p, _ = cycler.Prev()
				} else {
					p, _ = cycler.Next()
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "number of presets to play, all when zero")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "cycle backwards")
	return cmd
}

func playPreset(cmd *cobra.Command, p model.Preset) {
	printf(cmd, "== %s (%s)\n", p.Name, p.ID)
	tree := p.Tree()
	printf(cmd, "%s", tree)
	printResult(cmd, p.Range, p.Range.Search(tree))
}

func listPresets(cmd *cobra.Command) ([]model.Preset, error) {
	store, closeFn, err := openPresets(cmd)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	presets, err := store.List(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	return presets, nil
}
