package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soundcrate/mixplan/config"
	"github.com/soundcrate/mixplan/logging"
	"github.com/soundcrate/mixplan/store"
)

type appContext struct {
	cfg   *config.Config
	store *store.Store
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	app := &appContext{}

	root := &cobra.Command{
		Use:           "mixplan",
		Short:         "Analyze tracks and plan DJ set running orders",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logging.SetLevel(logging.DebugLevel)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			app.cfg = cfg

			st, err := store.Open(cfg.Paths.Database)
			if err != nil {
				return fmt.Errorf("open analysis cache: %w", err)
			}
			app.store = st
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.store.Close()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "mixplan.toml", "configuration file")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	root.AddCommand(newAnalyzeCommand(app))
	root.AddCommand(newScoreCommand(app))
	root.AddCommand(newPlanCommand(app))
	root.AddCommand(newSampleConfigCommand())

	return root
}

// writeJSON renders a command's result as indented JSON on its output stream
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSampleConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample-config",
		Short: "Print an annotated sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.SampleConfig())
			return err
		},
		PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return nil },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
}
