package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/soundcrate/mixplan/analysis"
	"github.com/soundcrate/mixplan/decode"
	"github.com/soundcrate/mixplan/embedding"
	"github.com/soundcrate/mixplan/logging"
)

func newAnalyzeCommand(app *appContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Analyze audio files and cache the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := uuid.NewString()
			logger := logging.WithFields(logging.Fields{"run_id": runID})
			logger.Info("starting analysis run", logging.Fields{"tracks": len(args)})

			params := analysis.DefaultTrackAnalyzerParams()
			params.Version = app.cfg.Analysis.Version
			params.WaveformPoints = app.cfg.Analysis.WaveformPoints

			analyzer := analysis.NewTrackAnalyzerWithParams(params, newEmbedder(app))
			pool := analysis.NewPool(analyzer, app.cfg.Analysis.Workers)

			jobs := make([]analysis.Job, 0, len(args))
			for _, path := range args {
				signal, err := decode.DecodeFile(path)
				if err != nil {
					return err
				}
				jobs = append(jobs, analysis.Job{TrackID: trackIDForPath(path), Signal: signal})
			}

			progress := func(ev analysis.StageEvent) {
				if ev.Err != nil {
					logger.Warn("stage failed", logging.Fields{"track_id": ev.TrackID, "stage": string(ev.Stage), "error": ev.Err.Error()})
				} else {
					logger.Debug("stage done", logging.Fields{"track_id": ev.TrackID, "stage": string(ev.Stage)})
				}
			}

			results := pool.Run(cmd.Context(), jobs, progress)

			analyzed := make([]*analysis.AnalysisResult, 0, len(results))
			for _, res := range results {
				if res.Err != nil {
					return fmt.Errorf("analyze %s: %w", res.TrackID, res.Err)
				}
				if err := app.store.Put(cmd.Context(), res.Result); err != nil {
					return err
				}
				analyzed = append(analyzed, res.Result)
			}

			if jsonOut {
				return writeJSON(cmd, analyzed)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Track", "BPM", "Key", "Energy", "Loudness", "Sections"})

			for _, r := range analyzed {
				tw.AppendRow(table.Row{
					r.TrackID,
					fmt.Sprintf("%.1f", r.BPM),
					r.Key,
					r.EnergyGlobal,
					fmt.Sprintf("%.1f LUFS", r.IntegratedLoudness),
					len(r.Sections),
				})
			}

			tw.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit results as JSON instead of a table")
	return cmd
}

// newEmbedder wires the embedding pipeline. Without a configured model path
// the handle reports unavailability and the embedding stage alone fails.
func newEmbedder(app *appContext) analysis.EmbeddingExtractor {
	modelPath := app.cfg.Paths.ModelPath
	return embedding.NewPipeline(embedding.NewModelHandle(func() (embedding.Inferencer, error) {
		if modelPath == "" {
			return nil, fmt.Errorf("no model_path configured")
		}
		return nil, fmt.Errorf("inference backend for %s is not bundled with this build", modelPath)
	}))
}

func trackIDForPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
