package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/soundcrate/mixplan/analysis"
	"github.com/soundcrate/mixplan/setplan"
)

func newPlanCommand(app *appContext) *cobra.Command {
	var (
		mode       string
		startTrack string
		endTrack   string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "plan [track-id]...",
		Short: "Order analyzed tracks into an optimized set",
		Long:  "Order the given tracks (or every cached track when none are named) into an optimized running order with explained transitions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode == "" {
				mode = app.cfg.Planner.DefaultMode
			}

			ids := args
			if len(ids) == 0 {
				var err error
				ids, err = app.store.TrackIDs(cmd.Context())
				if err != nil {
					return err
				}
			}

			tracks := make([]*analysis.AnalysisResult, 0, len(ids))
			for _, id := range ids {
				res, err := app.store.Latest(cmd.Context(), id)
				if err != nil {
					return err
				}
				tracks = append(tracks, res)
			}

			result, err := setplan.NewPlanner().Optimize(tracks, setplan.Mode(mode), startTrack, endTrack)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"#", "Track", "Energy", "Transition"})

			for i, id := range result.OrderedTracks {
				transition := ""
				if i > 0 {
					t := result.Transitions[i-1]
					transition = fmt.Sprintf("%.2f  %s", t.Score, t.Explanation)
				}
				tw.AppendRow(table.Row{i + 1, id, result.EnergyFlow[i], transition})
			}
			tw.AppendFooter(table.Row{"", "", "", fmt.Sprintf("total %.2f, avg %.2f", result.TotalScore, result.AverageTransitionScore)})
			tw.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "planning mode: warmUp, peakTime or openFormat (default from config)")
	cmd.Flags().StringVar(&startTrack, "start", "", "force this track first")
	cmd.Flags().StringVar(&endTrack, "end", "", "force this track last")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the plan as JSON instead of a table")

	return cmd
}
