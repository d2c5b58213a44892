package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/soundcrate/mixplan/similarity"
)

func newScoreCommand(app *appContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "score <track-a> <track-b>",
		Short: "Score the compatibility of two analyzed tracks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.store.Latest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b, err := app.store.Latest(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			score := similarity.NewScorer().Score(a, b)

			if jsonOut {
				return writeJSON(cmd, score)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Component", "Score"})
			tw.AppendRows([]table.Row{
				{"tempo", fmt.Sprintf("%.2f", score.Components.Tempo)},
				{"key", fmt.Sprintf("%.2f", score.Components.Key)},
				{"energy", fmt.Sprintf("%.2f", score.Components.Energy)},
				{"embedding", fmt.Sprintf("%.2f", score.Components.Embedding)},
			})
			tw.AppendFooter(table.Row{"combined", fmt.Sprintf("%.2f", score.Combined)})
			tw.Render()

			fmt.Fprintln(cmd.OutOrStdout(), score.Explanation)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the score as JSON instead of a table")
	return cmd
}
