package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecentCommand(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recent activities, grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.loadSession(cmd.Context())
			if err != nil {
				return err
			}

			days := sess.tracker.Recent(limit)
			if len(days) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recorded activities")
				return nil
			}

			out := cmd.OutOrStdout()
			for _, day := range days {
				fmt.Fprintf(out, "%s\n", day.Date)
				for _, iv := range day.Intervals {
					if iv.End == nil {
						fmt.Fprintf(out, "  %s  %s - now\n",
							iv.Name, iv.Start.Format("15:04"))
						continue
					}
					fmt.Fprintf(out, "  %s  %s - %s (%s)\n",
						iv.Name, iv.Start.Format("15:04"), iv.End.Format("15:04"),
						formatDuration(iv.End.Sub(iv.Start)))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of activities to list")
	return cmd
}
