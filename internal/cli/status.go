package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the activity in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.loadSession(cmd.Context())
			if err != nil {
				return err
			}

			status := sess.tracker.Status()
			if !status.Active {
				fmt.Fprintln(cmd.OutOrStdout(), "no activity in progress")
				return nil
			}

			label := status.Name
			if status.Path != "" {
				label = status.Path
			}
			fmt.Fprintf(cmd.OutOrStdout(), "working on %s for %s (since %s)\n",
				label, formatDuration(status.Elapsed),
				status.Since.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
