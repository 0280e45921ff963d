package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newStartCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start <activity>",
		Short: "Start an activity, finishing any activity in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.loadSession(cmd.Context())
			if err != nil {
				return err
			}

			completed, err := sess.tracker.Start(args[0])
			if err != nil {
				return err
			}
			if err := app.save(cmd.Context(), sess); err != nil {
				return err
			}

			if completed != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "finished %s (%s)\n",
					completed.Name, formatDuration(completed.End.Sub(completed.Start)))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "started %s\n", args[0])
			return nil
		},
	}
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}
