package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDoneCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done",
		Short: "Finish the activity in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.loadSession(cmd.Context())
			if err != nil {
				return err
			}

			summary, err := sess.tracker.Finish()
			if err != nil {
				return err
			}
			if err := app.save(cmd.Context(), sess); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "finished %s (%s)\n",
				summary.Name, formatDuration(summary.End.Sub(summary.Start)))
			return nil
		},
	}
}
