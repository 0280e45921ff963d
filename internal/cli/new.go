package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNewCommand(app *App) *cobra.Command {
	var createParents bool

	cmd := &cobra.Command{
		Use:   "new </path/to/activity>",
		Short: "Create a new activity at an absolute path",
		Long: `Create a new activity. The path is absolute, e.g. /work/project-x;
intermediate activities must already exist unless --parents is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.loadSession(cmd.Context())
			if err != nil {
				return err
			}

			leaf, err := sess.tracker.CreateActivity(args[0], createParents)
			if err != nil {
				return err
			}
			if err := app.save(cmd.Context(), sess); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", args[0])
			app.Logger.Debug("activity created", "path", args[0], "id", leaf.ID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&createParents, "parents", "p", false,
		"create missing ancestor activities, like mkdir -p")
	return cmd
}
