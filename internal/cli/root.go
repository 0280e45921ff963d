// Package cli wires the timeline engine to cobra commands. Every command
// follows the same shape: load the user's state, run one engine
// operation, save. Rendering and exit codes live here; the engine only
// returns structured data and typed failures.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rpggio/stint/internal/clock"
	"github.com/rpggio/stint/internal/domain/catalog"
	"github.com/rpggio/stint/internal/domain/timeline"
	"github.com/rpggio/stint/internal/domain/tracker"
	"github.com/rpggio/stint/internal/repository"
)

// App holds the collaborators the commands need.
type App struct {
	Store  repository.Store
	Clock  clock.Clock
	Logger *slog.Logger

	user string
}

// NewRootCommand builds the stint command tree.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "stint",
		Short: "Track time spent on named activities",
		Long: `stint records what you are working on. Activities live in a
hierarchical catalog and must be created before they can be started;
starting an activity finishes the one in progress.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&app.user, "user", "u", "",
		"user whose timeline to use (defaults to the stored default user)")

	root.AddCommand(
		newStartCommand(app),
		newDoneCommand(app),
		newNewCommand(app),
		newStatusCommand(app),
		newRecentCommand(app),
		newMCPCommand(app),
	)
	return root
}

// Execute runs the command tree and maps failures to a message and a
// non-zero exit.
func Execute(app *App) {
	if err := NewRootCommand(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session holds one command's loaded state.
type session struct {
	user    string
	tracker *tracker.Service
	log     *timeline.Log
	catalog *catalog.Catalog
}

// loadSession resolves the user and loads their timeline. Users without
// persisted state start empty; the first save creates their document.
func (a *App) loadSession(ctx context.Context) (*session, error) {
	user := a.user
	if user == "" {
		var err error
		if user, err = a.Store.DefaultUser(ctx); err != nil {
			return nil, fmt.Errorf("resolving default user: %w", err)
		}
	}

	log, cat, err := a.Store.Load(ctx, user)
	if errors.Is(err, repository.ErrNotFound) {
		log, cat = timeline.NewLog(), catalog.New()
	} else if err != nil {
		return nil, fmt.Errorf("loading timeline: %w", err)
	}

	return &session{
		user:    user,
		tracker: tracker.NewService(cat, log, a.Clock, a.Logger),
		log:     log,
		catalog: cat,
	}, nil
}

func (a *App) save(ctx context.Context, s *session) error {
	location, err := a.Store.Save(ctx, s.user, s.log, s.catalog)
	if err != nil {
		return fmt.Errorf("saving timeline: %w", err)
	}
	a.Logger.Debug("timeline saved", "user", s.user, "location", location)
	return nil
}
