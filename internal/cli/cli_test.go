package cli_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/stint/internal/cli"
	"github.com/rpggio/stint/internal/clock"
	"github.com/rpggio/stint/internal/domain/catalog"
	"github.com/rpggio/stint/internal/domain/timeline"
	"github.com/rpggio/stint/internal/repository"
	"github.com/rpggio/stint/internal/repository/mocks"
)

func newApp(store *mocks.Store) *cli.App {
	return &cli.App{
		Store:  store,
		Clock:  clock.Fixed(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)),
		Logger: slog.New(slog.DiscardHandler),
	}
}

func run(t *testing.T, app *cli.App, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCommand(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func catalogWith(t *testing.T, path string) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	_, err := cat.Insert([]string{path}, true)
	require.NoError(t, err)
	return cat
}

func TestStartCommand(t *testing.T) {
	store := &mocks.Store{}
	log := timeline.NewLog()
	cat := catalogWith(t, "coding")

	store.On("DefaultUser", mock.Anything).Return("alice", nil)
	store.On("Load", mock.Anything, "alice").Return(log, cat, nil)
	store.On("Save", mock.Anything, "alice", log, cat).Return("alice.yaml", nil)

	out, err := run(t, newApp(store), "start", "coding")
	require.NoError(t, err)
	require.Contains(t, out, "started coding")

	require.NotNil(t, log.Current())
	store.AssertExpectations(t)
}

func TestStartCommand_UnknownActivity(t *testing.T) {
	store := &mocks.Store{}
	store.On("DefaultUser", mock.Anything).Return("alice", nil)
	store.On("Load", mock.Anything, "alice").Return(timeline.NewLog(), catalog.New(), nil)

	_, err := run(t, newApp(store), "start", "coding")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown activity")

	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDoneCommand_NothingToFinish(t *testing.T) {
	store := &mocks.Store{}
	store.On("DefaultUser", mock.Anything).Return("alice", nil)
	store.On("Load", mock.Anything, "alice").Return(timeline.NewLog(), catalog.New(), nil)

	_, err := run(t, newApp(store), "done")
	require.ErrorIs(t, err, timeline.ErrNothingToFinish)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDoneCommand(t *testing.T) {
	store := &mocks.Store{}
	log := timeline.NewLog()
	_, err := log.Start("id-1", "coding", time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	cat := catalog.New()

	store.On("DefaultUser", mock.Anything).Return("alice", nil)
	store.On("Load", mock.Anything, "alice").Return(log, cat, nil)
	store.On("Save", mock.Anything, "alice", log, cat).Return("alice.yaml", nil)

	out, err := run(t, newApp(store), "done")
	require.NoError(t, err)
	require.Contains(t, out, "finished coding")
	require.Contains(t, out, "1h0m0s")
	require.Nil(t, log.Current())
}

func TestNewCommand(t *testing.T) {
	store := &mocks.Store{}
	log := timeline.NewLog()
	cat := catalog.New()

	store.On("DefaultUser", mock.Anything).Return("alice", nil)
	store.On("Load", mock.Anything, "alice").Return(log, cat, nil)
	store.On("Save", mock.Anything, "alice", log, cat).Return("alice.yaml", nil)

	out, err := run(t, newApp(store), "new", "/work/project-x", "--parents")
	require.NoError(t, err)
	require.Contains(t, out, "created /work/project-x")

	path, err := cat.LookupPath("project-x")
	require.NoError(t, err)
	require.Equal(t, "/work/project-x", path)
}

func TestNewCommand_MissingAncestor(t *testing.T) {
	store := &mocks.Store{}
	store.On("DefaultUser", mock.Anything).Return("alice", nil)
	store.On("Load", mock.Anything, "alice").Return(timeline.NewLog(), catalog.New(), nil)

	_, err := run(t, newApp(store), "new", "/work/project-x")
	require.ErrorIs(t, err, catalog.ErrMissingAncestor)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStatusCommand_FreshUserStartsEmpty(t *testing.T) {
	store := &mocks.Store{}
	store.On("DefaultUser", mock.Anything).Return("alice", nil)
	store.On("Load", mock.Anything, "alice").Return(nil, nil,
		fmt.Errorf("%w: user %q", repository.ErrNotFound, "alice"))

	out, err := run(t, newApp(store), "status")
	require.NoError(t, err)
	require.Contains(t, out, "no activity in progress")
}

func TestStatusCommand_Active(t *testing.T) {
	store := &mocks.Store{}
	log := timeline.NewLog()
	_, err := log.Start("id-1", "coding", time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	store.On("DefaultUser", mock.Anything).Return("alice", nil)
	store.On("Load", mock.Anything, "alice").Return(log, catalogWith(t, "coding"), nil)

	out, err := run(t, newApp(store), "status")
	require.NoError(t, err)
	require.Contains(t, out, "working on /coding")
	require.Contains(t, out, "1h0m0s")
}

func TestRecentCommand(t *testing.T) {
	store := &mocks.Store{}
	log := timeline.NewLog()
	_, err := log.Start("id-1", "coding", time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = log.Finish(time.Date(2024, 1, 10, 8, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	store.On("DefaultUser", mock.Anything).Return("alice", nil)
	store.On("Load", mock.Anything, "alice").Return(log, catalog.New(), nil)

	out, err := run(t, newApp(store), "recent", "-n", "5")
	require.NoError(t, err)
	require.Contains(t, out, "2024-01-10")
	require.Contains(t, out, "coding")
}

func TestUserFlagOverridesDefault(t *testing.T) {
	store := &mocks.Store{}
	store.On("Load", mock.Anything, "bob").Return(timeline.NewLog(), catalog.New(), nil)

	out, err := run(t, newApp(store), "status", "--user", "bob")
	require.NoError(t, err)
	require.Contains(t, out, "no activity in progress")
	store.AssertNotCalled(t, "DefaultUser", mock.Anything)
}
