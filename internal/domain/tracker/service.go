// Package tracker composes the activity catalog and the timeline log into
// the operations callers see: start, finish, create, status, recent. The
// service is the sole mutator of both structures for the lifetime of a
// command; loading and saving them is the caller's job.
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/stint/internal/clock"
	"github.com/rpggio/stint/internal/domain/catalog"
	"github.com/rpggio/stint/internal/domain/timeline"
)

// Service owns one user's catalog and log.
type Service struct {
	catalog *catalog.Catalog
	log     *timeline.Log
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates a tracker over an already-loaded catalog and log.
func NewService(cat *catalog.Catalog, log *timeline.Log, clk clock.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{catalog: cat, log: log, clock: clk, logger: logger}
}

// Status summarizes the current session state.
type Status struct {
	Active  bool
	Name    string
	Path    string
	Since   time.Time
	Elapsed time.Duration
}

// Start begins the named activity, finishing any activity still in
// progress. The name must resolve in the catalog. It returns the summary
// of the implicitly finished activity, or nil if none was open.
func (s *Service) Start(name string) (*timeline.Summary, error) {
	id, err := s.catalog.LookupID(name)
	if err != nil {
		if errors.Is(err, catalog.ErrActivityNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownActivity, name)
		}
		return nil, err
	}

	now := s.clock.Now()
	completed, err := s.log.Start(id, name, now)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("activity started", "activity", name, "id", id, "at", now)
	return completed, nil
}

// Finish closes the activity in progress.
func (s *Service) Finish() (timeline.Summary, error) {
	summary, err := s.log.Finish(s.clock.Now())
	if err != nil {
		return timeline.Summary{}, err
	}
	s.logger.Debug("activity finished",
		"activity", summary.Name, "start", summary.Start, "end", summary.End)
	return summary, nil
}

// CreateActivity registers a new activity at an absolute slash-delimited
// path such as /work/project-x. With createParents, missing intermediate
// activities are created as well, mkdir -p style. Relative names have no
// resolved location and are rejected.
func (s *Service) CreateActivity(path string, createParents bool) (*catalog.Node, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("%w: %q is not absolute, expected /path/to/activity",
			catalog.ErrMalformedPath, path)
	}
	leaf, err := s.catalog.Insert(strings.Split(path, "/")[1:], createParents)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("activity created", "path", path, "id", leaf.ID)
	return leaf, nil
}

// Status reports whether an activity is in progress and, if so, its name,
// catalog path and elapsed time.
func (s *Service) Status() Status {
	current := s.log.Current()
	if current == nil {
		return Status{}
	}

	// The path is display-only; a first-match lookup on a duplicated name
	// may point at a namesake, and a name deleted from the catalog would
	// simply render without a path.
	path, err := s.catalog.LookupPath(current.Name)
	if err != nil {
		path = ""
	}

	return Status{
		Active:  true,
		Name:    current.Name,
		Path:    path,
		Since:   current.Start,
		Elapsed: s.clock.Now().Sub(current.Start),
	}
}

// Recent returns the day buckets containing the n most recent intervals,
// oldest day first.
func (s *Service) Recent(n int) []timeline.Day {
	return s.log.Recent(n)
}
