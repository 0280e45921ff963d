package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/stint/internal/clock"
	"github.com/rpggio/stint/internal/domain/catalog"
	"github.com/rpggio/stint/internal/domain/timeline"
	"github.com/rpggio/stint/internal/domain/tracker"
	"github.com/rpggio/stint/internal/repository"
)

// handler serves the timeline tools. Every call loads the user's state,
// applies one engine operation and saves, matching the CLI's atomicity.
type handler struct {
	store  repository.Store
	clock  clock.Clock
	logger *slog.Logger
}

type StartParams struct {
	Name string `json:"name" jsonschema:"name of a catalogued activity"`
	User string `json:"user,omitempty" jsonschema:"user whose timeline to use, defaults to the configured user"`
}

type CompletedActivity struct {
	Name     string    `json:"name"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration string    `json:"duration"`
}

type StartResult struct {
	Started   string             `json:"started"`
	At        time.Time          `json:"at"`
	Completed *CompletedActivity `json:"completed,omitempty"`
}

type FinishParams struct {
	User string `json:"user,omitempty"`
}

type CreateParams struct {
	Path          string `json:"path" jsonschema:"absolute activity path, e.g. /work/project-x"`
	CreateParents bool   `json:"create_parents,omitempty" jsonschema:"create missing ancestor activities"`
	User          string `json:"user,omitempty"`
}

type CreateResult struct {
	Path string `json:"path"`
	ID   string `json:"id"`
}

type StatusParams struct {
	User string `json:"user,omitempty"`
}

type StatusResult struct {
	Active  bool      `json:"active"`
	Name    string    `json:"name,omitempty"`
	Path    string    `json:"path,omitempty"`
	Since   time.Time `json:"since,omitzero"`
	Elapsed string    `json:"elapsed,omitempty"`
}

type RecentParams struct {
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of intervals, defaults to 10"`
	User  string `json:"user,omitempty"`
}

type ActivityEntry struct {
	Name  string     `json:"name"`
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

type DayActivities struct {
	Date       string          `json:"date"`
	Activities []ActivityEntry `json:"activities"`
}

type RecentResult struct {
	Days []DayActivities `json:"days"`
}

func (h *handler) startActivity(ctx context.Context, req *sdkmcp.CallToolRequest, params StartParams) (*sdkmcp.CallToolResult, StartResult, error) {
	user, svc, cat, log, err := h.session(ctx, params.User)
	if err != nil {
		return nil, StartResult{}, err
	}

	completed, err := svc.Start(params.Name)
	if err != nil {
		return nil, StartResult{}, MapError(err)
	}
	if _, err := h.store.Save(ctx, user, log, cat); err != nil {
		return nil, StartResult{}, fmt.Errorf("saving timeline: %w", err)
	}

	result := StartResult{Started: params.Name, At: log.Current().Start}
	if completed != nil {
		result.Completed = completedActivity(*completed)
	}
	return nil, result, nil
}

func (h *handler) finishActivity(ctx context.Context, req *sdkmcp.CallToolRequest, params FinishParams) (*sdkmcp.CallToolResult, CompletedActivity, error) {
	user, svc, cat, log, err := h.session(ctx, params.User)
	if err != nil {
		return nil, CompletedActivity{}, err
	}

	summary, err := svc.Finish()
	if err != nil {
		return nil, CompletedActivity{}, MapError(err)
	}
	if _, err := h.store.Save(ctx, user, log, cat); err != nil {
		return nil, CompletedActivity{}, fmt.Errorf("saving timeline: %w", err)
	}
	return nil, *completedActivity(summary), nil
}

func (h *handler) createActivity(ctx context.Context, req *sdkmcp.CallToolRequest, params CreateParams) (*sdkmcp.CallToolResult, CreateResult, error) {
	user, svc, cat, log, err := h.session(ctx, params.User)
	if err != nil {
		return nil, CreateResult{}, err
	}

	leaf, err := svc.CreateActivity(params.Path, params.CreateParents)
	if err != nil {
		return nil, CreateResult{}, MapError(err)
	}
	if _, err := h.store.Save(ctx, user, log, cat); err != nil {
		return nil, CreateResult{}, fmt.Errorf("saving timeline: %w", err)
	}
	return nil, CreateResult{Path: params.Path, ID: leaf.ID}, nil
}

func (h *handler) getStatus(ctx context.Context, req *sdkmcp.CallToolRequest, params StatusParams) (*sdkmcp.CallToolResult, StatusResult, error) {
	_, svc, _, _, err := h.session(ctx, params.User)
	if err != nil {
		return nil, StatusResult{}, err
	}

	status := svc.Status()
	if !status.Active {
		return nil, StatusResult{}, nil
	}
	return nil, StatusResult{
		Active:  true,
		Name:    status.Name,
		Path:    status.Path,
		Since:   status.Since,
		Elapsed: status.Elapsed.Round(time.Second).String(),
	}, nil
}

func (h *handler) recentActivity(ctx context.Context, req *sdkmcp.CallToolRequest, params RecentParams) (*sdkmcp.CallToolResult, RecentResult, error) {
	_, svc, _, _, err := h.session(ctx, params.User)
	if err != nil {
		return nil, RecentResult{}, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 10
	}

	result := RecentResult{}
	for _, day := range svc.Recent(limit) {
		entries := make([]ActivityEntry, 0, len(day.Intervals))
		for _, iv := range day.Intervals {
			entries = append(entries, ActivityEntry{Name: iv.Name, Start: iv.Start, End: iv.End})
		}
		result.Days = append(result.Days, DayActivities{Date: day.Date, Activities: entries})
	}
	return nil, result, nil
}

// session resolves the user and loads their state. A user without
// persisted state starts with an empty log and catalog; the first save
// creates the document.
func (h *handler) session(ctx context.Context, user string) (string, *tracker.Service, *catalog.Catalog, *timeline.Log, error) {
	if user == "" {
		var err error
		if user, err = h.store.DefaultUser(ctx); err != nil {
			return "", nil, nil, nil, fmt.Errorf("resolving default user: %w", err)
		}
	}

	log, cat, err := h.store.Load(ctx, user)
	if errors.Is(err, repository.ErrNotFound) {
		log, cat = timeline.NewLog(), catalog.New()
	} else if err != nil {
		return "", nil, nil, nil, fmt.Errorf("loading timeline: %w", err)
	}

	return user, tracker.NewService(cat, log, h.clock, h.logger), cat, log, nil
}

func completedActivity(s timeline.Summary) *CompletedActivity {
	return &CompletedActivity{
		Name:     s.Name,
		Start:    s.Start,
		End:      s.End,
		Duration: s.End.Sub(s.Start).Round(time.Second).String(),
	}
}
