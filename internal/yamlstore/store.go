// Package yamlstore persists each user's timeline as one YAML document
// with two top-level fields, "timeline" and "activities", plus a small
// state file holding the default-user preference. Writes go through a
// temp file and rename so a crash mid-write leaves the previous version
// intact.
package yamlstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rpggio/stint/internal/domain/catalog"
	"github.com/rpggio/stint/internal/domain/timeline"
	"github.com/rpggio/stint/internal/repository"
)

const stateFile = "state.yaml"

// Store keeps one <user>.yaml document per user under dir.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

type document struct {
	Timeline   map[string][]intervalDoc `yaml:"timeline"`
	Activities []nodeDoc                `yaml:"activities"`
}

type intervalDoc struct {
	ID           string     `yaml:"id"`
	Name         string     `yaml:"name"`
	Start        time.Time  `yaml:"start"`
	End          *time.Time `yaml:"end,omitempty"`
	Continuation bool       `yaml:"continuation,omitempty"`
}

type nodeDoc struct {
	Name     string    `yaml:"name"`
	ID       string    `yaml:"id"`
	Children []nodeDoc `yaml:"children,omitempty"`
}

type stateDoc struct {
	DefaultUser string `yaml:"default_user"`
}

// Load reads the user's document. A user without one gets
// repository.ErrNotFound.
func (s *Store) Load(ctx context.Context, user string) (*timeline.Log, *catalog.Catalog, error) {
	data, err := os.ReadFile(s.userPath(user))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: user %q", repository.ErrNotFound, user)
		}
		return nil, nil, fmt.Errorf("read timeline: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse timeline: %w", err)
	}

	days := make([]timeline.Day, 0, len(doc.Timeline))
	for date, entries := range doc.Timeline {
		day := timeline.Day{Date: date}
		for _, e := range entries {
			day.Intervals = append(day.Intervals, timeline.Interval{
				ActivityID:   e.ID,
				Name:         e.Name,
				Start:        e.Start.UTC(),
				End:          utc(e.End),
				Continuation: e.Continuation,
			})
		}
		days = append(days, day)
	}

	return timeline.FromDays(days), catalog.Load(fromNodeDocs(doc.Activities)), nil
}

// Save writes the user's document atomically and returns its path.
func (s *Store) Save(ctx context.Context, user string, log *timeline.Log, cat *catalog.Catalog) (string, error) {
	doc := document{Timeline: make(map[string][]intervalDoc)}
	for _, day := range log.Days() {
		entries := make([]intervalDoc, 0, len(day.Intervals))
		for _, iv := range day.Intervals {
			entries = append(entries, intervalDoc{
				ID:           iv.ActivityID,
				Name:         iv.Name,
				Start:        iv.Start,
				End:          iv.End,
				Continuation: iv.Continuation,
			})
		}
		doc.Timeline[day.Date] = entries
	}
	doc.Activities = toNodeDocs(cat.Roots())

	path := s.userPath(user)
	if err := s.writeAtomic(path, doc); err != nil {
		return "", err
	}
	return path, nil
}

// DefaultUser reads the default-user preference, writing "default" into a
// fresh state file the first time it is consulted.
func (s *Store) DefaultUser(ctx context.Context) (string, error) {
	path := filepath.Join(s.dir, stateFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read state: %w", err)
		}
		state := stateDoc{DefaultUser: "default"}
		if err := s.writeAtomic(path, state); err != nil {
			return "", err
		}
		return state.DefaultUser, nil
	}

	var state stateDoc
	if err := yaml.Unmarshal(data, &state); err != nil {
		return "", fmt.Errorf("parse state: %w", err)
	}
	if state.DefaultUser == "" {
		return "", fmt.Errorf("state file %s has no default_user", path)
	}
	return state.DefaultUser, nil
}

func (s *Store) userPath(user string) string {
	return filepath.Join(s.dir, user+".yaml")
}

func (s *Store) writeAtomic(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func toNodeDocs(nodes []*catalog.Node) []nodeDoc {
	out := make([]nodeDoc, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeDoc{
			Name:     n.Name,
			ID:       n.ID,
			Children: toNodeDocs(n.Children),
		})
	}
	return out
}

func fromNodeDocs(docs []nodeDoc) []*catalog.Node {
	out := make([]*catalog.Node, 0, len(docs))
	for _, d := range docs {
		out = append(out, &catalog.Node{
			ID:       d.ID,
			Name:     d.Name,
			Children: fromNodeDocs(d.Children),
		})
	}
	return out
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
