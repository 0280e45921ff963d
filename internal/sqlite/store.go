package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/stint/internal/domain/catalog"
	"github.com/rpggio/stint/internal/domain/timeline"
	"github.com/rpggio/stint/internal/repository"
)

// Store implements repository.Store on SQLite. Load and Save move the
// whole per-user document, matching the once-per-command persistence
// model; Save replaces the user's rows in one transaction.
type Store struct {
	db *DB
}

// NewStore creates a Store over an open database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Load reconstructs the user's log and catalog.
func (s *Store) Load(ctx context.Context, user string) (*timeline.Log, *catalog.Catalog, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM users WHERE name = ?`, user).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("%w: user %q", repository.ErrNotFound, user)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	log, err := s.loadLog(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	cat, err := s.loadCatalog(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return log, cat, nil
}

// Save replaces the user's persisted state and returns the database path.
func (s *Store) Save(ctx context.Context, user string, log *timeline.Log, cat *catalog.Catalog) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO users (name) VALUES (?)`, user); err != nil {
		return "", fmt.Errorf("failed to save user: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM intervals WHERE user = ?`, user); err != nil {
		return "", fmt.Errorf("failed to clear intervals: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE user = ?`, user); err != nil {
		return "", fmt.Errorf("failed to clear activities: %w", err)
	}

	for _, day := range log.Days() {
		for i, iv := range day.Intervals {
			var end *string
			if iv.End != nil {
				v := iv.End.Format(time.RFC3339Nano)
				end = &v
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO intervals (user, day, position, activity_id, name, start_at, end_at, continuation)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				user, day.Date, i, iv.ActivityID, iv.Name,
				iv.Start.Format(time.RFC3339Nano), end, iv.Continuation)
			if err != nil {
				return "", fmt.Errorf("failed to save interval: %w", err)
			}
		}
	}

	if err := insertNodes(ctx, tx, user, nil, cat.Roots()); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit save: %w", err)
	}
	return "sqlite:" + user, nil
}

// DefaultUser reads the default-user setting, seeding "default" on first use.
func (s *Store) DefaultUser(ctx context.Context) (string, error) {
	var user string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'default_user'`).Scan(&user)
	if err == sql.ErrNoRows {
		user = "default"
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES ('default_user', ?)`, user); err != nil {
			return "", fmt.Errorf("failed to seed default user: %w", err)
		}
		return user, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load default user: %w", err)
	}
	return user, nil
}

func (s *Store) loadLog(ctx context.Context, user string) (*timeline.Log, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, activity_id, name, start_at, end_at, continuation
		FROM intervals WHERE user = ?
		ORDER BY day, position`, user)
	if err != nil {
		return nil, fmt.Errorf("failed to load intervals: %w", err)
	}
	defer rows.Close()

	var days []timeline.Day
	for rows.Next() {
		var day, startStr string
		var endStr *string
		var iv timeline.Interval
		if err := rows.Scan(&day, &iv.ActivityID, &iv.Name, &startStr, &endStr, &iv.Continuation); err != nil {
			return nil, fmt.Errorf("failed to scan interval: %w", err)
		}
		if iv.Start, err = time.Parse(time.RFC3339Nano, startStr); err != nil {
			return nil, fmt.Errorf("failed to parse start timestamp: %w", err)
		}
		if endStr != nil {
			end, err := time.Parse(time.RFC3339Nano, *endStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end timestamp: %w", err)
			}
			iv.End = &end
		}
		if len(days) == 0 || days[len(days)-1].Date != day {
			days = append(days, timeline.Day{Date: day})
		}
		days[len(days)-1].Intervals = append(days[len(days)-1].Intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load intervals: %w", err)
	}
	return timeline.FromDays(days), nil
}

func (s *Store) loadCatalog(ctx context.Context, user string) (*catalog.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent_id, name
		FROM activities WHERE user = ?
		ORDER BY position`, user)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*catalog.Node)
	type row struct {
		node   *catalog.Node
		parent *string
	}
	var all []row
	for rows.Next() {
		var id, name string
		var parent *string
		if err := rows.Scan(&id, &parent, &name); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		n := &catalog.Node{ID: id, Name: name}
		byID[id] = n
		all = append(all, row{node: n, parent: parent})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	var roots []*catalog.Node
	for _, r := range all {
		if r.parent == nil {
			roots = append(roots, r.node)
			continue
		}
		p, ok := byID[*r.parent]
		if !ok {
			return nil, fmt.Errorf("activity %s references unknown parent %s", r.node.ID, *r.parent)
		}
		p.Children = append(p.Children, r.node)
	}
	return catalog.Load(roots), nil
}

func insertNodes(ctx context.Context, tx *sql.Tx, user string, parentID *string, nodes []*catalog.Node) error {
	for i, n := range nodes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO activities (id, user, parent_id, name, position)
			VALUES (?, ?, ?, ?, ?)`,
			n.ID, user, parentID, n.Name, i)
		if err != nil {
			return fmt.Errorf("failed to save activity: %w", err)
		}
		if err := insertNodes(ctx, tx, user, &n.ID, n.Children); err != nil {
			return err
		}
	}
	return nil
}
