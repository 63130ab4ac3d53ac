package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/marty/internal/db"
	"github.com/alexanderramin/marty/internal/domain"
)

const eventColumns = `id, title, description, start_at, end_at, created_at`

// SQLiteEventRepo implements EventRepo on the calendar_events table.
type SQLiteEventRepo struct {
	db  db.DBTX
	now func() time.Time
}

// NewSQLiteEventRepo accepts either a *sql.DB or a *sql.Tx.
func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn, now: time.Now}
}

// Create assigns an ID and CreatedAt when they are empty.
func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.Event) error {
	now := r.now()
	if e.ID == "" {
		e.ID = newULID(now)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now.UTC().Truncate(time.Second)
	}

	query := `INSERT INTO calendar_events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Title,
		e.Description,
		formatTime(e.StartAt),
		formatTime(e.EndAt),
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting calendar event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events WHERE id = ?`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("calendar event %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

// ListOverlapping returns events intersecting [start, end), ordered by start.
func (r *SQLiteEventRepo) ListOverlapping(ctx context.Context, start, end time.Time) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events
		WHERE start_at < ? AND end_at > ?
		ORDER BY start_at, id`
	rows, err := r.db.QueryContext(ctx, query, formatTime(end), formatTime(start))
	if err != nil {
		return nil, fmt.Errorf("listing overlapping events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *SQLiteEventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM calendar_events ORDER BY start_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *SQLiteEventRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calendar_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return n, nil
}

// Delete returns ErrNotFound when no event has the given ID.
func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting calendar event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting calendar event: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("calendar event %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	var startStr, endStr, createdStr string
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &startStr, &endStr, &createdStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning calendar event: %w", err)
	}

	var err error
	if e.StartAt, err = parseTime("start_at", startStr); err != nil {
		return nil, err
	}
	if e.EndAt, err = parseTime("end_at", endStr); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime("created_at", createdStr); err != nil {
		return nil, err
	}
	return &e, nil
}

func scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}
