package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
)

// sessionColumns must match the Scan order in scanSession.
const sessionColumns = `id, user_id, app_name, start_time, end_time, duration_seconds, is_active, created_at`

// SessionRepo implements domain.SessionRepository backed by PostgreSQL.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a SessionRepo from the shared DB connection.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db.DB}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		s        domain.Session
		endTime  sql.NullTime
		duration sql.NullInt64
	)
	err := row.Scan(
		&s.ID, &s.UserID, &s.AppName, &s.StartTime,
		&endTime, &duration, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		t := endTime.Time
		s.EndTime = &t
	}
	if duration.Valid {
		d := duration.Int64
		s.DurationSeconds = &d
	}
	return &s, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == constraint
}

func (r *SessionRepo) Insert(ctx context.Context, userID int64, appName string, start time.Time) (*domain.Session, error) {
	session, err := scanSession(r.db.QueryRowContext(ctx, `
		INSERT INTO screen_time_sessions (user_id, app_name, start_time, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING `+sessionColumns,
		userID, appName, start))
	if isUniqueViolation(err, "screen_time_sessions_one_active") {
		return nil, domain.ErrActiveSessionExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}
	return session, nil
}

func (r *SessionRepo) CloseActive(ctx context.Context, userID int64, appName string, end time.Time) (*domain.Session, error) {
	// Duration is clamped to zero to absorb clock skew between the stored
	// start and the caller-supplied end.
	session, err := scanSession(r.db.QueryRowContext(ctx, `
		UPDATE screen_time_sessions
		SET end_time = $3,
		    duration_seconds = GREATEST(0, CAST(EXTRACT(EPOCH FROM ($3::timestamptz - start_time)) AS BIGINT)),
		    is_active = FALSE
		WHERE user_id = $1 AND app_name = $2 AND is_active
		RETURNING `+sessionColumns,
		userID, appName, end))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoActiveSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to close session: %w", err)
	}
	return session, nil
}

func (r *SessionRepo) ListActiveByUser(ctx context.Context, userID int64) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM screen_time_sessions
		WHERE user_id = $1 AND is_active`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

func (r *SessionRepo) ListByUserAndRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM screen_time_sessions
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions in range: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

func (r *SessionRepo) SumDurationInRange(ctx context.Context, userID int64, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(duration_seconds), 0)
		FROM screen_time_sessions
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3`,
		userID, start, end).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum durations: %w", err)
	}
	return total, nil
}

func (r *SessionRepo) SumDurationByApp(ctx context.Context, userID int64, start, end time.Time) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT app_name, SUM(duration_seconds)
		FROM screen_time_sessions
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3
		      AND duration_seconds IS NOT NULL
		GROUP BY app_name`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to sum durations by app: %w", err)
	}
	defer rows.Close()

	perApp := make(map[string]int64)
	for rows.Next() {
		var (
			appName string
			total   int64
		)
		if err := rows.Scan(&appName, &total); err != nil {
			return nil, fmt.Errorf("failed to scan app sum: %w", err)
		}
		perApp[appName] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate app sums: %w", err)
	}
	return perApp, nil
}

func (r *SessionRepo) CountStartsInRange(ctx context.Context, userID int64, appName string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM screen_time_sessions
		WHERE user_id = $1 AND app_name = $2 AND start_time >= $3 AND start_time < $4`,
		userID, appName, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count session starts: %w", err)
	}
	return count, nil
}

// UsageWindow reads the sessions for [start, end) inside one read-only
// transaction and derives the per-app sums and total from that single read,
// so the parts cannot drift apart under concurrent writes.
func (r *SessionRepo) UsageWindow(ctx context.Context, userID int64, start, end time.Time) (*domain.UsageWindow, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	rows, err := tx.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM screen_time_sessions
		WHERE user_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to read usage window: %w", err)
	}
	sessions, err := collectSessions(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	window := &domain.UsageWindow{
		Start:    start,
		End:      end,
		Sessions: sessions,
		PerApp:   make(map[string]int64),
	}
	for _, s := range sessions {
		if s.DurationSeconds == nil {
			// Still open: contributes nothing until stopped.
			continue
		}
		window.PerApp[s.AppName] += *s.DurationSeconds
		window.TotalSeconds += *s.DurationSeconds
	}
	return window, nil
}

func collectSessions(rows *sql.Rows) ([]domain.Session, error) {
	var sessions []domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
