package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
)

// limitColumns must match the Scan order in scanLimit.
const limitColumns = `id, user_id, category_id, daily_limit_seconds, weekly_limit_seconds, is_enabled, created_at, updated_at`

// LimitRepo implements domain.LimitRepository backed by PostgreSQL.
type LimitRepo struct {
	db *sql.DB
}

// NewLimitRepo creates a LimitRepo from the shared DB connection.
func NewLimitRepo(db *DB) *LimitRepo {
	return &LimitRepo{db: db.DB}
}

func scanLimit(row rowScanner) (*domain.Limit, error) {
	var l domain.Limit
	err := row.Scan(
		&l.ID, &l.UserID, &l.CategoryID,
		&l.DailyLimitSeconds, &l.WeeklyLimitSeconds,
		&l.IsEnabled, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LimitRepo) GetByUserAndCategory(ctx context.Context, userID, categoryID int64) (*domain.Limit, error) {
	limit, err := scanLimit(r.db.QueryRowContext(ctx, `
		SELECT `+limitColumns+`
		FROM screen_time_limits
		WHERE user_id = $1 AND category_id = $2`,
		userID, categoryID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrLimitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get limit: %w", err)
	}
	return limit, nil
}

func (r *LimitRepo) GetEnabledByUserAndCategory(ctx context.Context, userID, categoryID int64) (*domain.Limit, error) {
	limit, err := scanLimit(r.db.QueryRowContext(ctx, `
		SELECT `+limitColumns+`
		FROM screen_time_limits
		WHERE user_id = $1 AND category_id = $2 AND is_enabled`,
		userID, categoryID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrLimitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get enabled limit: %w", err)
	}
	return limit, nil
}

// Upsert creates the limit row or updates its thresholds in place. The
// enabled flag is only set on first creation and survives updates.
func (r *LimitRepo) Upsert(ctx context.Context, userID, categoryID, dailySeconds, weeklySeconds int64) (*domain.Limit, error) {
	limit, err := scanLimit(r.db.QueryRowContext(ctx, `
		INSERT INTO screen_time_limits (user_id, category_id, daily_limit_seconds, weekly_limit_seconds, is_enabled)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (user_id, category_id) DO UPDATE SET
			daily_limit_seconds = EXCLUDED.daily_limit_seconds,
			weekly_limit_seconds = EXCLUDED.weekly_limit_seconds,
			updated_at = NOW()
		RETURNING `+limitColumns,
		userID, categoryID, dailySeconds, weeklySeconds))
	if isForeignKeyViolation(err) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert limit: %w", err)
	}
	return limit, nil
}

func (r *LimitRepo) ListEnabledByUser(ctx context.Context, userID int64) ([]domain.Limit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+limitColumns+`
		FROM screen_time_limits
		WHERE user_id = $1 AND is_enabled
		ORDER BY category_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list limits: %w", err)
	}
	defer rows.Close()

	var limits []domain.Limit
	for rows.Next() {
		l, err := scanLimit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan limit: %w", err)
		}
		limits = append(limits, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate limits: %w", err)
	}
	return limits, nil
}
