package domain

import (
	"context"
	"time"
)

// --- Model types ---

// Session is one tracked interval of a user using a named application.
// A session is created active and transitions exactly once to closed; closed
// sessions are terminal and never deleted.
type Session struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	AppName         string     `db:"app_name" json:"app_name"`
	StartTime       time.Time  `db:"start_time" json:"start_time"`
	EndTime         *time.Time `db:"end_time" json:"end_time,omitempty"`
	DurationSeconds *int64     `db:"duration_seconds" json:"duration_seconds,omitempty"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// Category is a named grouping of applications (e.g. "Productivity").
type Category struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// AppCategoryAssignment links an application name to a category. An app name
// carries at most one assignment.
type AppCategoryAssignment struct {
	ID         int64     `db:"id" json:"id"`
	AppName    string    `db:"app_name" json:"app_name"`
	CategoryID int64     `db:"category_id" json:"category_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Limit is a per-user, per-category usage ceiling in seconds.
type Limit struct {
	ID                  int64     `db:"id" json:"id"`
	UserID              int64     `db:"user_id" json:"user_id"`
	CategoryID          int64     `db:"category_id" json:"category_id"`
	DailyLimitSeconds   int64     `db:"daily_limit_seconds" json:"daily_limit_seconds"`
	WeeklyLimitSeconds  int64     `db:"weekly_limit_seconds" json:"weekly_limit_seconds"`
	IsEnabled           bool      `db:"is_enabled" json:"is_enabled"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// UsageWindow is a consistent read of one user's sessions over a half-open
// interval [Start, End): the raw rows, the per-app duration sums, and the
// total. All three are computed in a single repository snapshot so they stay
// mutually consistent.
type UsageWindow struct {
	Start        time.Time
	End          time.Time
	Sessions     []Session
	PerApp       map[string]int64
	TotalSeconds int64
}

// --- Repository contracts ---

// SessionRepository persists the append-only session log. The tracker is the
// only writer; aggregation reads only.
type SessionRepository interface {
	// Insert creates a new active session. Returns ErrActiveSessionExists
	// if an active session already exists for (userID, appName); the
	// implementation must make the check-and-insert atomic.
	Insert(ctx context.Context, userID int64, appName string, start time.Time) (*Session, error)

	// CloseActive atomically finds the active session for (userID, appName)
	// and closes it at end, recording duration = max(0, end-start).
	// Returns ErrNoActiveSession when there is nothing to close.
	CloseActive(ctx context.Context, userID int64, appName string, end time.Time) (*Session, error)

	ListActiveByUser(ctx context.Context, userID int64) ([]Session, error)
	ListByUserAndRange(ctx context.Context, userID int64, start, end time.Time) ([]Session, error)

	// SumDurationInRange totals recorded durations of sessions started in
	// [start, end). Open sessions carry no recorded duration yet and
	// therefore contribute zero. An empty window yields 0, not an error.
	SumDurationInRange(ctx context.Context, userID int64, start, end time.Time) (int64, error)

	// SumDurationByApp is SumDurationInRange grouped by exact app name.
	SumDurationByApp(ctx context.Context, userID int64, start, end time.Time) (map[string]int64, error)

	// CountStartsInRange counts sessions of one app started in [start, end).
	CountStartsInRange(ctx context.Context, userID int64, appName string, start, end time.Time) (int64, error)

	// UsageWindow reads sessions, per-app sums, and the total for
	// [start, end) in one consistent snapshot.
	UsageWindow(ctx context.Context, userID int64, start, end time.Time) (*UsageWindow, error)
}

// CategoryRepository owns categories and app-to-category assignments.
type CategoryRepository interface {
	Create(ctx context.Context, name, description string) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	SearchByName(ctx context.Context, namePart string) ([]Category, error)

	// AssignApp links appName to the category. Returns ErrCategoryNotFound
	// for an unknown category and ErrAppAlreadyAssigned when the app name
	// already carries an assignment.
	AssignApp(ctx context.Context, appName string, categoryID int64) (*AppCategoryAssignment, error)

	// CategoryForApp resolves the category an app is assigned to.
	// Returns ErrAppNotAssigned when the app has no assignment.
	CategoryForApp(ctx context.Context, appName string) (*Category, error)

	AssignmentExists(ctx context.Context, categoryID int64, appName string) (bool, error)
	UnassignApp(ctx context.Context, categoryID int64, appName string) error
	AppNamesByCategory(ctx context.Context, categoryID int64) ([]string, error)
}

// LimitRepository owns per-user, per-category limit configuration.
type LimitRepository interface {
	GetByUserAndCategory(ctx context.Context, userID, categoryID int64) (*Limit, error)

	// GetEnabledByUserAndCategory is GetByUserAndCategory restricted to
	// enabled limits; disabled rows read as ErrLimitNotFound.
	GetEnabledByUserAndCategory(ctx context.Context, userID, categoryID int64) (*Limit, error)

	// Upsert creates the limit with is_enabled=true, or updates the
	// thresholds in place leaving the enabled flag untouched.
	Upsert(ctx context.Context, userID, categoryID, dailySeconds, weeklySeconds int64) (*Limit, error)

	ListEnabledByUser(ctx context.Context, userID int64) ([]Limit, error)
}

// CategoryLookup is the read side of app-to-category resolution, small enough
// for a cache to sit in front of.
type CategoryLookup interface {
	CategoryForApp(ctx context.Context, appName string) (*Category, error)
}
