package domain

import (
	"context"
	"time"
)

// --- Computed view types ---

// AppUsageEntry is one ranked row of an app usage breakdown.
type AppUsageEntry struct {
	AppName      string `json:"app_name"`
	Seconds      int64  `json:"seconds"`
	CategoryName string `json:"category_name,omitempty"`
}

// DailyUsage is the full daily report for one user: total, per-app and
// per-category breakdowns, the day's sessions, the top apps, and the
// productivity score. All parts are derived from one usage snapshot.
type DailyUsage struct {
	Date              time.Time        `json:"date"`
	TotalSeconds      int64            `json:"total_screen_time"`
	PerApp            map[string]int64 `json:"app_usage_breakdown"`
	PerCategory       map[string]int64 `json:"category_breakdown"`
	Sessions          []Session        `json:"sessions"`
	TopApps           []AppUsageEntry  `json:"most_used_apps"`
	ProductivityScore float64          `json:"productivity_score"`
}

// DayTotal is one day's total within a weekly report.
type DayTotal struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Seconds int64  `json:"seconds"`
}

// WeeklyStats is the calendar-week report: seven per-day totals starting at
// the configured week start, the weekly total, and the week's top apps.
type WeeklyStats struct {
	WeekStart    time.Time       `json:"week_start"`
	DailyTotals  []DayTotal      `json:"daily_breakdown"`
	TotalSeconds int64           `json:"total_weekly_time"`
	TopApps      []AppUsageEntry `json:"most_used_apps"`
}

// DailyDigest is a lightweight summary of today's usage.
type DailyDigest struct {
	Date         string           `json:"date"` // YYYY-MM-DD
	TotalSeconds int64            `json:"total_time"`
	PerApp       map[string]int64 `json:"app_breakdown"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

// --- Service contracts consumed by the presentation layer ---

// SessionTrackerService owns the session start/stop state machine.
type SessionTrackerService interface {
	Start(ctx context.Context, userID int64, appName string) (*Session, error)
	Stop(ctx context.Context, userID int64, appName string) (*Session, error)
	ActiveSessions(ctx context.Context, userID int64) ([]Session, error)
	History(ctx context.Context, userID int64, start, end time.Time) ([]Session, error)
}

// CategoryRegistryService owns categories and app assignments.
type CategoryRegistryService interface {
	CreateCategory(ctx context.Context, name, description string) (*Category, error)
	AssignApp(ctx context.Context, appName string, categoryID int64) (*Category, error)
	UnassignApp(ctx context.Context, categoryID int64, appName string) error
	LookupCategoryForApp(ctx context.Context, appName string) (*Category, error)
	AppsInCategory(ctx context.Context, categoryID int64) ([]string, error)
	SearchCategories(ctx context.Context, namePart string) ([]Category, error)
}

// UsageAggregatorService computes read-only usage views.
type UsageAggregatorService interface {
	DailyUsage(ctx context.Context, userID int64, date time.Time) (*DailyUsage, error)
	PeriodTotal(ctx context.Context, userID int64, start, end time.Time) (int64, error)
	WeeklyStats(ctx context.Context, userID int64, weekDate time.Time) (*WeeklyStats, error)
	AppUsage(ctx context.Context, userID int64, start, end time.Time) (map[string]int64, error)
	MostUsedApps(ctx context.Context, userID int64, start, end time.Time, limit int) ([]AppUsageEntry, error)
	AppOpenCount(ctx context.Context, userID int64, appName string, start, end time.Time) (int64, error)
	DailyDigest(ctx context.Context, userID int64) (*DailyDigest, error)
}

// LimitService owns limit configuration and evaluation.
type LimitService interface {
	SetLimit(ctx context.Context, userID, categoryID, dailySeconds, weeklySeconds int64) (*Limit, error)
	IsLimitExceeded(ctx context.Context, userID int64, appName string) (bool, error)
	Limits(ctx context.Context, userID int64) ([]Limit, error)
}
