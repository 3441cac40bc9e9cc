package app

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
)

const topAppsLimit = 5

// Aggregator computes read-only usage views from the session log and the
// category registry. It never mutates session data.
//
// Only recorded durations contribute to sums: a session that is still open
// at the query instant adds zero to every window until it is stopped.
type Aggregator struct {
	sessions  domain.SessionRepository
	lookup    domain.CategoryLookup
	scorer    *Scorer
	clock     clockwork.Clock
	weekStart time.Weekday
}

// NewAggregator creates the usage aggregator. weekStart anchors the calendar
// week used by WeeklyStats.
func NewAggregator(sessions domain.SessionRepository, lookup domain.CategoryLookup, scorer *Scorer, clock clockwork.Clock, weekStart time.Weekday) *Aggregator {
	return &Aggregator{
		sessions:  sessions,
		lookup:    lookup,
		scorer:    scorer,
		clock:     clock,
		weekStart: weekStart,
	}
}

// DailyUsage reports the day [date 00:00, date+1 00:00): total seconds,
// per-app and per-category breakdowns, the day's sessions, the top five apps,
// and the productivity score. Everything derives from one usage snapshot.
func (a *Aggregator) DailyUsage(ctx context.Context, userID int64, date time.Time) (*domain.DailyUsage, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	dayStart := startOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	window, err := a.sessions.UsageWindow(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	categories, err := a.resolveCategories(ctx, window.PerApp)
	if err != nil {
		return nil, err
	}

	// Apps without an assigned category are omitted: there is no
	// "uncategorized" bucket, so the category sums may undercount the total.
	perCategory := make(map[string]int64)
	for appName, seconds := range window.PerApp {
		if category, ok := categories[appName]; ok {
			perCategory[category.Name] += seconds
		}
	}

	return &domain.DailyUsage{
		Date:              dayStart,
		TotalSeconds:      window.TotalSeconds,
		PerApp:            window.PerApp,
		PerCategory:       perCategory,
		Sessions:          window.Sessions,
		TopApps:           rankApps(window.PerApp, categories, topAppsLimit),
		ProductivityScore: a.scorer.ScoreResolved(window.PerApp, categories),
	}, nil
}

// PeriodTotal sums recorded durations over [start, end). An empty window
// yields 0, never an error.
func (a *Aggregator) PeriodTotal(ctx context.Context, userID int64, start, end time.Time) (int64, error) {
	if err := validateUserID(userID); err != nil {
		return 0, err
	}
	if err := validateWindow(start, end); err != nil {
		return 0, err
	}
	return a.sessions.SumDurationInRange(ctx, userID, start, end)
}

// WeeklyStats reports the calendar week containing weekDate: seven per-day
// totals starting at the configured week start, the weekly total, and the
// week's top five apps. The per-day totals, the total, and the top apps all
// derive from one usage snapshot, so they never disagree.
func (a *Aggregator) WeeklyStats(ctx context.Context, userID int64, weekDate time.Time) (*domain.WeeklyStats, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	weekStart := alignToWeekStart(weekDate, a.weekStart)
	weekEnd := weekStart.AddDate(0, 0, 7)

	window, err := a.sessions.UsageWindow(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	stats := &domain.WeeklyStats{
		WeekStart:    weekStart,
		DailyTotals:  make([]domain.DayTotal, 0, 7),
		TotalSeconds: window.TotalSeconds,
	}

	for day := 0; day < 7; day++ {
		dayStart := weekStart.AddDate(0, 0, day)
		dayEnd := dayStart.AddDate(0, 0, 1)

		var total int64
		for _, session := range window.Sessions {
			if session.DurationSeconds == nil {
				continue
			}
			if !session.StartTime.Before(dayStart) && session.StartTime.Before(dayEnd) {
				total += *session.DurationSeconds
			}
		}
		stats.DailyTotals = append(stats.DailyTotals, domain.DayTotal{
			Date:    dayStart.Format(time.DateOnly),
			Seconds: total,
		})
	}

	categories, err := a.resolveCategories(ctx, window.PerApp)
	if err != nil {
		return nil, err
	}
	stats.TopApps = rankApps(window.PerApp, categories, topAppsLimit)

	return stats, nil
}

// AppUsage maps app names to recorded seconds over [start, end). Keys are
// exact app-name strings: no normalization, no case folding.
func (a *Aggregator) AppUsage(ctx context.Context, userID int64, start, end time.Time) (map[string]int64, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	return a.sessions.SumDurationByApp(ctx, userID, start, end)
}

// MostUsedApps ranks apps by recorded seconds over [start, end), annotated
// with their category names where assigned.
func (a *Aggregator) MostUsedApps(ctx context.Context, userID int64, start, end time.Time, limit int) ([]domain.AppUsageEntry, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = topAppsLimit
	}

	perApp, err := a.sessions.SumDurationByApp(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	categories, err := a.resolveCategories(ctx, perApp)
	if err != nil {
		return nil, err
	}
	return rankApps(perApp, categories, limit), nil
}

// AppOpenCount counts how often one app was opened in [start, end).
func (a *Aggregator) AppOpenCount(ctx context.Context, userID int64, appName string, start, end time.Time) (int64, error) {
	if err := validateUserID(userID); err != nil {
		return 0, err
	}
	if err := validateAppName(appName); err != nil {
		return 0, err
	}
	if err := validateWindow(start, end); err != nil {
		return 0, err
	}
	return a.sessions.CountStartsInRange(ctx, userID, appName, start, end)
}

// DailyDigest summarizes today's usage so far.
func (a *Aggregator) DailyDigest(ctx context.Context, userID int64) (*domain.DailyDigest, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	now := a.clock.Now().UTC()
	dayStart := startOfDay(now)

	window, err := a.sessions.UsageWindow(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return &domain.DailyDigest{
		Date:         dayStart.Format(time.DateOnly),
		TotalSeconds: window.TotalSeconds,
		PerApp:       window.PerApp,
		GeneratedAt:  now,
	}, nil
}

// resolveCategories looks up the category for every app in the breakdown.
// Unassigned apps are simply absent from the result.
func (a *Aggregator) resolveCategories(ctx context.Context, perApp map[string]int64) (map[string]*domain.Category, error) {
	categories := make(map[string]*domain.Category, len(perApp))
	for appName := range perApp {
		category, err := a.lookup.CategoryForApp(ctx, appName)
		if errors.Is(err, domain.ErrAppNotAssigned) {
			continue
		}
		if err != nil {
			return nil, err
		}
		categories[appName] = category
	}
	return categories, nil
}

// rankApps orders a breakdown by seconds descending, breaking ties by app
// name ascending so results are reproducible.
func rankApps(perApp map[string]int64, categories map[string]*domain.Category, limit int) []domain.AppUsageEntry {
	entries := make([]domain.AppUsageEntry, 0, len(perApp))
	for appName, seconds := range perApp {
		entry := domain.AppUsageEntry{AppName: appName, Seconds: seconds}
		if category, ok := categories[appName]; ok {
			entry.CategoryName = category.Name
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Seconds != entries[j].Seconds {
			return entries[i].Seconds > entries[j].Seconds
		}
		return entries[i].AppName < entries[j].AppName
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
