package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
	"github.com/Downforcedemon/MinimalHome/internal/metrics"
)

// UsageTotals is the slice of the aggregator the limit evaluator needs.
type UsageTotals interface {
	PeriodTotal(ctx context.Context, userID int64, start, end time.Time) (int64, error)
}

// LimitEvaluator decides whether a user's usage has crossed a configured
// category limit, and owns limit configuration.
//
// Daily usage is measured over [today 00:00, now]. Weekly usage is measured
// over the trailing window [(today - 6d) 00:00, now], which is anchored to
// "now" and intentionally distinct from the calendar week WeeklyStats uses.
type LimitEvaluator struct {
	limits     domain.LimitRepository
	categories domain.CategoryRepository
	lookup     domain.CategoryLookup
	usage      UsageTotals
	clock      clockwork.Clock

	// checkGroup collapses concurrent evaluations for the same (user, app)
	// key; evaluation is a pure read, so sharing one result is safe.
	checkGroup singleflight.Group
}

// NewLimitEvaluator creates the limit evaluator.
func NewLimitEvaluator(limits domain.LimitRepository, categories domain.CategoryRepository, lookup domain.CategoryLookup, usage UsageTotals, clock clockwork.Clock) *LimitEvaluator {
	return &LimitEvaluator{
		limits:     limits,
		categories: categories,
		lookup:     lookup,
		usage:      usage,
		clock:      clock,
	}
}

// SetLimit creates or updates the (userID, categoryID) limit. Thresholds are
// updated in place; the enabled flag is untouched on update and defaults to
// true on create.
func (e *LimitEvaluator) SetLimit(ctx context.Context, userID, categoryID, dailySeconds, weeklySeconds int64) (*domain.Limit, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if dailySeconds < 0 || weeklySeconds < 0 {
		return nil, fmt.Errorf("%w: daily %d, weekly %d", domain.ErrInvalidLimit, dailySeconds, weeklySeconds)
	}

	if _, err := e.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}

	limit, err := e.limits.Upsert(ctx, userID, categoryID, dailySeconds, weeklySeconds)
	if err != nil {
		return nil, err
	}

	metrics.LimitsConfigured.Inc()
	slog.InfoContext(ctx, "Screen time limit configured",
		"user_id", userID, "category_id", categoryID,
		"daily_limit_seconds", dailySeconds, "weekly_limit_seconds", weeklySeconds)
	return limit, nil
}

// IsLimitExceeded reports whether userID's usage in appName's category has
// reached the daily or trailing-week threshold. The comparison is boundary
// inclusive: usage equal to the threshold counts as exceeded.
func (e *LimitEvaluator) IsLimitExceeded(ctx context.Context, userID int64, appName string) (bool, error) {
	if err := validateUserID(userID); err != nil {
		return false, err
	}
	if err := validateAppName(appName); err != nil {
		return false, err
	}

	key := fmt.Sprintf("%d\x00%s", userID, appName)
	exceeded, err, _ := e.checkGroup.Do(key, func() (any, error) {
		return e.evaluate(ctx, userID, appName)
	})
	if err != nil {
		return false, err
	}
	return exceeded.(bool), nil
}

func (e *LimitEvaluator) evaluate(ctx context.Context, userID int64, appName string) (bool, error) {
	category, err := e.lookup.CategoryForApp(ctx, appName)
	if errors.Is(err, domain.ErrAppNotAssigned) {
		metrics.LimitChecks.WithLabelValues("no_category").Inc()
		return false, nil
	}
	if err != nil {
		return false, err
	}

	limit, err := e.limits.GetEnabledByUserAndCategory(ctx, userID, category.ID)
	if errors.Is(err, domain.ErrLimitNotFound) {
		metrics.LimitChecks.WithLabelValues("no_limit").Inc()
		return false, nil
	}
	if err != nil {
		return false, err
	}

	now := e.clock.Now().UTC()
	today := startOfDay(now)

	dailyUsage, err := e.usage.PeriodTotal(ctx, userID, today, now)
	if err != nil {
		return false, err
	}
	if dailyUsage >= limit.DailyLimitSeconds {
		metrics.LimitChecks.WithLabelValues("exceeded").Inc()
		slog.InfoContext(ctx, "Daily limit exceeded",
			"user_id", userID, "category_name", category.Name,
			"usage_seconds", dailyUsage, "limit_seconds", limit.DailyLimitSeconds)
		return true, nil
	}

	trailingStart := today.AddDate(0, 0, -6)
	weeklyUsage, err := e.usage.PeriodTotal(ctx, userID, trailingStart, now)
	if err != nil {
		return false, err
	}
	if weeklyUsage >= limit.WeeklyLimitSeconds {
		metrics.LimitChecks.WithLabelValues("exceeded").Inc()
		slog.InfoContext(ctx, "Weekly limit exceeded",
			"user_id", userID, "category_name", category.Name,
			"usage_seconds", weeklyUsage, "limit_seconds", limit.WeeklyLimitSeconds)
		return true, nil
	}

	metrics.LimitChecks.WithLabelValues("within").Inc()
	return false, nil
}

// Limits lists the user's enabled limits.
func (e *LimitEvaluator) Limits(ctx context.Context, userID int64) ([]domain.Limit, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return e.limits.ListEnabledByUser(ctx, userID)
}
