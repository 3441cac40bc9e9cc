package app

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
)

func TestLimitEvaluator_SetLimit(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

	t.Run("creates the limit", func(t *testing.T) {
		categories := &mockCategoryRepo{
			getByIDFn: func(context.Context, int64) (*domain.Category, error) {
				return &domain.Category{ID: 2, Name: "Social"}, nil
			},
		}
		limits := &mockLimitRepo{
			upsertFn: func(_ context.Context, userID, categoryID, daily, weekly int64) (*domain.Limit, error) {
				return &domain.Limit{
					ID: 1, UserID: userID, CategoryID: categoryID,
					DailyLimitSeconds: daily, WeeklyLimitSeconds: weekly, IsEnabled: true,
				}, nil
			},
		}
		evaluator := NewLimitEvaluator(limits, categories, testLookup(), &mockUsageTotals{}, clock)

		limit, err := evaluator.SetLimit(context.Background(), 1, 2, 3600, 18000)

		require.NoError(t, err)
		assert.Equal(t, int64(3600), limit.DailyLimitSeconds)
		assert.True(t, limit.IsEnabled)
	})

	t.Run("rejects negative thresholds", func(t *testing.T) {
		evaluator := NewLimitEvaluator(&mockLimitRepo{}, &mockCategoryRepo{}, testLookup(), &mockUsageTotals{}, clock)

		_, err := evaluator.SetLimit(context.Background(), 1, 2, -1, 18000)
		assert.ErrorIs(t, err, domain.ErrInvalidLimit)

		_, err = evaluator.SetLimit(context.Background(), 1, 2, 3600, -1)
		assert.ErrorIs(t, err, domain.ErrInvalidLimit)
	})

	t.Run("unknown category", func(t *testing.T) {
		evaluator := NewLimitEvaluator(&mockLimitRepo{}, &mockCategoryRepo{}, testLookup(), &mockUsageTotals{}, clock)

		_, err := evaluator.SetLimit(context.Background(), 1, 99, 3600, 18000)

		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	})
}

func TestLimitEvaluator_IsLimitExceeded(t *testing.T) {
	now := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)
	today := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)

	socialLimit := &domain.Limit{
		ID: 1, UserID: 1, CategoryID: 2,
		DailyLimitSeconds: 3600, WeeklyLimitSeconds: 18000, IsEnabled: true,
	}
	limits := &mockLimitRepo{
		getEnabledFn: func(_ context.Context, _, categoryID int64) (*domain.Limit, error) {
			if categoryID == 2 {
				return socialLimit, nil
			}
			return nil, domain.ErrLimitNotFound
		},
	}

	newEvaluator := func(daily, weekly int64) *LimitEvaluator {
		usage := &mockUsageTotals{
			periodTotalFn: func(_ context.Context, _ int64, start, end time.Time) (int64, error) {
				assert.Equal(t, now, end)
				if start.Equal(today) {
					return daily, nil
				}
				assert.Equal(t, today.AddDate(0, 0, -6), start)
				return weekly, nil
			},
		}
		return NewLimitEvaluator(limits, &mockCategoryRepo{}, testLookup(), usage, clock)
	}

	t.Run("usage below both thresholds is within", func(t *testing.T) {
		exceeded, err := newEvaluator(3599, 17999).IsLimitExceeded(context.Background(), 1, "Instagram")

		require.NoError(t, err)
		assert.False(t, exceeded)
	})

	t.Run("usage equal to the daily threshold is exceeded", func(t *testing.T) {
		exceeded, err := newEvaluator(3600, 3600).IsLimitExceeded(context.Background(), 1, "Instagram")

		require.NoError(t, err)
		assert.True(t, exceeded)
	})

	t.Run("one second over the daily threshold is exceeded", func(t *testing.T) {
		exceeded, err := newEvaluator(3601, 3601).IsLimitExceeded(context.Background(), 1, "Instagram")

		require.NoError(t, err)
		assert.True(t, exceeded)
	})

	t.Run("trailing week threshold trips even when today is fine", func(t *testing.T) {
		exceeded, err := newEvaluator(600, 18000).IsLimitExceeded(context.Background(), 1, "Instagram")

		require.NoError(t, err)
		assert.True(t, exceeded)
	})

	t.Run("unassigned app is never exceeded", func(t *testing.T) {
		evaluator := NewLimitEvaluator(limits, &mockCategoryRepo{}, testLookup(), &mockUsageTotals{
			periodTotalFn: func(context.Context, int64, time.Time, time.Time) (int64, error) {
				t.Fatal("usage should not be queried")
				return 0, nil
			},
		}, clock)

		exceeded, err := evaluator.IsLimitExceeded(context.Background(), 1, "Solitaire")

		require.NoError(t, err)
		assert.False(t, exceeded)
	})

	t.Run("no enabled limit for the category", func(t *testing.T) {
		evaluator := NewLimitEvaluator(limits, &mockCategoryRepo{}, testLookup(), &mockUsageTotals{}, clock)

		exceeded, err := evaluator.IsLimitExceeded(context.Background(), 1, "VSCode")

		require.NoError(t, err)
		assert.False(t, exceeded)
	})
}

func TestLimitEvaluator_Limits(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	limits := &mockLimitRepo{
		listEnabledFn: func(_ context.Context, userID int64) ([]domain.Limit, error) {
			return []domain.Limit{{ID: 1, UserID: userID, CategoryID: 2}}, nil
		},
	}
	evaluator := NewLimitEvaluator(limits, &mockCategoryRepo{}, testLookup(), &mockUsageTotals{}, clock)

	configured, err := evaluator.Limits(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, configured, 1)
	assert.Equal(t, int64(2), configured[0].CategoryID)

	_, err = evaluator.Limits(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}
