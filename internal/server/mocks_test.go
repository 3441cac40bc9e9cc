package server

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Downforcedemon/MinimalHome/internal/config"
	"github.com/Downforcedemon/MinimalHome/internal/domain"
)

// --- Mock services ---

type mockTracker struct {
	startFn   func(ctx context.Context, userID int64, appName string) (*domain.Session, error)
	stopFn    func(ctx context.Context, userID int64, appName string) (*domain.Session, error)
	activeFn  func(ctx context.Context, userID int64) ([]domain.Session, error)
	historyFn func(ctx context.Context, userID int64, start, end time.Time) ([]domain.Session, error)
}

func (m *mockTracker) Start(ctx context.Context, userID int64, appName string) (*domain.Session, error) {
	if m.startFn != nil {
		return m.startFn(ctx, userID, appName)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockTracker) Stop(ctx context.Context, userID int64, appName string) (*domain.Session, error) {
	if m.stopFn != nil {
		return m.stopFn(ctx, userID, appName)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockTracker) ActiveSessions(ctx context.Context, userID int64) ([]domain.Session, error) {
	if m.activeFn != nil {
		return m.activeFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockTracker) History(ctx context.Context, userID int64, start, end time.Time) ([]domain.Session, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, userID, start, end)
	}
	return nil, nil
}

type mockRegistry struct {
	createCategoryFn func(ctx context.Context, name, description string) (*domain.Category, error)
	assignAppFn      func(ctx context.Context, appName string, categoryID int64) (*domain.Category, error)
	unassignAppFn    func(ctx context.Context, categoryID int64, appName string) error
	lookupFn         func(ctx context.Context, appName string) (*domain.Category, error)
	appsFn           func(ctx context.Context, categoryID int64) ([]string, error)
	searchFn         func(ctx context.Context, namePart string) ([]domain.Category, error)
}

func (m *mockRegistry) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(ctx, name, description)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockRegistry) AssignApp(ctx context.Context, appName string, categoryID int64) (*domain.Category, error) {
	if m.assignAppFn != nil {
		return m.assignAppFn(ctx, appName, categoryID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockRegistry) UnassignApp(ctx context.Context, categoryID int64, appName string) error {
	if m.unassignAppFn != nil {
		return m.unassignAppFn(ctx, categoryID, appName)
	}
	return nil
}

func (m *mockRegistry) LookupCategoryForApp(ctx context.Context, appName string) (*domain.Category, error) {
	if m.lookupFn != nil {
		return m.lookupFn(ctx, appName)
	}
	return nil, domain.ErrAppNotAssigned
}

func (m *mockRegistry) AppsInCategory(ctx context.Context, categoryID int64) ([]string, error) {
	if m.appsFn != nil {
		return m.appsFn(ctx, categoryID)
	}
	return nil, nil
}

func (m *mockRegistry) SearchCategories(ctx context.Context, namePart string) ([]domain.Category, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, namePart)
	}
	return nil, nil
}

type mockAggregator struct {
	dailyUsageFn  func(ctx context.Context, userID int64, date time.Time) (*domain.DailyUsage, error)
	periodTotalFn func(ctx context.Context, userID int64, start, end time.Time) (int64, error)
	weeklyStatsFn func(ctx context.Context, userID int64, weekDate time.Time) (*domain.WeeklyStats, error)
	appUsageFn    func(ctx context.Context, userID int64, start, end time.Time) (map[string]int64, error)
	mostUsedFn    func(ctx context.Context, userID int64, start, end time.Time, limit int) ([]domain.AppUsageEntry, error)
	openCountFn   func(ctx context.Context, userID int64, appName string, start, end time.Time) (int64, error)
	dailyDigestFn func(ctx context.Context, userID int64) (*domain.DailyDigest, error)
}

func (m *mockAggregator) DailyUsage(ctx context.Context, userID int64, date time.Time) (*domain.DailyUsage, error) {
	if m.dailyUsageFn != nil {
		return m.dailyUsageFn(ctx, userID, date)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAggregator) PeriodTotal(ctx context.Context, userID int64, start, end time.Time) (int64, error) {
	if m.periodTotalFn != nil {
		return m.periodTotalFn(ctx, userID, start, end)
	}
	return 0, nil
}

func (m *mockAggregator) WeeklyStats(ctx context.Context, userID int64, weekDate time.Time) (*domain.WeeklyStats, error) {
	if m.weeklyStatsFn != nil {
		return m.weeklyStatsFn(ctx, userID, weekDate)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAggregator) AppUsage(ctx context.Context, userID int64, start, end time.Time) (map[string]int64, error) {
	if m.appUsageFn != nil {
		return m.appUsageFn(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *mockAggregator) MostUsedApps(ctx context.Context, userID int64, start, end time.Time, limit int) ([]domain.AppUsageEntry, error) {
	if m.mostUsedFn != nil {
		return m.mostUsedFn(ctx, userID, start, end, limit)
	}
	return nil, nil
}

func (m *mockAggregator) AppOpenCount(ctx context.Context, userID int64, appName string, start, end time.Time) (int64, error) {
	if m.openCountFn != nil {
		return m.openCountFn(ctx, userID, appName, start, end)
	}
	return 0, nil
}

func (m *mockAggregator) DailyDigest(ctx context.Context, userID int64) (*domain.DailyDigest, error) {
	if m.dailyDigestFn != nil {
		return m.dailyDigestFn(ctx, userID)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockLimits struct {
	setLimitFn func(ctx context.Context, userID, categoryID, dailySeconds, weeklySeconds int64) (*domain.Limit, error)
	exceededFn func(ctx context.Context, userID int64, appName string) (bool, error)
	limitsFn   func(ctx context.Context, userID int64) ([]domain.Limit, error)
}

func (m *mockLimits) SetLimit(ctx context.Context, userID, categoryID, dailySeconds, weeklySeconds int64) (*domain.Limit, error) {
	if m.setLimitFn != nil {
		return m.setLimitFn(ctx, userID, categoryID, dailySeconds, weeklySeconds)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockLimits) IsLimitExceeded(ctx context.Context, userID int64, appName string) (bool, error) {
	if m.exceededFn != nil {
		return m.exceededFn(ctx, userID, appName)
	}
	return false, nil
}

func (m *mockLimits) Limits(ctx context.Context, userID int64) ([]domain.Limit, error) {
	if m.limitsFn != nil {
		return m.limitsFn(ctx, userID)
	}
	return nil, nil
}

type stubPostgresHealth struct {
	err error
}

func (s *stubPostgresHealth) HealthCheck(context.Context) error {
	return s.err
}

// --- Test server construction ---

type testServices struct {
	tracker    *mockTracker
	registry   *mockRegistry
	aggregator *mockAggregator
	limits     *mockLimits
}

func newTestServer(t *testing.T, svcs testServices, opts ...func(*Server)) *Server {
	t.Helper()

	if svcs.tracker == nil {
		svcs.tracker = &mockTracker{}
	}
	if svcs.registry == nil {
		svcs.registry = &mockRegistry{}
	}
	if svcs.aggregator == nil {
		svcs.aggregator = &mockAggregator{}
	}
	if svcs.limits == nil {
		svcs.limits = &mockLimits{}
	}

	cfg := &config.Config{
		Port:           "8080",
		WeekStart:      time.Monday,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		MaxConnections: 1000,
	}

	srv := NewServer(cfg, svcs.tracker, svcs.registry, svcs.aggregator, svcs.limits, &stubPostgresHealth{}, nil)
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}
