package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
)

// --- Mock implementations ---

type mockSessionRepo struct {
	insertFn      func(ctx context.Context, userID int64, appName string, start time.Time) (*domain.Session, error)
	closeActiveFn func(ctx context.Context, userID int64, appName string, end time.Time) (*domain.Session, error)
	listActiveFn  func(ctx context.Context, userID int64) ([]domain.Session, error)
	listByRangeFn func(ctx context.Context, userID int64, start, end time.Time) ([]domain.Session, error)
	sumInRangeFn  func(ctx context.Context, userID int64, start, end time.Time) (int64, error)
	sumByAppFn    func(ctx context.Context, userID int64, start, end time.Time) (map[string]int64, error)
	countStartsFn func(ctx context.Context, userID int64, appName string, start, end time.Time) (int64, error)
	usageWindowFn func(ctx context.Context, userID int64, start, end time.Time) (*domain.UsageWindow, error)
}

func (m *mockSessionRepo) Insert(ctx context.Context, userID int64, appName string, start time.Time) (*domain.Session, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, userID, appName, start)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockSessionRepo) CloseActive(ctx context.Context, userID int64, appName string, end time.Time) (*domain.Session, error) {
	if m.closeActiveFn != nil {
		return m.closeActiveFn(ctx, userID, appName, end)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockSessionRepo) ListActiveByUser(ctx context.Context, userID int64) ([]domain.Session, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockSessionRepo) ListByUserAndRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.Session, error) {
	if m.listByRangeFn != nil {
		return m.listByRangeFn(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *mockSessionRepo) SumDurationInRange(ctx context.Context, userID int64, start, end time.Time) (int64, error) {
	if m.sumInRangeFn != nil {
		return m.sumInRangeFn(ctx, userID, start, end)
	}
	return 0, nil
}

func (m *mockSessionRepo) SumDurationByApp(ctx context.Context, userID int64, start, end time.Time) (map[string]int64, error) {
	if m.sumByAppFn != nil {
		return m.sumByAppFn(ctx, userID, start, end)
	}
	return map[string]int64{}, nil
}

func (m *mockSessionRepo) CountStartsInRange(ctx context.Context, userID int64, appName string, start, end time.Time) (int64, error) {
	if m.countStartsFn != nil {
		return m.countStartsFn(ctx, userID, appName, start, end)
	}
	return 0, nil
}

func (m *mockSessionRepo) UsageWindow(ctx context.Context, userID int64, start, end time.Time) (*domain.UsageWindow, error) {
	if m.usageWindowFn != nil {
		return m.usageWindowFn(ctx, userID, start, end)
	}
	return &domain.UsageWindow{Start: start, End: end, PerApp: map[string]int64{}}, nil
}

type mockCategoryRepo struct {
	createFn           func(ctx context.Context, name, description string) (*domain.Category, error)
	getByIDFn          func(ctx context.Context, id int64) (*domain.Category, error)
	getByNameFn        func(ctx context.Context, name string) (*domain.Category, error)
	existsByNameFn     func(ctx context.Context, name string) (bool, error)
	searchByNameFn     func(ctx context.Context, namePart string) ([]domain.Category, error)
	assignAppFn        func(ctx context.Context, appName string, categoryID int64) (*domain.AppCategoryAssignment, error)
	categoryForAppFn   func(ctx context.Context, appName string) (*domain.Category, error)
	assignmentExistsFn func(ctx context.Context, categoryID int64, appName string) (bool, error)
	unassignAppFn      func(ctx context.Context, categoryID int64, appName string) error
	appNamesFn         func(ctx context.Context, categoryID int64) ([]string, error)
}

func (m *mockCategoryRepo) Create(ctx context.Context, name, description string) (*domain.Category, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name, description)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *mockCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(ctx, name)
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *mockCategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	if m.existsByNameFn != nil {
		return m.existsByNameFn(ctx, name)
	}
	return false, nil
}

func (m *mockCategoryRepo) SearchByName(ctx context.Context, namePart string) ([]domain.Category, error) {
	if m.searchByNameFn != nil {
		return m.searchByNameFn(ctx, namePart)
	}
	return nil, nil
}

func (m *mockCategoryRepo) AssignApp(ctx context.Context, appName string, categoryID int64) (*domain.AppCategoryAssignment, error) {
	if m.assignAppFn != nil {
		return m.assignAppFn(ctx, appName, categoryID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockCategoryRepo) CategoryForApp(ctx context.Context, appName string) (*domain.Category, error) {
	if m.categoryForAppFn != nil {
		return m.categoryForAppFn(ctx, appName)
	}
	return nil, domain.ErrAppNotAssigned
}

func (m *mockCategoryRepo) AssignmentExists(ctx context.Context, categoryID int64, appName string) (bool, error) {
	if m.assignmentExistsFn != nil {
		return m.assignmentExistsFn(ctx, categoryID, appName)
	}
	return false, nil
}

func (m *mockCategoryRepo) UnassignApp(ctx context.Context, categoryID int64, appName string) error {
	if m.unassignAppFn != nil {
		return m.unassignAppFn(ctx, categoryID, appName)
	}
	return nil
}

func (m *mockCategoryRepo) AppNamesByCategory(ctx context.Context, categoryID int64) ([]string, error) {
	if m.appNamesFn != nil {
		return m.appNamesFn(ctx, categoryID)
	}
	return nil, nil
}

type mockLimitRepo struct {
	getFn         func(ctx context.Context, userID, categoryID int64) (*domain.Limit, error)
	getEnabledFn  func(ctx context.Context, userID, categoryID int64) (*domain.Limit, error)
	upsertFn      func(ctx context.Context, userID, categoryID, dailySeconds, weeklySeconds int64) (*domain.Limit, error)
	listEnabledFn func(ctx context.Context, userID int64) ([]domain.Limit, error)
}

func (m *mockLimitRepo) GetByUserAndCategory(ctx context.Context, userID, categoryID int64) (*domain.Limit, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, categoryID)
	}
	return nil, domain.ErrLimitNotFound
}

func (m *mockLimitRepo) GetEnabledByUserAndCategory(ctx context.Context, userID, categoryID int64) (*domain.Limit, error) {
	if m.getEnabledFn != nil {
		return m.getEnabledFn(ctx, userID, categoryID)
	}
	return nil, domain.ErrLimitNotFound
}

func (m *mockLimitRepo) Upsert(ctx context.Context, userID, categoryID, dailySeconds, weeklySeconds int64) (*domain.Limit, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, categoryID, dailySeconds, weeklySeconds)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockLimitRepo) ListEnabledByUser(ctx context.Context, userID int64) ([]domain.Limit, error) {
	if m.listEnabledFn != nil {
		return m.listEnabledFn(ctx, userID)
	}
	return nil, nil
}

// staticLookup resolves apps from a fixed map; unlisted apps read as
// unassigned.
type staticLookup struct {
	categories map[string]*domain.Category
}

func (l *staticLookup) CategoryForApp(_ context.Context, appName string) (*domain.Category, error) {
	if c, ok := l.categories[appName]; ok {
		return c, nil
	}
	return nil, domain.ErrAppNotAssigned
}

type mockUsageTotals struct {
	periodTotalFn func(ctx context.Context, userID int64, start, end time.Time) (int64, error)
}

func (m *mockUsageTotals) PeriodTotal(ctx context.Context, userID int64, start, end time.Time) (int64, error) {
	if m.periodTotalFn != nil {
		return m.periodTotalFn(ctx, userID, start, end)
	}
	return 0, nil
}
