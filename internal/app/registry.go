package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
)

// AssignmentCacheInvalidator evicts a cached app-to-category mapping after
// an assignment change. May be nil when no cache is configured.
type AssignmentCacheInvalidator interface {
	InvalidateApp(ctx context.Context, appName string) error
}

// Registry owns category identities and the app-to-category mapping. An app
// name carries at most one assignment; assigning an already-assigned app is
// a conflict, so moving an app means unassigning it first.
type Registry struct {
	categories  domain.CategoryRepository
	lookup      domain.CategoryLookup
	invalidator AssignmentCacheInvalidator
}

// NewRegistry creates the category registry. lookup is the read path for
// app-to-category resolution (typically the Redis cache wrapping the
// repository); invalidator may be nil.
func NewRegistry(categories domain.CategoryRepository, lookup domain.CategoryLookup, invalidator AssignmentCacheInvalidator) *Registry {
	return &Registry{categories: categories, lookup: lookup, invalidator: invalidator}
}

// CreateCategory creates a category with a unique display name.
func (r *Registry) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidCategoryName
	}

	category, err := r.categories.Create(ctx, name, description)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

// AssignApp links an app name to a category and returns the category.
func (r *Registry) AssignApp(ctx context.Context, appName string, categoryID int64) (*domain.Category, error) {
	if err := validateAppName(appName); err != nil {
		return nil, err
	}

	category, err := r.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if _, err := r.categories.AssignApp(ctx, appName, categoryID); err != nil {
		return nil, err
	}
	r.invalidate(ctx, appName)

	slog.InfoContext(ctx, "App assigned to category",
		"app_name", appName, "category_id", categoryID, "category_name", category.Name)
	return category, nil
}

// UnassignApp removes the (category, app) assignment.
func (r *Registry) UnassignApp(ctx context.Context, categoryID int64, appName string) error {
	if err := validateAppName(appName); err != nil {
		return err
	}

	if err := r.categories.UnassignApp(ctx, categoryID, appName); err != nil {
		return err
	}
	r.invalidate(ctx, appName)

	slog.InfoContext(ctx, "App unassigned from category", "app_name", appName, "category_id", categoryID)
	return nil
}

// LookupCategoryForApp resolves the category an app is assigned to. Returns
// domain.ErrAppNotAssigned for unassigned apps.
func (r *Registry) LookupCategoryForApp(ctx context.Context, appName string) (*domain.Category, error) {
	if err := validateAppName(appName); err != nil {
		return nil, err
	}
	return r.lookup.CategoryForApp(ctx, appName)
}

// AppsInCategory lists the distinct app names assigned to a category.
func (r *Registry) AppsInCategory(ctx context.Context, categoryID int64) ([]string, error) {
	if _, err := r.categories.GetByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return r.categories.AppNamesByCategory(ctx, categoryID)
}

// SearchCategories finds categories whose name contains namePart,
// case-insensitively. An empty part lists all categories.
func (r *Registry) SearchCategories(ctx context.Context, namePart string) ([]domain.Category, error) {
	return r.categories.SearchByName(ctx, namePart)
}

// invalidate evicts the cached mapping. Lookups fall through to PostgreSQL
// on a miss, so a failed eviction is logged rather than failing the write.
func (r *Registry) invalidate(ctx context.Context, appName string) {
	if r.invalidator == nil {
		return
	}
	if err := r.invalidator.InvalidateApp(ctx, appName); err != nil {
		slog.WarnContext(ctx, "Failed to invalidate category cache",
			"app_name", appName, "error", err)
	}
}
