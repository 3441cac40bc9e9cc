package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
)

// categoryColumns must match the Scan order in scanCategory.
const categoryColumns = `id, name, description, created_at`

// CategoryRepo implements domain.CategoryRepository backed by PostgreSQL.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo creates a CategoryRepo from the shared DB connection.
func NewCategoryRepo(db *DB) *CategoryRepo {
	return &CategoryRepo{db: db.DB}
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, name, description string) (*domain.Category, error) {
	category, err := scanCategory(r.db.QueryRowContext(ctx, `
		INSERT INTO screen_time_categories (name, description)
		VALUES ($1, $2)
		RETURNING `+categoryColumns,
		name, description))
	if isUniqueViolation(err, "screen_time_categories_name_key") {
		return nil, domain.ErrCategoryNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := scanCategory(r.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM screen_time_categories
		WHERE id = $1`,
		id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}
	return category, nil
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	category, err := scanCategory(r.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+`
		FROM screen_time_categories
		WHERE name = $1`,
		name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return category, nil
}

func (r *CategoryRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM screen_time_categories WHERE name = $1)`,
		name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return exists, nil
}

func (r *CategoryRepo) SearchByName(ctx context.Context, namePart string) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`
		FROM screen_time_categories
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name`,
		namePart)
	if err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepo) AssignApp(ctx context.Context, appName string, categoryID int64) (*domain.AppCategoryAssignment, error) {
	var a domain.AppCategoryAssignment
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO screen_time_app_categories (app_name, category_id)
		VALUES ($1, $2)
		RETURNING id, app_name, category_id, created_at`,
		appName, categoryID).Scan(&a.ID, &a.AppName, &a.CategoryID, &a.CreatedAt)
	if isUniqueViolation(err, "screen_time_app_categories_app_name_key") {
		return nil, domain.ErrAppAlreadyAssigned
	}
	if isForeignKeyViolation(err) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assign app to category: %w", err)
	}
	return &a, nil
}

func (r *CategoryRepo) CategoryForApp(ctx context.Context, appName string) (*domain.Category, error) {
	category, err := scanCategory(r.db.QueryRowContext(ctx, `
		SELECT c.id, c.name, c.description, c.created_at
		FROM screen_time_app_categories ac
		JOIN screen_time_categories c ON c.id = ac.category_id
		WHERE ac.app_name = $1`,
		appName))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAppNotAssigned
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up app category: %w", err)
	}
	return category, nil
}

func (r *CategoryRepo) AssignmentExists(ctx context.Context, categoryID int64, appName string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM screen_time_app_categories
			WHERE category_id = $1 AND app_name = $2
		)`,
		categoryID, appName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return exists, nil
}

func (r *CategoryRepo) UnassignApp(ctx context.Context, categoryID int64, appName string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM screen_time_app_categories
		WHERE category_id = $1 AND app_name = $2`,
		categoryID, appName)
	if err != nil {
		return fmt.Errorf("failed to unassign app: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

func (r *CategoryRepo) AppNamesByCategory(ctx context.Context, categoryID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT app_name
		FROM screen_time_app_categories
		WHERE category_id = $1
		ORDER BY app_name`,
		categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list apps in category: %w", err)
	}
	defer rows.Close()

	var apps []string
	for rows.Next() {
		var app string
		if err := rows.Scan(&app); err != nil {
			return nil, fmt.Errorf("failed to scan app name: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate app names: %w", err)
	}
	return apps, nil
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
