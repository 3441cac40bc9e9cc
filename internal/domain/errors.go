package domain

import "errors"

// Sentinel errors returned by repositories. The handler layer translates
// these into the structured error taxonomy.
var (
	ErrActiveSessionExists = errors.New("active session already exists for this app")
	ErrNoActiveSession     = errors.New("no active session found for this app")

	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameTaken  = errors.New("category name already exists")
	ErrAppNotAssigned     = errors.New("app is not assigned to any category")
	ErrAppAlreadyAssigned = errors.New("app is already assigned to a category")
	ErrAssignmentNotFound = errors.New("app category assignment not found")

	ErrLimitNotFound = errors.New("screen time limit not found")
)

// Validation sentinels raised by the core before touching persistence.
var (
	ErrInvalidUserID       = errors.New("user id must be positive")
	ErrInvalidAppName      = errors.New("app name must be between 1 and 255 characters")
	ErrInvalidWindow       = errors.New("window end must not be before start")
	ErrInvalidLimit        = errors.New("limit thresholds must be non-negative")
	ErrInvalidCategoryName = errors.New("category name must not be blank")
)
