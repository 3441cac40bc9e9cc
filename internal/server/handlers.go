package server

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
	apperrors "github.com/Downforcedemon/MinimalHome/internal/errors"
)

// translateDomainError maps domain sentinel errors onto structured errors so
// the error middleware can pick the right status code. Unrecognized errors
// become internal errors with the cause preserved.
func translateDomainError(err error, message string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidAppName),
		errors.Is(err, domain.ErrInvalidWindow),
		errors.Is(err, domain.ErrInvalidLimit),
		errors.Is(err, domain.ErrInvalidCategoryName):
		return apperrors.ValidationError(err.Error())

	case errors.Is(err, domain.ErrCategoryNotFound):
		return apperrors.NotFoundError("category not found")
	case errors.Is(err, domain.ErrAppNotAssigned):
		return apperrors.NotFoundError("app is not assigned to a category")
	case errors.Is(err, domain.ErrAssignmentNotFound):
		return apperrors.NotFoundError("assignment not found")
	case errors.Is(err, domain.ErrNoActiveSession):
		return apperrors.NotFoundError("no active session for this app")
	case errors.Is(err, domain.ErrLimitNotFound):
		return apperrors.NotFoundError("limit not found")

	case errors.Is(err, domain.ErrActiveSessionExists):
		return apperrors.ConflictError("an active session already exists for this app")
	case errors.Is(err, domain.ErrCategoryNameTaken):
		return apperrors.ConflictError("a category with this name already exists")
	case errors.Is(err, domain.ErrAppAlreadyAssigned):
		return apperrors.ConflictError("app is already assigned to a category")

	default:
		return apperrors.InternalError(message, err)
	}
}

func parseUserIDQuery(c echo.Context) (int64, error) {
	raw := c.QueryParam("user_id")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError("user_id must be an integer").WithField("user_id", raw)
	}
	return userID, nil
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError(name+" must be an integer").WithField(name, raw)
	}
	return id, nil
}

// parseTimeQuery accepts RFC 3339 timestamps and plain dates (YYYY-MM-DD).
func parseTimeQuery(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.ValidationError(name + " must be RFC 3339 or YYYY-MM-DD").WithField(name, raw)
}
