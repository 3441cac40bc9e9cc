package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Downforcedemon/MinimalHome/internal/errors"
)

type setLimitRequest struct {
	UserID      int64 `json:"user_id"`
	CategoryID  int64 `json:"category_id"`
	DailyLimit  int64 `json:"daily_limit"`
	WeeklyLimit int64 `json:"weekly_limit"`
}

func (s *Server) handleSetLimit(c echo.Context) error {
	var req setLimitRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	limit, err := s.limits.SetLimit(c.Request().Context(), req.UserID, req.CategoryID, req.DailyLimit, req.WeeklyLimit)
	if err != nil {
		return translateDomainError(err, "failed to set limit")
	}
	return c.JSON(http.StatusOK, limit)
}

func (s *Server) handleListLimits(c echo.Context) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return err
	}

	limits, err := s.limits.Limits(c.Request().Context(), userID)
	if err != nil {
		return translateDomainError(err, "failed to list limits")
	}
	return c.JSON(http.StatusOK, limits)
}

func (s *Server) handleLimitCheck(c echo.Context) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return err
	}
	appName := c.QueryParam("app_name")

	exceeded, err := s.limits.IsLimitExceeded(c.Request().Context(), userID, appName)
	if err != nil {
		return translateDomainError(err, "failed to check limit")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user_id":  userID,
		"app_name": appName,
		"exceeded": exceeded,
	})
}
