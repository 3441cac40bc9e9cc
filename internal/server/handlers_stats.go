package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Downforcedemon/MinimalHome/internal/errors"
)

func (s *Server) handleDailyUsage(c echo.Context) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return err
	}
	date, err := parseTimeQuery(c, "date")
	if err != nil {
		return err
	}

	usage, err := s.aggregator.DailyUsage(c.Request().Context(), userID, date)
	if err != nil {
		return translateDomainError(err, "failed to compute daily usage")
	}
	return c.JSON(http.StatusOK, usage)
}

func (s *Server) handleWeeklyStats(c echo.Context) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return err
	}
	weekDate, err := parseTimeQuery(c, "week_start")
	if err != nil {
		return err
	}

	stats, err := s.aggregator.WeeklyStats(c.Request().Context(), userID, weekDate)
	if err != nil {
		return translateDomainError(err, "failed to compute weekly stats")
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) handleMostUsedApps(c echo.Context) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return err
	}
	start, err := parseTimeQuery(c, "start")
	if err != nil {
		return err
	}
	end, err := parseTimeQuery(c, "end")
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return apperrors.ValidationError("limit must be an integer").WithField("limit", raw)
		}
	}

	entries, err := s.aggregator.MostUsedApps(c.Request().Context(), userID, start, end, limit)
	if err != nil {
		return translateDomainError(err, "failed to rank apps")
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *Server) handleDailyDigest(c echo.Context) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return err
	}

	digest, err := s.aggregator.DailyDigest(c.Request().Context(), userID)
	if err != nil {
		return translateDomainError(err, "failed to build daily digest")
	}
	return c.JSON(http.StatusOK, digest)
}
