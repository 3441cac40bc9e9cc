package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Downforcedemon/MinimalHome/internal/errors"
)

type sessionRequest struct {
	UserID  int64  `json:"user_id"`
	AppName string `json:"app_name"`
}

func (s *Server) handleStartSession(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	session, err := s.tracker.Start(c.Request().Context(), req.UserID, req.AppName)
	if err != nil {
		return translateDomainError(err, "failed to start session")
	}
	return c.JSON(http.StatusCreated, session)
}

func (s *Server) handleStopSession(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	session, err := s.tracker.Stop(c.Request().Context(), req.UserID, req.AppName)
	if err != nil {
		return translateDomainError(err, "failed to stop session")
	}
	return c.JSON(http.StatusOK, session)
}

func (s *Server) handleActiveSessions(c echo.Context) error {
	userID, err := parseUserIDQuery(c)
	if err != nil {
		return err
	}

	sessions, err := s.tracker.ActiveSessions(c.Request().Context(), userID)
	if err != nil {
		return translateDomainError(err, "failed to list active sessions")
	}
	return c.JSON(http.StatusOK, sessions)
}

func (s *Server) handleSessionHistory(c echo.Context) error {
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

	sessions, err := s.tracker.History(c.Request().Context(), userID, start, end)
	if err != nil {
		return translateDomainError(err, "failed to list session history")
	}
	return c.JSON(http.StatusOK, sessions)
}
