package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Downforcedemon/MinimalHome/internal/domain"
	"github.com/Downforcedemon/MinimalHome/internal/metrics"
)

// Tracker owns the session start/stop state machine. It is the only writer
// of session rows; atomicity of start and stop on one (user, app) key comes
// from the repository, so the tracker itself holds no locks.
type Tracker struct {
	sessions domain.SessionRepository
	clock    clockwork.Clock
}

// NewTracker creates the session tracker.
func NewTracker(sessions domain.SessionRepository, clock clockwork.Clock) *Tracker {
	return &Tracker{sessions: sessions, clock: clock}
}

// Start opens a new active session for (userID, appName) at the current
// instant. Returns domain.ErrActiveSessionExists when one is already open.
func (t *Tracker) Start(ctx context.Context, userID int64, appName string) (*domain.Session, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateAppName(appName); err != nil {
		return nil, err
	}

	session, err := t.sessions.Insert(ctx, userID, appName, t.clock.Now().UTC())
	if err != nil {
		metrics.SessionsStarted.WithLabelValues(outcomeLabel(err, domain.ErrActiveSessionExists, "conflict")).Inc()
		return nil, err
	}

	metrics.SessionsStarted.WithLabelValues("started").Inc()
	slog.InfoContext(ctx, "Session started", "user_id", userID, "app_name", appName)
	return session, nil
}

// Stop closes the active session for (userID, appName), recording its
// duration. Returns domain.ErrNoActiveSession when nothing is open.
func (t *Tracker) Stop(ctx context.Context, userID int64, appName string) (*domain.Session, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateAppName(appName); err != nil {
		return nil, err
	}

	session, err := t.sessions.CloseActive(ctx, userID, appName, t.clock.Now().UTC())
	if err != nil {
		metrics.SessionsStopped.WithLabelValues(outcomeLabel(err, domain.ErrNoActiveSession, "not_found")).Inc()
		return nil, err
	}

	metrics.SessionsStopped.WithLabelValues("stopped").Inc()
	if session.DurationSeconds != nil {
		metrics.SessionDuration.Observe(float64(*session.DurationSeconds))
	}
	slog.InfoContext(ctx, "Session stopped",
		"user_id", userID, "app_name", appName, "duration_seconds", session.DurationSeconds)
	return session, nil
}

// ActiveSessions lists the user's currently open sessions, unordered.
func (t *Tracker) ActiveSessions(ctx context.Context, userID int64) ([]domain.Session, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	return t.sessions.ListActiveByUser(ctx, userID)
}

// History lists the user's sessions started in [start, end).
func (t *Tracker) History(ctx context.Context, userID int64, start, end time.Time) ([]domain.Session, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	return t.sessions.ListByUserAndRange(ctx, userID, start, end)
}

func outcomeLabel(err, sentinel error, label string) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, sentinel) {
		return label
	}
	return "error"
}
