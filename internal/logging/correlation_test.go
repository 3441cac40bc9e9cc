package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCorrelationID_Unique(t *testing.T) {
	ids := make(map[string]struct{}, 100)
	for range 100 {
		id := NewCorrelationID()
		_, seen := ids[id]
		require.False(t, seen, "duplicate correlation ID %s", id)
		ids[id] = struct{}{}
	}
}

func TestCorrelationID_MissingFromContext(t *testing.T) {
	_, ok := CorrelationID(context.Background())
	assert.False(t, ok)
}

func TestCorrelationID_RoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abc123")
	id, ok := CorrelationID(ctx)
	require.True(t, ok)
	assert.Equal(t, "abc123", id)
}

func TestCorrelationHandler_InjectsAttribute(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCorrelationHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithCorrelationID(context.Background(), "req-42")
	logger.InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), "correlation_id=req-42")
}

func TestCorrelationHandler_NoAttributeWithoutID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCorrelationHandler(slog.NewTextHandler(&buf, nil)))

	logger.InfoContext(context.Background(), "hello")

	assert.NotContains(t, buf.String(), "correlation_id")
}
