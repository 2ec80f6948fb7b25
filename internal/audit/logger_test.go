package audit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewLogger(zap.New(core))
	l.now = func() time.Time { return time.Date(2025, 9, 5, 10, 0, 0, 0, time.UTC) }
	return l, logs
}

func TestLogger_LogTransition(t *testing.T) {
	l, logs := newObserved()

	l.LogTransition("req_1", "user_volunteer1", "open", "matched")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "audit", entry.LoggerName)
	fields := entry.ContextMap()
	assert.Equal(t, EventTransition, fields["event_type"])
	assert.Equal(t, "req_1", fields["request_id"])
	assert.Equal(t, "user_volunteer1", fields["account_id"])
	assert.Equal(t, "matched", fields["status"])
}

func TestLogger_LogLogin(t *testing.T) {
	l, logs := newObserved()

	l.LogLogin("user_elder1", true)
	l.LogLogin("user_elder1", false)

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "SUCCESS", logs.All()[0].ContextMap()["status"])
	assert.Equal(t, "FAILED", logs.All()[1].ContextMap()["status"])
}

func TestLogger_LogError(t *testing.T) {
	l, logs := newObserved()

	l.LogError("req_1", "user_elder1", errors.New("quota exceeded"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, EventError, fields["event_type"])
	assert.Equal(t, map[string]string{"error": "quota exceeded"}, fields["details"])
}

func TestLogger_Conversations(t *testing.T) {
	l, logs := newObserved()

	l.LogConversationOpened("conv_1", "req_1", "user_elder1", "user_volunteer1")
	l.LogMessageSent("conv_1", "req_1", "user_elder1")

	require.Equal(t, 2, logs.Len())
	opened := logs.All()[0].ContextMap()
	assert.Equal(t, EventConversation, opened["event_type"])
	assert.Equal(t, "user_volunteer1", opened["account_id"])
	assert.Equal(t, map[string]string{"conversation_id": "conv_1", "elder_id": "user_elder1"}, opened["details"])

	sent := logs.All()[1].ContextMap()
	assert.Equal(t, EventMessage, sent["event_type"])
	assert.Equal(t, "user_elder1", sent["account_id"])
	assert.Equal(t, "req_1", sent["request_id"])
}

func TestNewLogger_NilLogger(t *testing.T) {
	l := NewLogger(nil)
	assert.NotPanics(t, func() { l.LogRegistration("user_1", "elder") })
}
