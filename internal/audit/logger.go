package audit

import (
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Event types written to the audit trail
const (
	EventRegistration = "REGISTRATION"
	EventLogin        = "LOGIN"
	EventRequest      = "REQUEST_CREATED"
	EventTransition   = "REQUEST_TRANSITION"
	EventReview       = "REVIEW_SUBMITTED"
	EventConversation = "CONVERSATION_OPENED"
	EventMessage      = "MESSAGE_SENT"
	EventError        = "ERROR"
)

type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	AccountID string            `json:"account_id"`
	RequestID string            `json:"request_id,omitempty"`
	Status    string            `json:"status"`
	Details   map[string]string `json:"details,omitempty"`
}

// Logger writes audit events as structured log entries on a dedicated
// "audit" logger.
type Logger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewLogger(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logger{logger: logger.Named("audit"), now: time.Now}
}

func (a *Logger) LogRegistration(accountID, role string) {
	a.log(Event{
		EventType: EventRegistration,
		AccountID: accountID,
		Status:    "SUCCESS",
		Details:   map[string]string{"role": role},
	})
}

func (a *Logger) LogLogin(accountID string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	a.log(Event{EventType: EventLogin, AccountID: accountID, Status: status})
}

func (a *Logger) LogRequestCreated(requestID, elderID string) {
	a.log(Event{
		EventType: EventRequest,
		AccountID: elderID,
		RequestID: requestID,
		Status:    "open",
	})
}

func (a *Logger) LogTransition(requestID, actorID, from, to string) {
	a.log(Event{
		EventType: EventTransition,
		AccountID: actorID,
		RequestID: requestID,
		Status:    to,
		Details:   map[string]string{"from": from, "to": to},
	})
}

func (a *Logger) LogReview(requestID, reviewerID, revieweeID string, rating int) {
	a.log(Event{
		EventType: EventReview,
		AccountID: reviewerID,
		RequestID: requestID,
		Status:    "SUCCESS",
		Details:   map[string]string{"reviewee_id": revieweeID, "rating": strconv.Itoa(rating)},
	})
}

func (a *Logger) LogConversationOpened(conversationID, requestID, elderID, volunteerID string) {
	a.log(Event{
		EventType: EventConversation,
		AccountID: volunteerID,
		RequestID: requestID,
		Status:    "SUCCESS",
		Details:   map[string]string{"conversation_id": conversationID, "elder_id": elderID},
	})
}

// LogMessageSent records who wrote into a conversation, never what
func (a *Logger) LogMessageSent(conversationID, requestID, senderID string) {
	a.log(Event{
		EventType: EventMessage,
		AccountID: senderID,
		RequestID: requestID,
		Status:    "SUCCESS",
		Details:   map[string]string{"conversation_id": conversationID},
	})
}

func (a *Logger) LogError(requestID, accountID string, err error) {
	a.log(Event{
		EventType: EventError,
		AccountID: accountID,
		RequestID: requestID,
		Status:    "FAILED",
		Details:   map[string]string{"error": err.Error()},
	})
}

func (a *Logger) log(event Event) {
	event.Timestamp = a.now().UTC()
	fields := []zap.Field{
		zap.String("event_type", event.EventType),
		zap.Time("timestamp", event.Timestamp),
		zap.String("account_id", event.AccountID),
		zap.String("status", event.Status),
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}
	a.logger.Info("audit", fields...)
}
