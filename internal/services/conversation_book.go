package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kampongconnect/backend/internal/audit"
	"github.com/kampongconnect/backend/internal/models"
	"github.com/kampongconnect/backend/internal/snapshot"
	"github.com/kampongconnect/backend/internal/storage"
	"go.uber.org/zap"
)

// ConversationBook keeps the private threads between an elder and the
// volunteer matched to their request.
type ConversationBook struct {
	mu            sync.Mutex
	conversations []models.Conversation
	snapshots     *collection[models.Conversation]
	requests      RequestLookup
	validator     *ValidationHelper
	audit         *audit.Logger
	logger        *zap.Logger
	now           func() time.Time
}

func NewConversationBook(store storage.Store, key string, requests RequestLookup, auditLogger *audit.Logger, logger *zap.Logger) *ConversationBook {
	vh := NewValidationHelper()
	codec := snapshot.New[models.Conversation]("conversations", vh.Validator())
	codec.Check = checkConversation

	return &ConversationBook{
		snapshots: &collection[models.Conversation]{
			store: store,
			key:   key,
			codec: codec,
			now:   time.Now,
		},
		requests:  requests,
		validator: vh,
		audit:     auditLogger,
		logger:    logger.Named("conversations"),
		now:       time.Now,
	}
}

// Load replaces the in-memory conversations with the persisted snapshot
func (b *ConversationBook) Load(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	conversations, found, err := b.snapshots.load(ctx)
	if err != nil {
		b.logger.Error("failed to load conversations", zap.Error(err))
		return err
	}
	if err := checkConversations(conversations); err != nil {
		b.logger.Error("rejected conversations snapshot", zap.Error(err))
		return err
	}

	b.conversations = conversations
	b.logger.Info("conversations loaded", zap.Int("count", len(conversations)), zap.Bool("snapshot_found", found))
	return nil
}

// HandleTransition opens the conversation for a request that just became
// matched. It is registered with RequestLedger.OnTransition.
func (b *ConversationBook) HandleTransition(ctx context.Context, from models.RequestStatus, req models.AssistanceRequest) {
	if req.Status != models.StatusMatched {
		return
	}
	if _, err := b.open(ctx, req, req.MatchedVolunteerID); err != nil {
		b.logger.Error("failed to open conversation for matched request",
			zap.String("request_id", req.ID),
			zap.String("from", string(from)),
			zap.Error(err))
	}
}

// OpenFor returns the conversation of a request, opening it if needed.
// accountID must be the request's elder or its volunteer.
func (b *ConversationBook) OpenFor(ctx context.Context, requestID, accountID string) (models.Conversation, error) {
	req, err := b.requests.Get(requestID)
	if err != nil {
		return models.Conversation{}, err
	}

	var volunteerID string
	switch {
	case req.Status.HoldsVolunteer():
		volunteerID = req.MatchedVolunteerID
	case req.Status == models.StatusCompleted:
		volunteerID = req.CompletedVolunteerID
	}
	if volunteerID == "" {
		return models.Conversation{}, newError(KindInvalidTransition,
			fmt.Sprintf("a %s request has no volunteer to talk to", req.Status), nil)
	}
	if accountID != req.ElderID && accountID != volunteerID {
		return models.Conversation{}, forbiddenErr("Only the elder and the matched volunteer can open this conversation")
	}

	return b.open(ctx, req, volunteerID)
}

func (b *ConversationBook) open(ctx context.Context, req models.AssistanceRequest, volunteerID string) (models.Conversation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range b.conversations {
		if c.AssistanceRequestID == req.ID && c.VolunteerID == volunteerID {
			return copyConversation(c), nil
		}
	}

	conv := models.Conversation{
		ID:                  newID("conv"),
		ElderID:             req.ElderID,
		VolunteerID:         volunteerID,
		AssistanceRequestID: req.ID,
		Messages:            []models.Message{},
		LastMessageAt:       stamp(b.now()),
	}
	if err := b.validator.validate(&conv); err != nil {
		return models.Conversation{}, err
	}

	next := append(cloneSlice(b.conversations), conv)
	if err := b.commit(ctx, next, req.ID, volunteerID); err != nil {
		return models.Conversation{}, err
	}

	b.audit.LogConversationOpened(conv.ID, req.ID, conv.ElderID, volunteerID)
	b.logger.Info("conversation opened",
		zap.String("conversation_id", conv.ID),
		zap.String("request_id", req.ID))
	return copyConversation(conv), nil
}

// ListFor returns summaries of accountID's conversations, most recent first
func (b *ConversationBook) ListFor(accountID string) []models.ConversationSummary {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := []models.ConversationSummary{}
	for _, c := range b.conversations {
		if c.Involves(accountID) {
			out = append(out, c.Summarize(accountID))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out
}

// Get returns a conversation with its messages, oldest first
func (b *ConversationBook) Get(id, accountID string) (models.Conversation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, err := b.lookup(id, accountID)
	if err != nil {
		return models.Conversation{}, err
	}
	return copyConversation(b.conversations[i]), nil
}

// Send appends a message from senderID, who must be one of the two parties
func (b *ConversationBook) Send(ctx context.Context, id, senderID, content string) (models.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, err := b.lookup(id, senderID)
	if err != nil {
		return models.Message{}, err
	}
	conv := b.conversations[i]

	msg := models.Message{
		ID:             newID("msg"),
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        strings.TrimSpace(content),
		Timestamp:      stamp(b.now()),
	}
	if err := b.validator.validate(&msg); err != nil {
		return models.Message{}, err
	}

	conv.Messages = append(cloneSlice(conv.Messages), msg)
	conv.LastMessageAt = msg.Timestamp
	next := cloneSlice(b.conversations)
	next[i] = conv
	if err := b.commit(ctx, next, conv.AssistanceRequestID, senderID); err != nil {
		return models.Message{}, err
	}

	b.audit.LogMessageSent(conv.ID, conv.AssistanceRequestID, senderID)
	return msg, nil
}

// MarkRead marks every message the other party sent as read by readerID and
// reports how many changed. Nothing is written when none did.
func (b *ConversationBook) MarkRead(ctx context.Context, id, readerID string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, err := b.lookup(id, readerID)
	if err != nil {
		return 0, err
	}
	conv := b.conversations[i]

	messages := cloneSlice(conv.Messages)
	marked := 0
	for j := range messages {
		if messages[j].SenderID != readerID && !messages[j].IsRead {
			messages[j].IsRead = true
			marked++
		}
	}
	if marked == 0 {
		return 0, nil
	}

	conv.Messages = messages
	next := cloneSlice(b.conversations)
	next[i] = conv
	if err := b.commit(ctx, next, conv.AssistanceRequestID, readerID); err != nil {
		return 0, err
	}
	return marked, nil
}

// lookup finds conversation id for accountID. Callers hold b.mu.
func (b *ConversationBook) lookup(id, accountID string) (int, error) {
	for i, c := range b.conversations {
		if c.ID != id {
			continue
		}
		if !c.Involves(accountID) {
			return -1, forbiddenErr("Only the elder and the matched volunteer can use this conversation")
		}
		return i, nil
	}
	return -1, notFoundErr("Conversation not found")
}

// commit persists next and adopts it. Callers hold b.mu.
func (b *ConversationBook) commit(ctx context.Context, next []models.Conversation, requestID, accountID string) error {
	if err := b.snapshots.save(ctx, next); err != nil {
		b.logger.Error("failed to persist conversations, keeping last saved state", zap.Error(err))
		b.audit.LogError(requestID, accountID, err)
		return err
	}
	b.conversations = next
	return nil
}

func copyConversation(c models.Conversation) models.Conversation {
	c.Messages = append([]models.Message{}, c.Messages...)
	return c
}

func checkConversation(c models.Conversation) error {
	for _, m := range c.Messages {
		if m.ConversationID != c.ID {
			return fmt.Errorf("conversation %s: message %s belongs to %s", c.ID, m.ID, m.ConversationID)
		}
		if !c.Involves(m.SenderID) {
			return fmt.Errorf("conversation %s: message %s sent by outsider %s", c.ID, m.ID, m.SenderID)
		}
	}
	return nil
}

// checkConversations holds a snapshot to unique ids, one conversation per
// request and volunteer, and unique message ids
func checkConversations(conversations []models.Conversation) error {
	type pairKey struct{ request, volunteer string }
	ids := make(map[string]struct{}, len(conversations))
	pairs := make(map[pairKey]struct{}, len(conversations))
	messages := make(map[string]struct{})
	for _, c := range conversations {
		if _, dup := ids[c.ID]; dup {
			return persistenceErr("conversations snapshot has duplicate id "+c.ID, snapshot.ErrMalformed)
		}
		ids[c.ID] = struct{}{}

		k := pairKey{c.AssistanceRequestID, c.VolunteerID}
		if _, dup := pairs[k]; dup {
			return persistenceErr(fmt.Sprintf("conversations snapshot has two conversations for %s with %s", k.request, k.volunteer), snapshot.ErrMalformed)
		}
		pairs[k] = struct{}{}

		for _, m := range c.Messages {
			if _, dup := messages[m.ID]; dup {
				return persistenceErr("conversations snapshot has duplicate message id "+m.ID, snapshot.ErrMalformed)
			}
			messages[m.ID] = struct{}{}
		}
	}
	return nil
}
