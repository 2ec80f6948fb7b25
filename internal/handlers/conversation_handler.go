package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kampongconnect/backend/internal/services"
	"go.uber.org/zap"
)

// OpenConversationRequest is the body of POST /conversations
type OpenConversationRequest struct {
	RequestID string `json:"requestId" validate:"required" example:"req_doctor_escort"`
}

// SendMessageRequest is the body of POST /conversations/{conversationId}/messages
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000" example:"I'll be there at 10am"`
}

// MarkReadResponse reports how many messages were marked read
type MarkReadResponse struct {
	Marked int `json:"marked"`
}

type ConversationHandler struct {
	conversations *services.ConversationBook
	validator     *services.ValidationHelper
	logger        *zap.Logger
}

func NewConversationHandler(conversations *services.ConversationBook, logger *zap.Logger) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		validator:     services.NewValidationHelper(),
		logger:        logger.Named("conversation_handler"),
	}
}

// List returns the caller's conversations
// @Summary List conversations
// @Description Most recently active first, with the caller's unread count
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ConversationSummary
// @Router /conversations [get]
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.conversations.ListFor(p.AccountID))
}

// Open returns the conversation of a matched request, opening it if needed
// @Summary Open conversation
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OpenConversationRequest true "Request to talk about"
// @Success 201 {object} models.Conversation
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse "Request has no volunteer"
// @Router /conversations [post]
func (h *ConversationHandler) Open(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	var req OpenConversationRequest
	if !decodeJSON(w, r, &req, maxBodyBytes) {
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	conv, err := h.conversations.OpenFor(r.Context(), req.RequestID, p.AccountID)
	if err != nil {
		h.refused(err, p.AccountID)
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conv)
}

// Get returns one conversation with its messages
// @Summary Get conversation
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} models.Conversation
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /conversations/{conversationId} [get]
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	conv, err := h.conversations.Get(chi.URLParam(r, "conversationId"), p.AccountID)
	if err != nil {
		h.refused(err, p.AccountID)
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// Send writes a message into a conversation
// @Summary Send message
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conversationId path string true "Conversation ID"
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} models.Message
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /conversations/{conversationId}/messages [post]
func (h *ConversationHandler) Send(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	var req SendMessageRequest
	if !decodeJSON(w, r, &req, maxBodyBytes) {
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	msg, err := h.conversations.Send(r.Context(), chi.URLParam(r, "conversationId"), p.AccountID, req.Content)
	if err != nil {
		h.refused(err, p.AccountID)
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// MarkRead marks the other party's messages as read by the caller
// @Summary Mark conversation read
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param conversationId path string true "Conversation ID"
// @Success 200 {object} MarkReadResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /conversations/{conversationId}/read [post]
func (h *ConversationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	marked, err := h.conversations.MarkRead(r.Context(), chi.URLParam(r, "conversationId"), p.AccountID)
	if err != nil {
		h.refused(err, p.AccountID)
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MarkReadResponse{Marked: marked})
}

func (h *ConversationHandler) refused(err error, accountID string) {
	if errors.Is(err, services.ErrForbidden) {
		h.logger.Warn("conversation access refused", zap.String("account_id", accountID), zap.Error(err))
	}
}
