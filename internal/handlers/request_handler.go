package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kampongconnect/backend/internal/models"
	"github.com/kampongconnect/backend/internal/services"
	"go.uber.org/zap"
)

// TransitionRequest is the body of POST /requests/{requestId}/transitions
type TransitionRequest struct {
	Status models.RequestStatus `json:"status" validate:"required" example:"matched" enums:"matched,in_progress,completed,cancelled"`
}

type RequestHandler struct {
	ledger    *services.RequestLedger
	validator *services.ValidationHelper
	logger    *zap.Logger
}

func NewRequestHandler(ledger *services.RequestLedger, logger *zap.Logger) *RequestHandler {
	return &RequestHandler{
		ledger:    ledger,
		validator: services.NewValidationHelper(),
		logger:    logger.Named("request_handler"),
	}
}

// Create records a new assistance request for the calling elder
// @Summary Create request
// @Description Elders ask for help. The request starts open.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.NewRequest true "Assistance request"
// @Success 201 {object} models.AssistanceRequest
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse "Caller is not an elder"
// @Router /requests [post]
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	var req services.NewRequest
	if !decodeJSON(w, r, &req, maxBodyBytes) {
		return
	}
	req.RequesterID = p.AccountID

	created, err := h.ledger.Create(r.Context(), req)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Mine lists the caller's own requests
// @Summary My requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AssistanceRequest
// @Router /requests/mine [get]
func (h *RequestHandler) Mine(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.ledger.ListByRequester(p.AccountID))
}

// Available lists open requests
// @Summary Available requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AssistanceRequest
// @Router /requests/available [get]
func (h *RequestHandler) Available(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ledger.ListAvailable())
}

// Commitments lists the requests the calling volunteer is matched to
// @Summary My commitments
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AssistanceRequest
// @Router /requests/commitments [get]
func (h *RequestHandler) Commitments(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.ledger.ListByVolunteer(p.AccountID))
}

// Get returns one request
// @Summary Get request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Success 200 {object} models.AssistanceRequest
// @Failure 404 {object} services.ErrorResponse
// @Router /requests/{requestId} [get]
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.ledger.Get(chi.URLParam(r, "requestId"))
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// Transition moves a request through its lifecycle
// @Summary Change request status
// @Description Volunteers offer help (matched) and start work (in_progress). The elder or the
// @Description matched volunteer report completion. The elder cancels, or the matched volunteer
// @Description withdraws before work starts.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Param request body TransitionRequest true "Target status"
// @Success 200 {object} models.AssistanceRequest
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse "Transition not allowed"
// @Router /requests/{requestId}/transitions [post]
func (h *RequestHandler) Transition(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	var body TransitionRequest
	if !decodeJSON(w, r, &body, maxBodyBytes) {
		return
	}
	if err := h.validator.ValidateStruct(&body); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	updated, err := h.ledger.TransitionAs(r.Context(), chi.URLParam(r, "requestId"), body.Status, services.Actor{
		ID:   p.AccountID,
		Role: p.Role,
	})
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			h.logger.Info("transition refused",
				zap.String("request_id", chi.URLParam(r, "requestId")),
				zap.String("account_id", p.AccountID),
				zap.String("to", string(body.Status)),
			)
		}
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Stats summarizes the ledger for the caller's role
// @Summary Dashboard statistics
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Statistics
// @Router /stats [get]
func (h *RequestHandler) Stats(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	stats, err := h.ledger.Stats(p.AccountID, p.Role)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
