package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kampongconnect/backend/internal/models"
	"github.com/kampongconnect/backend/internal/services"
	"go.uber.org/zap"
)

// ReviewsResponse lists an account's reviews with their summary
type ReviewsResponse struct {
	Summary models.ReviewSummary `json:"summary"`
	Reviews []models.Review      `json:"reviews"`
}

// SubmitReviewRequest is the body of POST /reviews
type SubmitReviewRequest struct {
	RequestID string `json:"requestId" validate:"required" example:"req_grocery_help"`
	Rating    int    `json:"rating" example:"5"`
	Comment   string `json:"comment" example:"Very patient and kind"`
}

type AccountHandler struct {
	directory *services.UserDirectory
	reviews   *services.ReviewBook
	validator *services.ValidationHelper
	logger    *zap.Logger
}

func NewAccountHandler(directory *services.UserDirectory, reviews *services.ReviewBook, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		directory: directory,
		reviews:   reviews,
		validator: services.NewValidationHelper(),
		logger:    logger.Named("account_handler"),
	}
}

// List returns every account
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Account
// @Router /accounts [get]
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.directory.List())
}

// Get returns one account
// @Summary Get account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param accountId path string true "Account ID"
// @Success 200 {object} models.Account
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/{accountId} [get]
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.directory.Get(chi.URLParam(r, "accountId"))
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// Reviews lists the reviews left for an account
// @Summary Account reviews
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param accountId path string true "Account ID"
// @Success 200 {object} ReviewsResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/{accountId}/reviews [get]
func (h *AccountHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	account, err := h.directory.Get(chi.URLParam(r, "accountId"))
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ReviewsResponse{
		Summary: h.reviews.Summary(account.ID),
		Reviews: h.reviews.ListFor(account.ID),
	})
}

// SubmitReview rates the other party of a completed request
// @Summary Submit review
// @Description The elder reviews the volunteer or the volunteer reviews the elder, once per request
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitReviewRequest true "Review"
// @Success 201 {object} models.Review
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse "Request not completed"
// @Router /reviews [post]
func (h *AccountHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if !decodeJSON(w, r, &req, maxBodyBytes) {
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	review, err := h.reviews.Submit(r.Context(), p.AccountID, req.RequestID, req.Rating, req.Comment)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}
