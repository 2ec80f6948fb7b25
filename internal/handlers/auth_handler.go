package handlers

import (
	"net/http"
	"time"

	"github.com/kampongconnect/backend/internal/models"
	"github.com/kampongconnect/backend/internal/services"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration request payload
// @Description Registration request structure. At most one profile may be
// @Description sent and it must match the role.
type RegisterRequest struct {
	Name             string                   `json:"name" example:"John Elder"`
	Email            string                   `json:"email" example:"elder@example.com"`
	Password         string                   `json:"password" example:"elder123"` // At least 6 characters
	Role             models.Role              `json:"role" example:"elder" enums:"elder,volunteer"`
	ElderProfile     *models.ElderProfile     `json:"elderProfile,omitempty"`
	VolunteerProfile *models.VolunteerProfile `json:"volunteerProfile,omitempty"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"elder@example.com"`
	Password string `json:"password" validate:"required" example:"elder123"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string         `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time      `json:"expiresAt"`
	Account   models.Account `json:"account"`
}

type AuthHandler struct {
	directory *services.UserDirectory
	tokens    *services.TokenService
	validator *services.ValidationHelper
	logger    *zap.Logger
}

func NewAuthHandler(directory *services.UserDirectory, tokens *services.TokenService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		directory: directory,
		tokens:    tokens,
		validator: services.NewValidationHelper(),
		logger:    logger.Named("auth_handler"),
	}
}

// Register handles account registration
// @Summary Register a new account
// @Description Register an elder or volunteer. New accounts start unverified.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} AuthResponse "Registration successful"
// @Failure 400 {object} services.ErrorResponse "Invalid request"
// @Failure 409 {object} services.ErrorResponse "Email already exists"
// @Failure 500 {object} services.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req, maxBodyBytes) {
		return
	}

	var (
		account models.Account
		err     error
	)
	switch {
	case req.ElderProfile != nil && req.VolunteerProfile != nil:
		services.SendErrorResponse(w, "Only one profile may be sent", http.StatusBadRequest, nil)
		return
	case req.ElderProfile != nil && req.Role == models.RoleElder:
		account, err = h.directory.RegisterWithProfile(r.Context(), req.Name, req.Email, req.Password, *req.ElderProfile)
	case req.VolunteerProfile != nil && req.Role == models.RoleVolunteer:
		account, err = h.directory.RegisterWithProfile(r.Context(), req.Name, req.Email, req.Password, *req.VolunteerProfile)
	case req.ElderProfile != nil || req.VolunteerProfile != nil:
		services.SendErrorResponse(w, "Profile does not match role", http.StatusBadRequest, nil)
		return
	default:
		account, err = h.directory.Register(r.Context(), req.Name, req.Email, req.Password, req.Role)
	}
	if err != nil {
		h.logger.Info("registration failed", zap.String("kind", string(services.KindOf(err))), zap.Error(err))
		services.SendServiceError(w, err)
		return
	}

	h.respondWithToken(w, http.StatusCreated, account)
}

// Login handles authentication
// @Summary Login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse "Login successful"
// @Failure 400 {object} services.ErrorResponse "Invalid request"
// @Failure 401 {object} services.ErrorResponse "Invalid password"
// @Failure 404 {object} services.ErrorResponse "User not found"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req, maxBodyBytes) {
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	account, err := h.directory.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	h.respondWithToken(w, http.StatusOK, account)
}

// Logout handles logout
// @Summary Logout
// @Description Revoke the caller's token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Logout successful"
// @Failure 401 {object} services.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	if err := h.tokens.Revoke(r.Context(), p.Token); err != nil {
		h.logger.Error("failed to revoke token", zap.String("account_id", p.AccountID), zap.Error(err))
		services.SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Me returns the caller's account
// @Summary Current account
// @Description Get the authenticated account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Account
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	account, err := h.directory.Get(p.AccountID)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, account models.Account) {
	token, expiresAt, err := h.tokens.Issue(account)
	if err != nil {
		h.logger.Error("token generation failed", zap.String("account_id", account.ID), zap.Error(err))
		services.SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}
	writeJSON(w, status, AuthResponse{Token: token, ExpiresAt: expiresAt, Account: account})
}
