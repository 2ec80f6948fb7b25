package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mW "github.com/kampongconnect/backend/internal/middleware"
	"github.com/kampongconnect/backend/internal/models"
	"github.com/kampongconnect/backend/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Dependencies are the services the HTTP surface is built on
type Dependencies struct {
	Directory     *services.UserDirectory
	Ledger        *services.RequestLedger
	Reviews       *services.ReviewBook
	Conversations *services.ConversationBook
	Tokens        *services.TokenService
	QR            *services.QRService
	Dictation     *services.DictationService

	BaseURL        string
	AvatarDir      string
	RequestTimeout time.Duration
}

// NewRouter wires every route under /api/v1 plus health, docs and avatars
func NewRouter(deps Dependencies, logger *zap.Logger) http.Handler {
	if deps.RequestTimeout == 0 {
		deps.RequestTimeout = 60 * time.Second
	}

	authHandler := NewAuthHandler(deps.Directory, deps.Tokens, logger)
	accountHandler := NewAccountHandler(deps.Directory, deps.Reviews, logger)
	requestHandler := NewRequestHandler(deps.Ledger, logger)
	qrHandler := NewQRHandler(deps.QR, deps.Ledger)
	dictationHandler := NewDictationHandler(deps.Dictation, logger)
	conversationHandler := NewConversationHandler(deps.Conversations, logger)

	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mW.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(deps.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(deps.BaseURL+"/swagger/doc.json"),
	))

	if deps.AvatarDir != "" {
		r.Handle("/static/avatars/*", http.StripPrefix("/static/avatars/", mW.AvatarServer(deps.AvatarDir)))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(mW.Auth(deps.Tokens, logger))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			r.Get("/accounts", accountHandler.List)
			r.Get("/accounts/{accountId}", accountHandler.Get)
			r.Get("/accounts/{accountId}/reviews", accountHandler.Reviews)
			r.Post("/reviews", accountHandler.SubmitReview)

			r.With(mW.RequireRole(models.RoleElder)).Post("/requests", requestHandler.Create)
			r.With(mW.RequireRole(models.RoleElder)).Get("/requests/mine", requestHandler.Mine)
			r.Get("/requests/available", requestHandler.Available)
			r.With(mW.RequireRole(models.RoleVolunteer)).Get("/requests/commitments", requestHandler.Commitments)
			r.Get("/requests/{requestId}", requestHandler.Get)
			r.Post("/requests/{requestId}/transitions", requestHandler.Transition)
			r.Get("/requests/{requestId}/qr", qrHandler.Poster)

			r.Get("/conversations", conversationHandler.List)
			r.Post("/conversations", conversationHandler.Open)
			r.Get("/conversations/{conversationId}", conversationHandler.Get)
			r.Post("/conversations/{conversationId}/messages", conversationHandler.Send)
			r.Post("/conversations/{conversationId}/read", conversationHandler.MarkRead)

			r.Get("/stats", requestHandler.Stats)

			r.Post("/dictation", dictationHandler.Transcribe)
		})
	})

	return r
}
