package handlers

import (
	"net/http"

	"github.com/kampongconnect/backend/internal/services"
	"go.uber.org/zap"
)

const maxAudioBytes = 10 * 1024 * 1024

type DictationHandler struct {
	service *services.DictationService
	logger  *zap.Logger
}

func NewDictationHandler(service *services.DictationService, logger *zap.Logger) *DictationHandler {
	return &DictationHandler{service: service, logger: logger.Named("dictation_handler")}
}

// Transcribe turns a spoken request description into text
// @Summary Dictate a request description
// @Description Transcribes base64 audio in English, Mandarin, Malay or Tamil. When speech
// @Description recognition is not configured the response is marked offline.
// @Tags dictation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.DictationRequest true "Audio"
// @Success 200 {object} services.DictationResult
// @Failure 400 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /dictation [post]
func (h *DictationHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	var req services.DictationRequest
	if !decodeJSON(w, r, &req, maxAudioBytes) {
		return
	}

	result, err := h.service.Transcribe(r.Context(), req)
	if err != nil {
		h.logger.Error("transcription failed", zap.String("account_id", p.AccountID), zap.Error(err))
		services.SendServiceError(w, err)
		return
	}

	h.logger.Info("transcription done",
		zap.String("account_id", p.AccountID),
		zap.Bool("offline", result.Offline),
		zap.Float32("confidence", result.Confidence),
	)
	writeJSON(w, http.StatusOK, result)
}
