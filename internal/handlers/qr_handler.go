package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kampongconnect/backend/internal/services"
)

type QRHandler struct {
	service *services.QRService
	ledger  *services.RequestLedger
}

func NewQRHandler(service *services.QRService, ledger *services.RequestLedger) *QRHandler {
	return &QRHandler{
		service: service,
		ledger:  ledger,
	}
}

// Poster renders a printable QR code for a request
// @Summary Request poster QR code
// @Description PNG QR code linking volunteers to the request. Only the elder who created the
// @Description request can fetch it. Pass format=json for a base64 payload.
// @Tags QR
// @Produce png
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Param format query string false "png (default) or json"
// @Success 200 {file} binary
// @Failure 403 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /requests/{requestId}/qr [get]
func (h *QRHandler) Poster(w http.ResponseWriter, r *http.Request) {
	p, ok := caller(w, r)
	if !ok {
		return
	}

	req, err := h.ledger.Get(chi.URLParam(r, "requestId"))
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	if req.ElderID != p.AccountID {
		forbidden(w, "Only the elder who created this request can print its poster")
		return
	}

	poster, err := h.service.Poster(req.ID)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"link":    poster.Link,
			"qrImage": poster.Base64(),
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(poster.PNG)))
	w.WriteHeader(http.StatusOK)
	w.Write(poster.PNG)
}
