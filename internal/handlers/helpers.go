package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	mW "github.com/kampongconnect/backend/internal/middleware"
	"github.com/kampongconnect/backend/internal/services"
)

const maxBodyBytes = 1_048_576 // 1 MB

// decodeJSON reads exactly one JSON object into dst, rejecting unknown
// fields. It writes the error response itself and reports whether the
// handler may continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, limit int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// caller returns the authenticated principal or writes a 401
func caller(w http.ResponseWriter, r *http.Request) (mW.Principal, bool) {
	p, ok := mW.PrincipalFrom(r.Context())
	if !ok {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
	}
	return p, ok
}

func forbidden(w http.ResponseWriter, message string) {
	services.SendErrorResponse(w, message, http.StatusForbidden, nil)
}
