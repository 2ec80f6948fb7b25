package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kampongconnect/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationHelper_ValidateStruct(t *testing.T) {
	vh := NewValidationHelper()

	assert.NoError(t, vh.ValidateStruct(&NewRequest{
		RequesterID:   "user_elder1",
		Title:         "Grocery Shopping Help",
		Description:   "Weekly grocery run",
		Category:      models.CategoryShopping,
		ScheduledDate: "2025-09-05T10:00",
		Duration:      120,
		Location:      models.Location{Address: "Toa Payoh Central", PostalCode: "310184"},
		Urgency:       models.UrgencyHigh,
	}))

	tests := []struct {
		name   string
		mutate func(*NewRequest)
		field  string
		tag    string
	}{
		{"title too long", func(r *NewRequest) { r.Title = strings.Repeat("a", 201) }, "Title", "max"},
		{"unknown category", func(r *NewRequest) { r.Category = "gardening" }, "Category", "oneof"},
		{"zero duration", func(r *NewRequest) { r.Duration = 0 }, "Duration", "gt"},
		{"missing postal code", func(r *NewRequest) { r.Location.PostalCode = "" }, "PostalCode", "required"},
		{"missing requester", func(r *NewRequest) { r.RequesterID = "" }, "RequesterID", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := groceryRequest("user_elder1")
			tt.mutate(&in)

			err := vh.ValidateStruct(&in)
			var fieldErrs validator.ValidationErrors
			require.True(t, errors.As(err, &fieldErrs))
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field())
			assert.Equal(t, tt.tag, fieldErrs[0].Tag())
		})
	}
}

func TestSendErrorResponse(t *testing.T) {
	t.Run("plain message", func(t *testing.T) {
		w := httptest.NewRecorder()
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Invalid request body", response.Error)
		assert.Empty(t, response.Kind)
		assert.Nil(t, response.Details)
	})

	t.Run("field failures of a new request", func(t *testing.T) {
		in := groceryRequest("user_elder1")
		in.Category = "gardening"
		in.Duration = -15
		fieldErr := NewValidationHelper().ValidateStruct(&in)

		w := httptest.NewRecorder()
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, fieldErr)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Validation failed", response.Error)
		assert.Equal(t, map[string]string{
			"Category": "Field Validation Failed on 'oneof' tag",
			"Duration": "Field Validation Failed on 'gt' tag",
		}, response.Details)
	})

	t.Run("non-field error carries no details", func(t *testing.T) {
		w := httptest.NewRecorder()
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, errors.New("token expired"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Nil(t, response.Details)
	})
}

func TestValidationHelper_Validator(t *testing.T) {
	vh := NewValidationHelper()
	assert.Same(t, vh.validator, vh.Validator())
}

func TestValidationHelper_validate(t *testing.T) {
	vh := NewValidationHelper()

	in := groceryRequest("user_elder1")
	in.Duration = 0
	err := vh.validate(&in)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Duration failed on 'gt'", DetailOf(err))

	review := models.Review{
		ID:                  "rev_1",
		AssistanceRequestID: "req_grocery_help",
		ReviewerID:          "user_elder1",
		RevieweeID:          "user_elder1",
		Rating:              7,
		CreatedAt:           testNow,
	}
	err = vh.validate(&review)
	assert.Equal(t, "Rating failed on 'lte'; RevieweeID failed on 'nefield'", DetailOf(err))

	err = vh.validate(&DictationRequest{Audio: "UklGRg==", Encoding: "MP3"})
	assert.Equal(t, "Encoding failed on 'oneof'", DetailOf(err))

	assert.ErrorIs(t, vh.validate(nil), ErrValidation)
	assert.NoError(t, vh.validate(&DictationRequest{Audio: "UklGRg==", Language: models.LanguageTamil}))
}

func TestSendServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"forbidden", forbiddenErr("Only volunteers can offer help"), http.StatusForbidden, "Only volunteers can offer help"},
		{"duplicate email", newError(KindDuplicateEmail, "User with this email already exists", nil), http.StatusConflict, "User with this email already exists"},
		{"not found", notFoundErr("Request not found"), http.StatusNotFound, "Request not found"},
		{"bad password", newError(KindInvalidCredential, "Invalid password", nil), http.StatusUnauthorized, "Invalid password"},
		{"invalid transition", newError(KindInvalidTransition, "cannot move request from open to completed", nil), http.StatusConflict, "cannot move request from open to completed"},
		{"persistence hides detail", persistenceErr("failed to save kampong_connect_requests", errors.New("OOM")), http.StatusInternalServerError, "An Internal Error Occurred"},
		{"foreign error", errors.New("boom"), http.StatusInternalServerError, "An Internal Error Occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			SendServiceError(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var response ErrorResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.message, response.Error)
			assert.Equal(t, string(KindOf(tt.err)), response.Kind)
		})
	}
}

func TestSendServiceError_ValidationDetails(t *testing.T) {
	err := NewValidationHelper().validate(&DictationRequest{Encoding: "MP3", SampleRate: 4000})

	w := httptest.NewRecorder()
	SendServiceError(w, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ValidationError", response.Kind)
	assert.Equal(t, "Audio failed on 'required'; Encoding failed on 'oneof'; SampleRate failed on 'gte'", response.Error)
	assert.Len(t, response.Details, 3)
	assert.Contains(t, response.Details, "SampleRate")
}
