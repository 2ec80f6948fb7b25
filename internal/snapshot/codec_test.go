package snapshot

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kampongconnect/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest(t *testing.T) models.AssistanceRequest {
	t.Helper()
	scheduled, err := time.Parse(time.RFC3339Nano, "2025-09-05T10:00:00.123Z")
	require.NoError(t, err)
	created, err := time.Parse(time.RFC3339Nano, "2025-09-01T08:00:00.456Z")
	require.NoError(t, err)

	return models.AssistanceRequest{
		ID:            "req_grocery_help",
		ElderID:       "user_elder1",
		Title:         "Grocery Shopping Help",
		Description:   "Weekly grocery run",
		Category:      models.CategoryShopping,
		ScheduledDate: scheduled,
		Duration:      120,
		Location:      models.Location{Address: "Toa Payoh Central", PostalCode: "310184"},
		Status:        models.StatusOpen,
		Urgency:       models.UrgencyMedium,
		CreatedAt:     created,
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := New[models.AssistanceRequest]("requests", nil)
	original := []models.AssistanceRequest{sampleRequest(t)}

	data, err := codec.Encode(original, time.Now())
	require.NoError(t, err)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, original, decoded)
	assert.True(t, original[0].ScheduledDate.Equal(decoded[0].ScheduledDate))
	assert.Equal(t, 123, decoded[0].ScheduledDate.Nanosecond()/int(time.Millisecond))
}

func TestCodec_EmptyCollection(t *testing.T) {
	codec := New[models.AssistanceRequest]("requests", nil)

	data, err := codec.Encode(nil, time.Now())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"records":[]`)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestCodec_RejectsMalformed(t *testing.T) {
	codec := New[models.AssistanceRequest]("requests", nil)

	tests := []struct {
		name string
		data string
	}{
		{"not json", `kampong`},
		{"bare array from an older build", `[{"id":"req_1"}]`},
		{"unknown version", `{"version":7,"kind":"requests","savedAt":"2025-09-01T00:00:00Z","records":[]}`},
		{"wrong kind", `{"version":1,"kind":"accounts","savedAt":"2025-09-01T00:00:00Z","records":[]}`},
		{"unknown envelope field", `{"version":1,"kind":"requests","savedAt":"2025-09-01T00:00:00Z","records":[],"extra":1}`},
		{"missing records", `{"version":1,"kind":"requests","savedAt":"2025-09-01T00:00:00Z"}`},
		{"trailing data", `{"version":1,"kind":"requests","savedAt":"2025-09-01T00:00:00Z","records":[]} {}`},
		{"bad date", `{"version":1,"kind":"requests","savedAt":"2025-09-01T00:00:00Z","records":[{"id":"req_1","scheduledDate":"tomorrow"}]}`},
		{"unknown record field", `{"version":1,"kind":"requests","savedAt":"2025-09-01T00:00:00Z","records":[{"id":"req_1","elderId":"user_1","title":"t","description":"d","category":"general","scheduledDate":"2025-09-05T10:00:00Z","duration":30,"location":{"address":"a","postalCode":"1"},"status":"open","urgency":"low","createdAt":"2025-09-01T00:00:00Z","bogusField":42}]}`},
		{"unknown location field", `{"version":1,"kind":"requests","savedAt":"2025-09-01T00:00:00Z","records":[{"id":"req_1","elderId":"user_1","title":"t","description":"d","category":"general","scheduledDate":"2025-09-05T10:00:00Z","duration":30,"location":{"address":"a","postalCode":"1","unit":"#03-12"},"status":"open","urgency":"low","createdAt":"2025-09-01T00:00:00Z"}]}`},
		{"invalid record", `{"version":1,"kind":"requests","savedAt":"2025-09-01T00:00:00Z","records":[{"id":"req_1","elderId":"user_1","title":"t","description":"d","category":"general","scheduledDate":"2025-09-05T10:00:00Z","duration":0,"location":{"address":"a","postalCode":"1"},"status":"open","urgency":"low","createdAt":"2025-09-01T00:00:00Z"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode([]byte(tt.data))
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
		})
	}
}

func TestCodec_Check(t *testing.T) {
	codec := New[models.AssistanceRequest]("requests", nil)
	codec.Check = func(r models.AssistanceRequest) error {
		if r.Status != models.StatusOpen {
			return errors.New("not open")
		}
		return nil
	}

	req := sampleRequest(t)
	req.Status = models.StatusCompleted
	data, err := codec.Encode([]models.AssistanceRequest{req}, time.Now())
	require.NoError(t, err)

	_, err = codec.Decode(data)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "not open")
}

func TestCodec_Accounts(t *testing.T) {
	codec := New[models.StoredAccount]("accounts", nil)
	created := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

	accounts := []models.StoredAccount{
		{
			Account: models.Account{
				ID: "user_elder1", Email: "elder@example.com", Name: "John Elder",
				Role: models.RoleElder, CreatedAt: created,
				Profile: models.ElderProfile{Age: 72, Languages: []models.Language{models.LanguageEnglish}},
			},
			PasswordHash: "c2FsdA==$aGFzaA==",
		},
		{
			Account: models.Account{
				ID: "user_volunteer1", Email: "volunteer@example.com", Name: "Jane Volunteer",
				Role: models.RoleVolunteer, CreatedAt: created, Profile: models.VolunteerProfile{},
			},
			PasswordHash: "c2FsdA==$aGFzaA==",
		},
	}

	data, err := codec.Encode(accounts, created)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"passwordHash"`)

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, "c2FsdA==$aGFzaA==", decoded[0].PasswordHash)
	assert.Equal(t, models.ElderProfile{Age: 72, Languages: []models.Language{models.LanguageEnglish}}, decoded[0].Profile)
	assert.IsType(t, models.VolunteerProfile{}, decoded[1].Profile)
}

func TestCodec_AccountsRejectUnknownFields(t *testing.T) {
	codec := New[models.StoredAccount]("accounts", nil)
	const account = `{"id":"user_elder1","email":"elder@example.com","name":"John Elder","role":"elder","createdAt":"2025-09-01T08:00:00Z","isVerified":false,"passwordHash":"c2FsdA==$aGFzaA==",%s}`
	envelope := `{"version":1,"kind":"accounts","savedAt":"2025-09-01T08:00:00Z","records":[` + account + `]}`

	valid := fmt.Sprintf(envelope, `"profile":{"age":72}`)
	decoded, err := codec.Decode([]byte(valid))
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, models.ElderProfile{Age: 72}, decoded[0].Profile)

	for name, extra := range map[string]string{
		"account field": `"profile":{"age":72},"nickname":"Johnny"`,
		"profile field": `"profile":{"age":72,"bloodType":"O"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decode([]byte(fmt.Sprintf(envelope, extra)))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
