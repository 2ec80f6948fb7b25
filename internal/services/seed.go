package services

import (
	"context"
	"time"

	"github.com/kampongconnect/backend/internal/models"
)

// AccountFixture is a demo account registered by seeding
type AccountFixture struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Profile   models.Profile
	Verified  bool
	CreatedAt time.Time
}

var sgt = time.FixedZone("SGT", 8*60*60)

func sgTime(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, sgt).UTC()
}

// DemoAccounts are the documented demo logins
func DemoAccounts() []AccountFixture {
	return []AccountFixture{
		{
			ID: "user_elder1", Name: "John Elder", Email: "elder@example.com", Password: "elder123",
			Profile: models.ElderProfile{
				Age:                    72,
				Needs:                  []string{"shopping", "household"},
				PreferredCommunication: "voice",
				Languages:              []models.Language{models.LanguageEnglish, models.LanguageMandarin},
			},
			CreatedAt: sgTime(2025, time.August, 1, 9, 0),
		},
		{
			ID: "user_elder2", Name: "Mary Elder", Email: "mary.elder@kampong.sg", Password: "mary123",
			Profile: models.ElderProfile{
				Age:                    68,
				PreferredCommunication: "text",
				Languages:              []models.Language{models.LanguageEnglish},
			},
			CreatedAt: sgTime(2025, time.August, 2, 9, 0),
		},
		{
			ID: "user_elder3", Name: "Tan Ah Kow", Email: "ahkow.tan@kampong.sg", Password: "ahkow123",
			Profile: models.ElderProfile{
				Age:       81,
				Needs:     []string{"medical escort"},
				Languages: []models.Language{models.LanguageMandarin, models.LanguageMalay},
				EmergencyContact: &models.EmergencyContact{
					Name: "Tan Mei Ling", Relationship: "Daughter", Phone: "+65 9876 5432",
				},
			},
			CreatedAt: sgTime(2025, time.August, 3, 9, 0),
		},
		{
			ID: "user_volunteer1", Name: "Jane Volunteer", Email: "volunteer@example.com", Password: "volunteer123",
			Profile: models.VolunteerProfile{
				ServicesOffered: []string{"shopping", "escort", "companionship"},
				Languages:       []models.Language{models.LanguageEnglish},
			},
			Verified:  true,
			CreatedAt: sgTime(2025, time.August, 4, 9, 0),
		},
		{
			ID: "user_volunteer2", Name: "David Helper", Email: "david@kampong.sg", Password: "david123",
			Profile: models.VolunteerProfile{
				ServicesOffered: []string{"household"},
				Languages:       []models.Language{models.LanguageEnglish, models.LanguageTamil},
			},
			CreatedAt: sgTime(2025, time.August, 5, 9, 0),
		},
	}
}

// DemoRequests reference the ids of DemoAccounts
func DemoRequests() []models.AssistanceRequest {
	return []models.AssistanceRequest{
		{
			ID:            "req_grocery_help",
			ElderID:       "user_elder1",
			Title:         "Grocery Shopping Help",
			Description:   "Need help with weekly grocery shopping at NTUC FairPrice. Looking for someone to accompany me and help carry items.",
			Category:      models.CategoryShopping,
			ScheduledDate: sgTime(2025, time.September, 5, 10, 0),
			Duration:      120,
			Location:      models.Location{Address: "Toa Payoh Central", PostalCode: "310184"},
			Status:        models.StatusOpen,
			Urgency:       models.UrgencyMedium,
			CreatedAt:     sgTime(2025, time.September, 1, 8, 0),
		},
		{
			ID:            "req_coffee_chat",
			ElderID:       "user_elder2",
			Title:         "Coffee Chat Companion",
			Description:   "Looking for someone to have coffee and chat with at the void deck. Just need some company and conversation.",
			Category:      models.CategoryWellbeing,
			ScheduledDate: sgTime(2025, time.September, 6, 15, 0),
			Duration:      60,
			Location:      models.Location{Address: "Ang Mo Kio Ave 3", PostalCode: "560123"},
			Status:        models.StatusOpen,
			Urgency:       models.UrgencyLow,
			CreatedAt:     sgTime(2025, time.September, 2, 10, 30),
		},
		{
			ID:                 "req_doctor_escort",
			ElderID:            "user_elder3",
			Title:              "Doctor Appointment Escort",
			Description:        "Need someone to accompany me to my doctor appointment at the polyclinic. Help with transport and waiting.",
			Category:           models.CategoryGeneral,
			ScheduledDate:      sgTime(2025, time.September, 7, 9, 0),
			Duration:           180,
			Location:           models.Location{Address: "Bedok Polyclinic", PostalCode: "469662"},
			Status:             models.StatusMatched,
			Urgency:            models.UrgencyHigh,
			MatchedVolunteerID: "user_volunteer1",
			CreatedAt:          sgTime(2025, time.August, 30, 14, 15),
		},
		{
			ID:            "req_household_help",
			ElderID:       "user_elder1",
			Title:         "Light Household Cleaning",
			Description:   "Need help with light cleaning tasks - sweeping, mopping, and organizing. My back has been giving me trouble.",
			Category:      models.CategoryHousehold,
			ScheduledDate: sgTime(2025, time.September, 8, 14, 0),
			Duration:      90,
			Location:      models.Location{Address: "Jurong West St 42", PostalCode: "640123"},
			Status:        models.StatusOpen,
			Urgency:       models.UrgencyMedium,
			CreatedAt:     sgTime(2025, time.September, 3, 11, 20),
		},
	}
}

// SeedDemoData seeds both stores. Each store seeds only when its own
// snapshot key has never been written.
func SeedDemoData(ctx context.Context, directory *UserDirectory, ledger *RequestLedger) (accounts, requests bool, err error) {
	accounts, err = directory.Seed(ctx, DemoAccounts())
	if err != nil {
		return false, false, err
	}
	requests, err = ledger.Seed(ctx, DemoRequests())
	if err != nil {
		return accounts, false, err
	}
	return accounts, requests, nil
}
