package models

import (
	"time"
)

// RequestStatus is the lifecycle state of an assistance request
type RequestStatus string

const (
	StatusOpen       RequestStatus = "open"
	StatusMatched    RequestStatus = "matched"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusMatched, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// HoldsVolunteer reports whether a request in state s must carry a matched volunteer
func (s RequestStatus) HoldsVolunteer() bool {
	return s == StatusMatched || s == StatusInProgress
}

// Category groups requests by the kind of help needed
type Category string

const (
	CategoryGeneral   Category = "general"
	CategoryHousehold Category = "household"
	CategoryShopping  Category = "shopping"
	CategoryWellbeing Category = "wellbeing"
)

// Urgency tells volunteers how soon help is needed
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Location is where the help takes place
type Location struct {
	Address    string `json:"address" validate:"required" example:"Toa Payoh Central"`
	PostalCode string `json:"postalCode" validate:"required" example:"310184"`
}

// AssistanceRequest is one elder's request for help
type AssistanceRequest struct {
	ID                   string        `json:"id" validate:"required" example:"req_1b7d2c40"`
	ElderID              string        `json:"elderId" validate:"required"`
	Title                string        `json:"title" validate:"required"`
	Description          string        `json:"description" validate:"required"`
	Category             Category      `json:"category" validate:"oneof=general household shopping wellbeing"`
	ScheduledDate        time.Time     `json:"scheduledDate" validate:"required"`
	Duration             int           `json:"duration" validate:"gt=0" example:"120"` // minutes
	Location             Location      `json:"location"`
	Status               RequestStatus `json:"status" validate:"oneof=open matched in_progress completed cancelled"`
	Urgency              Urgency       `json:"urgency" validate:"oneof=low medium high"`
	MatchedVolunteerID   string        `json:"matchedVolunteerId,omitempty" validate:"required_if=Status matched,required_if=Status in_progress"`
	CompletedVolunteerID string        `json:"completedVolunteerId,omitempty"`
	CreatedAt            time.Time     `json:"createdAt" validate:"required"`
}

// Review is a rating one party of a completed request gives the other
type Review struct {
	ID                  string    `json:"id" validate:"required"`
	AssistanceRequestID string    `json:"assistanceRequestId" validate:"required"`
	ReviewerID          string    `json:"reviewerId" validate:"required"`
	RevieweeID          string    `json:"revieweeId" validate:"required,nefield=ReviewerID"`
	Rating              int       `json:"rating" validate:"gte=1,lte=5"`
	Comment             string    `json:"comment" validate:"max=1000"`
	CreatedAt           time.Time `json:"createdAt" validate:"required"`
}

// ReviewSummary aggregates the reviews left for one account
type ReviewSummary struct {
	AccountID string  `json:"accountId"`
	Count     int     `json:"count"`
	Average   float64 `json:"average"`
}

// ElderStatistics is the dashboard summary for an elder
type ElderStatistics struct {
	ActiveRequests int `json:"activeRequests"`
	CompletedTasks int `json:"completedTasks"`
	TotalRequests  int `json:"totalRequests"`
}

// VolunteerStatistics is the dashboard summary for a volunteer
type VolunteerStatistics struct {
	AvailableRequests int `json:"availableRequests"`
	MyCommitments     int `json:"myCommitments"`
	CompletedTasks    int `json:"completedTasks"`
}

// Statistics carries the summary matching the caller's role; only one of
// Elder and Volunteer is set.
type Statistics struct {
	Role      Role                 `json:"role"`
	Elder     *ElderStatistics     `json:"elder,omitempty"`
	Volunteer *VolunteerStatistics `json:"volunteer,omitempty"`
}
