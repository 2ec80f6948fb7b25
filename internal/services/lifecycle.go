package services

import "github.com/kampongconnect/backend/internal/models"

// transitions lists every status a request may move to from a given status.
// Terminal statuses have no entry.
var transitions = map[models.RequestStatus][]models.RequestStatus{
	models.StatusOpen:       {models.StatusMatched, models.StatusCancelled},
	models.StatusMatched:    {models.StatusInProgress, models.StatusCompleted, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted},
}

// CanTransition reports whether a request in status from may move to status to
func CanTransition(from, to models.RequestStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s in one step
func NextStatuses(s models.RequestStatus) []models.RequestStatus {
	return append([]models.RequestStatus(nil), transitions[s]...)
}
