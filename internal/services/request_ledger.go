package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kampongconnect/backend/internal/audit"
	"github.com/kampongconnect/backend/internal/models"
	"github.com/kampongconnect/backend/internal/snapshot"
	"github.com/kampongconnect/backend/internal/storage"
	"go.uber.org/zap"
)

// AccountLookup resolves account ids. The ledger only ever reads accounts.
type AccountLookup interface {
	Get(id string) (models.Account, error)
}

// NewRequest is the input for creating an assistance request
type NewRequest struct {
	RequesterID   string          `json:"-" validate:"required"`
	Title         string          `json:"title" validate:"required,max=200" example:"Grocery Shopping Help"`
	Description   string          `json:"description" validate:"required,max=2000"`
	Category      models.Category `json:"category" validate:"required,oneof=general household shopping wellbeing" example:"shopping"`
	ScheduledDate string          `json:"scheduledDate" validate:"required" example:"2025-09-05T10:00:00+08:00"`
	Duration      int             `json:"duration" validate:"gt=0" example:"120"`
	Location      models.Location `json:"location"`
	Urgency       models.Urgency  `json:"urgency" validate:"required,oneof=low medium high" example:"medium"`
}

var scheduleLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseScheduledDate accepts RFC 3339 and the zone-less forms sent by date
// pickers. Zone-less values are read as UTC.
func ParseScheduledDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return stamp(t), nil
		}
	}
	return time.Time{}, validationErr("scheduledDate %q is not a valid date", value)
}

// RequestLedger owns every assistance request and drives its lifecycle
type RequestLedger struct {
	mu        sync.Mutex
	requests  []models.AssistanceRequest
	snapshots *collection[models.AssistanceRequest]
	accounts  AccountLookup
	validator *ValidationHelper
	audit     *audit.Logger
	logger    *zap.Logger
	now       func() time.Time
	hooks     []TransitionHook
}

func NewRequestLedger(store storage.Store, key string, accounts AccountLookup, auditLogger *audit.Logger, logger *zap.Logger) *RequestLedger {
	vh := NewValidationHelper()
	codec := snapshot.New[models.AssistanceRequest]("requests", vh.Validator())
	codec.Check = checkRequest

	return &RequestLedger{
		snapshots: &collection[models.AssistanceRequest]{
			store: store,
			key:   key,
			codec: codec,
			now:   time.Now,
		},
		accounts:  accounts,
		validator: vh,
		audit:     auditLogger,
		logger:    logger.Named("ledger"),
		now:       time.Now,
	}
}

// Load replaces the in-memory requests with the persisted snapshot
func (l *RequestLedger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	requests, found, err := l.snapshots.load(ctx)
	if err != nil {
		l.logger.Error("failed to load requests", zap.Error(err))
		return err
	}
	if err := checkRequestIDs(requests); err != nil {
		l.logger.Error("rejected requests snapshot", zap.Error(err))
		return err
	}

	l.requests = requests
	l.logger.Info("requests loaded", zap.Int("count", len(requests)), zap.Bool("snapshot_found", found))
	return nil
}

// Create records a new open request for an elder
func (l *RequestLedger) Create(ctx context.Context, in NewRequest) (models.AssistanceRequest, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := l.validator.validate(&in); err != nil {
		return models.AssistanceRequest{}, err
	}
	scheduled, err := ParseScheduledDate(in.ScheduledDate)
	if err != nil {
		return models.AssistanceRequest{}, err
	}

	requester, err := l.accounts.Get(in.RequesterID)
	if err != nil {
		return models.AssistanceRequest{}, err
	}
	if requester.Role != models.RoleElder {
		return models.AssistanceRequest{}, validationErr("only elders can create requests")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	req := models.AssistanceRequest{
		ID:            newID("req"),
		ElderID:       requester.ID,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		ScheduledDate: scheduled,
		Duration:      in.Duration,
		Location:      in.Location,
		Status:        models.StatusOpen,
		Urgency:       in.Urgency,
		CreatedAt:     stamp(l.now()),
	}

	if err := l.commit(ctx, append(cloneSlice(l.requests), req)); err != nil {
		return models.AssistanceRequest{}, err
	}

	l.audit.LogRequestCreated(req.ID, req.ElderID)
	l.logger.Info("request created", zap.String("request_id", req.ID), zap.String("elder_id", req.ElderID))
	return req, nil
}

// Get returns one request by id
func (l *RequestLedger) Get(id string) (models.AssistanceRequest, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(id); i >= 0 {
		return l.requests[i], nil
	}
	return models.AssistanceRequest{}, notFoundErr("Request not found")
}

// ListByRequester returns the requests an elder created, oldest first
func (l *RequestLedger) ListByRequester(requesterID string) []models.AssistanceRequest {
	return l.filter(func(r models.AssistanceRequest) bool {
		return r.ElderID == requesterID
	})
}

// ListAvailable returns the open requests volunteers can offer to help with
func (l *RequestLedger) ListAvailable() []models.AssistanceRequest {
	return l.filter(func(r models.AssistanceRequest) bool {
		return r.Status == models.StatusOpen
	})
}

// ListByVolunteer returns the requests a volunteer is currently committed to
func (l *RequestLedger) ListByVolunteer(volunteerID string) []models.AssistanceRequest {
	return l.filter(func(r models.AssistanceRequest) bool {
		return r.Status.HoldsVolunteer() && r.MatchedVolunteerID == volunteerID
	})
}

// Actor is the account asking for a transition
type Actor struct {
	ID   string
	Role models.Role
}

// TransitionHook runs after a transition has been saved, outside the ledger lock
type TransitionHook func(ctx context.Context, from models.RequestStatus, req models.AssistanceRequest)

// OnTransition registers h to run after every successful transition
func (l *RequestLedger) OnTransition(h TransitionHook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, h)
}

// Transition moves a request to status to. actingVolunteerID is required
// when moving to matched and must belong to a volunteer.
func (l *RequestLedger) Transition(ctx context.Context, requestID string, to models.RequestStatus, actingVolunteerID string) (models.AssistanceRequest, error) {
	return l.transition(ctx, requestID, to, actingVolunteerID, nil)
}

// TransitionAs moves a request on behalf of actor. Whether actor may make
// the move is decided against the request as it stands under the ledger
// lock; a refusal is a Forbidden error. Moving to matched matches actor.
func (l *RequestLedger) TransitionAs(ctx context.Context, requestID string, to models.RequestStatus, actor Actor) (models.AssistanceRequest, error) {
	volunteerID := ""
	if to == models.StatusMatched {
		volunteerID = actor.ID
	}
	return l.transition(ctx, requestID, to, volunteerID, &actor)
}

func (l *RequestLedger) transition(ctx context.Context, requestID string, to models.RequestStatus, volunteerID string, actor *Actor) (models.AssistanceRequest, error) {
	if !to.Valid() {
		return models.AssistanceRequest{}, validationErr("unknown status %q", to)
	}

	req, from, hooks, err := l.apply(ctx, requestID, to, volunteerID, actor)
	if err != nil {
		return models.AssistanceRequest{}, err
	}

	actorID := volunteerID
	if actor != nil {
		actorID = actor.ID
	}
	l.audit.LogTransition(req.ID, actorID, string(from), string(to))
	l.logger.Info("request transitioned",
		zap.String("request_id", req.ID),
		zap.String("actor_id", actorID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	for _, h := range hooks {
		h(ctx, from, req)
	}
	return req, nil
}

func (l *RequestLedger) apply(ctx context.Context, requestID string, to models.RequestStatus, volunteerID string, actor *Actor) (models.AssistanceRequest, models.RequestStatus, []TransitionHook, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(requestID)
	if i < 0 {
		return models.AssistanceRequest{}, "", nil, notFoundErr("Request not found")
	}
	req := l.requests[i]
	from := req.Status

	if actor != nil {
		if msg := authorizeTransition(*actor, req, to); msg != "" {
			return models.AssistanceRequest{}, "", nil, forbiddenErr("%s", msg)
		}
	}
	if !CanTransition(from, to) {
		return models.AssistanceRequest{}, "", nil, newError(KindInvalidTransition,
			fmt.Sprintf("cannot move request from %s to %s", from, to), nil)
	}

	switch to {
	case models.StatusMatched:
		if err := l.requireVolunteer(volunteerID); err != nil {
			return models.AssistanceRequest{}, "", nil, err
		}
		req.MatchedVolunteerID = volunteerID
	case models.StatusInProgress:
		if req.MatchedVolunteerID == "" {
			return models.AssistanceRequest{}, "", nil, newError(KindInvalidTransition, "request has no matched volunteer", nil)
		}
	case models.StatusCompleted:
		req.CompletedVolunteerID = req.MatchedVolunteerID
		req.MatchedVolunteerID = ""
	case models.StatusCancelled:
		req.MatchedVolunteerID = ""
	}
	req.Status = to

	next := cloneSlice(l.requests)
	next[i] = req
	if err := l.commit(ctx, next); err != nil {
		return models.AssistanceRequest{}, "", nil, err
	}
	return req, from, append([]TransitionHook(nil), l.hooks...), nil
}

// authorizeTransition returns why actor may not move req to status to, or
// "" if it may. Whether the move itself is legal is checked separately.
func authorizeTransition(actor Actor, req models.AssistanceRequest, to models.RequestStatus) string {
	isRequester := actor.ID == req.ElderID
	isMatched := req.MatchedVolunteerID != "" && actor.ID == req.MatchedVolunteerID

	switch to {
	case models.StatusMatched:
		if actor.Role != models.RoleVolunteer {
			return "Only volunteers can offer help"
		}
	case models.StatusInProgress:
		if !isMatched {
			return "Only the matched volunteer can start this request"
		}
	case models.StatusCompleted:
		if !isRequester && !isMatched {
			return "Only the elder or the matched volunteer can complete this request"
		}
	case models.StatusCancelled:
		if !isRequester && !(isMatched && req.Status == models.StatusMatched) {
			return "Only the elder can cancel this request"
		}
	}
	return ""
}

// Stats summarizes the ledger from the point of view of one account
func (l *RequestLedger) Stats(accountID string, role models.Role) (models.Statistics, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch role {
	case models.RoleElder:
		var s models.ElderStatistics
		for _, r := range l.requests {
			if r.ElderID != accountID {
				continue
			}
			s.TotalRequests++
			switch r.Status {
			case models.StatusOpen, models.StatusMatched:
				s.ActiveRequests++
			case models.StatusCompleted:
				s.CompletedTasks++
			}
		}
		return models.Statistics{Role: role, Elder: &s}, nil

	case models.RoleVolunteer:
		var s models.VolunteerStatistics
		for _, r := range l.requests {
			switch {
			case r.Status == models.StatusOpen:
				s.AvailableRequests++
			case r.Status.HoldsVolunteer() && r.MatchedVolunteerID == accountID:
				s.MyCommitments++
			case r.Status == models.StatusCompleted && r.CompletedVolunteerID == accountID:
				s.CompletedTasks++
			}
		}
		return models.Statistics{Role: role, Volunteer: &s}, nil
	}

	return models.Statistics{}, validationErr("role must be \"elder\" or \"volunteer\"")
}

// Seed writes the fixture requests when no requests snapshot exists yet
func (l *RequestLedger) Seed(ctx context.Context, fixtures []models.AssistanceRequest) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	exists, err := l.snapshots.exists(ctx)
	if err != nil || exists {
		return false, err
	}

	next := make([]models.AssistanceRequest, 0, len(fixtures))
	for _, f := range fixtures {
		f.ScheduledDate = stamp(f.ScheduledDate)
		f.CreatedAt = stamp(f.CreatedAt)
		if err := l.validator.validate(&f); err != nil {
			return false, err
		}
		if err := checkRequest(f); err != nil {
			return false, validationErr("fixture %s: %v", f.ID, err)
		}
		next = append(next, f)
	}
	if err := checkRequestIDs(next); err != nil {
		return false, err
	}

	if err := l.commit(ctx, next); err != nil {
		return false, err
	}
	l.logger.Info("demo requests seeded", zap.Int("count", len(next)))
	return true, nil
}

func (l *RequestLedger) requireVolunteer(id string) error {
	if id == "" {
		return validationErr("a volunteer id is required to match a request")
	}
	account, err := l.accounts.Get(id)
	if err != nil || account.Role != models.RoleVolunteer {
		return validationErr("only volunteers can be matched to a request")
	}
	return nil
}

func (l *RequestLedger) commit(ctx context.Context, next []models.AssistanceRequest) error {
	if err := l.snapshots.save(ctx, next); err != nil {
		l.logger.Error("failed to persist requests, keeping last saved state", zap.Error(err))
		l.audit.LogError("", "", err)
		return err
	}
	l.requests = next
	return nil
}

func (l *RequestLedger) indexOf(id string) int {
	for i, r := range l.requests {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (l *RequestLedger) filter(keep func(models.AssistanceRequest) bool) []models.AssistanceRequest {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := []models.AssistanceRequest{}
	for _, r := range l.requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// checkRequest holds the volunteer fields to the status they belong with
func checkRequest(r models.AssistanceRequest) error {
	if r.Status.HoldsVolunteer() != (r.MatchedVolunteerID != "") {
		return fmt.Errorf("request %s: matchedVolunteerId does not fit status %s", r.ID, r.Status)
	}
	if r.CompletedVolunteerID != "" && r.Status != models.StatusCompleted {
		return fmt.Errorf("request %s: completedVolunteerId set on a %s request", r.ID, r.Status)
	}
	return nil
}

func checkRequestIDs(requests []models.AssistanceRequest) error {
	seen := make(map[string]struct{}, len(requests))
	for _, r := range requests {
		if _, dup := seen[r.ID]; dup {
			return persistenceErr("requests snapshot has duplicate id "+r.ID, snapshot.ErrMalformed)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
