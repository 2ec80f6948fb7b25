package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/kampongconnect/backend/internal/audit"
	"github.com/kampongconnect/backend/internal/models"
	"github.com/kampongconnect/backend/internal/snapshot"
	"github.com/kampongconnect/backend/internal/storage"
	"go.uber.org/zap"
)

// RequestLookup resolves request ids for the review book
type RequestLookup interface {
	Get(id string) (models.AssistanceRequest, error)
}

// ReviewBook keeps the ratings the two parties of a completed request leave
// for each other.
type ReviewBook struct {
	mu        sync.Mutex
	reviews   []models.Review
	snapshots *collection[models.Review]
	requests  RequestLookup
	validator *ValidationHelper
	audit     *audit.Logger
	logger    *zap.Logger
	now       func() time.Time
}

func NewReviewBook(store storage.Store, key string, requests RequestLookup, auditLogger *audit.Logger, logger *zap.Logger) *ReviewBook {
	vh := NewValidationHelper()
	return &ReviewBook{
		snapshots: &collection[models.Review]{
			store: store,
			key:   key,
			codec: snapshot.New[models.Review]("reviews", vh.Validator()),
			now:   time.Now,
		},
		requests:  requests,
		validator: vh,
		audit:     auditLogger,
		logger:    logger.Named("reviews"),
		now:       time.Now,
	}
}

// Load replaces the in-memory reviews with the persisted snapshot
func (b *ReviewBook) Load(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	reviews, found, err := b.snapshots.load(ctx)
	if err != nil {
		b.logger.Error("failed to load reviews", zap.Error(err))
		return err
	}
	if err := checkReviews(reviews); err != nil {
		b.logger.Error("rejected reviews snapshot", zap.Error(err))
		return err
	}

	b.reviews = reviews
	b.logger.Info("reviews loaded", zap.Int("count", len(reviews)), zap.Bool("snapshot_found", found))
	return nil
}

// Submit records reviewerID's rating of the other party of a completed request
func (b *ReviewBook) Submit(ctx context.Context, reviewerID, requestID string, rating int, comment string) (models.Review, error) {
	req, err := b.requests.Get(requestID)
	if err != nil {
		return models.Review{}, err
	}
	if req.Status != models.StatusCompleted {
		return models.Review{}, newError(KindInvalidTransition, "only completed requests can be reviewed", nil)
	}

	var reviewee string
	switch {
	case reviewerID == "":
		return models.Review{}, validationErr("reviewer is required")
	case reviewerID == req.ElderID:
		reviewee = req.CompletedVolunteerID
	case reviewerID == req.CompletedVolunteerID:
		reviewee = req.ElderID
	default:
		return models.Review{}, validationErr("only the elder and the volunteer of a request can review it")
	}
	if reviewee == "" {
		return models.Review{}, validationErr("request was completed without a volunteer")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, r := range b.reviews {
		if r.AssistanceRequestID == requestID && r.ReviewerID == reviewerID {
			return models.Review{}, validationErr("request already reviewed")
		}
	}

	review := models.Review{
		ID:                  newID("rev"),
		AssistanceRequestID: requestID,
		ReviewerID:          reviewerID,
		RevieweeID:          reviewee,
		Rating:              rating,
		Comment:             strings.TrimSpace(comment),
		CreatedAt:           stamp(b.now()),
	}
	if err := b.validator.validate(&review); err != nil {
		return models.Review{}, err
	}

	next := append(cloneSlice(b.reviews), review)
	if err := b.snapshots.save(ctx, next); err != nil {
		b.logger.Error("failed to persist reviews, keeping last saved state", zap.Error(err))
		b.audit.LogError(requestID, reviewerID, err)
		return models.Review{}, err
	}
	b.reviews = next

	b.audit.LogReview(requestID, reviewerID, reviewee, rating)
	return review, nil
}

// ListFor returns the reviews left for an account, oldest first
func (b *ReviewBook) ListFor(revieweeID string) []models.Review {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := []models.Review{}
	for _, r := range b.reviews {
		if r.RevieweeID == revieweeID {
			out = append(out, r)
		}
	}
	return out
}

// Summary averages an account's ratings to two decimal places
func (b *ReviewBook) Summary(revieweeID string) models.ReviewSummary {
	reviews := b.ListFor(revieweeID)
	summary := models.ReviewSummary{AccountID: revieweeID, Count: len(reviews)}
	if len(reviews) == 0 {
		return summary
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	summary.Average = math.Round(float64(total)/float64(len(reviews))*100) / 100
	return summary
}

// checkReviews holds a snapshot to unique ids and one review per reviewer
// per request
func checkReviews(reviews []models.Review) error {
	type reviewerKey struct{ request, reviewer string }
	ids := make(map[string]struct{}, len(reviews))
	reviewers := make(map[reviewerKey]struct{}, len(reviews))
	for _, r := range reviews {
		if _, dup := ids[r.ID]; dup {
			return persistenceErr("reviews snapshot has duplicate id "+r.ID, snapshot.ErrMalformed)
		}
		ids[r.ID] = struct{}{}

		k := reviewerKey{r.AssistanceRequestID, r.ReviewerID}
		if _, dup := reviewers[k]; dup {
			return persistenceErr(fmt.Sprintf("reviews snapshot has two reviews of %s by %s", k.request, k.reviewer), snapshot.ErrMalformed)
		}
		reviewers[k] = struct{}{}
	}
	return nil
}
