package service

import (
	"context"
	"errors"

	"rewear/internal/cache"
	"rewear/internal/featureflags"
	"rewear/internal/filter"
	"rewear/internal/models"
	"rewear/internal/notifications"
	"rewear/internal/observability"
	"rewear/internal/repository"
	"rewear/internal/swipe"
)

// SwipeResult is the outcome of one swipe.
type SwipeResult struct {
	Applied       bool            `json:"applied"`
	Decision      *swipe.Decision `json:"decision,omitempty"`
	PointsAwarded int             `json:"points_awarded"`
	Session       swipe.Snapshot  `json:"session"`
}

// SwipeService runs swipe sessions over the browseable catalog.
type SwipeService struct {
	sessions  *swipe.Sessions
	catalog   *CatalogService
	users     repository.UserRepository
	cache     *cache.Cache
	flags     *featureflags.Manager
	publisher notifications.Publisher
}

func NewSwipeService(
	sessions *swipe.Sessions,
	catalog *CatalogService,
	users repository.UserRepository,
	c *cache.Cache,
	flags *featureflags.Manager,
	publisher notifications.Publisher,
) *SwipeService {
	return &SwipeService{
		sessions:  sessions,
		catalog:   catalog,
		users:     users,
		cache:     c,
		flags:     flags,
		publisher: publisher,
	}
}

// Start opens a session for viewerID over the catalog filtered by spec.
func (s *SwipeService) Start(ctx context.Context, viewerID string, spec filter.Spec) (swipe.Snapshot, error) {
	if viewerID == "" {
		return swipe.Snapshot{}, models.NewUnauthorizedError("Viewer is required")
	}
	catalog, err := s.catalog.SwipeCatalog(ctx)
	if err != nil {
		return swipe.Snapshot{}, err
	}
	snap := s.sessions.Start(viewerID, catalog, spec)
	callLog.LogServiceCall(ctx, "swipe", "Start", map[string]interface{}{"session_id": snap.SessionID, "remaining": snap.Remaining})
	return snap, nil
}

// Current returns the session snapshot.
func (s *SwipeService) Current(_ context.Context, viewerID, sessionID string) (swipe.Snapshot, error) {
	snap, err := s.sessions.Get(sessionID, viewerID)
	if err != nil {
		return swipe.Snapshot{}, sessionErr(err, sessionID)
	}
	return snap, nil
}

// Decide applies a swipe. Swiping an exhausted session is a no-op.
// A right swipe credits the viewer and notifies the item owner.
func (s *SwipeService) Decide(ctx context.Context, viewerID, sessionID string, direction swipe.Direction) (*SwipeResult, error) {
	decision, ok, snap, err := s.sessions.Decide(sessionID, viewerID, direction)
	if err != nil {
		return nil, sessionErr(err, sessionID)
	}
	res := &SwipeResult{Applied: ok, Session: snap}
	if !ok {
		return res, nil
	}
	res.Decision = &decision
	observability.SwipesTotal.WithLabelValues(string(direction)).Inc()

	if !decision.Interest {
		return res, nil
	}

	if s.flags.Enabled(featureflags.SwipePoints, viewerID) {
		if err := s.users.AddPoints(ctx, viewerID, models.InterestPoints); err != nil {
			// the swipe itself already happened
			callLog.LogServiceError(ctx, "swipe", "Decide", err)
		} else {
			res.PointsAwarded = models.InterestPoints
			s.cache.InvalidateLeaderboards(ctx)
		}
	}

	notify(ctx, s.publisher, func(p notifications.Publisher) error {
		return p.PublishUser(ctx, decision.Item.OwnerID, notifications.NewEvent(notifications.EventInterest, map[string]string{
			"item_id":   decision.Item.ID,
			"viewer_id": viewerID,
		}))
	})
	return res, nil
}

// Reset refilters the session with spec, keeping its swipe count.
func (s *SwipeService) Reset(ctx context.Context, viewerID, sessionID string, spec filter.Spec) (swipe.Snapshot, error) {
	catalog, err := s.catalog.SwipeCatalog(ctx)
	if err != nil {
		return swipe.Snapshot{}, err
	}
	snap, err := s.sessions.Reset(sessionID, viewerID, catalog, spec)
	if err != nil {
		return swipe.Snapshot{}, sessionErr(err, sessionID)
	}
	return snap, nil
}

func sessionErr(err error, sessionID string) error {
	switch {
	case errors.Is(err, swipe.ErrSessionNotFound):
		return models.NewNotFoundError("swipe_session", sessionID)
	case errors.Is(err, swipe.ErrSessionForbidden):
		return models.NewForbiddenError("Swipe session belongs to another viewer")
	default:
		return models.NewInternalError(err)
	}
}
