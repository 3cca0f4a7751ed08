package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"rewear/internal/cache"
	"rewear/internal/models"
	"rewear/internal/notifications"
	"rewear/internal/observability"
	"rewear/internal/repository"
)

// SwapService manages swap requests between members.
type SwapService struct {
	users     repository.UserRepository
	items     repository.ItemRepository
	swaps     repository.SwapRepository
	cache     *cache.Cache
	publisher notifications.Publisher
	// onAccepted runs after a swap is accepted; used to drop cached leaderboards.
	onAccepted func(ctx context.Context, req *models.SwapRequest)
	now        clock
}

func NewSwapService(
	users repository.UserRepository,
	items repository.ItemRepository,
	swaps repository.SwapRepository,
	c *cache.Cache,
	publisher notifications.Publisher,
	onAccepted func(ctx context.Context, req *models.SwapRequest),
) *SwapService {
	return &SwapService{
		users:      users,
		items:      items,
		swaps:      swaps,
		cache:      c,
		publisher:  publisher,
		onAccepted: onAccepted,
		now:        utcNow,
	}
}

// CreateSwapRequest records requesterID's interest in swapping for itemID.
func (s *SwapService) CreateSwapRequest(ctx context.Context, requesterID, itemID string) (*models.SwapRequest, error) {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, lookupErr(err, "user", requesterID)
	}
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, lookupErr(err, "item", itemID)
	}
	if item.OwnerID == requester.ID {
		return nil, models.NewSelfSwapError(item.ID)
	}
	if !item.Browsable() {
		return nil, models.NewValidationError("Item is not available for swapping")
	}

	req := &models.SwapRequest{
		ID:          uuid.NewString(),
		RequesterID: requester.ID,
		ItemID:      item.ID,
		Status:      models.SwapStatusPending,
	}
	if err := s.swaps.Create(ctx, req); err != nil {
		callLog.LogServiceError(ctx, "swap", "CreateSwapRequest", err)
		return nil, storeErr(err)
	}
	req.Requester = requester
	req.Item = item
	s.cache.Invalidate(ctx, cache.AdminStatsKey)

	observability.SwapRequestsTotal.WithLabelValues(string(models.SwapStatusPending)).Inc()
	callLog.LogServiceCall(ctx, "swap", "CreateSwapRequest", map[string]interface{}{"swap_id": req.ID, "item_id": item.ID})
	notify(ctx, s.publisher, func(p notifications.Publisher) error {
		return p.PublishUser(ctx, item.OwnerID, notifications.NewEvent(notifications.EventSwapRequested, req))
	})
	return req, nil
}

// ResolveSwapRequest lets the item owner accept or reject a pending request.
// Accepting marks the item swapped and credits the owner.
func (s *SwapService) ResolveSwapRequest(ctx context.Context, actorID, requestID string, decision models.SwapStatus) (*models.SwapRequest, error) {
	span, ctx := observability.StartSpan(ctx, "swap.resolve",
		attribute.String("swap.id", requestID),
		attribute.String("swap.decision", string(decision)),
	)
	defer span.End()

	req, err := s.resolve(ctx, actorID, requestID, decision)
	span.SetError(err)
	return req, err
}

func (s *SwapService) resolve(ctx context.Context, actorID, requestID string, decision models.SwapStatus) (*models.SwapRequest, error) {
	if decision != models.SwapStatusAccepted && decision != models.SwapStatusRejected {
		return nil, models.NewValidationError("decision must be accepted or rejected")
	}

	req, err := s.swaps.GetByID(ctx, requestID)
	if err != nil {
		return nil, lookupErr(err, "swap_request", requestID)
	}
	if req.Item == nil {
		return nil, models.NewNotFoundError("item", req.ItemID)
	}
	if req.Item.OwnerID != actorID {
		return nil, models.NewForbiddenError("Only the item owner can resolve this request")
	}
	if !req.Status.CanTransitionTo(decision) {
		return nil, models.NewInvalidTransitionError("swap_request", req.Status, decision)
	}

	from := req.Status
	at := s.now()
	if decision == models.SwapStatusAccepted {
		if req.Item.Status == models.ItemStatusSwapped {
			return nil, models.NewInvalidTransitionError("item", req.Item.Status, models.ItemStatusSwapped)
		}
		err = s.swaps.Accept(ctx, req, req.Item.OwnerID, models.SwapAcceptPoints, at)
	} else {
		err = s.swaps.Reject(ctx, req, at)
	}
	if errors.Is(err, repository.ErrStaleState) {
		return nil, models.NewInvalidTransitionError("swap_request", from, decision)
	}
	if err != nil {
		callLog.LogServiceError(ctx, "swap", "ResolveSwapRequest", err)
		return nil, storeErr(err)
	}

	s.cache.Invalidate(ctx, cache.AdminStatsKey)
	observability.SwapRequestsTotal.WithLabelValues(string(decision)).Inc()
	callLog.LogServiceCall(ctx, "swap", "ResolveSwapRequest", map[string]interface{}{"swap_id": req.ID, "decision": decision})

	if decision == models.SwapStatusAccepted && s.onAccepted != nil {
		s.onAccepted(ctx, req)
	}

	eventType := notifications.EventSwapRejected
	if decision == models.SwapStatusAccepted {
		eventType = notifications.EventSwapAccepted
	}
	notify(ctx, s.publisher, func(p notifications.Publisher) error {
		return p.PublishUser(ctx, req.RequesterID, notifications.NewEvent(eventType, req))
	})
	return req, nil
}

// Sent lists the requests userID made.
func (s *SwapService) Sent(ctx context.Context, userID string) ([]models.SwapRequest, error) {
	reqs, err := s.swaps.ListByRequester(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return reqs, nil
}

// Received lists the requests made for userID's items.
func (s *SwapService) Received(ctx context.Context, userID string) ([]models.SwapRequest, error) {
	reqs, err := s.swaps.ListByItemOwner(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return reqs, nil
}
