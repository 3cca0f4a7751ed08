package service

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"rewear/internal/cache"
	"rewear/internal/models"
	"rewear/internal/moderation"
	"rewear/internal/notifications"
	"rewear/internal/observability"
	"rewear/internal/repository"
)

// ItemDecision is an administrator's verdict on a pending listing.
type ItemDecision string

const (
	DecisionApprove ItemDecision = "approve"
	DecisionReject  ItemDecision = "reject"
)

// ModerationResult reports whether a moderation action changed anything.
// Acting on an entry that already left its queue is a no-op.
type ModerationResult struct {
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
	Status  string `json:"status"`
}

// AdminStats aggregates counters for the admin panel.
type AdminStats struct {
	PendingItems  int64 `json:"pending_items"`
	ApprovedItems int64 `json:"approved_items"`
	FlaggedPosts  int64 `json:"flagged_posts"`
	TotalPosts    int64 `json:"total_posts"`
	TotalUsers    int64 `json:"total_users"`
	PendingSwaps  int64 `json:"pending_swaps"`
	AcceptedSwaps int64 `json:"accepted_swaps"`
}

// ModerationService provides admin moderation over pending listings and
// flagged runway posts.
type ModerationService struct {
	users     repository.UserRepository
	items     repository.ItemRepository
	posts     repository.PostRepository
	swaps     repository.SwapRepository
	cache     *cache.Cache
	publisher notifications.Publisher
}

// NewModerationService returns a new ModerationService.
func NewModerationService(
	users repository.UserRepository,
	items repository.ItemRepository,
	posts repository.PostRepository,
	swaps repository.SwapRepository,
	c *cache.Cache,
	publisher notifications.Publisher,
) *ModerationService {
	return &ModerationService{
		users:     users,
		items:     items,
		posts:     posts,
		swaps:     swaps,
		cache:     c,
		publisher: publisher,
	}
}

// PendingItems returns listings awaiting review whose title or owner name
// contains term.
func (s *ModerationService) PendingItems(ctx context.Context, term string) ([]models.Item, error) {
	items, err := s.items.ListByReviewStatus(ctx, models.ReviewStatusPending)
	if err != nil {
		return nil, storeErr(err)
	}
	return moderation.NewPendingItems(items).Search(term), nil
}

// FlaggedPosts returns flagged posts whose caption or reporter name
// contains term.
func (s *ModerationService) FlaggedPosts(ctx context.Context, term string) ([]models.FeedPost, error) {
	posts, err := s.posts.ListFlagged(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return moderation.NewFlaggedPosts(posts).Search(term), nil
}

// ParseItemDecision validates a decision supplied by a client.
func ParseItemDecision(raw string) (ItemDecision, error) {
	switch d := ItemDecision(strings.ToLower(strings.TrimSpace(raw))); d {
	case DecisionApprove, DecisionReject:
		return d, nil
	}
	return "", models.NewValidationError("decision must be approve or reject")
}

// ModerateItem approves or rejects a pending listing.
func (s *ModerationService) ModerateItem(ctx context.Context, itemID string, decision ItemDecision) (*ModerationResult, error) {
	to := models.ReviewStatusApproved
	switch decision {
	case DecisionApprove:
	case DecisionReject:
		to = models.ReviewStatusRejected
	default:
		return nil, models.NewValidationError("decision must be approve or reject")
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, lookupErr(err, "item", itemID)
	}

	changed, err := s.items.SetReviewStatus(ctx, itemID, models.ReviewStatusPending, to)
	if err != nil {
		callLog.LogServiceError(ctx, "moderation", "ModerateItem", err)
		return nil, storeErr(err)
	}
	res := &ModerationResult{ID: itemID, Changed: changed, Status: string(item.ReviewStatus)}
	if !changed {
		return res, nil
	}
	res.Status = string(to)
	item.ReviewStatus = to

	observability.ModerationDecisionsTotal.WithLabelValues("item", string(decision)).Inc()
	s.cache.InvalidateItem(ctx, itemID)
	callLog.LogServiceCall(ctx, "moderation", "ModerateItem", map[string]interface{}{"item_id": itemID, "decision": decision})

	eventType := notifications.EventItemApproved
	if to == models.ReviewStatusRejected {
		eventType = notifications.EventItemRejected
	}
	event := notifications.NewEvent(eventType, res)
	notify(ctx, s.publisher, func(p notifications.Publisher) error {
		if err := p.PublishUser(ctx, item.OwnerID, event); err != nil {
			return err
		}
		return p.PublishAdmin(ctx, event)
	})
	return res, nil
}

// FlagPost reports a runway post. Flagging an already flagged or resolved
// post is a no-op.
func (s *ModerationService) FlagPost(ctx context.Context, postID, reporterID, reason string) (*ModerationResult, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, lookupErr(err, "post", postID)
	}
	if _, err := s.users.GetByID(ctx, reporterID); err != nil {
		return nil, lookupErr(err, "user", reporterID)
	}
	reason = strings.TrimSpace(reason)
	if len(reason) > 500 {
		return nil, models.NewValidationError("reason must be at most 500 characters")
	}

	changed, err := s.posts.Flag(ctx, postID, reporterID, reason)
	if err != nil {
		return nil, storeErr(err)
	}
	res := &ModerationResult{ID: postID, Changed: changed, Status: string(post.FlagStatus)}
	if !changed {
		return res, nil
	}
	res.Status = string(models.FlagStatusFlagged)
	s.cache.Invalidate(ctx, cache.AdminStatsKey)

	notify(ctx, s.publisher, func(p notifications.Publisher) error {
		return p.PublishAdmin(ctx, notifications.NewEvent(notifications.EventPostFlagged, res))
	})
	return res, nil
}

// ResolveFlag hides a flagged post and removes it from the queue.
func (s *ModerationService) ResolveFlag(ctx context.Context, postID string) (*ModerationResult, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, lookupErr(err, "post", postID)
	}
	changed, err := s.posts.Resolve(ctx, postID)
	if err != nil {
		callLog.LogServiceError(ctx, "moderation", "ResolveFlag", err)
		return nil, storeErr(err)
	}
	res := &ModerationResult{ID: postID, Changed: changed, Status: string(post.FlagStatus)}
	if !changed {
		return res, nil
	}
	res.Status = string(models.FlagStatusResolved)

	observability.ModerationDecisionsTotal.WithLabelValues("post", "resolve").Inc()
	s.cache.Invalidate(ctx, cache.AdminStatsKey)
	notify(ctx, s.publisher, func(p notifications.Publisher) error {
		return p.PublishAdmin(ctx, notifications.NewEvent(notifications.EventPostResolved, res))
	})
	return res, nil
}

// Stats returns the admin panel counters.
func (s *ModerationService) Stats(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats
	err := s.cache.Aside(ctx, "admin_stats", cache.AdminStatsKey, &stats, cache.AdminStatsTTL, func() error {
		g, gctx := errgroup.WithContext(ctx)
		count := func(dst *int64, fn func(context.Context) (int64, error)) {
			g.Go(func() error {
				n, err := fn(gctx)
				*dst = n
				return err
			})
		}
		count(&stats.PendingItems, func(c context.Context) (int64, error) {
			return s.items.CountByReviewStatus(c, models.ReviewStatusPending)
		})
		count(&stats.ApprovedItems, func(c context.Context) (int64, error) {
			return s.items.CountByReviewStatus(c, models.ReviewStatusApproved)
		})
		count(&stats.FlaggedPosts, s.posts.CountFlagged)
		count(&stats.TotalPosts, s.posts.Count)
		count(&stats.TotalUsers, s.users.Count)
		count(&stats.PendingSwaps, func(c context.Context) (int64, error) {
			return s.swaps.CountByStatus(c, models.SwapStatusPending)
		})
		count(&stats.AcceptedSwaps, func(c context.Context) (int64, error) {
			return s.swaps.CountByStatus(c, models.SwapStatusAccepted)
		})
		return g.Wait()
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return &stats, nil
}
