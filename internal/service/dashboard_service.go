package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"rewear/internal/impact"
	"rewear/internal/models"
	"rewear/internal/repository"
)

// Dashboard is a member's personal overview.
type Dashboard struct {
	User     models.User          `json:"user"`
	Items    []models.Item        `json:"items"`
	Sent     []models.SwapRequest `json:"sent_requests"`
	Received []models.SwapRequest `json:"received_requests"`
	Impact   impact.Summary       `json:"impact"`
}

// DashboardService assembles dashboards.
type DashboardService struct {
	users repository.UserRepository
	items repository.ItemRepository
	swaps repository.SwapRepository
}

func NewDashboardService(users repository.UserRepository, items repository.ItemRepository, swaps repository.SwapRepository) *DashboardService {
	return &DashboardService{users: users, items: items, swaps: swaps}
}

// Dashboard loads userID's listings, requests and impact.
func (s *DashboardService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "user", userID)
	}

	d := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Items, err = s.items.ListByOwner(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.Sent, err = s.swaps.ListByRequester(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		d.Received, err = s.swaps.ListByItemOwner(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		callLog.LogServiceError(ctx, "dashboard", "Dashboard", err)
		return nil, storeErr(err)
	}

	swaps := CompletedSwaps(d.Sent, d.Received)
	user.ItemsListed = len(d.Items)
	user.SwapsCompleted = swaps
	d.User = *user
	d.Impact = impact.Summarize(user.Points, swaps, len(d.Items))
	return d, nil
}

// CompletedSwaps counts distinct accepted requests across both lists.
func CompletedSwaps(lists ...[]models.SwapRequest) int {
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, r := range list {
			if r.Status == models.SwapStatusAccepted {
				seen[r.ID] = true
			}
		}
	}
	return len(seen)
}
