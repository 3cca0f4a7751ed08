package service

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"rewear/internal/cache"
	"rewear/internal/featureflags"
	"rewear/internal/impact"
	"rewear/internal/models"
	"rewear/internal/observability"
	"rewear/internal/repository"
)

// LeaderboardService ranks members per timeframe.
type LeaderboardService struct {
	users repository.UserRepository
	items repository.ItemRepository
	swaps repository.SwapRepository
	cache *cache.Cache
	flags *featureflags.Manager
	now   clock
}

func NewLeaderboardService(
	users repository.UserRepository,
	items repository.ItemRepository,
	swaps repository.SwapRepository,
	c *cache.Cache,
	flags *featureflags.Manager,
) *LeaderboardService {
	return &LeaderboardService{users: users, items: items, swaps: swaps, cache: c, flags: flags, now: utcNow}
}

// Leaderboard returns the ranked entries for tf.
func (s *LeaderboardService) Leaderboard(ctx context.Context, tf models.Timeframe) ([]models.LeaderboardEntry, error) {
	tf, ok := models.ParseTimeframe(string(tf))
	if !ok {
		return nil, models.NewValidationError("timeframe must be weekly, monthly or all_time")
	}

	var entries []models.LeaderboardEntry
	compute := func() error {
		var err error
		entries, err = s.compute(ctx, tf)
		return err
	}

	var err error
	if s.flags.Enabled(featureflags.LeaderboardCache, "") {
		err = s.cache.Aside(ctx, "leaderboard", cache.LeaderboardKey(tf), &entries, cache.LeaderboardTTL, compute)
	} else {
		err = compute()
	}
	if err != nil {
		callLog.LogServiceError(ctx, "leaderboard", "Leaderboard", err)
		return nil, storeErr(err)
	}
	return entries, nil
}

// All computes every timeframe concurrently.
func (s *LeaderboardService) All(ctx context.Context) (map[models.Timeframe][]models.LeaderboardEntry, error) {
	var mu sync.Mutex
	out := make(map[models.Timeframe][]models.LeaderboardEntry, len(models.Timeframes))

	g, gctx := errgroup.WithContext(ctx)
	for _, tf := range models.Timeframes {
		g.Go(func() error {
			entries, err := s.Leaderboard(gctx, tf)
			if err != nil {
				return err
			}
			mu.Lock()
			out[tf] = entries
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Invalidate drops cached leaderboards after points change.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	s.cache.InvalidateLeaderboards(ctx)
}

func (s *LeaderboardService) compute(ctx context.Context, tf models.Timeframe) (_ []models.LeaderboardEntry, err error) {
	span, ctx := observability.StartSpan(ctx, "leaderboard.compute", attribute.String("leaderboard.timeframe", string(tf)))
	defer func() {
		span.SetError(err)
		span.End()
	}()

	var (
		users []models.User
		items []models.Item
		swaps []models.SwapRequest
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		items, err = s.items.ListAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		swaps, err = s.swaps.ListAll(gctx)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return impact.Leaderboard(tf, s.now(), users, items, swaps), nil
}
