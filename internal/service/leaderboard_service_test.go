package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"

	"rewear/internal/cache"
	"rewear/internal/featureflags"
	"rewear/internal/models"
)

func leaderboardRepos() (*userRepoStub, *itemRepoStub, *swapRepoStub, *atomic.Int32) {
	calls := &atomic.Int32{}
	users := noopUserRepo()
	users.listFn = func(_ context.Context) ([]models.User, error) {
		calls.Add(1)
		return []models.User{
			{ID: "a", Name: "A", Points: 100},
			{ID: "b", Name: "B", Points: 600},
			{ID: "c", Name: "C", Points: 100},
		}, nil
	}
	items := noopItemRepo()
	items.listAllFn = func(_ context.Context) ([]models.Item, error) {
		return []models.Item{{ID: "i1", OwnerID: "a", CreatedAt: baseTime.Add(-24 * time.Hour)}}, nil
	}
	swaps := noopSwapRepo()
	swaps.listAllFn = func(_ context.Context) ([]models.SwapRequest, error) {
		at := baseTime.Add(-48 * time.Hour)
		return []models.SwapRequest{
			{ID: "s1", RequesterID: "c", ItemID: "i1", Status: models.SwapStatusAccepted, CreatedAt: at, ResolvedAt: &at},
		}, nil
	}
	return users, items, swaps, calls
}

func TestLeaderboardService_Timeframes(t *testing.T) {
	users, items, swaps, _ := leaderboardRepos()
	svc := NewLeaderboardService(users, items, swaps, nil, featureflags.NewManager(""))
	svc.now = func() time.Time { return baseTime }
	ctx := context.Background()

	all, err := svc.Leaderboard(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].User.ID)
	assert.Equal(t, []int{1, 2, 3}, []int{all[0].Rank, all[1].Rank, all[2].Rank})
	assert.Equal(t, "a", all[1].User.ID, "ties keep input order")

	weekly, err := svc.Leaderboard(ctx, models.TimeframeWeekly)
	require.NoError(t, err)
	assert.Equal(t, "a", weekly[0].User.ID)
	assert.Equal(t, models.SwapAcceptPoints, weekly[0].Points)
	assert.Equal(t, 1, weekly[0].SwapsCompleted)

	_, err = svc.Leaderboard(ctx, "yearly")
	assertCode(t, err, models.CodeValidation)

	boards, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, boards, len(models.Timeframes))
}

func TestLeaderboardService_ComputeIsTraced(t *testing.T) {
	rec := recordSpans(t)
	users, items, swaps, _ := leaderboardRepos()
	svc := NewLeaderboardService(users, items, swaps, nil, featureflags.NewManager(""))
	svc.now = func() time.Time { return baseTime }
	ctx := context.Background()

	_, err := svc.Leaderboard(ctx, models.TimeframeWeekly)
	require.NoError(t, err)
	ok := endedSpan(t, rec, "leaderboard.compute")
	assert.Equal(t, codes.Unset, ok.Status().Code)

	users.listFn = func(_ context.Context) ([]models.User, error) { return nil, errors.New("db down") }
	_, err = svc.Leaderboard(ctx, models.TimeframeWeekly)
	require.Error(t, err)

	ended := rec.Ended()
	require.NotEmpty(t, ended)
	last := ended[len(ended)-1]
	assert.Equal(t, "leaderboard.compute", last.Name())
	assert.Equal(t, codes.Error, last.Status().Code)
}

func TestLeaderboardService_Cache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	users, items, swaps, calls := leaderboardRepos()
	svc := NewLeaderboardService(users, items, swaps, cache.New(rdb), featureflags.NewManager("leaderboard_cache=on"))
	ctx := context.Background()

	first, err := svc.Leaderboard(ctx, models.TimeframeAllTime)
	require.NoError(t, err)
	second, err := svc.Leaderboard(ctx, models.TimeframeAllTime)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, calls.Load())

	svc.Invalidate(ctx)
	assert.False(t, mr.Exists(cache.LeaderboardKey(models.TimeframeAllTime)))

	_, err = svc.Leaderboard(ctx, models.TimeframeAllTime)
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestLeaderboardService_CacheFlagOff(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	users, items, swaps, calls := leaderboardRepos()
	svc := NewLeaderboardService(users, items, swaps, cache.New(rdb), featureflags.NewManager("leaderboard_cache=off"))

	for i := 0; i < 2; i++ {
		_, err := svc.Leaderboard(context.Background(), models.TimeframeMonthly)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2, calls.Load())
	assert.False(t, mr.Exists(cache.LeaderboardKey(models.TimeframeMonthly)))
}
