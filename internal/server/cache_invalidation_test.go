package server

import (
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear/internal/cache"
	"rewear/internal/models"
	"rewear/internal/service"
	"rewear/internal/swipe"
)

func newCachedTestServer(t *testing.T) (*miniredis.Miniredis, *fiber.App, func(string, interface{}) int) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	_, app := newSeededServer(t, rdb)
	get := func(path string, out interface{}) int {
		return call(t, app, http.MethodGet, path, "admin-1", nil, out)
	}
	return mr, app, get
}

func TestAdminStatsFollowNewWork(t *testing.T) {
	mr, app, get := newCachedTestServer(t)

	var stats service.AdminStats
	require.Equal(t, http.StatusOK, get("/api/admin/stats", &stats))
	require.True(t, mr.Exists(cache.AdminStatsKey))
	assert.EqualValues(t, 2, stats.PendingItems)

	draft := service.ItemDraft{Title: "Linen Shirt", Category: "Tops", Size: "M", Condition: "New", Images: []string{"/img/linen.jpg"}}
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/items", "user-3", draft, nil))
	require.Equal(t, http.StatusOK, get("/api/admin/stats", &stats))
	assert.EqualValues(t, 3, stats.PendingItems)

	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/runway", "user-2",
		service.PostDraft{Image: "/img/outfit.jpg"}, nil))
	require.Equal(t, http.StatusOK, get("/api/admin/stats", &stats))
	assert.EqualValues(t, 4, stats.TotalPosts)

	var req models.SwapRequest
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/swaps", "user-1",
		CreateSwapRequestBody{ItemID: "item-2"}, &req))
	require.Equal(t, http.StatusOK, get("/api/admin/stats", &stats))
	assert.EqualValues(t, 2, stats.PendingSwaps)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/swaps/"+req.ID+"/resolve", "user-2",
		ResolveSwapRequestBody{Decision: "rejected"}, nil))
	require.Equal(t, http.StatusOK, get("/api/admin/stats", &stats))
	assert.EqualValues(t, 1, stats.PendingSwaps)
}

func TestLeaderboardFollowsSwipePoints(t *testing.T) {
	mr, app, get := newCachedTestServer(t)

	points := func() int {
		var entries []models.LeaderboardEntry
		require.Equal(t, http.StatusOK, get("/api/leaderboard", &entries))
		for _, e := range entries {
			if e.User.ID == "user-1" {
				return e.Points
			}
		}
		t.Fatal("user-1 missing from leaderboard")
		return 0
	}

	before := points()
	require.True(t, mr.Exists(cache.LeaderboardKey(models.TimeframeAllTime)))

	var snap swipe.Snapshot
	require.Equal(t, http.StatusCreated, call(t, app, http.MethodPost, "/api/swipe/sessions", "user-1", nil, &snap))
	var res service.SwipeResult
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/swipe/sessions/"+snap.SessionID+"/decide", "user-1",
		SwipeDecisionRequest{Direction: "right"}, &res))
	require.Equal(t, models.InterestPoints, res.PointsAwarded)

	assert.Equal(t, before+models.InterestPoints, points())
}
