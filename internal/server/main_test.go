package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"rewear/internal/config"
	"rewear/internal/database"
	"rewear/internal/models"
	"rewear/internal/seed"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:                    "test",
		DBDriver:               config.DriverSQLite,
		AllowedOrigins:         "http://localhost:5173",
		FeatureFlags:           "swipe_points=on,leaderboard_cache=on",
		SwipeSessionTTLMinutes: 30,
	}
}

// newTestServer returns a server over a freshly seeded in-memory store.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	return newSeededServer(t, nil)
}

// newSeededServer is newTestServer with an optional Redis client.
func newSeededServer(t *testing.T, rdb *redis.Client) (*Server, *fiber.App) {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	_, err = seed.Seed(context.Background(), db, seed.Options{Now: time.Now().UTC()})
	require.NoError(t, err)

	srv, err := NewServerWithDeps(testConfig(), db, rdb)
	require.NoError(t, err)
	return srv, srv.NewApp()
}

// call performs a request as viewer (empty for anonymous) and decodes a
// JSON response into out when out is non-nil.
func call(t *testing.T, app *fiber.App, method, path, viewer string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if viewer != "" {
		req.Header.Set("X-User-ID", viewer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out), "%s %s", method, path)
	}
	return resp.StatusCode
}

// callErr performs a request expected to fail and returns its status and body.
func callErr(t *testing.T, app *fiber.App, method, path, viewer string, body interface{}) (int, models.ErrorResponse) {
	t.Helper()
	var e models.ErrorResponse
	status := call(t, app, method, path, viewer, body, &e)
	return status, e
}

func itemIDs(items []models.Item) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestNewServerWithDepsRequiresDatabase(t *testing.T) {
	_, err := NewServerWithDeps(testConfig(), nil, nil)
	require.Error(t, err)
}

