package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rewear/internal/config"
	"rewear/internal/database"
	"rewear/internal/notifications"
)

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func TestLivenessCheck(t *testing.T) {
	_, app := newTestServer(t)

	var got healthResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/health/live", "", nil, &got))
	assert.Equal(t, "up", got.Status)
}

func TestReadinessCheckWithoutRedis(t *testing.T) {
	_, app := newTestServer(t)

	for _, path := range []string{"/health/ready", "/health"} {
		var got healthResponse
		require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, path, "", nil, &got))
		assert.Equal(t, "healthy", got.Status)
		assert.Equal(t, map[string]string{"database": "healthy", "redis": "disabled"}, got.Checks)
	}
}

func TestReadinessCheckRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	db, err := database.OpenMemory()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	srv, err := NewServerWithDeps(testConfig(), db, rdb)
	require.NoError(t, err)
	app := srv.NewApp()

	var got healthResponse
	require.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/health/ready", "", nil, &got))
	assert.Equal(t, "healthy", got.Checks["redis"])

	mr.Close()
	require.Equal(t, http.StatusServiceUnavailable, call(t, app, http.MethodGet, "/health/ready", "", nil, &got))
	assert.Equal(t, "unhealthy", got.Status)
	assert.Equal(t, "unhealthy", got.Checks["redis"])
}

func TestReadinessCheckDatabaseDown(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DisableAutomaticPing: true})
	require.NoError(t, err)

	srv, err := NewServerWithDeps(testConfig(), db, nil)
	require.NoError(t, err)
	app := srv.NewApp()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	var got healthResponse
	require.Equal(t, http.StatusServiceUnavailable, call(t, app, http.MethodGet, "/health/ready", "", nil, &got))
	assert.Equal(t, "unhealthy", got.Status)
	assert.Equal(t, "unhealthy", got.Checks["database"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetupMiddleware_RateLimitedResponseIncludesCORSHeaders(t *testing.T) {
	srv := &Server{
		config: &config.Config{
			AllowedOrigins: "http://localhost:5173",
		},
	}

	app := fiber.New()
	srv.SetupMiddleware(app)
	app.Get("/limited", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Exhaust the limiter and assert the final response still carries CORS headers.
	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}

	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSetupMiddleware_PreflightAllowsViewerHeader(t *testing.T) {
	srv := &Server{config: &config.Config{AllowedOrigins: "http://localhost:5173"}}

	app := fiber.New()
	srv.SetupMiddleware(app)
	app.Post("/api/swaps", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/swaps", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-User-ID")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "X-User-ID")
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	_, app := newTestServer(t)

	status, e := callErr(t, app, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, e.Error)

	// everything else under /api needs a viewer
	status, _ = callErr(t, app, http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// listen serves app on a loopback port until the test ends.
func listen(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return ln.Addr().String()
}

func TestWebSocketAdminStream(t *testing.T) {
	srv, app := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, srv.adminHub.StartWiring(ctx, srv.notifier))

	addr := listen(t, app)
	endpoint := "ws://" + addr + "/api/ws/admin"

	conn, _, err := websocket.DefaultDialer.Dial(endpoint, http.Header{"X-User-ID": []string{"admin-1"}})
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	require.Eventually(t, func() bool { return srv.adminHub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/admin/items/item-7/approve", "admin-1", nil, nil))
	require.Equal(t, http.StatusOK, call(t, app, http.MethodPost, "/api/runway/post-1/flag", "user-4", nil, nil))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var first, second notifications.Event
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, notifications.EventItemApproved, first.Type)
	assert.Equal(t, notifications.EventPostFlagged, second.Type)
}

func TestWebSocketAdminStreamRejectsMembers(t *testing.T) {
	_, app := newTestServer(t)
	endpoint := "ws://" + listen(t, app) + "/api/ws/admin"

	tests := []struct {
		name   string
		header http.Header
		status int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"member", http.Header{"X-User-ID": []string{"user-1"}}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, resp, err := websocket.DefaultDialer.Dial(endpoint, tt.header)
			if conn != nil {
				_ = conn.Close()
			}
			require.ErrorIs(t, err, websocket.ErrBadHandshake)
			require.NotNil(t, resp)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestWebSocketAdminRequiresUpgrade(t *testing.T) {
	_, app := newTestServer(t)

	status := call(t, app, http.MethodGet, "/api/ws/admin", "admin-1", nil, nil)
	assert.Equal(t, http.StatusUpgradeRequired, status)
}

func TestShutdownClosesAdminStream(t *testing.T) {
	srv, _ := newTestServer(t)

	client, err := srv.adminHub.Register("admin-1", nil)
	require.NoError(t, err)
	require.NoError(t, srv.Shutdown(context.Background()))

	_, open := <-client.Send
	assert.False(t, open)
	_, err = srv.adminHub.Register("admin-1", nil)
	assert.ErrorIs(t, err, notifications.ErrHubClosed)
}
