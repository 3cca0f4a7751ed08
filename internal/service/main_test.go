package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gorm.io/gorm"

	"rewear/internal/database"
	"rewear/internal/models"
	"rewear/internal/notifications"
	"rewear/internal/observability"
)

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string, points int) *models.User {
	t.Helper()
	u := &models.User{ID: id, Name: "User " + id, Email: id + "@example.com", Points: points}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedItem(t *testing.T, db *gorm.DB, id, ownerID string, mutate ...func(*models.Item)) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:           id,
		Title:        "Item " + id,
		Category:     "Tops",
		Size:         "M",
		Condition:    "New",
		Tags:         []string{"Casual"},
		Images:       []string{"/img/" + id + ".jpg"},
		OwnerID:      ownerID,
		Status:       models.ItemStatusAvailable,
		ReviewStatus: models.ReviewStatusApproved,
		CreatedAt:    baseTime,
	}
	for _, m := range mutate {
		m(item)
	}
	require.NoError(t, db.Omit("Owner").Create(item).Error)
	return item
}

type publishedEvent struct {
	UserID string
	Admin  bool
	Event  notifications.Event
}

// publisherStub records published events.
type publisherStub struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *publisherStub) PublishUser(_ context.Context, userID string, event notifications.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{UserID: userID, Event: event})
	return p.err
}

func (p *publisherStub) PublishAdmin(_ context.Context, event notifications.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Admin: true, Event: event})
	return p.err
}

func (p *publisherStub) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Event.Type)
	}
	return out
}

// assertCode asserts that err is an AppError with the given code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// recordSpans routes the application tracer into an in-memory recorder for
// the duration of the test. Tests using it must not run in parallel.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := observability.Tracer
	observability.Tracer = tp.Tracer("rewear-test")
	t.Cleanup(func() {
		observability.Tracer = prev
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

// endedSpan returns the first finished span called name.
func endedSpan(t *testing.T, rec *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, s := range rec.Ended() {
		if s.Name() == name {
			return s
		}
	}
	require.Failf(t, "span not recorded", "no ended span named %q", name)
	return nil
}
