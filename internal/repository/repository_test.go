package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"rewear/internal/models"
	"rewear/internal/observability"
)

func TestRepositoryCallsAreTraced(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := observability.Tracer
	observability.Tracer = tp.Tracer("repository-test")
	t.Cleanup(func() { observability.Tracer = prev })

	db := setupTestDB(t)
	seedUser(t, db, "alice", 0)
	_, err := NewUserRepository(db).GetByID(context.Background(), "alice")
	require.NoError(t, err)

	ended := rec.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "repository.create", ended[0].Name())
	assert.Equal(t, "repository.read", ended[1].Name())
	assert.Contains(t, ended[1].Attributes(), attribute.String("db.system", "sqlite"))
	assert.Contains(t, ended[1].Attributes(), attribute.String("db.table", "users"))
}

func TestUserRepository_AddPoints(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	seedUser(t, db, "alice", 100)

	require.NoError(t, repo.AddPoints(ctx, "alice", 5))
	got, err := repo.GetByID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 105, got.Points)

	err = repo.AddPoints(ctx, "ghost", 5)
	assert.True(t, IsNotFound(err))

	_, err = repo.GetByID(ctx, "ghost")
	assert.True(t, IsNotFound(err))
}

func TestUserRepository_AddPointsSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "points"=points + $1,"updated_at"=$2 WHERE id = $3`)).
		WithArgs(50, sqlmock.AnyArg(), "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.AddPoints(context.Background(), "alice", 50))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_BrowsableAndReview(t *testing.T) {
	db := setupTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", 0)
	seedItem(t, db, "old", "alice", models.ReviewStatusApproved, 0)
	seedItem(t, db, "new", "alice", models.ReviewStatusApproved, 2)
	seedItem(t, db, "pending", "alice", models.ReviewStatusPending, 1)

	items, err := repo.ListBrowsable(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].ID)
	assert.Equal(t, "old", items[1].ID)
	require.NotNil(t, items[0].Owner)
	assert.Equal(t, "User alice", items[0].Owner.Name)

	changed, err := repo.SetReviewStatus(ctx, "pending", models.ReviewStatusPending, models.ReviewStatusApproved)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.SetReviewStatus(ctx, "pending", models.ReviewStatusPending, models.ReviewStatusRejected)
	require.NoError(t, err)
	assert.False(t, changed, "second decision must not apply")

	n, err := repo.CountByReviewStatus(ctx, models.ReviewStatusPending)
	require.NoError(t, err)
	assert.Zero(t, n)

	owned, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, owned, 3)
}

func TestSwapRepository_AcceptAndReject(t *testing.T) {
	db := setupTestDB(t)
	swaps := NewSwapRepository(db)
	users := NewUserRepository(db)
	items := NewItemRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", 0)
	seedUser(t, db, "bob", 0)
	seedItem(t, db, "jacket", "alice", models.ReviewStatusApproved, 0)

	first := &models.SwapRequest{ID: "s1", RequesterID: "bob", ItemID: "jacket", Status: models.SwapStatusPending, CreatedAt: baseTime}
	second := &models.SwapRequest{ID: "s2", RequesterID: "bob", ItemID: "jacket", Status: models.SwapStatusPending, CreatedAt: baseTime.Add(time.Minute)}
	require.NoError(t, swaps.Create(ctx, first))
	require.NoError(t, swaps.Create(ctx, second))

	received, err := swaps.ListByItemOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, received, 2)
	sent, err := swaps.ListByRequester(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, "s2", sent[0].ID)

	at := baseTime.Add(time.Hour)
	require.NoError(t, swaps.Accept(ctx, first, "alice", models.SwapAcceptPoints, at))
	assert.Equal(t, models.SwapStatusAccepted, first.Status)

	owner, err := users.GetByID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.SwapAcceptPoints, owner.Points)

	item, err := items.GetByID(ctx, "jacket")
	require.NoError(t, err)
	assert.Equal(t, models.ItemStatusSwapped, item.Status)

	// item already swapped: the whole transaction rolls back
	err = swaps.Accept(ctx, second, "alice", models.SwapAcceptPoints, at)
	assert.ErrorIs(t, err, ErrStaleState)
	reloaded, err := swaps.GetByID(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusPending, reloaded.Status)
	owner, err = users.GetByID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.SwapAcceptPoints, owner.Points)

	require.NoError(t, swaps.Reject(ctx, second, at))
	assert.ErrorIs(t, swaps.Reject(ctx, second, at), ErrStaleState)

	n, err := swaps.CountByStatus(ctx, models.SwapStatusAccepted)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestPostRepository_FlagLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	seedUser(t, db, "alice", 0)
	seedUser(t, db, "bob", 0)
	post := &models.FeedPost{ID: "p1", UserID: "alice", Image: "fit.jpg", Caption: "Sunday fit", FlagStatus: models.FlagStatusNone}
	require.NoError(t, repo.Create(ctx, post))

	changed, err := repo.Flag(ctx, "p1", "bob", "spam")
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = repo.Flag(ctx, "p1", "bob", "spam")
	require.NoError(t, err)
	assert.False(t, changed)

	flagged, err := repo.ListFlagged(ctx)
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	require.NotNil(t, flagged[0].Reporter)
	assert.Equal(t, "User bob", flagged[0].ReporterName())

	changed, err = repo.Resolve(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = repo.Resolve(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, changed)

	visible, err := repo.ListVisible(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)
	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
