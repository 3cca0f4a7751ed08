package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rewear/internal/impact"
	"rewear/internal/models"
	"rewear/internal/repository"
)

func TestDashboardService_Dashboard(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "owner", 0)
	seedUser(t, db, "other", 0)
	seedItem(t, db, "mine1", "owner")
	seedItem(t, db, "mine2", "owner")
	seedItem(t, db, "theirs", "other")

	users := repository.NewUserRepository(db)
	items := repository.NewItemRepository(db)
	swaps := repository.NewSwapRepository(db)
	swapSvc := NewSwapService(users, items, swaps, nil, nil, nil)
	ctx := context.Background()

	in, err := swapSvc.CreateSwapRequest(ctx, "other", "mine1")
	require.NoError(t, err)
	_, err = swapSvc.ResolveSwapRequest(ctx, "owner", in.ID, models.SwapStatusAccepted)
	require.NoError(t, err)
	_, err = swapSvc.CreateSwapRequest(ctx, "owner", "theirs")
	require.NoError(t, err)

	svc := NewDashboardService(users, items, swaps)
	d, err := svc.Dashboard(ctx, "owner")
	require.NoError(t, err)

	assert.Len(t, d.Items, 2)
	assert.Len(t, d.Sent, 1)
	assert.Len(t, d.Received, 1)
	assert.Equal(t, models.SwapAcceptPoints, d.User.Points)
	assert.Equal(t, 1, d.User.SwapsCompleted)
	assert.Equal(t, 2, d.User.ItemsListed)
	assert.Equal(t, impact.Summarize(models.SwapAcceptPoints, 1, 2), d.Impact)

	_, err = svc.Dashboard(ctx, "ghost")
	assertCode(t, err, models.CodeNotFound)
}

func TestCompletedSwaps(t *testing.T) {
	t.Parallel()
	sent := []models.SwapRequest{
		{ID: "1", Status: models.SwapStatusAccepted},
		{ID: "2", Status: models.SwapStatusPending},
	}
	received := []models.SwapRequest{
		{ID: "1", Status: models.SwapStatusAccepted},
		{ID: "3", Status: models.SwapStatusAccepted},
		{ID: "4", Status: models.SwapStatusRejected},
	}
	assert.Equal(t, 2, CompletedSwaps(sent, received))
	assert.Zero(t, CompletedSwaps())
}
