package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"rewear/internal/models"
	"rewear/internal/notifications"
	"rewear/internal/repository"
)

func validItemDraft() ItemDraft {
	return ItemDraft{
		Title:     "  Linen Shirt ",
		Category:  "Tops",
		Size:      "M",
		Condition: "Used - Good",
		Tags:      []string{"Casual", " casual ", "", "Minimalist"},
		Images:    []string{"https://img.example.com/1.jpg"},
	}
}

func TestListingService_ListItem_Validation(t *testing.T) {
	svc := NewListingService(noopUserRepo(), noopItemRepo(), nil, nil)

	tests := []struct {
		name   string
		mutate func(*ItemDraft)
	}{
		{"missing title", func(d *ItemDraft) { d.Title = "   " }},
		{"unknown category", func(d *ItemDraft) { d.Category = "Hats" }},
		{"unknown size", func(d *ItemDraft) { d.Size = "XXXL" }},
		{"unknown condition", func(d *ItemDraft) { d.Condition = "Worn" }},
		{"no images", func(d *ItemDraft) { d.Images = nil }},
		{"six images", func(d *ItemDraft) { d.Images = []string{"1", "2", "3", "4", "5", "6"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validItemDraft()
			tt.mutate(&d)
			_, err := svc.ListItem(context.Background(), "u1", d)
			assertCode(t, err, models.CodeValidation)
		})
	}
}

func TestListingService_ListItem_UnknownOwner(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, _ string) (*models.User, error) { return nil, gorm.ErrRecordNotFound }
	svc := NewListingService(users, noopItemRepo(), nil, nil)

	_, err := svc.ListItem(context.Background(), "ghost", validItemDraft())
	assertCode(t, err, models.CodeNotFound)
}

func TestListingService_ListItem_StoreFailure(t *testing.T) {
	items := noopItemRepo()
	items.createFn = func(_ context.Context, _ *models.Item) error { return errors.New("disk full") }
	svc := NewListingService(noopUserRepo(), items, nil, nil)

	_, err := svc.ListItem(context.Background(), "u1", validItemDraft())
	assertCode(t, err, models.CodeInternal)
}

func TestListingService_ListItem_CreatesPendingItem(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "u1", 0)
	pub := &publisherStub{}
	svc := NewListingService(repository.NewUserRepository(db), repository.NewItemRepository(db), nil, pub)

	item, err := svc.ListItem(context.Background(), "u1", validItemDraft())
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Linen Shirt", item.Title)
	assert.Equal(t, []string{"Casual", "Minimalist"}, item.Tags)
	assert.Equal(t, models.ItemStatusAvailable, item.Status)
	assert.Equal(t, models.ReviewStatusPending, item.ReviewStatus)
	assert.Equal(t, "User u1", item.OwnerName())

	stored, err := repository.NewItemRepository(db).GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusPending, stored.ReviewStatus)
	assert.False(t, stored.Browsable())

	assert.Equal(t, []string{notifications.EventItemSubmitted}, pub.types())
}

func TestListingService_PublishFailureDoesNotFail(t *testing.T) {
	svc := NewListingService(noopUserRepo(), noopItemRepo(), nil, &publisherStub{err: errors.New("redis down")})
	_, err := svc.ListItem(context.Background(), "u1", validItemDraft())
	assert.NoError(t, err)
}
