package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"rewear/internal/cache"
	"rewear/internal/models"
	"rewear/internal/notifications"
	"rewear/internal/repository"
	"rewear/internal/validation"
)

// ItemDraft is the upload form payload.
type ItemDraft struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Category    string   `json:"category" validate:"required,category"`
	Size        string   `json:"size" validate:"required,size"`
	Condition   string   `json:"condition" validate:"required,condition"`
	Tags        []string `json:"tags" validate:"max=10,dive,required,max=40"`
	Images      []string `json:"images" validate:"min=1,max=5,dive,required"`
}

// ListingService turns drafts into listings awaiting review.
type ListingService struct {
	users     repository.UserRepository
	items     repository.ItemRepository
	cache     *cache.Cache
	publisher notifications.Publisher
}

func NewListingService(users repository.UserRepository, items repository.ItemRepository, c *cache.Cache, publisher notifications.Publisher) *ListingService {
	return &ListingService{users: users, items: items, cache: c, publisher: publisher}
}

// ListItem validates draft and stores it as an available item pending review.
func (s *ListingService) ListItem(ctx context.Context, ownerID string, draft ItemDraft) (*models.Item, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Tags = cleanTags(draft.Tags)
	if err := validation.Struct(draft); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, lookupErr(err, "user", ownerID)
	}

	item := &models.Item{
		ID:           uuid.NewString(),
		Title:        draft.Title,
		Description:  draft.Description,
		Tags:         draft.Tags,
		Size:         draft.Size,
		Category:     draft.Category,
		Condition:    draft.Condition,
		Images:       draft.Images,
		OwnerID:      owner.ID,
		Status:       models.ItemStatusAvailable,
		ReviewStatus: models.ReviewStatusPending,
	}
	if err := s.items.Create(ctx, item); err != nil {
		callLog.LogServiceError(ctx, "listing", "ListItem", err)
		return nil, storeErr(err)
	}
	item.Owner = owner
	s.cache.Invalidate(ctx, cache.AdminStatsKey)

	callLog.LogServiceCall(ctx, "listing", "ListItem", map[string]interface{}{"item_id": item.ID, "owner_id": owner.ID})
	notify(ctx, s.publisher, func(p notifications.Publisher) error {
		return p.PublishAdmin(ctx, notifications.NewEvent(notifications.EventItemSubmitted, item))
	})
	return item, nil
}

// cleanTags trims tags and drops blanks and case-insensitive duplicates.
func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
