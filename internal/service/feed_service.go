package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"rewear/internal/cache"
	"rewear/internal/models"
	"rewear/internal/repository"
	"rewear/internal/validation"
)

// PostDraft is a runway post payload.
type PostDraft struct {
	Image   string  `json:"image" validate:"required,max=2048"`
	Caption string  `json:"caption" validate:"max=500"`
	ItemID  *string `json:"item_id,omitempty"`
}

// FeedService runs the community runway.
type FeedService struct {
	users repository.UserRepository
	items repository.ItemRepository
	posts repository.PostRepository
	cache *cache.Cache
}

func NewFeedService(users repository.UserRepository, items repository.ItemRepository, posts repository.PostRepository, c *cache.Cache) *FeedService {
	return &FeedService{users: users, items: items, posts: posts, cache: c}
}

// CreatePost publishes a runway post for userID.
func (s *FeedService) CreatePost(ctx context.Context, userID string, draft PostDraft) (*models.FeedPost, error) {
	draft.Image = strings.TrimSpace(draft.Image)
	draft.Caption = strings.TrimSpace(draft.Caption)
	if err := validation.Struct(draft); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "user", userID)
	}

	var item *models.Item
	if draft.ItemID != nil && *draft.ItemID != "" {
		item, err = s.items.GetByID(ctx, *draft.ItemID)
		if err != nil {
			return nil, lookupErr(err, "item", *draft.ItemID)
		}
	} else {
		draft.ItemID = nil
	}

	post := &models.FeedPost{
		ID:         uuid.NewString(),
		UserID:     author.ID,
		ItemID:     draft.ItemID,
		Image:      draft.Image,
		Caption:    draft.Caption,
		FlagStatus: models.FlagStatusNone,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		callLog.LogServiceError(ctx, "feed", "CreatePost", err)
		return nil, storeErr(err)
	}
	post.User = author
	post.Item = item
	s.cache.Invalidate(ctx, cache.AdminStatsKey)
	return post, nil
}

// List returns runway posts that have not been hidden by moderation.
func (s *FeedService) List(ctx context.Context) ([]models.FeedPost, error) {
	posts, err := s.posts.ListVisible(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return posts, nil
}
