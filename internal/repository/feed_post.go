package repository

import (
	"context"

	"gorm.io/gorm"

	"rewear/internal/models"
	"rewear/internal/observability"
)

// PostRepository defines the interface for runway post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.FeedPost) error
	GetByID(ctx context.Context, id string) (*models.FeedPost, error)
	ListVisible(ctx context.Context) ([]models.FeedPost, error)
	ListFlagged(ctx context.Context) ([]models.FeedPost, error)
	// Flag marks an unflagged post and reports whether it changed.
	Flag(ctx context.Context, id, reporterID, reason string) (bool, error)
	// Resolve hides a flagged post and reports whether it changed.
	Resolve(ctx context.Context, id string) (bool, error)
	CountFlagged(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("feed_posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.FeedPost) error {
	ctx, done := track(ctx, r.db, "create", "feed_posts")
	defer done()
	if err := r.db.WithContext(ctx).Omit("User", "Item", "Reporter").Create(post).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"post_id": post.ID})
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.FeedPost, error) {
	ctx, done := track(ctx, r.db, "read", "feed_posts")
	defer done()
	var post models.FeedPost
	if err := r.detailed(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListVisible(ctx context.Context) ([]models.FeedPost, error) {
	ctx, done := track(ctx, r.db, "list", "feed_posts")
	defer done()
	var posts []models.FeedPost
	err := r.detailed(ctx).
		Where("flag_status <> ?", models.FlagStatusResolved).
		Order("created_at DESC, id ASC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListFlagged(ctx context.Context) ([]models.FeedPost, error) {
	ctx, done := track(ctx, r.db, "list", "feed_posts")
	defer done()
	var posts []models.FeedPost
	err := r.detailed(ctx).
		Where("flag_status = ?", models.FlagStatusFlagged).
		Order("updated_at ASC, id ASC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Flag(ctx context.Context, id, reporterID, reason string) (bool, error) {
	ctx, done := track(ctx, r.db, "update", "feed_posts")
	defer done()
	res := r.db.WithContext(ctx).Model(&models.FeedPost{}).
		Where("id = ? AND flag_status = ?", id, models.FlagStatusNone).
		Updates(map[string]interface{}{
			"flag_status": models.FlagStatusFlagged,
			"flag_reason": reason,
			"flagged_by":  reporterID,
		})
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "flag")
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *postRepository) Resolve(ctx context.Context, id string) (bool, error) {
	ctx, done := track(ctx, r.db, "update", "feed_posts")
	defer done()
	res := r.db.WithContext(ctx).Model(&models.FeedPost{}).
		Where("id = ? AND flag_status = ?", id, models.FlagStatusFlagged).
		Update("flag_status", models.FlagStatusResolved)
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "resolve")
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *postRepository) CountFlagged(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.FeedPost{}).Where("flag_status = ?", models.FlagStatusFlagged).Count(&n).Error
	return n, err
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.FeedPost{}).Count(&n).Error
	return n, err
}

func (r *postRepository) detailed(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Item").Preload("Reporter")
}
