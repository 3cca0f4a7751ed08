package repository

import (
	"context"

	"gorm.io/gorm"

	"rewear/internal/models"
	"rewear/internal/observability"
)

// ItemRepository defines the interface for listing data operations
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id string) (*models.Item, error)
	ListBrowsable(ctx context.Context) ([]models.Item, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Item, error)
	ListByReviewStatus(ctx context.Context, status models.ReviewStatus) ([]models.Item, error)
	ListAll(ctx context.Context) ([]models.Item, error)
	// SetReviewStatus moves an item from one review status to another and
	// reports whether the row was in the expected status.
	SetReviewStatus(ctx context.Context, id string, from, to models.ReviewStatus) (bool, error)
	CountByReviewStatus(ctx context.Context, status models.ReviewStatus) (int64, error)
}

type itemRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db, log: observability.NewRepoLogger("items")}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	ctx, done := track(ctx, r.db, "create", "items")
	defer done()
	if err := r.db.WithContext(ctx).Omit("Owner").Create(item).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"item_id": item.ID, "owner_id": item.OwnerID})
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	ctx, done := track(ctx, r.db, "read", "items")
	defer done()
	var item models.Item
	if err := r.db.WithContext(ctx).Preload("Owner").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListBrowsable returns approved, available items newest first.
func (r *itemRepository) ListBrowsable(ctx context.Context) ([]models.Item, error) {
	ctx, done := track(ctx, r.db, "list", "items")
	defer done()
	var items []models.Item
	err := r.ordered(ctx).
		Where("review_status = ? AND status = ?", models.ReviewStatusApproved, models.ItemStatusAvailable).
		Find(&items).Error
	return items, err
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	ctx, done := track(ctx, r.db, "list", "items")
	defer done()
	var items []models.Item
	err := r.ordered(ctx).Where("owner_id = ?", ownerID).Find(&items).Error
	return items, err
}

func (r *itemRepository) ListByReviewStatus(ctx context.Context, status models.ReviewStatus) ([]models.Item, error) {
	ctx, done := track(ctx, r.db, "list", "items")
	defer done()
	var items []models.Item
	err := r.ordered(ctx).Where("review_status = ?", status).Find(&items).Error
	return items, err
}

func (r *itemRepository) ListAll(ctx context.Context) ([]models.Item, error) {
	ctx, done := track(ctx, r.db, "list", "items")
	defer done()
	var items []models.Item
	err := r.ordered(ctx).Find(&items).Error
	return items, err
}

func (r *itemRepository) SetReviewStatus(ctx context.Context, id string, from, to models.ReviewStatus) (bool, error) {
	ctx, done := track(ctx, r.db, "update", "items")
	defer done()
	res := r.db.WithContext(ctx).Model(&models.Item{}).
		Where("id = ? AND review_status = ?", id, from).
		Update("review_status", to)
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "update")
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		r.log.LogUpdate(ctx, map[string]interface{}{"item_id": id, "review_status": to})
	}
	return res.RowsAffected == 1, nil
}

func (r *itemRepository) CountByReviewStatus(ctx context.Context, status models.ReviewStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Item{}).Where("review_status = ?", status).Count(&n).Error
	return n, err
}

func (r *itemRepository) ordered(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Owner").Order("created_at DESC, id ASC")
}
