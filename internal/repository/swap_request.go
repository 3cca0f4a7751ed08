package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"rewear/internal/models"
	"rewear/internal/observability"
)

// SwapRepository defines the interface for swap request data operations
type SwapRepository interface {
	Create(ctx context.Context, req *models.SwapRequest) error
	GetByID(ctx context.Context, id string) (*models.SwapRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]models.SwapRequest, error)
	ListByItemOwner(ctx context.Context, ownerID string) ([]models.SwapRequest, error)
	ListAll(ctx context.Context) ([]models.SwapRequest, error)
	// Accept marks the request accepted, the item swapped and credits the
	// owner in one transaction. ErrStaleState means the request was no
	// longer pending or the item no longer available.
	Accept(ctx context.Context, req *models.SwapRequest, ownerID string, points int, at time.Time) error
	// Reject marks a pending request rejected. ErrStaleState means the
	// request was no longer pending.
	Reject(ctx context.Context, req *models.SwapRequest, at time.Time) error
	CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error)
}

type swapRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewSwapRepository creates a new swap request repository
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db, log: observability.NewRepoLogger("swap_requests")}
}

func (r *swapRepository) Create(ctx context.Context, req *models.SwapRequest) error {
	ctx, done := track(ctx, r.db, "create", "swap_requests")
	defer done()
	if err := r.db.WithContext(ctx).Omit("Requester", "Item").Create(req).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"swap_id": req.ID, "item_id": req.ItemID})
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id string) (*models.SwapRequest, error) {
	ctx, done := track(ctx, r.db, "read", "swap_requests")
	defer done()
	var req models.SwapRequest
	if err := r.detailed(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *swapRepository) ListByRequester(ctx context.Context, requesterID string) ([]models.SwapRequest, error) {
	ctx, done := track(ctx, r.db, "list", "swap_requests")
	defer done()
	var reqs []models.SwapRequest
	err := r.detailed(ctx).
		Where("requester_id = ?", requesterID).
		Order("created_at DESC, id ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *swapRepository) ListByItemOwner(ctx context.Context, ownerID string) ([]models.SwapRequest, error) {
	ctx, done := track(ctx, r.db, "list", "swap_requests")
	defer done()
	var reqs []models.SwapRequest
	err := r.detailed(ctx).
		Where("item_id IN (?)", r.db.Model(&models.Item{}).Select("id").Where("owner_id = ?", ownerID)).
		Order("created_at DESC, id ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *swapRepository) ListAll(ctx context.Context) ([]models.SwapRequest, error) {
	ctx, done := track(ctx, r.db, "list", "swap_requests")
	defer done()
	var reqs []models.SwapRequest
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&reqs).Error
	return reqs, err
}

func (r *swapRepository) Accept(ctx context.Context, req *models.SwapRequest, ownerID string, points int, at time.Time) error {
	ctx, done := track(ctx, r.db, "accept", "swap_requests")
	defer done()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := transition(tx, req.ID, models.SwapStatusAccepted, at); err != nil {
			return err
		}

		res := tx.Model(&models.Item{}).
			Where("id = ? AND status = ?", req.ItemID, models.ItemStatusAvailable).
			Update("status", models.ItemStatusSwapped)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrStaleState
		}

		return addPoints(tx, ownerID, points)
	})
	if err != nil {
		r.log.LogError(ctx, err, "accept")
		return err
	}

	req.Status = models.SwapStatusAccepted
	req.ResolvedAt = &at
	if req.Item != nil {
		req.Item.Status = models.ItemStatusSwapped
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"swap_id": req.ID, "status": req.Status})
	return nil
}

func (r *swapRepository) Reject(ctx context.Context, req *models.SwapRequest, at time.Time) error {
	ctx, done := track(ctx, r.db, "reject", "swap_requests")
	defer done()
	if err := transition(r.db.WithContext(ctx), req.ID, models.SwapStatusRejected, at); err != nil {
		r.log.LogError(ctx, err, "reject")
		return err
	}
	req.Status = models.SwapStatusRejected
	req.ResolvedAt = &at
	r.log.LogUpdate(ctx, map[string]interface{}{"swap_id": req.ID, "status": req.Status})
	return nil
}

func (r *swapRepository) CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.SwapRequest{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *swapRepository) detailed(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Requester").Preload("Item").Preload("Item.Owner")
}

func transition(db *gorm.DB, id string, to models.SwapStatus, at time.Time) error {
	res := db.Model(&models.SwapRequest{}).
		Where("id = ? AND status = ?", id, models.SwapStatusPending).
		Updates(map[string]interface{}{"status": to, "resolved_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrStaleState
	}
	return nil
}
