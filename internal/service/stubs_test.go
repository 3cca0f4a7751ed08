package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"rewear/internal/models"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn    func(context.Context, *models.User) error
	getByIDFn   func(context.Context, string) (*models.User, error)
	listFn      func(context.Context) ([]models.User, error)
	addPointsFn func(context.Context, string, int) error
	countFn     func(context.Context) (int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) { return s.listFn(ctx) }
func (s *userRepoStub) AddPoints(ctx context.Context, id string, delta int) error {
	return s.addPointsFn(ctx, id, delta)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) { return s.countFn(ctx) }

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Name: "User " + id}, nil
		},
		listFn:      func(_ context.Context) ([]models.User, error) { return nil, nil },
		addPointsFn: func(_ context.Context, _ string, _ int) error { return nil },
		countFn:     func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// itemRepoStub is a stub for repository.ItemRepository.
type itemRepoStub struct {
	createFn              func(context.Context, *models.Item) error
	getByIDFn             func(context.Context, string) (*models.Item, error)
	listBrowsableFn       func(context.Context) ([]models.Item, error)
	listByOwnerFn         func(context.Context, string) ([]models.Item, error)
	listByReviewStatusFn  func(context.Context, models.ReviewStatus) ([]models.Item, error)
	listAllFn             func(context.Context) ([]models.Item, error)
	setReviewStatusFn     func(context.Context, string, models.ReviewStatus, models.ReviewStatus) (bool, error)
	countByReviewStatusFn func(context.Context, models.ReviewStatus) (int64, error)
}

func (s *itemRepoStub) Create(ctx context.Context, item *models.Item) error {
	return s.createFn(ctx, item)
}
func (s *itemRepoStub) GetByID(ctx context.Context, id string) (*models.Item, error) {
	return s.getByIDFn(ctx, id)
}
func (s *itemRepoStub) ListBrowsable(ctx context.Context) ([]models.Item, error) {
	return s.listBrowsableFn(ctx)
}
func (s *itemRepoStub) ListByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	return s.listByOwnerFn(ctx, ownerID)
}
func (s *itemRepoStub) ListByReviewStatus(ctx context.Context, status models.ReviewStatus) ([]models.Item, error) {
	return s.listByReviewStatusFn(ctx, status)
}
func (s *itemRepoStub) ListAll(ctx context.Context) ([]models.Item, error) { return s.listAllFn(ctx) }
func (s *itemRepoStub) SetReviewStatus(ctx context.Context, id string, from, to models.ReviewStatus) (bool, error) {
	return s.setReviewStatusFn(ctx, id, from, to)
}
func (s *itemRepoStub) CountByReviewStatus(ctx context.Context, status models.ReviewStatus) (int64, error) {
	return s.countByReviewStatusFn(ctx, status)
}

func noopItemRepo() *itemRepoStub {
	return &itemRepoStub{
		createFn:             func(_ context.Context, _ *models.Item) error { return nil },
		getByIDFn:            func(_ context.Context, _ string) (*models.Item, error) { return nil, gorm.ErrRecordNotFound },
		listBrowsableFn:      func(_ context.Context) ([]models.Item, error) { return nil, nil },
		listByOwnerFn:        func(_ context.Context, _ string) ([]models.Item, error) { return nil, nil },
		listByReviewStatusFn: func(_ context.Context, _ models.ReviewStatus) ([]models.Item, error) { return nil, nil },
		listAllFn:            func(_ context.Context) ([]models.Item, error) { return nil, nil },
		setReviewStatusFn: func(_ context.Context, _ string, _, _ models.ReviewStatus) (bool, error) {
			return false, nil
		},
		countByReviewStatusFn: func(_ context.Context, _ models.ReviewStatus) (int64, error) { return 0, nil },
	}
}

// swapRepoStub is a stub for repository.SwapRepository.
type swapRepoStub struct {
	createFn          func(context.Context, *models.SwapRequest) error
	getByIDFn         func(context.Context, string) (*models.SwapRequest, error)
	listByRequesterFn func(context.Context, string) ([]models.SwapRequest, error)
	listByOwnerFn     func(context.Context, string) ([]models.SwapRequest, error)
	listAllFn         func(context.Context) ([]models.SwapRequest, error)
	acceptFn          func(context.Context, *models.SwapRequest, string, int, time.Time) error
	rejectFn          func(context.Context, *models.SwapRequest, time.Time) error
	countByStatusFn   func(context.Context, models.SwapStatus) (int64, error)
}

func (s *swapRepoStub) Create(ctx context.Context, req *models.SwapRequest) error {
	return s.createFn(ctx, req)
}
func (s *swapRepoStub) GetByID(ctx context.Context, id string) (*models.SwapRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *swapRepoStub) ListByRequester(ctx context.Context, id string) ([]models.SwapRequest, error) {
	return s.listByRequesterFn(ctx, id)
}
func (s *swapRepoStub) ListByItemOwner(ctx context.Context, id string) ([]models.SwapRequest, error) {
	return s.listByOwnerFn(ctx, id)
}
func (s *swapRepoStub) ListAll(ctx context.Context) ([]models.SwapRequest, error) {
	return s.listAllFn(ctx)
}
func (s *swapRepoStub) Accept(ctx context.Context, req *models.SwapRequest, ownerID string, points int, at time.Time) error {
	return s.acceptFn(ctx, req, ownerID, points, at)
}
func (s *swapRepoStub) Reject(ctx context.Context, req *models.SwapRequest, at time.Time) error {
	return s.rejectFn(ctx, req, at)
}
func (s *swapRepoStub) CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error) {
	return s.countByStatusFn(ctx, status)
}

func noopSwapRepo() *swapRepoStub {
	return &swapRepoStub{
		createFn:          func(_ context.Context, _ *models.SwapRequest) error { return nil },
		getByIDFn:         func(_ context.Context, _ string) (*models.SwapRequest, error) { return nil, gorm.ErrRecordNotFound },
		listByRequesterFn: func(_ context.Context, _ string) ([]models.SwapRequest, error) { return nil, nil },
		listByOwnerFn:     func(_ context.Context, _ string) ([]models.SwapRequest, error) { return nil, nil },
		listAllFn:         func(_ context.Context) ([]models.SwapRequest, error) { return nil, nil },
		acceptFn: func(_ context.Context, _ *models.SwapRequest, _ string, _ int, _ time.Time) error {
			return nil
		},
		rejectFn:        func(_ context.Context, _ *models.SwapRequest, _ time.Time) error { return nil },
		countByStatusFn: func(_ context.Context, _ models.SwapStatus) (int64, error) { return 0, nil },
	}
}
