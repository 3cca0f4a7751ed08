package repository

import (
	"context"

	"gorm.io/gorm"

	"rewear/internal/models"
	"rewear/internal/observability"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	AddPoints(ctx context.Context, id string, delta int) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger("users")}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	ctx, done := track(ctx, r.db, "create", "users")
	defer done()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return err
	}
	r.log.LogCreate(ctx, map[string]interface{}{"user_id": user.ID})
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, done := track(ctx, r.db, "read", "users")
	defer done()
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, done := track(ctx, r.db, "list", "users")
	defer done()
	var users []models.User
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&users).Error
	return users, err
}

// AddPoints adjusts the points balance in a single UPDATE so concurrent
// credits do not overwrite each other.
func (r *userRepository) AddPoints(ctx context.Context, id string, delta int) error {
	return addPoints(r.db.WithContext(ctx), id, delta)
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

func addPoints(db *gorm.DB, id string, delta int) error {
	_, done := track(db.Statement.Context, db, "update", "users")
	defer done()
	res := db.Model(&models.User{}).
		Where("id = ?", id).
		Update("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
