package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rewear/internal/database"
	"rewear/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

var baseTime = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, db *gorm.DB, id string, points int) *models.User {
	t.Helper()
	u := &models.User{ID: id, Name: "User " + id, Email: id + "@example.com", Points: points, CreatedAt: baseTime}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedItem(t *testing.T, db *gorm.DB, id, owner string, review models.ReviewStatus, offset int) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:           id,
		Title:        fmt.Sprintf("Item %s", id),
		Tags:         []string{"Casual"},
		Size:         "M",
		Category:     "Tops",
		Condition:    "New",
		Images:       []string{id + ".jpg"},
		OwnerID:      owner,
		Status:       models.ItemStatusAvailable,
		ReviewStatus: review,
		CreatedAt:    baseTime.Add(time.Duration(offset) * time.Hour),
	}
	require.NoError(t, NewItemRepository(db).Create(context.Background(), item))
	return item
}
