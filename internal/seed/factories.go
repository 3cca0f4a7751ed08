package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"rewear/internal/models"
)

// Factory generates plausible users and listings.
type Factory struct {
	faker *gofakeit.Faker
	now   time.Time
}

// NewFactory returns a factory; a zero seed picks a random one.
func NewFactory(seed int64, now time.Time) *Factory {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return &Factory{faker: gofakeit.New(seed), now: now}
}

// User builds a regular community member.
func (f *Factory) User() models.User {
	id := uuid.NewString()
	return models.User{
		ID:         id,
		Name:       f.faker.Name(),
		Email:      fmt.Sprintf("%s+%s@example.com", f.faker.Username(), id[:8]),
		Bio:        f.faker.Sentence(8),
		ProfilePic: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", id),
		Points:     f.faker.Number(0, 600),
		CreatedAt:  f.ago(180),
	}
}

// Item builds an approved, available listing owned by ownerID.
func (f *Factory) Item(ownerID string) models.Item {
	id := uuid.NewString()
	category := f.faker.RandomString(models.Categories)

	tags := []string{f.faker.RandomString(models.StyleTags)}
	if second := f.faker.RandomString(models.StyleTags); second != tags[0] {
		tags = append(tags, second)
	}

	return models.Item{
		ID:           id,
		Title:        fmt.Sprintf("%s %s", f.faker.Color(), category),
		Description:  f.faker.Sentence(12),
		Tags:         tags,
		Size:         f.faker.RandomString(models.Sizes),
		Category:     category,
		Condition:    f.faker.RandomString(models.Conditions),
		Images:       []string{fmt.Sprintf("https://picsum.photos/seed/%s/600/800", id)},
		OwnerID:      ownerID,
		Status:       models.ItemStatusAvailable,
		ReviewStatus: models.ReviewStatusApproved,
		CreatedAt:    f.ago(60),
	}
}

func (f *Factory) ago(maxDays int) time.Time {
	days := f.faker.Number(0, maxDays)
	hours := f.faker.Number(0, 23)
	return f.now.Add(-time.Duration(days)*24*time.Hour - time.Duration(hours)*time.Hour)
}
