// Package seed loads the demo community into the catalog store. The base
// data is an embedded YAML document; extra users with listings can be
// generated on top of it for load and UI testing.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"rewear/internal/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Options configures a seeding run.
type Options struct {
	// ExtraUsers is the number of generated users, each with one approved listing.
	ExtraUsers int
	// FakerSeed makes generated data reproducible when non-zero.
	FakerSeed int64
	// Now anchors the relative timestamps of the demo data.
	Now time.Time
	// Force seeds even when users already exist.
	Force bool
}

// Result summarizes what a seeding run wrote.
type Result struct {
	Users   int  `json:"users"`
	Items   int  `json:"items"`
	Swaps   int  `json:"swaps"`
	Posts   int  `json:"posts"`
	Skipped bool `json:"skipped"`
}

type userRecord struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Bio        string `yaml:"bio"`
	ProfilePic string `yaml:"profile_pic"`
	Points     int    `yaml:"points"`
	IsAdmin    bool   `yaml:"is_admin"`
	DaysAgo    int    `yaml:"days_ago"`
}

type itemRecord struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Tags         []string `yaml:"tags"`
	Size         string   `yaml:"size"`
	Category     string   `yaml:"category"`
	Condition    string   `yaml:"condition"`
	Images       []string `yaml:"images"`
	OwnerID      string   `yaml:"owner_id"`
	Status       string   `yaml:"status"`
	ReviewStatus string   `yaml:"review_status"`
	DaysAgo      int      `yaml:"days_ago"`
}

type swapRecord struct {
	ID          string `yaml:"id"`
	RequesterID string `yaml:"requester_id"`
	ItemID      string `yaml:"item_id"`
	Status      string `yaml:"status"`
	DaysAgo     int    `yaml:"days_ago"`
}

type postRecord struct {
	ID         string `yaml:"id"`
	UserID     string `yaml:"user_id"`
	ItemID     string `yaml:"item_id"`
	Image      string `yaml:"image"`
	Caption    string `yaml:"caption"`
	FlagStatus string `yaml:"flag_status"`
	FlagReason string `yaml:"flag_reason"`
	FlaggedBy  string `yaml:"flagged_by"`
	DaysAgo    int    `yaml:"days_ago"`
}

// Catalog is the parsed demo document.
type Catalog struct {
	Users []userRecord `yaml:"users"`
	Items []itemRecord `yaml:"items"`
	Swaps []swapRecord `yaml:"swaps"`
	Posts []postRecord `yaml:"posts"`
}

// LoadCatalog parses the embedded demo document.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog parses a demo document and checks its references.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) check() error {
	users := make(map[string]bool, len(c.Users))
	for _, u := range c.Users {
		users[u.ID] = true
	}
	owners := make(map[string]string, len(c.Items))
	for _, it := range c.Items {
		if !users[it.OwnerID] {
			return fmt.Errorf("seed item %s: unknown owner %s", it.ID, it.OwnerID)
		}
		owners[it.ID] = it.OwnerID
	}
	for _, s := range c.Swaps {
		owner, ok := owners[s.ItemID]
		if !ok {
			return fmt.Errorf("seed swap %s: unknown item %s", s.ID, s.ItemID)
		}
		if !users[s.RequesterID] {
			return fmt.Errorf("seed swap %s: unknown requester %s", s.ID, s.RequesterID)
		}
		if owner == s.RequesterID {
			return fmt.Errorf("seed swap %s: requester owns item %s", s.ID, s.ItemID)
		}
	}
	for _, p := range c.Posts {
		if !users[p.UserID] {
			return fmt.Errorf("seed post %s: unknown author %s", p.ID, p.UserID)
		}
	}
	return nil
}

// Models converts the document into entities with timestamps relative to now.
func (c *Catalog) Models(now time.Time) ([]models.User, []models.Item, []models.SwapRequest, []models.FeedPost) {
	ago := func(days int) time.Time { return now.Add(-time.Duration(days) * 24 * time.Hour) }

	users := make([]models.User, 0, len(c.Users))
	for _, u := range c.Users {
		users = append(users, models.User{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Bio:        u.Bio,
			ProfilePic: u.ProfilePic,
			Points:     u.Points,
			IsAdmin:    u.IsAdmin,
			CreatedAt:  ago(u.DaysAgo),
		})
	}

	items := make([]models.Item, 0, len(c.Items))
	for _, it := range c.Items {
		status := models.ItemStatus(it.Status)
		if status == "" {
			status = models.ItemStatusAvailable
		}
		review := models.ReviewStatus(it.ReviewStatus)
		if review == "" {
			review = models.ReviewStatusApproved
		}
		items = append(items, models.Item{
			ID:           it.ID,
			Title:        it.Title,
			Description:  it.Description,
			Tags:         it.Tags,
			Size:         it.Size,
			Category:     it.Category,
			Condition:    it.Condition,
			Images:       it.Images,
			OwnerID:      it.OwnerID,
			Status:       status,
			ReviewStatus: review,
			CreatedAt:    ago(it.DaysAgo),
		})
	}

	swaps := make([]models.SwapRequest, 0, len(c.Swaps))
	for _, s := range c.Swaps {
		req := models.SwapRequest{
			ID:          s.ID,
			RequesterID: s.RequesterID,
			ItemID:      s.ItemID,
			Status:      models.SwapStatus(s.Status),
			CreatedAt:   ago(s.DaysAgo),
		}
		if req.Status != models.SwapStatusPending {
			resolved := req.CreatedAt
			req.ResolvedAt = &resolved
		}
		swaps = append(swaps, req)
	}

	posts := make([]models.FeedPost, 0, len(c.Posts))
	for _, p := range c.Posts {
		post := models.FeedPost{
			ID:         p.ID,
			UserID:     p.UserID,
			Image:      p.Image,
			Caption:    p.Caption,
			FlagStatus: models.FlagStatus(p.FlagStatus),
			FlagReason: p.FlagReason,
			CreatedAt:  ago(p.DaysAgo),
		}
		if post.FlagStatus == "" {
			post.FlagStatus = models.FlagStatusNone
		}
		if p.ItemID != "" {
			id := p.ItemID
			post.ItemID = &id
		}
		if p.FlaggedBy != "" {
			by := p.FlaggedBy
			post.FlaggedBy = &by
		}
		posts = append(posts, post)
	}

	return users, items, swaps, posts
}

// Seed writes the demo community, plus generated users, in one transaction.
// An already populated store is left untouched unless opts.Force is set.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (*Result, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}

	if !opts.Force {
		var count int64
		if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("count users: %w", err)
		}
		if count > 0 {
			slog.InfoContext(ctx, "seed skipped, store already populated", slog.Int64("users", count))
			return &Result{Skipped: true}, nil
		}
	}

	catalog, err := LoadCatalog()
	if err != nil {
		return nil, err
	}
	users, items, swaps, posts := catalog.Models(opts.Now)

	factory := NewFactory(opts.FakerSeed, opts.Now)
	for i := 0; i < opts.ExtraUsers; i++ {
		u := factory.User()
		users = append(users, u)
		items = append(items, factory.Item(u.ID))
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(users) > 0 {
			if err := tx.Create(&users).Error; err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
		}
		if len(items) > 0 {
			if err := tx.Omit("Owner").Create(&items).Error; err != nil {
				return fmt.Errorf("seed items: %w", err)
			}
		}
		if len(swaps) > 0 {
			if err := tx.Omit("Requester", "Item").Create(&swaps).Error; err != nil {
				return fmt.Errorf("seed swaps: %w", err)
			}
		}
		if len(posts) > 0 {
			if err := tx.Omit("User", "Item", "Reporter").Create(&posts).Error; err != nil {
				return fmt.Errorf("seed posts: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Users: len(users), Items: len(items), Swaps: len(swaps), Posts: len(posts)}
	slog.InfoContext(ctx, "seeded demo catalog",
		slog.Int("users", res.Users),
		slog.Int("items", res.Items),
		slog.Int("swaps", res.Swaps),
		slog.Int("posts", res.Posts),
	)
	return res, nil
}
