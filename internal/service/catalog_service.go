package service

import (
	"context"

	"rewear/internal/cache"
	"rewear/internal/filter"
	"rewear/internal/models"
	"rewear/internal/repository"
	"rewear/internal/swipe"
)

const maxSuggestions = 4

// ItemDetail is an item with suggestions for the detail page.
type ItemDetail struct {
	Item      models.Item   `json:"item"`
	Suggested []models.Item `json:"suggested"`
}

// CatalogService reads the browseable catalog.
type CatalogService struct {
	items repository.ItemRepository
	cache *cache.Cache
}

func NewCatalogService(items repository.ItemRepository, c *cache.Cache) *CatalogService {
	return &CatalogService{items: items, cache: c}
}

// FetchCatalog returns approved, available items matching spec, newest first.
func (s *CatalogService) FetchCatalog(ctx context.Context, spec filter.Spec) ([]models.Item, error) {
	items, err := s.items.ListBrowsable(ctx)
	if err != nil {
		callLog.LogServiceError(ctx, "catalog", "FetchCatalog", err)
		return nil, storeErr(err)
	}
	return filter.Filter(items, spec), nil
}

// SwipeCatalog snapshots the browseable catalog for a swipe queue.
func (s *CatalogService) SwipeCatalog(ctx context.Context) (swipe.Catalog, error) {
	items, err := s.items.ListBrowsable(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return swipe.StaticCatalog(items), nil
}

// GetItem returns an approved item with up to four suggestions from the same
// category listed by other members. Listings awaiting review or rejected are
// reported as not found.
func (s *CatalogService) GetItem(ctx context.Context, id string) (*ItemDetail, error) {
	var item models.Item
	err := s.cache.Aside(ctx, "item", cache.ItemKey(id), &item, cache.ItemTTL, func() error {
		found, err := s.items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if found.ReviewStatus != models.ReviewStatusApproved {
			return models.NewNotFoundError("item", id)
		}
		item = *found
		return nil
	})
	if err != nil {
		return nil, lookupErr(err, "item", id)
	}

	browsable, err := s.items.ListBrowsable(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return &ItemDetail{Item: item, Suggested: Suggestions(item, browsable, maxSuggestions)}, nil
}

// Suggestions picks up to limit candidates sharing item's category that are
// neither item itself nor owned by item's owner.
func Suggestions(item models.Item, candidates []models.Item, limit int) []models.Item {
	out := make([]models.Item, 0, limit)
	for _, c := range candidates {
		if len(out) == limit {
			break
		}
		if c.ID == item.ID || c.OwnerID == item.OwnerID || c.Category != item.Category {
			continue
		}
		out = append(out, c)
	}
	return out
}
