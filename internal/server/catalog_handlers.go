package server

import (
	"github.com/gofiber/fiber/v2"

	"rewear/internal/middleware"
	"rewear/internal/service"
)

// GetItems handles GET /api/items
// @Summary Browse the catalog
// @Description List approved, available items matching the filter.
// @Tags items
// @Produce json
// @Param q query string false "Search term over title, description and tags"
// @Param category query string false "Category"
// @Param size query string false "Size"
// @Param condition query string false "Condition"
// @Param tags query string false "Comma separated style tags"
// @Success 200 {array} models.Item
// @Router /items [get]
func (s *Server) GetItems(c *fiber.Ctx) error {
	items, err := s.catalogService.FetchCatalog(c.UserContext(), parseFilterSpec(c))
	return respond(c, fiber.StatusOK, items, err)
}

// GetItem handles GET /api/items/:id
// @Summary Get item detail
// @Description Fetch an item with its owner and similar suggestions.
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} service.ItemDetail
// @Failure 404 {object} models.ErrorResponse
// @Router /items/{id} [get]
func (s *Server) GetItem(c *fiber.Ctx) error {
	detail, err := s.catalogService.GetItem(c.UserContext(), c.Params("id"))
	return respond(c, fiber.StatusOK, detail, err)
}

// CreateItem handles POST /api/items
// @Summary List an item
// @Description Submit a new listing; it waits for moderation before it can be browsed.
// @Tags items
// @Accept json
// @Produce json
// @Param request body service.ItemDraft true "Listing"
// @Success 201 {object} models.Item
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /items [post]
func (s *Server) CreateItem(c *fiber.Ctx) error {
	var draft service.ItemDraft
	if err := parseBody(c, &draft); err != nil {
		return nil
	}
	item, err := s.listingService.ListItem(c.UserContext(), middleware.ViewerID(c), draft)
	return respond(c, fiber.StatusCreated, item, err)
}
