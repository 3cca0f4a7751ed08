package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rewear/internal/middleware"
	"rewear/internal/models"
)

// CreateSwapRequestBody is the body of POST /api/swaps.
type CreateSwapRequestBody struct {
	ItemID string `json:"item_id"`
}

// ResolveSwapRequestBody is the body of POST /api/swaps/:id/resolve.
type ResolveSwapRequestBody struct {
	Decision string `json:"decision"`
}

// CreateSwapRequest handles POST /api/swaps
// @Summary Request a swap
// @Description Ask the owner of an available item to swap it.
// @Tags swaps
// @Accept json
// @Produce json
// @Param request body CreateSwapRequestBody true "Item to request"
// @Success 201 {object} models.SwapRequest
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /swaps [post]
func (s *Server) CreateSwapRequest(c *fiber.Ctx) error {
	var body CreateSwapRequestBody
	if err := parseBody(c, &body); err != nil {
		return nil
	}
	req, err := s.swapService.CreateSwapRequest(c.UserContext(), middleware.ViewerID(c), strings.TrimSpace(body.ItemID))
	return respond(c, fiber.StatusCreated, req, err)
}

// ResolveSwapRequest handles POST /api/swaps/:id/resolve
// @Summary Accept or reject a swap request
// @Description The item owner resolves a pending request. Accepting marks the item swapped and awards points.
// @Tags swaps
// @Accept json
// @Produce json
// @Param id path string true "Swap request ID"
// @Param request body ResolveSwapRequestBody true "accepted or rejected"
// @Success 200 {object} models.SwapRequest
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /swaps/{id}/resolve [post]
func (s *Server) ResolveSwapRequest(c *fiber.Ctx) error {
	var body ResolveSwapRequestBody
	if err := parseBody(c, &body); err != nil {
		return nil
	}
	decision := models.SwapStatus(strings.ToLower(strings.TrimSpace(body.Decision)))
	req, err := s.swapService.ResolveSwapRequest(c.UserContext(), middleware.ViewerID(c), c.Params("id"), decision)
	return respond(c, fiber.StatusOK, req, err)
}

// GetDashboard handles GET /api/dashboard
// @Summary Viewer dashboard
// @Description Listings, sent and received swap requests and impact of the viewer.
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.Dashboard
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /dashboard [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	d, err := s.dashboardService.Dashboard(c.UserContext(), middleware.ViewerID(c))
	return respond(c, fiber.StatusOK, d, err)
}
