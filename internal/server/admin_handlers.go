package server

import (
	"github.com/gofiber/fiber/v2"

	"rewear/internal/middleware"
	"rewear/internal/service"
)

// GetPendingItems handles GET /api/admin/items
// @Summary Pending listings
// @Description Listings awaiting review whose title or owner name contains q.
// @Tags admin
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {array} models.Item
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/items [get]
func (s *Server) GetPendingItems(c *fiber.Ctx) error {
	items, err := s.moderationService.PendingItems(c.UserContext(), c.Query("q"))
	return respond(c, fiber.StatusOK, items, err)
}

// ApproveItem handles POST /api/admin/items/:id/approve
// @Summary Approve a listing
// @Description Make a pending listing browseable. Acting on a reviewed listing changes nothing.
// @Tags admin
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} service.ModerationResult
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/items/{id}/approve [post]
func (s *Server) ApproveItem(c *fiber.Ctx) error {
	return s.moderateItem(c, service.DecisionApprove)
}

// RejectItem handles POST /api/admin/items/:id/reject
// @Summary Reject a listing
// @Tags admin
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} service.ModerationResult
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/items/{id}/reject [post]
func (s *Server) RejectItem(c *fiber.Ctx) error {
	return s.moderateItem(c, service.DecisionReject)
}

func (s *Server) moderateItem(c *fiber.Ctx, decision service.ItemDecision) error {
	res, err := s.moderationService.ModerateItem(c.UserContext(), c.Params("id"), decision)
	return respond(c, fiber.StatusOK, res, err)
}

// GetFlaggedPosts handles GET /api/admin/flags
// @Summary Flagged runway posts
// @Description Flagged posts whose caption or reporter name contains q.
// @Tags admin
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {array} models.FeedPost
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/flags [get]
func (s *Server) GetFlaggedPosts(c *fiber.Ctx) error {
	posts, err := s.moderationService.FlaggedPosts(c.UserContext(), c.Query("q"))
	return respond(c, fiber.StatusOK, posts, err)
}

// ResolveFlag handles POST /api/admin/flags/:id/resolve
// @Summary Resolve a flag
// @Description Hide a flagged post from the runway.
// @Tags admin
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} service.ModerationResult
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/flags/{id}/resolve [post]
func (s *Server) ResolveFlag(c *fiber.Ctx) error {
	res, err := s.moderationService.ResolveFlag(c.UserContext(), c.Params("id"))
	return respond(c, fiber.StatusOK, res, err)
}

// GetAdminStats handles GET /api/admin/stats
// @Summary Admin counters
// @Tags admin
// @Produce json
// @Success 200 {object} service.AdminStats
// @Router /admin/stats [get]
func (s *Server) GetAdminStats(c *fiber.Ctx) error {
	stats, err := s.moderationService.Stats(c.UserContext())
	return respond(c, fiber.StatusOK, stats, err)
}

// GetFeatureFlags returns configured feature flags and evaluated state for current user.
// @Summary Feature flags
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID := middleware.ViewerID(c)

	if s.featureFlags == nil {
		return c.JSON(fiber.Map{
			"raw":       map[string]string{},
			"evaluated": map[string]bool{},
		})
	}

	return c.JSON(fiber.Map{
		"raw":       s.featureFlags.Raw(),
		"evaluated": s.featureFlags.Snapshot(userID),
	})
}
