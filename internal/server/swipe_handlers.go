package server

import (
	"github.com/gofiber/fiber/v2"

	"rewear/internal/filter"
	"rewear/internal/middleware"
	"rewear/internal/models"
	"rewear/internal/swipe"
)

// SwipeDecisionRequest is the body of a swipe.
type SwipeDecisionRequest struct {
	Direction string `json:"direction"`
}

// StartSwipeSession handles POST /api/swipe/sessions
// @Summary Start a swipe session
// @Description Open a swipe session over the catalog narrowed by the given filter. An empty body means no filter.
// @Tags swipe
// @Accept json
// @Produce json
// @Param request body filter.Spec false "Filter"
// @Success 201 {object} swipe.Snapshot
// @Failure 401 {object} models.ErrorResponse
// @Router /swipe/sessions [post]
func (s *Server) StartSwipeSession(c *fiber.Ctx) error {
	var spec filter.Spec
	if err := parseOptionalBody(c, &spec); err != nil {
		return nil
	}
	snap, err := s.swipeService.Start(c.UserContext(), middleware.ViewerID(c), spec)
	return respond(c, fiber.StatusCreated, snap, err)
}

// GetSwipeSession handles GET /api/swipe/sessions/:id
// @Summary Get swipe session
// @Description Current candidate, remaining count and swipe count of a session.
// @Tags swipe
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} swipe.Snapshot
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /swipe/sessions/{id} [get]
func (s *Server) GetSwipeSession(c *fiber.Ctx) error {
	snap, err := s.swipeService.Current(c.UserContext(), middleware.ViewerID(c), c.Params("id"))
	return respond(c, fiber.StatusOK, snap, err)
}

// DecideSwipe handles POST /api/swipe/sessions/:id/decide
// @Summary Swipe the current candidate
// @Description Pass (left) or express interest (right). Swiping an exhausted session changes nothing.
// @Tags swipe
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SwipeDecisionRequest true "Direction"
// @Success 200 {object} service.SwipeResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /swipe/sessions/{id}/decide [post]
func (s *Server) DecideSwipe(c *fiber.Ctx) error {
	var req SwipeDecisionRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	direction, err := swipe.ParseDirection(req.Direction)
	if err != nil {
		return models.RespondWithAppError(c, models.NewValidationError(err.Error()))
	}
	res, err := s.swipeService.Decide(c.UserContext(), middleware.ViewerID(c), c.Params("id"), direction)
	return respond(c, fiber.StatusOK, res, err)
}

// ResetSwipeSession handles POST /api/swipe/sessions/:id/reset
// @Summary Refilter a swipe session
// @Description Rebuild the candidates from the given filter and start again from the first one.
// @Tags swipe
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body filter.Spec false "Filter"
// @Success 200 {object} swipe.Snapshot
// @Failure 404 {object} models.ErrorResponse
// @Router /swipe/sessions/{id}/reset [post]
func (s *Server) ResetSwipeSession(c *fiber.Ctx) error {
	var spec filter.Spec
	if err := parseOptionalBody(c, &spec); err != nil {
		return nil
	}
	snap, err := s.swipeService.Reset(c.UserContext(), middleware.ViewerID(c), c.Params("id"), spec)
	return respond(c, fiber.StatusOK, snap, err)
}
