package server

import (
	"github.com/gofiber/fiber/v2"

	"rewear/internal/impact"
	"rewear/internal/middleware"
	"rewear/internal/models"
	"rewear/internal/service"
)

// FlagPostBody is the body of POST /api/runway/:id/flag.
type FlagPostBody struct {
	Reason string `json:"reason"`
}

// GetRunway handles GET /api/runway
// @Summary List runway posts
// @Description Community posts newest first; posts hidden by moderation are omitted.
// @Tags runway
// @Produce json
// @Success 200 {array} models.FeedPost
// @Router /runway [get]
func (s *Server) GetRunway(c *fiber.Ctx) error {
	posts, err := s.feedService.List(c.UserContext())
	return respond(c, fiber.StatusOK, posts, err)
}

// CreateRunwayPost handles POST /api/runway
// @Summary Publish a runway post
// @Tags runway
// @Accept json
// @Produce json
// @Param request body service.PostDraft true "Post"
// @Success 201 {object} models.FeedPost
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /runway [post]
func (s *Server) CreateRunwayPost(c *fiber.Ctx) error {
	var draft service.PostDraft
	if err := parseBody(c, &draft); err != nil {
		return nil
	}
	post, err := s.feedService.CreatePost(c.UserContext(), middleware.ViewerID(c), draft)
	return respond(c, fiber.StatusCreated, post, err)
}

// FlagRunwayPost handles POST /api/runway/:id/flag
// @Summary Flag a runway post
// @Description Report a post to the moderators. Flagging a post twice changes nothing.
// @Tags runway
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body FlagPostBody false "Reason"
// @Success 200 {object} service.ModerationResult
// @Failure 404 {object} models.ErrorResponse
// @Router /runway/{id}/flag [post]
func (s *Server) FlagRunwayPost(c *fiber.Ctx) error {
	var body FlagPostBody
	if err := parseOptionalBody(c, &body); err != nil {
		return nil
	}
	res, err := s.moderationService.FlagPost(c.UserContext(), c.Params("id"), middleware.ViewerID(c), body.Reason)
	return respond(c, fiber.StatusOK, res, err)
}

// GetLeaderboard handles GET /api/leaderboard
// @Summary Community leaderboard
// @Description Members ranked by points earned in the timeframe.
// @Tags impact
// @Produce json
// @Param timeframe query string false "weekly, monthly or all_time" default(all_time)
// @Success 200 {array} models.LeaderboardEntry
// @Failure 400 {object} models.ErrorResponse
// @Router /leaderboard [get]
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	tf := models.Timeframe(c.Query("timeframe", string(models.TimeframeAllTime)))
	entries, err := s.leaderboardService.Leaderboard(c.UserContext(), tf)
	return respond(c, fiber.StatusOK, entries, err)
}

// GetImpact handles GET /api/impact
// @Summary Impact calculator
// @Description Environmental impact and level for the given counts. Negative counts are treated as zero.
// @Tags impact
// @Produce json
// @Param swaps query int false "Successful swaps"
// @Param listed query int false "Items listed"
// @Param points query int false "Points"
// @Success 200 {object} impact.Summary
// @Failure 400 {object} models.ErrorResponse
// @Router /impact [get]
func (s *Server) GetImpact(c *fiber.Ctx) error {
	var counts struct {
		Swaps  int `query:"swaps"`
		Listed int `query:"listed"`
		Points int `query:"points"`
	}
	if err := c.QueryParser(&counts); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("swaps, listed and points must be integers"))
	}
	return c.JSON(impact.Summarize(counts.Points, counts.Swaps, counts.Listed))
}
