package server

import (
	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetChannelStats handles GET /api/v1/dashboard/stats for the authenticated
// channel owner.
func (s *Server) GetChannelStats(c *fiber.Ctx) error {
	stats, err := s.dashboardRepo.GetChannelStats(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return models.Respond(c, fiber.StatusOK, stats, "Channel stats fetched successfully")
}

// GetChannelVideos handles GET /api/v1/dashboard/videos: every video on the
// caller's channel, published or not.
func (s *Server) GetChannelVideos(c *fiber.Ctx) error {
	page, err := s.dashboardRepo.GetChannelVideos(c.Context(), currentUserID(c), parsePageParams(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Channel videos fetched successfully")
}
