package server

import (
	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleSubscription handles POST /api/v1/subscriptions/c/:channelId.
func (s *Server) ToggleSubscription(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}

	// The channel must be a real user.
	if _, err := s.userRepo.GetByID(c.Context(), channelID); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	subscribed, err := s.subRepo.Toggle(c.Context(), currentUserID(c), channelID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"channel_id": channelID,
		"subscribed": subscribed,
	}, message)
}

// GetChannelSubscribers handles GET /api/v1/subscriptions/c/:channelId.
func (s *Server) GetChannelSubscribers(c *fiber.Ctx) error {
	channelID, err := s.parseID(c, "channelId")
	if err != nil {
		return nil
	}

	page, err := s.subRepo.ListSubscribers(c.Context(), channelID, parsePageParams(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, page, "Subscribers fetched successfully")
}

// GetSubscribedChannels handles GET /api/v1/subscriptions/u/:subscriberId.
func (s *Server) GetSubscribedChannels(c *fiber.Ctx) error {
	subscriberID, err := s.parseID(c, "subscriberId")
	if err != nil {
		return nil
	}

	page, err := s.subRepo.ListSubscribedChannels(c.Context(), subscriberID, parsePageParams(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, page, "Subscribed channels fetched successfully")
}
