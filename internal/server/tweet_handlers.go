package server

import (
	"strings"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxTweetLength = 280

// CreateTweet handles POST /api/v1/tweets.
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("content is required"))
	}
	if len(content) > maxTweetLength {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("content exceeds maximum length"))
	}

	tweet := &models.Tweet{
		Content: content,
		OwnerID: currentUserID(c),
	}
	if err := s.tweetRepo.Create(c.Context(), tweet); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusCreated, tweet, "Tweet created successfully")
}

// GetUserTweets handles GET /api/v1/tweets/user/:userId.
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	page, err := s.tweetRepo.ListByUser(c.Context(), userID, parsePageParams(c), viewerID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, page, "Tweets fetched successfully")
}

// UpdateTweet handles PATCH /api/v1/tweets/:tweetId (owner only).
func (s *Server) UpdateTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("content is required"))
	}

	tweet, err := s.tweetRepo.GetByID(c.Context(), tweetID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	if tweet.OwnerID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("only the owner can update this tweet"))
	}

	tweet.Content = content
	if err := s.tweetRepo.Update(c.Context(), tweet); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, tweet, "Tweet updated successfully")
}

// DeleteTweet handles DELETE /api/v1/tweets/:tweetId (owner only).
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}

	tweet, err := s.tweetRepo.GetByID(c.Context(), tweetID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	if tweet.OwnerID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("only the owner can delete this tweet"))
	}

	if err := s.tweetRepo.Delete(c.Context(), tweetID); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "Tweet deleted successfully")
}
