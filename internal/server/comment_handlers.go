package server

import (
	"strings"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxCommentLength = 2000

// GetVideoComments handles GET /api/v1/comments/:videoId, paginated newest
// first.
func (s *Server) GetVideoComments(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	page, err := s.commentRepo.ListByVideo(c.Context(), videoID, parsePageParams(c), viewerID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, page, "Comments fetched successfully")
}

// AddComment handles POST /api/v1/comments/:videoId.
func (s *Server) AddComment(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
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
	if len(content) > maxCommentLength {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("content exceeds maximum length"))
	}

	// The video must exist and be visible before accepting a comment.
	if _, err := s.videoRepo.GetByID(c.Context(), videoID, currentUserID(c)); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	comment := &models.Comment{
		Content: content,
		VideoID: videoID,
		OwnerID: currentUserID(c),
	}
	if err := s.commentRepo.Create(c.Context(), comment); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusCreated, comment, "Comment added successfully")
}

// UpdateComment handles PATCH /api/v1/comments/c/:commentId (owner only).
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
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

	comment, err := s.commentRepo.GetByID(c.Context(), commentID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	if comment.OwnerID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("only the owner can update this comment"))
	}

	comment.Content = content
	if err := s.commentRepo.Update(c.Context(), comment); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, comment, "Comment updated successfully")
}

// DeleteComment handles DELETE /api/v1/comments/c/:commentId (owner only).
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comment, err := s.commentRepo.GetByID(c.Context(), commentID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	if comment.OwnerID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("only the owner can delete this comment"))
	}

	if err := s.commentRepo.Delete(c.Context(), commentID); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "Comment deleted successfully")
}
