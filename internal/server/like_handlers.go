package server

import (
	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleVideoLike handles POST /api/v1/likes/toggle/v/:videoId.
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	if _, err := s.videoRepo.GetByID(c.Context(), videoID, currentUserID(c)); err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return s.toggleLike(c, models.LikeTargetVideo, videoID)
}

// ToggleCommentLike handles POST /api/v1/likes/toggle/c/:commentId.
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	if _, err := s.commentRepo.GetByID(c.Context(), commentID); err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return s.toggleLike(c, models.LikeTargetComment, commentID)
}

// ToggleTweetLike handles POST /api/v1/likes/toggle/t/:tweetId.
func (s *Server) ToggleTweetLike(c *fiber.Ctx) error {
	tweetID, err := s.parseID(c, "tweetId")
	if err != nil {
		return nil
	}
	if _, err := s.tweetRepo.GetByID(c.Context(), tweetID); err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return s.toggleLike(c, models.LikeTargetTweet, tweetID)
}

func (s *Server) toggleLike(c *fiber.Ctx, target models.LikeTarget, targetID uint) error {
	liked, err := s.likeRepo.Toggle(c.Context(), currentUserID(c), target, targetID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	message := "Like removed successfully"
	if liked {
		message = "Liked successfully"
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"target_type": target,
		"target_id":   targetID,
		"liked":       liked,
	}, message)
}

// GetLikedVideos handles GET /api/v1/likes/videos.
func (s *Server) GetLikedVideos(c *fiber.Ctx) error {
	page, err := s.likeRepo.ListLikedVideos(c.Context(), currentUserID(c), parsePageParams(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Liked videos fetched successfully")
}
