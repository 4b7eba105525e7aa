package server

import (
	"strconv"
	"strings"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"
	"github.com/SumiranBhawsar/youtube-clone/internal/repository"
	"github.com/SumiranBhawsar/youtube-clone/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// GetAllVideos handles GET /api/v1/videos with optional auth. Supports
// page/limit/query/sortBy/sortType/userId query parameters; only published
// videos are listed, except that owners see their own drafts when filtering
// by their own userId.
func (s *Server) GetAllVideos(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)

	var ownerID uint
	if raw := c.Query("userId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid user ID"))
		}
		ownerID = uint(parsed)
	}

	opts := repository.VideoListOptions{
		Query:              strings.TrimSpace(c.Query("query")),
		OwnerID:            ownerID,
		SortBy:             c.Query("sortBy"),
		SortType:           c.Query("sortType"),
		IncludeUnpublished: ownerID != 0 && ownerID == viewerID,
	}

	page, err := s.videoRepo.List(c.Context(), opts, parsePageParams(c), viewerID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, page, "Videos fetched successfully")
}

// PublishVideo handles POST /api/v1/videos. Multipart: title, description,
// duration fields plus videoFile and thumbnail files.
func (s *Server) PublishVideo(c *fiber.Ctx) error {
	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	if title == "" || description == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title and description are required"))
	}

	duration, _ := strconv.ParseFloat(c.FormValue("duration"), 64)

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("videoFile is required"))
	}
	thumbnailFile, err := c.FormFile("thumbnail")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("thumbnail is required"))
	}

	uploadedVideo, err := s.uploadFormFile(c, videoFile)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	uploadedThumbnail, err := s.uploadFormFile(c, thumbnailFile)
	if err != nil {
		_ = s.media.Destroy(c.Context(), uploadedVideo.PublicID)
		return models.RespondWithError(c, 0, err)
	}

	video := &models.Video{
		Title:       title,
		Description: description,
		VideoFile:   uploadedVideo.URL,
		Thumbnail:   uploadedThumbnail.URL,
		Duration:    duration,
		IsPublished: true,
		OwnerID:     currentUserID(c),
	}

	if createErr := s.videoRepo.Create(c.Context(), video); createErr != nil {
		// The row never landed; drop both stored objects.
		_ = s.media.Destroy(c.Context(), uploadedVideo.PublicID)
		_ = s.media.Destroy(c.Context(), uploadedThumbnail.PublicID)
		return models.RespondWithError(c, 0, createErr)
	}

	return models.Respond(c, fiber.StatusCreated, video, "Video published successfully")
}

// GetVideoByID handles GET /api/v1/videos/:videoId with optional auth.
// Fetching a video counts a view and, for signed-in viewers, records watch
// history.
func (s *Server) GetVideoByID(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	viewerID, _ := s.optionalUserID(c)

	video, err := s.videoRepo.GetByID(c.Context(), videoID, viewerID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	if incErr := s.videoRepo.IncrementViews(c.Context(), videoID); incErr == nil {
		video.Views++
	}
	if viewerID != 0 {
		_ = s.userRepo.AddWatchHistory(c.Context(), viewerID, videoID)
	}

	return models.Respond(c, fiber.StatusOK, video, "Video fetched successfully")
}

// UpdateVideo handles PATCH /api/v1/videos/:videoId (owner only). Accepts
// title/description fields and an optional replacement thumbnail.
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	video, err := s.videoRepo.GetByID(c.Context(), videoID, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	if video.OwnerID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("only the owner can update this video"))
	}

	if title := strings.TrimSpace(c.FormValue("title")); title != "" {
		video.Title = title
	}
	if description := strings.TrimSpace(c.FormValue("description")); description != "" {
		video.Description = description
	}

	var oldThumbnail string
	if thumbFile, ferr := c.FormFile("thumbnail"); ferr == nil && thumbFile != nil {
		uploaded, uerr := s.uploadFormFile(c, thumbFile)
		if uerr != nil {
			return models.RespondWithError(c, 0, uerr)
		}
		oldThumbnail = video.Thumbnail
		video.Thumbnail = uploaded.URL
	}

	if err := s.videoRepo.Update(c.Context(), video); err != nil {
		return models.RespondWithError(c, 0, err)
	}
	if oldThumbnail != "" {
		_ = s.media.Destroy(c.Context(), storage.ExtractPublicID(oldThumbnail))
	}

	return models.Respond(c, fiber.StatusOK, video, "Video updated successfully")
}

// DeleteVideo handles DELETE /api/v1/videos/:videoId (owner only). Removes
// the stored media objects after the row and its dependents are gone.
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	video, err := s.videoRepo.GetByID(c.Context(), videoID, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	if video.OwnerID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("only the owner can delete this video"))
	}

	if err := s.videoRepo.Delete(c.Context(), videoID); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	_ = s.media.Destroy(c.Context(), storage.ExtractPublicID(video.VideoFile))
	_ = s.media.Destroy(c.Context(), storage.ExtractPublicID(video.Thumbnail))

	return models.Respond(c, fiber.StatusOK, nil, "Video deleted successfully")
}

// TogglePublishStatus handles PATCH /api/v1/videos/toggle/publish/:videoId
// (owner only).
func (s *Server) TogglePublishStatus(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}

	video, err := s.videoRepo.GetByID(c.Context(), videoID, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	if video.OwnerID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("only the owner can change publish status"))
	}

	updated, err := s.videoRepo.TogglePublish(c.Context(), videoID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"id":           updated.ID,
		"is_published": updated.IsPublished,
	}, "Publish status toggled successfully")
}
