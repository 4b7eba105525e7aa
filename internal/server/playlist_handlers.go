package server

import (
	"strings"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePlaylist handles POST /api/v1/playlist.
func (s *Server) CreatePlaylist(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("name is required"))
	}

	playlist := &models.Playlist{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		OwnerID:     currentUserID(c),
	}
	if err := s.playlistRepo.Create(c.Context(), playlist); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusCreated, playlist, "Playlist created successfully")
}

// GetUserPlaylists handles GET /api/v1/playlist/user/:userId.
func (s *Server) GetUserPlaylists(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	playlists, err := s.playlistRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, playlists, "Playlists fetched successfully")
}

// GetPlaylistByID handles GET /api/v1/playlist/:playlistId.
func (s *Server) GetPlaylistByID(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	playlist, err := s.playlistRepo.GetByID(c.Context(), playlistID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, playlist, "Playlist fetched successfully")
}

// getOwnedPlaylist loads a playlist and verifies the caller owns it.
func (s *Server) getOwnedPlaylist(c *fiber.Ctx, playlistID uint) (*models.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(c.Context(), playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != currentUserID(c) {
		return nil, models.NewForbiddenError("only the owner can modify this playlist")
	}
	return playlist, nil
}

// AddVideoToPlaylist handles PATCH /api/v1/playlist/add/:videoId/:playlistId.
func (s *Server) AddVideoToPlaylist(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	if _, err := s.getOwnedPlaylist(c, playlistID); err != nil {
		return models.RespondWithError(c, 0, err)
	}
	if _, err := s.videoRepo.GetByID(c.Context(), videoID, currentUserID(c)); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	if err := s.playlistRepo.AddVideo(c.Context(), playlistID, videoID); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "Video added to playlist successfully")
}

// RemoveVideoFromPlaylist handles PATCH /api/v1/playlist/remove/:videoId/:playlistId.
func (s *Server) RemoveVideoFromPlaylist(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "videoId")
	if err != nil {
		return nil
	}
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	if _, err := s.getOwnedPlaylist(c, playlistID); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	if err := s.playlistRepo.RemoveVideo(c.Context(), playlistID, videoID); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "Video removed from playlist successfully")
}

// UpdatePlaylist handles PATCH /api/v1/playlist/:playlistId (owner only).
func (s *Server) UpdatePlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	playlist, err := s.getOwnedPlaylist(c, playlistID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		playlist.Name = name
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		playlist.Description = description
	}

	if err := s.playlistRepo.Update(c.Context(), playlist); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, playlist, "Playlist updated successfully")
}

// DeletePlaylist handles DELETE /api/v1/playlist/:playlistId (owner only).
func (s *Server) DeletePlaylist(c *fiber.Ctx) error {
	playlistID, err := s.parseID(c, "playlistId")
	if err != nil {
		return nil
	}

	if _, err := s.getOwnedPlaylist(c, playlistID); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	if err := s.playlistRepo.Delete(c.Context(), playlistID); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "Playlist deleted successfully")
}
