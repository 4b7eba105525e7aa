package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPlaylistTestApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	app.Post("/playlist", s.CreatePlaylist)
	app.Patch("/playlist/add/:videoId/:playlistId", s.AddVideoToPlaylist)
	app.Patch("/playlist/remove/:videoId/:playlistId", s.RemoveVideoFromPlaylist)
	app.Delete("/playlist/:playlistId", s.DeletePlaylist)
	return app
}

func TestCreatePlaylist(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(repo *MockPlaylistRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"name": "Favourites", "description": "Best ones"},
			mockSetup: func(repo *MockPlaylistRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate name",
			body: map[string]string{"name": "Favourites"},
			mockSetup: func(repo *MockPlaylistRepository) {
				repo.On("Create", mock.Anything, mock.Anything).
					Return(models.NewConflictError("a playlist with this name already exists"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Missing name",
			body:           map[string]string{"description": "whatever"},
			mockSetup:      func(repo *MockPlaylistRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPlaylistRepository)
			tt.mockSetup(mockRepo)

			s := &Server{config: testConfig(), playlistRepo: mockRepo}
			app := newPlaylistTestApp(s, 1)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/playlist", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAddVideoToPlaylist_NotOwner(t *testing.T) {
	mockPlaylists := new(MockPlaylistRepository)
	mockVideos := new(MockVideoRepository)
	mockPlaylists.On("GetByID", mock.Anything, uint(4)).
		Return(&models.Playlist{ID: 4, OwnerID: 2}, nil)

	s := &Server{config: testConfig(), playlistRepo: mockPlaylists, videoRepo: mockVideos}
	app := newPlaylistTestApp(s, 1)

	req := httptest.NewRequest(http.MethodPatch, "/playlist/add/5/4", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	mockPlaylists.AssertNotCalled(t, "AddVideo", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddVideoToPlaylist_Owner(t *testing.T) {
	mockPlaylists := new(MockPlaylistRepository)
	mockVideos := new(MockVideoRepository)
	mockPlaylists.On("GetByID", mock.Anything, uint(4)).
		Return(&models.Playlist{ID: 4, OwnerID: 1}, nil)
	mockVideos.On("GetByID", mock.Anything, uint(5), uint(1)).
		Return(&models.Video{ID: 5}, nil)
	mockPlaylists.On("AddVideo", mock.Anything, uint(4), uint(5)).Return(nil)

	s := &Server{config: testConfig(), playlistRepo: mockPlaylists, videoRepo: mockVideos}
	app := newPlaylistTestApp(s, 1)

	req := httptest.NewRequest(http.MethodPatch, "/playlist/add/5/4", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockPlaylists.AssertExpectations(t)
	mockVideos.AssertExpectations(t)
}

func TestDeletePlaylist_Owner(t *testing.T) {
	mockPlaylists := new(MockPlaylistRepository)
	mockPlaylists.On("GetByID", mock.Anything, uint(4)).
		Return(&models.Playlist{ID: 4, OwnerID: 1}, nil)
	mockPlaylists.On("Delete", mock.Anything, uint(4)).Return(nil)

	s := &Server{config: testConfig(), playlistRepo: mockPlaylists}
	app := newPlaylistTestApp(s, 1)

	req := httptest.NewRequest(http.MethodDelete, "/playlist/4", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockPlaylists.AssertExpectations(t)
}
