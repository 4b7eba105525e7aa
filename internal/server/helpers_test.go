package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SumiranBhawsar/youtube-clone/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"videoId", "video ID"},
		{"commentId", "comment ID"},
		{"playlistId", "playlist ID"},
		{"tweetId", "tweet ID"},
		{"channelId", "channel ID"},
		{"subscriberId", "subscriber ID"},
		{"username", "username"},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func TestParseID_Invalid(t *testing.T) {
	app := fiber.New()
	s := &Server{}

	app.Get("/videos/:videoId", func(c *fiber.Ctx) error {
		if _, err := s.parseID(c, "videoId"); err != nil {
			return nil
		}
		return c.SendStatus(fiber.StatusOK)
	})

	for _, path := range []string{"/videos/abc", "/videos/0", "/videos/-1"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	}

	req := httptest.NewRequest(http.MethodGet, "/videos/42", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_MissingToken(t *testing.T) {
	app := fiber.New()
	s := &Server{config: &config.Config{
		AccessTokenSecret: "test-access-secret-0123456789abcdef",
	}}

	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_ValidToken(t *testing.T) {
	cfg := &config.Config{
		AccessTokenSecret: "test-access-secret-0123456789abcdef",
		AccessTokenExpiry: time.Hour,
	}
	s := &Server{config: cfg}

	token, err := s.generateAccessToken(7, "alice")
	assert.NoError(t, err)

	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		assert.Equal(t, uint(7), currentUserID(c))
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, aerr := app.Test(req)
	assert.NoError(t, aerr)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_WrongSecret(t *testing.T) {
	issuing := &Server{config: &config.Config{
		AccessTokenSecret: "issuer-secret-0123456789abcdef00",
		AccessTokenExpiry: time.Hour,
	}}
	token, err := issuing.generateAccessToken(7, "alice")
	assert.NoError(t, err)

	verifying := &Server{config: &config.Config{
		AccessTokenSecret: "different-secret-0123456789abcdef",
	}}

	app := fiber.New()
	app.Get("/protected", verifying.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, aerr := app.Test(req)
	assert.NoError(t, aerr)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}
