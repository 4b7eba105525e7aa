package server

import (
	"mime/multipart"
	"strings"

	"github.com/SumiranBhawsar/youtube-clone/internal/models"
	"github.com/SumiranBhawsar/youtube-clone/internal/storage"
	"github.com/SumiranBhawsar/youtube-clone/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/v1/users/register. Multipart: username, email,
// password, fullName fields plus a required avatar file and an optional
// coverImage file.
func (s *Server) Register(c *fiber.Ctx) error {
	username := strings.ToLower(strings.TrimSpace(c.FormValue("username")))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	fullName := strings.TrimSpace(c.FormValue("fullName"))

	if username == "" || email == "" || password == "" || fullName == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("username, email, fullName, and password are required"))
	}
	if err := validation.ValidateUsername(username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("avatar file is required"))
	}

	// Check for an existing account before touching object storage.
	if existing, err := s.userRepo.GetByEmail(c.Context(), email); err != nil {
		return models.RespondWithError(c, 0, err)
	} else if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("a user with this email already exists"))
	}
	if existing, err := s.userRepo.GetByUsername(c.Context(), username); err != nil {
		return models.RespondWithError(c, 0, err)
	} else if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("a user with this username already exists"))
	}

	avatar, err := s.uploadFormFile(c, avatarFile)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	var coverImage *storage.UploadResult
	if coverFile, ferr := c.FormFile("coverImage"); ferr == nil && coverFile != nil {
		coverImage, err = s.uploadFormFile(c, coverFile)
		if err != nil {
			// Roll back the avatar object; the account was never created.
			_ = s.media.Destroy(c.Context(), avatar.PublicID)
			return models.RespondWithError(c, 0, err)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		FullName: fullName,
		Avatar:   avatar.URL,
	}
	if coverImage != nil {
		user.CoverImage = coverImage.URL
	}

	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		// Creation failed after objects were stored; clean them up.
		_ = s.media.Destroy(c.Context(), avatar.PublicID)
		if coverImage != nil {
			_ = s.media.Destroy(c.Context(), coverImage.PublicID)
		}
		return models.RespondWithError(c, 0, createErr)
	}

	return models.Respond(c, fiber.StatusCreated, user, "User registered successfully")
}

// uploadFormFile stages a multipart file to disk and pushes it to the media
// store.
func (s *Server) uploadFormFile(c *fiber.Ctx, file *multipart.FileHeader) (*storage.UploadResult, error) {
	path, err := stageUploadedFile(c, file)
	if err != nil {
		return nil, err
	}
	result, err := s.media.Upload(c.Context(), path)
	if err != nil {
		removeStagedFile(path)
		return nil, err
	}
	return result, nil
}

// Login handles POST /api/v1/users/login. Accepts username or email plus
// password, sets the auth cookie pair, and stores the refresh token.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	identifier := req.Email
	if identifier == "" {
		identifier = strings.ToLower(req.Username)
	}
	if identifier == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("username or email and password are required"))
	}

	user, err := s.userRepo.GetByEmailOrUsername(c.Context(), identifier)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", identifier))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	accessToken, refreshToken, err := s.issueTokenPair(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "User logged in successfully")
}

// issueTokenPair mints a fresh access/refresh pair, persists the refresh
// token as the user's single active session, and sets both cookies.
func (s *Server) issueTokenPair(c *fiber.Ctx, user *models.User) (string, string, error) {
	accessToken, err := s.generateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.generateRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}
	if err := s.userRepo.UpdateRefreshToken(c.Context(), user.ID, refreshToken); err != nil {
		return "", "", err
	}
	s.setAuthCookies(c, accessToken, refreshToken)
	return accessToken, refreshToken, nil
}

// Logout handles POST /api/v1/users/logout. Clears the cookie pair, drops the
// stored refresh token, and revokes the access token's JTI.
func (s *Server) Logout(c *fiber.Ctx) error {
	userID := currentUserID(c)

	if err := s.userRepo.UpdateRefreshToken(c.Context(), userID, ""); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	s.blacklistCurrentJTI(c)
	s.clearAuthCookies(c)

	return models.Respond(c, fiber.StatusOK, nil, "User logged out successfully")
}

// RefreshAccessToken handles POST /api/v1/users/refresh-token. The incoming
// refresh token (cookie or body) must match the stored one; a successful call
// rotates the whole pair.
func (s *Server) RefreshAccessToken(c *fiber.Ctx) error {
	incoming := c.Cookies("refreshToken")
	if incoming == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.BodyParser(&req); err == nil {
			incoming = req.RefreshToken
		}
	}
	if incoming == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Refresh token required"))
	}

	userID, err := s.parseRefreshToken(incoming)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired refresh token"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid refresh token"))
	}
	if user.RefreshToken == "" || user.RefreshToken != incoming {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Refresh token is expired or has been used"))
	}

	accessToken, refreshToken, err := s.issueTokenPair(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}, "Access token refreshed")
}

// ChangePassword handles POST /api/v1/users/change-password.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req struct {
		OldPassword     string `json:"oldPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.NewPassword != req.ConfirmPassword {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("new password and confirmation do not match"))
	}
	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("old password is incorrect"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	user.Password = string(hashed)

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, nil, "Password changed successfully")
}

// GetCurrentUser handles GET /api/v1/users/current-user.
func (s *Server) GetCurrentUser(c *fiber.Ctx) error {
	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Current user fetched successfully")
}

// UpdateAccount handles PATCH /api/v1/users/update-account.
func (s *Server) UpdateAccount(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.FullName == "" || req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("fullName and email are required"))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Email = strings.TrimSpace(req.Email)

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, user, "Account details updated successfully")
}

// UpdateAvatar handles PATCH /api/v1/users/avatar (multipart).
func (s *Server) UpdateAvatar(c *fiber.Ctx) error {
	return s.updateUserImage(c, "avatar")
}

// UpdateCoverImage handles PATCH /api/v1/users/cover-image (multipart).
func (s *Server) UpdateCoverImage(c *fiber.Ctx) error {
	return s.updateUserImage(c, "coverImage")
}

// updateUserImage replaces the avatar or cover image: upload the new object
// first, persist the new URL, then drop the old object.
func (s *Server) updateUserImage(c *fiber.Ctx, field string) error {
	file, err := c.FormFile(field)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(field+" file is required"))
	}

	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	result, err := s.uploadFormFile(c, file)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	var oldURL string
	switch field {
	case "avatar":
		oldURL = user.Avatar
		user.Avatar = result.URL
	default:
		oldURL = user.CoverImage
		user.CoverImage = result.URL
	}

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		_ = s.media.Destroy(c.Context(), result.PublicID)
		return models.RespondWithError(c, 0, err)
	}

	// The DB now points at the new object; the old one is unreferenced.
	_ = s.media.Destroy(c.Context(), storage.ExtractPublicID(oldURL))

	return models.Respond(c, fiber.StatusOK, user, "Image updated successfully")
}

// GetChannelProfile handles GET /api/v1/users/c/:username with optional auth.
func (s *Server) GetChannelProfile(c *fiber.Ctx) error {
	username := strings.ToLower(c.Params("username"))
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("username is required"))
	}

	viewerID, _ := s.optionalUserID(c)

	profile, err := s.userRepo.GetChannelProfile(c.Context(), username, viewerID)
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}

	return models.Respond(c, fiber.StatusOK, profile, "Channel profile fetched successfully")
}

// GetWatchHistory handles GET /api/v1/users/history.
func (s *Server) GetWatchHistory(c *fiber.Ctx) error {
	page, err := s.userRepo.GetWatchHistory(c.Context(), currentUserID(c), parsePageParams(c))
	if err != nil {
		return models.RespondWithError(c, 0, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Watch history fetched successfully")
}
