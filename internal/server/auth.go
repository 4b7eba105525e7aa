package server

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "videotube-api"
	tokenAudience = "videotube-client"
)

// generateAccessToken creates a short-lived access token for the given user.
func (s *Server) generateAccessToken(userID uint, username string) (string, error) {
	if s.config.AccessTokenSecret == "" {
		return "", fmt.Errorf("access token secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(s.config.AccessTokenExpiry).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}

// generateRefreshToken creates a long-lived refresh token carrying only the
// subject. It is signed with a separate secret so a leaked access secret
// cannot mint refresh tokens.
func (s *Server) generateRefreshToken(userID uint) (string, error) {
	if s.config.RefreshTokenSecret == "" {
		return "", fmt.Errorf("refresh token secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(s.config.RefreshTokenExpiry).Unix(),
		"iat": now.Unix(),
		"jti": generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.RefreshTokenSecret))
}

// parseRefreshToken validates a refresh token and returns the subject user ID.
func (s *Server) parseRefreshToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.config.RefreshTokenSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid or expired refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in token")
	}
	return uint(userID), nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// setAuthCookies attaches the token pair as httpOnly cookies.
func (s *Server) setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	secure := s.config.Env == "production" || s.config.Env == "prod"

	c.Cookie(&fiber.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		Expires:  time.Now().Add(s.config.AccessTokenExpiry),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		Expires:  time.Now().Add(s.config.RefreshTokenExpiry),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Lax",
	})
}

// clearAuthCookies expires both auth cookies.
func (s *Server) clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "accessToken", Value: "", Expires: expired, HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: "refreshToken", Value: "", Expires: expired, HTTPOnly: true})
}

// blacklistCurrentJTI revokes the caller's access token for its remaining
// lifetime. Best-effort: without Redis the token simply ages out.
func (s *Server) blacklistCurrentJTI(c *fiber.Ctx) {
	if s.redis == nil {
		return
	}
	tokenString := s.extractAccessToken(c)
	if tokenString == "" {
		return
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil || !token.Valid {
		return
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return
	}

	ttl := s.config.AccessTokenExpiry
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}
	s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
}
