// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"stayhub/internal/models"
	"stayhub/internal/presenter"
	"stayhub/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer      = "stayhub-api"
	tokenAudience    = "stayhub-client"
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// tokenPair is the response body for register, login and refresh.
type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register handles POST /api/auth/register
// @Summary User registration
// @Description Register a new guest or host account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,role=string} true "Registration request"
// @Success 201 {object} object{access_token=string,refresh_token=string,user=presenter.ProfileView}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Role      string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if req.Phone != "" {
		if err := validation.ValidatePhone(req.Phone); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	// Admins are provisioned out of band, never self-registered.
	role := models.RoleGuest
	if req.Role != "" {
		role = models.Role(req.Role)
		if role == models.RoleAdmin || !role.Valid() {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Role must be guest or host"))
		}
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("User already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return respondServiceError(c, createErr)
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          presenter.Profile(user),
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate user and return a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{access_token=string,refresh_token=string,user=presenter.ProfileView}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          presenter.Profile(user),
	})
}

// Refresh handles POST /api/auth/refresh. The presented refresh token is
// rotated: its jti is revoked and a fresh pair is issued.
// @Summary Refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{refresh_token=string} true "Refresh token"
// @Success 200 {object} object{access_token=string,refresh_token=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (s *Server) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("refresh_token is required"))
	}

	claims, err := s.parseToken(req.RefreshToken)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired refresh token"))
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Refresh token required"))
	}

	jti, _ := claims["jti"].(string)
	if jti == "" || s.isRevoked(c.Context(), jti) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Token has been revoked"))
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid subject claim"))
	}

	user, err := s.userRepo.GetByID(c.Context(), uint(userID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Account no longer exists"))
	}

	s.revokeJTI(c.Context(), jti, claimExpiry(claims))

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(pair)
}

// Logout handles POST /api/auth/logout. The refresh token is revoked for the
// remainder of its lifetime; access tokens simply age out.
// @Summary Logout
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{refresh_token=string} true "Refresh token to revoke"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("refresh_token is required"))
	}

	claims, err := s.parseToken(req.RefreshToken)
	if err != nil {
		// A malformed or forged token is a client error, not a silent success.
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid refresh token"))
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Refresh token required"))
	}

	if jti, _ := claims["jti"].(string); jti != "" {
		s.revokeJTI(c.Context(), jti, claimExpiry(claims))
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// generateTokenPair creates a short-lived access token and a long-lived
// refresh token for the user.
func (s *Server) generateTokenPair(user *models.User) (*tokenPair, error) {
	if s.config.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret not configured")
	}

	access, err := s.signToken(user, tokenTypeAccess,
		time.Duration(s.config.AccessTokenTTL)*time.Minute)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, tokenTypeRefresh,
		time.Duration(s.config.RefreshTokenTTL)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &tokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Server) signToken(user *models.User, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10), // Subject (user ID as string)
		"role": string(user.Role),                       // Role (cached in token)
		"typ":  typ,                                     // Token type (access|refresh)
		"iss":  tokenIssuer,                             // Issuer
		"aud":  tokenAudience,                           // Audience
		"exp":  now.Add(ttl).Unix(),                     // Expiration
		"iat":  now.Unix(),                              // Issued at
		"nbf":  now.Unix(),                              // Not before
		"jti":  generateJTI(),                           // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// claimExpiry reads exp from claims, falling back to the refresh TTL horizon
// so a revocation entry never lives forever.
func claimExpiry(claims jwt.MapClaims) time.Time {
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0)
	}
	return time.Now().Add(31 * 24 * time.Hour)
}

// revokeJTI blacklists a token ID until its expiry. Redis is the primary
// store; the in-process map is the fallback when Redis is down, which only
// protects this instance.
func (s *Server) revokeJTI(ctx context.Context, jti string, until time.Time) {
	ttl := time.Until(until)
	if ttl <= 0 {
		return
	}
	if s.redis != nil {
		if err := s.redis.Set(ctx, "blacklist:"+jti, "1", ttl).Err(); err == nil {
			return
		}
	}

	s.revokedMu.Lock()
	defer s.revokedMu.Unlock()
	s.revoked[jti] = until
	for id, exp := range s.revoked {
		if time.Now().After(exp) {
			delete(s.revoked, id)
		}
	}
}

func (s *Server) isRevoked(ctx context.Context, jti string) bool {
	if s.redis != nil {
		if n, err := s.redis.Exists(ctx, "blacklist:"+jti).Result(); err == nil {
			if n > 0 {
				return true
			}
		}
	}

	s.revokedMu.Lock()
	defer s.revokedMu.Unlock()
	until, ok := s.revoked[jti]
	return ok && time.Now().Before(until)
}
