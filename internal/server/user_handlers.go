package server

import (
	"stayhub/internal/models"
	"stayhub/internal/policy"
	"stayhub/internal/presenter"
	"stayhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.ProfileView
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":    presenter.Profile(user),
		"actions": policy.Actions(user.Role),
	})
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{first_name=string,last_name=string,phone=string,avatar=string} true "Profile fields"
// @Success 200 {object} presenter.ProfileView
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Avatar    string `json:"avatar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:    currentUserID(c),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Avatar:    req.Avatar,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"user": presenter.Profile(user)})
}

// DeleteMyAccount handles DELETE /api/users/me. All owned rows (properties,
// bookings, reviews, favorites) go with the account.
// @Summary Delete own account
// @Tags users
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /users/me [delete]
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// GetMyFeatureFlags handles GET /api/users/me/flags, returning the evaluated
// flag snapshot for the authenticated user.
func (s *Server) GetMyFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"flags": s.featureFlags.Snapshot(currentUserID(c))})
}

// GetFeatureFlags handles GET /api/admin/feature-flags, returning the raw
// configured flag list.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"flags": s.featureFlags.Raw()})
}
