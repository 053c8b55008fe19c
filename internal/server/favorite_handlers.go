package server

import (
	"stayhub/internal/models"
	"stayhub/internal/presenter"

	"github.com/gofiber/fiber/v2"
)

// GetMyFavorites handles GET /api/favorites. The list is created on first
// access, so this never 404s for an authenticated guest.
// @Summary Get own favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.FavoriteView
// @Router /favorites [get]
func (s *Server) GetMyFavorites(c *fiber.Ctx) error {
	p := s.parsePagination(c)
	favorite, items, err := s.favoriteService.GetMyFavorites(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"favorite": presenter.Favorite(favorite, items)})
}

// AddFavorite handles POST /api/favorites/items
// @Summary Save a property
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{property_id=int} true "Property to save"
// @Success 201 {object} presenter.FavoriteItemView
// @Failure 400 {object} models.ErrorResponse
// @Router /favorites/items [post]
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	var req struct {
		PropertyID uint `json:"property_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.PropertyID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("property_id is required"))
	}

	item, err := s.favoriteService.AddFavorite(c.Context(), currentUserID(c), req.PropertyID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"item": item})
}

// RemoveFavorite handles DELETE /api/favorites/items/:itemId
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	itemID, err := s.parseID(c, "itemId")
	if err != nil {
		return nil
	}
	if err := s.favoriteService.RemoveFavorite(c.Context(), currentUserID(c), itemID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Removed from favorites"})
}
