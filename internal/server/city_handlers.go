package server

import (
	"stayhub/internal/models"
	"stayhub/internal/presenter"
	"stayhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListCities handles GET /api/cities
// @Summary List cities
// @Tags cities
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} presenter.CityView
// @Router /cities [get]
func (s *Server) ListCities(c *fiber.Ctx) error {
	p := s.parsePagination(c)
	cities, err := s.cityService.ListCities(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"cities": presenter.Cities(cities)})
}

// GetCity handles GET /api/cities/:id
func (s *Server) GetCity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	city, err := s.cityService.GetCity(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"city": presenter.City(city)})
}

// CreateCity handles POST /api/cities (admin only)
// @Summary Create a city
// @Tags cities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,image=string} true "City"
// @Success 201 {object} presenter.CityView
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /cities [post]
func (s *Server) CreateCity(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	city, err := s.cityService.CreateCity(c.Context(), service.CityInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"city": presenter.City(city)})
}

// UpdateCity handles PUT /api/cities/:id (admin only)
func (s *Server) UpdateCity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	city, err := s.cityService.UpdateCity(c.Context(), id, service.CityInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"city": presenter.City(city)})
}

// DeleteCity handles DELETE /api/cities/:id (admin only). Properties in the
// city are removed by FK cascade.
func (s *Server) DeleteCity(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.cityService.DeleteCity(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "City deleted"})
}
