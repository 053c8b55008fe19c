package server

import (
	"stayhub/internal/models"
	"stayhub/internal/presenter"
	"stayhub/internal/repository"
	"stayhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListProperties handles GET /api/properties. Only active listings appear;
// filters are optional query parameters.
// @Summary Browse properties
// @Tags properties
// @Produce json
// @Param city query int false "City ID"
// @Param type query string false "Property type (apartment|house|studio)"
// @Param min_price query int false "Minimum nightly price"
// @Param max_price query int false "Maximum nightly price"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} presenter.PropertyListView
// @Router /properties [get]
func (s *Server) ListProperties(c *fiber.Ctx) error {
	p := s.parsePagination(c)
	filter := repository.PropertyFilter{
		CityID:   uint(c.QueryInt("city", 0)),
		Type:     models.PropertyType(c.Query("type")),
		MinPrice: c.QueryInt("min_price", 0),
		MaxPrice: c.QueryInt("max_price", 0),
	}

	listings, err := s.propertyService.ListProperties(c.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	views := make([]presenter.PropertyListView, len(listings))
	for i := range listings {
		views[i] = presenter.PropertyList(&listings[i].Property, listings[i].AverageRating)
	}
	return c.JSON(fiber.Map{"properties": views})
}

// GetProperty handles GET /api/properties/:id
// @Summary Property detail
// @Tags properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} presenter.PropertyDetailView
// @Failure 404 {object} models.ErrorResponse
// @Router /properties/{id} [get]
func (s *Server) GetProperty(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.propertyService.GetPropertyDetail(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"property": presenter.PropertyDetail(detail.Property, detail.AverageRating),
	})
}

// ListPropertyReviews handles GET /api/properties/:id/reviews
func (s *Server) ListPropertyReviews(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.propertyService.GetPropertyDetail(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	reviews := make([]presenter.ReviewView, len(detail.Property.Reviews))
	for i := range detail.Property.Reviews {
		reviews[i] = presenter.Review(&detail.Property.Reviews[i])
	}
	return c.JSON(fiber.Map{
		"reviews":        reviews,
		"average_rating": detail.AverageRating,
	})
}

// CreateProperty handles POST /api/properties (host only)
// @Summary Create a listing
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,description=string,price_per_night=int,city_id=int,address=string,type=string,rules=string,max_guests=int,is_active=bool} true "Listing"
// @Success 201 {object} presenter.PropertyDetailView
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /properties [post]
func (s *Server) CreateProperty(c *fiber.Ctx) error {
	var req struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		PricePerNight int    `json:"price_per_night"`
		CityID        uint   `json:"city_id"`
		Address       string `json:"address"`
		Type          string `json:"type"`
		Rules         string `json:"rules"`
		MaxGuests     int    `json:"max_guests"`
		IsActive      *bool  `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// New listings default to active unless the host says otherwise.
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	property, err := s.propertyService.CreateProperty(c.Context(), service.CreatePropertyInput{
		OwnerID:       currentUserID(c),
		Title:         req.Title,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		CityID:        req.CityID,
		Address:       req.Address,
		Type:          models.PropertyType(req.Type),
		Rules:         models.PropertyRules(req.Rules),
		MaxGuests:     req.MaxGuests,
		IsActive:      isActive,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"property": property})
}

// UpdateProperty handles PUT /api/properties/:id (owner only)
func (s *Server) UpdateProperty(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		PricePerNight int    `json:"price_per_night"`
		CityID        uint   `json:"city_id"`
		Address       string `json:"address"`
		Type          string `json:"type"`
		Rules         string `json:"rules"`
		MaxGuests     int    `json:"max_guests"`
		IsActive      *bool  `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	property, err := s.propertyService.UpdateProperty(c.Context(), service.UpdatePropertyInput{
		OwnerID:       currentUserID(c),
		PropertyID:    id,
		Title:         req.Title,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		CityID:        req.CityID,
		Address:       req.Address,
		Type:          models.PropertyType(req.Type),
		Rules:         models.PropertyRules(req.Rules),
		MaxGuests:     req.MaxGuests,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"property": property})
}

// DeleteProperty handles DELETE /api/properties/:id (owner only). Images,
// bookings and reviews go with the listing.
func (s *Server) DeleteProperty(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.propertyService.DeleteProperty(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Property deleted"})
}
