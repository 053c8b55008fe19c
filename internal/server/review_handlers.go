package server

import (
	"stayhub/internal/models"
	"stayhub/internal/presenter"
	"stayhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListMyReviews handles GET /api/reviews. Only the caller's reviews are
// visible here; a property's reviews are public under /properties/:id/reviews.
// @Summary List own reviews
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {array} presenter.MyReviewView
// @Router /reviews [get]
func (s *Server) ListMyReviews(c *fiber.Ctx) error {
	p := s.parsePagination(c)
	reviews, err := s.reviewService.ListMyReviews(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": presenter.MyReviews(reviews)})
}

// GetMyReview handles GET /api/reviews/:id
func (s *Server) GetMyReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	review, err := s.reviewService.GetMyReview(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"review": presenter.MyReview(review)})
}

// CreateReview handles POST /api/reviews
// @Summary Review a property
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{property_id=int,rating=int,comment=string} true "Review"
// @Success 201 {object} presenter.MyReviewView
// @Failure 400 {object} models.ErrorResponse
// @Router /reviews [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	var req struct {
		PropertyID uint   `json:"property_id"`
		Rating     int    `json:"rating"`
		Comment    string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(c.Context(), service.CreateReviewInput{
		GuestID:    currentUserID(c),
		PropertyID: req.PropertyID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": presenter.MyReview(review)})
}

// UpdateMyReview handles PUT /api/reviews/:id
func (s *Server) UpdateMyReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.UpdateReview(c.Context(), service.UpdateReviewInput{
		GuestID:  currentUserID(c),
		ReviewID: id,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"review": presenter.MyReview(review)})
}

// DeleteMyReview handles DELETE /api/reviews/:id
func (s *Server) DeleteMyReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.reviewService.DeleteReview(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}
