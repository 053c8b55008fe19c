package server

import (
	"io"

	"stayhub/internal/models"
	"stayhub/internal/presenter"
	"stayhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPropertyImages handles GET /api/properties/:id/images
func (s *Server) ListPropertyImages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	images, err := s.imageService.ListImages(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"images": presenter.Images(images)})
}

// UploadPropertyImage handles POST /api/properties/:id/images (owner only).
// Accepts a multipart "image" file, converts it to WebP and stores it.
// @Summary Upload a property photo
// @Tags properties
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param image formData file true "Image file"
// @Success 201 {object} presenter.ImageView
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /properties/{id}/images [post]
func (s *Server) UploadPropertyImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An 'image' file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	image, err := s.imageService.UploadImage(c.Context(), service.UploadImageInput{
		OwnerID:    currentUserID(c),
		PropertyID: id,
		Content:    content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"image": presenter.Image(image)})
}

// DeletePropertyImage handles DELETE /api/properties/:id/images/:imageId (owner only)
func (s *Server) DeletePropertyImage(c *fiber.Ctx) error {
	imageID, err := s.parseID(c, "imageId")
	if err != nil {
		return nil
	}
	if err := s.imageService.DeleteImage(c.Context(), currentUserID(c), imageID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Image deleted"})
}
