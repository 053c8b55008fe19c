package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"stayhub/internal/imaging"
	"stayhub/internal/models"
	"stayhub/internal/observability"
	"stayhub/internal/repository"
)

type ImageService struct {
	imageRepo    repository.ImageRepository
	propertyRepo repository.PropertyRepository
	uploadDir    string
	maxSizeBytes int
}

type UploadImageInput struct {
	OwnerID    uint
	PropertyID uint
	Content    []byte
}

func NewImageService(
	imageRepo repository.ImageRepository,
	propertyRepo repository.PropertyRepository,
	uploadDir string,
	maxSizeMB int,
) *ImageService {
	return &ImageService{
		imageRepo:    imageRepo,
		propertyRepo: propertyRepo,
		uploadDir:    uploadDir,
		maxSizeBytes: maxSizeMB * 1024 * 1024,
	}
}

// ListImages returns a property's images in upload order.
func (s *ImageService) ListImages(ctx context.Context, propertyID uint) ([]models.PropertyImage, error) {
	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.imageRepo.ListByProperty(ctx, propertyID)
}

// UploadImage converts the upload to WebP, writes it under the upload
// directory keyed by content hash, and records it against the property.
// Only the property's owner may upload.
func (s *ImageService) UploadImage(ctx context.Context, in UploadImageInput) (*models.PropertyImage, error) {
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("image file is required")
	}
	if len(in.Content) > s.maxSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("image exceeds maximum size of %d bytes", s.maxSizeBytes))
	}

	property, err := s.propertyRepo.GetByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != in.OwnerID {
		return nil, models.NewForbiddenError("you do not own this property")
	}

	result, err := imaging.Process(in.Content)
	if err != nil {
		observability.ImagesProcessed.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("unsupported or corrupt image file")
	}

	filename := fmt.Sprintf("%d_%s.webp", in.PropertyID, result.Hash)
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, filename), result.Content, 0o644); err != nil {
		return nil, models.NewInternalError(err)
	}

	image := &models.PropertyImage{
		PropertyID: in.PropertyID,
		Image:      filename,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		return nil, err
	}

	observability.ImagesProcessed.WithLabelValues("stored").Inc()
	return image, nil
}

// DeleteImage removes an image record and its stored file. Only the
// property's owner may delete.
func (s *ImageService) DeleteImage(ctx context.Context, ownerID, imageID uint) error {
	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	property, err := s.propertyRepo.GetByID(ctx, image.PropertyID)
	if err != nil {
		return err
	}
	if property.OwnerID != ownerID {
		return models.NewForbiddenError("you do not own this property")
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}
	// The file is secondary to the record; a failed unlink only leaves an
	// orphaned file behind.
	_ = os.Remove(filepath.Join(s.uploadDir, image.Image))
	return nil
}
