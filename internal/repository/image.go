package repository

import (
	"context"
	"errors"

	"stayhub/internal/models"

	"gorm.io/gorm"
)

// ImageRepository defines persistence operations for property images.
type ImageRepository interface {
	GetByID(ctx context.Context, id uint) (*models.PropertyImage, error)
	ListByProperty(ctx context.Context, propertyID uint) ([]models.PropertyImage, error)
	Create(ctx context.Context, image *models.PropertyImage) error
	Delete(ctx context.Context, id uint) error
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository returns a new ImageRepository implementation.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) GetByID(ctx context.Context, id uint) (*models.PropertyImage, error) {
	var image models.PropertyImage
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("PropertyImage", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &image, nil
}

func (r *imageRepository) ListByProperty(ctx context.Context, propertyID uint) ([]models.PropertyImage, error) {
	var images []models.PropertyImage
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at ASC").
		Find(&images).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return images, nil
}

func (r *imageRepository) Create(ctx context.Context, image *models.PropertyImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *imageRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.PropertyImage{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
