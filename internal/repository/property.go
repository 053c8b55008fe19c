package repository

import (
	"context"
	"errors"

	"stayhub/internal/cache"
	"stayhub/internal/models"

	"gorm.io/gorm"
)

// PropertyFilter narrows property listings. Zero values mean "no filter".
type PropertyFilter struct {
	CityID   uint
	Type     models.PropertyType
	MinPrice int
	MaxPrice int
}

// PropertyRepository defines persistence operations for properties.
type PropertyRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Property, error)
	GetDetail(ctx context.Context, id uint) (*models.Property, error)
	List(ctx context.Context, filter PropertyFilter, limit, offset int) ([]models.Property, error)
	Create(ctx context.Context, property *models.Property) error
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id uint) error
}

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository returns a new PropertyRepository implementation.
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	key := cache.PropertyKey(id)

	err := cache.Aside(ctx, key, &property, cache.PropertyTTL, func() error {
		if err := r.db.WithContext(ctx).First(&property, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Property", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetDetail loads a property with city, owner, images and reviews (with
// reviewer profiles) for the detail representation. Never cached so the
// nested review list stays fresh.
func (r *propertyRepository) GetDetail(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).
		Preload("City").
		Preload("Owner").
		Preload("Images").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Reviews.Guest").
		First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Property", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &property, nil
}

func (r *propertyRepository) List(ctx context.Context, filter PropertyFilter, limit, offset int) ([]models.Property, error) {
	q := r.db.WithContext(ctx).Model(&models.Property{}).
		Preload("Images").
		Where("is_active = ?", true)

	if filter.CityID != 0 {
		q = q.Where("city_id = ?", filter.CityID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.MinPrice > 0 {
		q = q.Where("price_per_night >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price_per_night <= ?", filter.MaxPrice)
	}

	var properties []models.Property
	if err := q.Order("id ASC").Limit(limit).Offset(offset).Find(&properties).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return properties, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	if err := r.db.WithContext(ctx).Create(property).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *propertyRepository) Update(ctx context.Context, property *models.Property) error {
	if err := r.db.WithContext(ctx).Save(property).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProperty(ctx, property.ID)
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(&models.Property{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProperty(ctx, id)
	return nil
}
