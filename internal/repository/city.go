package repository

import (
	"context"
	"errors"

	"stayhub/internal/cache"
	"stayhub/internal/models"

	"gorm.io/gorm"
)

// CityRepository defines persistence operations for cities.
type CityRepository interface {
	GetByID(ctx context.Context, id uint) (*models.City, error)
	List(ctx context.Context, limit, offset int) ([]models.City, error)
	Create(ctx context.Context, city *models.City) error
	Update(ctx context.Context, city *models.City) error
	Delete(ctx context.Context, id uint) error
}

type cityRepository struct {
	db *gorm.DB
}

// NewCityRepository returns a new CityRepository implementation.
func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{db: db}
}

func (r *cityRepository) GetByID(ctx context.Context, id uint) (*models.City, error) {
	var city models.City
	key := cache.CityKey(id)

	err := cache.Aside(ctx, key, &city, cache.CityTTL, func() error {
		if err := r.db.WithContext(ctx).First(&city, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("City", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *cityRepository) List(ctx context.Context, limit, offset int) ([]models.City, error) {
	var cities []models.City
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(limit).Offset(offset).
		Find(&cities).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return cities, nil
}

func (r *cityRepository) Create(ctx context.Context, city *models.City) error {
	if err := r.db.WithContext(ctx).Create(city).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewValidationError("city name already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *cityRepository) Update(ctx context.Context, city *models.City) error {
	if err := r.db.WithContext(ctx).Save(city).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewValidationError("city name already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateCity(ctx, city.ID)
	return nil
}

func (r *cityRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(&models.City{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCity(ctx, id)
	return nil
}
