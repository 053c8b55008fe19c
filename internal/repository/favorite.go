package repository

import (
	"context"
	"errors"

	"stayhub/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository defines persistence operations for favorites and their items.
type FavoriteRepository interface {
	GetOrCreateByGuest(ctx context.Context, guestID uint) (*models.Favorite, error)
	AddItem(ctx context.Context, item *models.FavoriteItem) error
	ListItems(ctx context.Context, favoriteID uint, limit, offset int) ([]models.FavoriteItem, error)
	GetItem(ctx context.Context, itemID uint) (*models.FavoriteItem, error)
	DeleteItem(ctx context.Context, itemID uint) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository returns a new FavoriteRepository implementation.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// GetOrCreateByGuest returns the guest's favorite list, creating it on first use.
func (r *favoriteRepository) GetOrCreateByGuest(ctx context.Context, guestID uint) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.db.WithContext(ctx).Where("guest_id = ?", guestID).First(&favorite).Error
	if err == nil {
		return &favorite, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	favorite = models.Favorite{GuestID: guestID}
	if err := r.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost a race against a concurrent first use; read the winner.
			if err := r.db.WithContext(ctx).Where("guest_id = ?", guestID).First(&favorite).Error; err != nil {
				return nil, models.NewInternalError(err)
			}
			return &favorite, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &favorite, nil
}

func (r *favoriteRepository) AddItem(ctx context.Context, item *models.FavoriteItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewValidationError("property is already in favorites")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *favoriteRepository) ListItems(ctx context.Context, favoriteID uint, limit, offset int) ([]models.FavoriteItem, error) {
	var items []models.FavoriteItem
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Property.Images").
		Where("favorite_id = ?", favoriteID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *favoriteRepository) GetItem(ctx context.Context, itemID uint) (*models.FavoriteItem, error) {
	var item models.FavoriteItem
	if err := r.db.WithContext(ctx).
		Preload("Favorite").
		First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("FavoriteItem", itemID)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

func (r *favoriteRepository) DeleteItem(ctx context.Context, itemID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.FavoriteItem{}, itemID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
