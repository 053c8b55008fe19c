package repository

import (
	"context"
	"errors"

	"stayhub/internal/models"

	"gorm.io/gorm"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	ListByGuest(ctx context.Context, guestID uint, limit, offset int) ([]models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id uint) error
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository returns a new BookingRepository implementation.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Property.Images").
		Preload("Guest").
		First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Booking", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListByGuest(ctx context.Context, guestID uint, limit, offset int) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Property.Images").
		Preload("Guest").
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return bookings, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	if err := r.db.WithContext(ctx).Save(booking).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
