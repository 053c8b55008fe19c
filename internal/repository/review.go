package repository

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"stayhub/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines persistence operations for reviews, including the
// on-demand rating aggregation. Ratings are deliberately never cached:
// reviews can be added or removed at any time.
type ReviewRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	List(ctx context.Context, limit, offset int) ([]models.Review, error)
	ListByGuest(ctx context.Context, guestID uint, limit, offset int) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	AverageRating(ctx context.Context, propertyID uint) (float64, error)
	AverageRatings(ctx context.Context, propertyIDs []uint) (map[uint]float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Property.Images").
		Preload("Guest").
		First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Review", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) List(ctx context.Context, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Property.Images").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) ListByGuest(ctx context.Context, guestID uint, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Property.Images").
		Preload("Guest").
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Save(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Review{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// AverageRating returns the mean rating of a property rounded to one decimal
// place, or 0 when the property has no reviews.
func (r *reviewRepository) AverageRating(ctx context.Context, propertyID uint) (float64, error) {
	var avg sql.NullFloat64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("property_id = ?", propertyID).
		Select("AVG(rating)").
		Scan(&avg).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return roundToTenth(avg.Float64), nil
}

// AverageRatings returns mean ratings for several properties in one query.
// Properties without reviews are absent from the result map.
func (r *reviewRepository) AverageRatings(ctx context.Context, propertyIDs []uint) (map[uint]float64, error) {
	out := make(map[uint]float64, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		PropertyID uint
		Avg        float64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("property_id, AVG(rating) as avg").
		Where("property_id IN ?", propertyIDs).
		Group("property_id").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, row := range rows {
		out[row.PropertyID] = roundToTenth(row.Avg)
	}
	return out, nil
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
