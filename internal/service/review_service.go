package service

import (
	"context"
	"strings"

	"stayhub/internal/models"
	"stayhub/internal/repository"
)

const maxReviewCommentLen = 2000

type ReviewService struct {
	reviewRepo   repository.ReviewRepository
	propertyRepo repository.PropertyRepository
}

type CreateReviewInput struct {
	GuestID    uint
	PropertyID uint
	Rating     int
	Comment    string
}

type UpdateReviewInput struct {
	GuestID  uint
	ReviewID uint
	Rating   int
	Comment  string
}

func NewReviewService(reviewRepo repository.ReviewRepository, propertyRepo repository.PropertyRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, propertyRepo: propertyRepo}
}

// ListMyReviews returns reviews written by the requesting guest, newest first.
func (s *ReviewService) ListMyReviews(ctx context.Context, guestID uint, limit, offset int) ([]models.Review, error) {
	return s.reviewRepo.ListByGuest(ctx, guestID, limit, offset)
}

// GetMyReview returns a review only if the requesting guest wrote it.
func (s *ReviewService) GetMyReview(ctx context.Context, guestID, reviewID uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.GuestID != guestID {
		return nil, models.NewNotFoundError("Review", reviewID)
	}
	return review, nil
}

func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if err := validateReviewFields(in.Rating, in.Comment); err != nil {
		return nil, err
	}
	if _, err := s.propertyRepo.GetByID(ctx, in.PropertyID); err != nil {
		return nil, err
	}

	review := &models.Review{
		PropertyID: in.PropertyID,
		GuestID:    in.GuestID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetByID(ctx, review.ID)
}

func (s *ReviewService) UpdateReview(ctx context.Context, in UpdateReviewInput) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, in.ReviewID)
	if err != nil {
		return nil, err
	}
	if review.GuestID != in.GuestID {
		return nil, models.NewNotFoundError("Review", in.ReviewID)
	}

	if in.Rating != 0 {
		review.Rating = in.Rating
	}
	if in.Comment != "" {
		review.Comment = strings.TrimSpace(in.Comment)
	}
	if err := validateReviewFields(review.Rating, review.Comment); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, guestID, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.GuestID != guestID {
		return models.NewNotFoundError("Review", reviewID)
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}

func validateReviewFields(rating int, text string) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return models.NewValidationError("rating must be between 1 and 5")
	}
	if len(text) > maxReviewCommentLen {
		return models.NewValidationError("comment too long (max 2000 characters)")
	}
	return nil
}
