package service

import (
	"context"
	"testing"

	"stayhub/internal/models"
	"stayhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type propertyRepoStub struct {
	getByIDFn   func(context.Context, uint) (*models.Property, error)
	getDetailFn func(context.Context, uint) (*models.Property, error)
	listFn      func(context.Context, repository.PropertyFilter, int, int) ([]models.Property, error)
	createFn    func(context.Context, *models.Property) error
	updateFn    func(context.Context, *models.Property) error
	deleteFn    func(context.Context, uint) error
}

func (s *propertyRepoStub) GetByID(ctx context.Context, id uint) (*models.Property, error) {
	return s.getByIDFn(ctx, id)
}
func (s *propertyRepoStub) GetDetail(ctx context.Context, id uint) (*models.Property, error) {
	return s.getDetailFn(ctx, id)
}
func (s *propertyRepoStub) List(ctx context.Context, filter repository.PropertyFilter, limit, offset int) ([]models.Property, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *propertyRepoStub) Create(ctx context.Context, p *models.Property) error {
	return s.createFn(ctx, p)
}
func (s *propertyRepoStub) Update(ctx context.Context, p *models.Property) error {
	return s.updateFn(ctx, p)
}
func (s *propertyRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPropertyRepo() *propertyRepoStub {
	return &propertyRepoStub{
		getByIDFn: func(context.Context, uint) (*models.Property, error) {
			return &models.Property{ID: 1, OwnerID: 1, IsActive: true}, nil
		},
		getDetailFn: func(context.Context, uint) (*models.Property, error) {
			return &models.Property{ID: 1, OwnerID: 1, IsActive: true}, nil
		},
		listFn: func(context.Context, repository.PropertyFilter, int, int) ([]models.Property, error) {
			return nil, nil
		},
		createFn: func(context.Context, *models.Property) error { return nil },
		updateFn: func(context.Context, *models.Property) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestPropertyService_ListProperties_FilterValidation(t *testing.T) {
	svc := NewPropertyService(noopPropertyRepo(), noopReviewRepo(), noopCityRepo())
	ctx := context.Background()

	tests := []struct {
		name   string
		filter repository.PropertyFilter
	}{
		{"Unknown Type", repository.PropertyFilter{Type: "castle"}},
		{"Negative Min Price", repository.PropertyFilter{MinPrice: -1}},
		{"Negative Max Price", repository.PropertyFilter{MaxPrice: -5}},
		{"Min Above Max", repository.PropertyFilter{MinPrice: 200, MaxPrice: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ListProperties(ctx, tt.filter, 20, 0)
			assertValidationError(t, err)
		})
	}
}

func TestPropertyService_ListProperties_MergesRatings(t *testing.T) {
	propertyRepo := noopPropertyRepo()
	propertyRepo.listFn = func(context.Context, repository.PropertyFilter, int, int) ([]models.Property, error) {
		return []models.Property{{ID: 1}, {ID: 2}}, nil
	}

	reviewRepo := noopReviewRepo()
	reviewRepo.averageRatingsFn = func(_ context.Context, ids []uint) (map[uint]float64, error) {
		assert.Equal(t, []uint{1, 2}, ids)
		return map[uint]float64{1: 4.5}, nil
	}

	svc := NewPropertyService(propertyRepo, reviewRepo, noopCityRepo())
	listings, err := svc.ListProperties(context.Background(), repository.PropertyFilter{}, 20, 0)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, 4.5, listings[0].AverageRating)
	// No reviews means a zero rating, not an error.
	assert.Equal(t, 0.0, listings[1].AverageRating)
}

func TestPropertyService_CreateProperty_Validation(t *testing.T) {
	svc := NewPropertyService(noopPropertyRepo(), noopReviewRepo(), noopCityRepo())
	ctx := context.Background()

	base := CreatePropertyInput{
		OwnerID:       1,
		Title:         "Quiet studio near the park",
		Address:       "12 Abdrakhmanov St",
		PricePerNight: 80,
		CityID:        1,
		Type:          models.PropertyTypeStudio,
		MaxGuests:     2,
		IsActive:      true,
	}

	t.Run("Valid", func(t *testing.T) {
		property, err := svc.CreateProperty(ctx, base)
		require.NoError(t, err)
		assert.Equal(t, uint(1), property.OwnerID)
		assert.Equal(t, models.PropertyTypeStudio, property.Type)
	})

	t.Run("Missing Title", func(t *testing.T) {
		in := base
		in.Title = ""
		_, err := svc.CreateProperty(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("Zero Price", func(t *testing.T) {
		in := base
		in.PricePerNight = 0
		_, err := svc.CreateProperty(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("Unknown Type", func(t *testing.T) {
		in := base
		in.Type = "yurt"
		_, err := svc.CreateProperty(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("Unknown Rules", func(t *testing.T) {
		in := base
		in.Rules = "quiet_hours"
		_, err := svc.CreateProperty(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("Unknown City", func(t *testing.T) {
		cityRepo := noopCityRepo()
		cityRepo.getByIDFn = func(_ context.Context, id uint) (*models.City, error) {
			return nil, models.NewNotFoundError("City", id)
		}
		svc := NewPropertyService(noopPropertyRepo(), noopReviewRepo(), cityRepo)

		_, err := svc.CreateProperty(ctx, base)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestPropertyService_UpdateProperty_Ownership(t *testing.T) {
	propertyRepo := noopPropertyRepo()
	propertyRepo.getByIDFn = func(context.Context, uint) (*models.Property, error) {
		return &models.Property{
			ID:            5,
			OwnerID:       2,
			Title:         "Loft",
			Address:       "1 Main St",
			PricePerNight: 100,
			MaxGuests:     2,
			Type:          models.PropertyTypeApartment,
		}, nil
	}
	svc := NewPropertyService(propertyRepo, noopReviewRepo(), noopCityRepo())

	// Another host's listing is visible but not editable.
	_, err := svc.UpdateProperty(context.Background(), UpdatePropertyInput{OwnerID: 1, PropertyID: 5, Title: "Mine now"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestPropertyService_UpdateProperty_PartialFields(t *testing.T) {
	var saved *models.Property
	propertyRepo := noopPropertyRepo()
	propertyRepo.getByIDFn = func(context.Context, uint) (*models.Property, error) {
		return &models.Property{
			ID:            5,
			OwnerID:       1,
			Title:         "Loft",
			Address:       "1 Main St",
			PricePerNight: 100,
			MaxGuests:     2,
			Type:          models.PropertyTypeApartment,
			IsActive:      true,
		}, nil
	}
	propertyRepo.updateFn = func(_ context.Context, p *models.Property) error {
		saved = p
		return nil
	}
	svc := NewPropertyService(propertyRepo, noopReviewRepo(), noopCityRepo())

	inactive := false
	_, err := svc.UpdateProperty(context.Background(), UpdatePropertyInput{
		OwnerID:       1,
		PropertyID:    5,
		PricePerNight: 150,
		IsActive:      &inactive,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 150, saved.PricePerNight)
	assert.False(t, saved.IsActive)
	// Untouched fields keep their values.
	assert.Equal(t, "Loft", saved.Title)
	assert.Equal(t, 2, saved.MaxGuests)
}

func TestPropertyService_DeleteProperty(t *testing.T) {
	propertyRepo := noopPropertyRepo()
	propertyRepo.getByIDFn = func(context.Context, uint) (*models.Property, error) {
		return &models.Property{ID: 5, OwnerID: 2}, nil
	}
	svc := NewPropertyService(propertyRepo, noopReviewRepo(), noopCityRepo())

	err := svc.DeleteProperty(context.Background(), 1, 5)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}
