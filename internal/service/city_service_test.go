package service

import (
	"context"
	"strings"
	"testing"

	"stayhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cityRepoStub struct {
	getByIDFn func(context.Context, uint) (*models.City, error)
	listFn    func(context.Context, int, int) ([]models.City, error)
	createFn  func(context.Context, *models.City) error
	updateFn  func(context.Context, *models.City) error
	deleteFn  func(context.Context, uint) error
}

func (s *cityRepoStub) GetByID(ctx context.Context, id uint) (*models.City, error) {
	return s.getByIDFn(ctx, id)
}
func (s *cityRepoStub) List(ctx context.Context, limit, offset int) ([]models.City, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *cityRepoStub) Create(ctx context.Context, city *models.City) error {
	return s.createFn(ctx, city)
}
func (s *cityRepoStub) Update(ctx context.Context, city *models.City) error {
	return s.updateFn(ctx, city)
}
func (s *cityRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCityRepo() *cityRepoStub {
	return &cityRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.City, error) {
			return &models.City{ID: id, Name: "Bishkek"}, nil
		},
		listFn:   func(context.Context, int, int) ([]models.City, error) { return nil, nil },
		createFn: func(context.Context, *models.City) error { return nil },
		updateFn: func(context.Context, *models.City) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
	}
}

func TestCityService_CreateCity(t *testing.T) {
	ctx := context.Background()

	t.Run("Trims Name", func(t *testing.T) {
		var created *models.City
		cityRepo := noopCityRepo()
		cityRepo.createFn = func(_ context.Context, c *models.City) error {
			created = c
			return nil
		}
		svc := NewCityService(cityRepo)

		city, err := svc.CreateCity(ctx, CityInput{Name: "  Almaty  "})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "Almaty", city.Name)
	})

	t.Run("Empty Name", func(t *testing.T) {
		svc := NewCityService(noopCityRepo())
		_, err := svc.CreateCity(ctx, CityInput{Name: "   "})
		assertValidationError(t, err)
	})

	t.Run("Name Too Long", func(t *testing.T) {
		svc := NewCityService(noopCityRepo())
		_, err := svc.CreateCity(ctx, CityInput{Name: strings.Repeat("x", 65)})
		assertValidationError(t, err)
	})
}

func TestCityService_UpdateCity(t *testing.T) {
	var saved *models.City
	cityRepo := noopCityRepo()
	cityRepo.getByIDFn = func(_ context.Context, id uint) (*models.City, error) {
		return &models.City{ID: id, Name: "Bishkek", Image: "old.jpg"}, nil
	}
	cityRepo.updateFn = func(_ context.Context, c *models.City) error {
		saved = c
		return nil
	}
	svc := NewCityService(cityRepo)

	city, err := svc.UpdateCity(context.Background(), 1, CityInput{Image: "new.jpg"})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "new.jpg", city.Image)
	// Blank name leaves the stored name alone.
	assert.Equal(t, "Bishkek", city.Name)
}

func TestCityService_DeleteCity_NotFound(t *testing.T) {
	cityRepo := noopCityRepo()
	cityRepo.getByIDFn = func(_ context.Context, id uint) (*models.City, error) {
		return nil, models.NewNotFoundError("City", id)
	}
	svc := NewCityService(cityRepo)

	err := svc.DeleteCity(context.Background(), 99)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
