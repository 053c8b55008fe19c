package service

import (
	"context"
	"testing"

	"stayhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type favoriteRepoStub struct {
	getOrCreateByGuestFn func(context.Context, uint) (*models.Favorite, error)
	addItemFn            func(context.Context, *models.FavoriteItem) error
	listItemsFn          func(context.Context, uint, int, int) ([]models.FavoriteItem, error)
	getItemFn            func(context.Context, uint) (*models.FavoriteItem, error)
	deleteItemFn         func(context.Context, uint) error
}

func (s *favoriteRepoStub) GetOrCreateByGuest(ctx context.Context, guestID uint) (*models.Favorite, error) {
	return s.getOrCreateByGuestFn(ctx, guestID)
}
func (s *favoriteRepoStub) AddItem(ctx context.Context, item *models.FavoriteItem) error {
	return s.addItemFn(ctx, item)
}
func (s *favoriteRepoStub) ListItems(ctx context.Context, favoriteID uint, limit, offset int) ([]models.FavoriteItem, error) {
	return s.listItemsFn(ctx, favoriteID, limit, offset)
}
func (s *favoriteRepoStub) GetItem(ctx context.Context, itemID uint) (*models.FavoriteItem, error) {
	return s.getItemFn(ctx, itemID)
}
func (s *favoriteRepoStub) DeleteItem(ctx context.Context, itemID uint) error {
	return s.deleteItemFn(ctx, itemID)
}

func noopFavoriteRepo() *favoriteRepoStub {
	return &favoriteRepoStub{
		getOrCreateByGuestFn: func(_ context.Context, guestID uint) (*models.Favorite, error) {
			return &models.Favorite{ID: 3, GuestID: guestID}, nil
		},
		addItemFn:   func(context.Context, *models.FavoriteItem) error { return nil },
		listItemsFn: func(context.Context, uint, int, int) ([]models.FavoriteItem, error) { return nil, nil },
		getItemFn: func(_ context.Context, itemID uint) (*models.FavoriteItem, error) {
			return &models.FavoriteItem{ID: itemID, FavoriteID: 3, Favorite: models.Favorite{ID: 3, GuestID: 1}}, nil
		},
		deleteItemFn: func(context.Context, uint) error { return nil },
	}
}

func TestFavoriteService_AddFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var added *models.FavoriteItem
		favoriteRepo := noopFavoriteRepo()
		favoriteRepo.addItemFn = func(_ context.Context, item *models.FavoriteItem) error {
			item.ID = 11
			added = item
			return nil
		}
		svc := NewFavoriteService(favoriteRepo, noopPropertyRepo())

		item, err := svc.AddFavorite(ctx, 1, 5)
		require.NoError(t, err)
		require.NotNil(t, added)
		assert.Equal(t, uint(3), item.FavoriteID)
		assert.Equal(t, uint(5), item.PropertyID)
	})

	t.Run("Unknown Property", func(t *testing.T) {
		propertyRepo := noopPropertyRepo()
		propertyRepo.getByIDFn = func(_ context.Context, id uint) (*models.Property, error) {
			return nil, models.NewNotFoundError("Property", id)
		}
		svc := NewFavoriteService(noopFavoriteRepo(), propertyRepo)

		_, err := svc.AddFavorite(ctx, 1, 99)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("Duplicate", func(t *testing.T) {
		favoriteRepo := noopFavoriteRepo()
		favoriteRepo.addItemFn = func(context.Context, *models.FavoriteItem) error {
			return models.NewValidationError("property is already in favorites")
		}
		svc := NewFavoriteService(favoriteRepo, noopPropertyRepo())

		_, err := svc.AddFavorite(ctx, 1, 5)
		assertValidationError(t, err)
	})
}

func TestFavoriteService_RemoveFavorite_OtherGuest(t *testing.T) {
	favoriteRepo := noopFavoriteRepo()
	favoriteRepo.getItemFn = func(_ context.Context, itemID uint) (*models.FavoriteItem, error) {
		return &models.FavoriteItem{ID: itemID, Favorite: models.Favorite{GuestID: 2}}, nil
	}
	svc := NewFavoriteService(favoriteRepo, noopPropertyRepo())

	// An item on another guest's list reads as absent.
	err := svc.RemoveFavorite(context.Background(), 1, 11)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestFavoriteService_GetMyFavorites(t *testing.T) {
	favoriteRepo := noopFavoriteRepo()
	favoriteRepo.listItemsFn = func(_ context.Context, favoriteID uint, limit, offset int) ([]models.FavoriteItem, error) {
		assert.Equal(t, uint(3), favoriteID)
		return []models.FavoriteItem{{ID: 1, FavoriteID: favoriteID}}, nil
	}
	svc := NewFavoriteService(favoriteRepo, noopPropertyRepo())

	favorite, items, err := svc.GetMyFavorites(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(1), favorite.GuestID)
	assert.Len(t, items, 1)
}
