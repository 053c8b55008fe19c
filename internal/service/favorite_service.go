package service

import (
	"context"

	"stayhub/internal/models"
	"stayhub/internal/repository"
)

type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	propertyRepo repository.PropertyRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, propertyRepo repository.PropertyRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, propertyRepo: propertyRepo}
}

// GetMyFavorites returns the guest's favorite list with its saved items.
// The list is created lazily on first access.
func (s *FavoriteService) GetMyFavorites(ctx context.Context, guestID uint, limit, offset int) (*models.Favorite, []models.FavoriteItem, error) {
	favorite, err := s.favoriteRepo.GetOrCreateByGuest(ctx, guestID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.favoriteRepo.ListItems(ctx, favorite.ID, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return favorite, items, nil
}

// AddFavorite saves a property to the guest's list. Saving the same property
// twice is rejected.
func (s *FavoriteService) AddFavorite(ctx context.Context, guestID, propertyID uint) (*models.FavoriteItem, error) {
	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}
	favorite, err := s.favoriteRepo.GetOrCreateByGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}

	item := &models.FavoriteItem{
		FavoriteID: favorite.ID,
		PropertyID: propertyID,
	}
	if err := s.favoriteRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveFavorite deletes a saved item. Items on other guests' lists are
// reported as not found, never as forbidden.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, guestID, itemID uint) error {
	item, err := s.favoriteRepo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.Favorite.GuestID != guestID {
		return models.NewNotFoundError("FavoriteItem", itemID)
	}
	return s.favoriteRepo.DeleteItem(ctx, itemID)
}
