// Package service holds the business rules between handlers and repositories.
package service

import (
	"context"
	"strings"

	"stayhub/internal/models"
	"stayhub/internal/repository"
)

const maxCityNameLen = 64

type CityService struct {
	cityRepo repository.CityRepository
}

type CityInput struct {
	Name  string
	Image string
}

func NewCityService(cityRepo repository.CityRepository) *CityService {
	return &CityService{cityRepo: cityRepo}
}

func (s *CityService) ListCities(ctx context.Context, limit, offset int) ([]models.City, error) {
	return s.cityRepo.List(ctx, limit, offset)
}

func (s *CityService) GetCity(ctx context.Context, id uint) (*models.City, error) {
	return s.cityRepo.GetByID(ctx, id)
}

func (s *CityService) CreateCity(ctx context.Context, in CityInput) (*models.City, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("city name is required")
	}
	if len(name) > maxCityNameLen {
		return nil, models.NewValidationError("city name too long (max 64 characters)")
	}

	city := &models.City{Name: name, Image: in.Image}
	if err := s.cityRepo.Create(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *CityService) UpdateCity(ctx context.Context, id uint, in CityInput) (*models.City, error) {
	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		if len(name) > maxCityNameLen {
			return nil, models.NewValidationError("city name too long (max 64 characters)")
		}
		city.Name = name
	}
	if in.Image != "" {
		city.Image = in.Image
	}

	if err := s.cityRepo.Update(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *CityService) DeleteCity(ctx context.Context, id uint) error {
	if _, err := s.cityRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.cityRepo.Delete(ctx, id)
}
