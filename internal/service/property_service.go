package service

import (
	"context"

	"stayhub/internal/models"
	"stayhub/internal/repository"
)

const (
	maxPropertyTitleLen   = 64
	maxPropertyAddressLen = 120
)

type PropertyService struct {
	propertyRepo repository.PropertyRepository
	reviewRepo   repository.ReviewRepository
	cityRepo     repository.CityRepository
}

type CreatePropertyInput struct {
	OwnerID       uint
	Title         string
	Description   string
	PricePerNight int
	CityID        uint
	Address       string
	Type          models.PropertyType
	Rules         models.PropertyRules
	MaxGuests     int
	IsActive      bool
}

type UpdatePropertyInput struct {
	OwnerID       uint
	PropertyID    uint
	Title         string
	Description   string
	PricePerNight int
	CityID        uint
	Address       string
	Type          models.PropertyType
	Rules         models.PropertyRules
	MaxGuests     int
	IsActive      *bool
}

// PropertyListing pairs a property with its on-demand rating aggregate.
type PropertyListing struct {
	Property      models.Property
	AverageRating float64
}

// PropertyDetail pairs a fully loaded property with its rating aggregate.
type PropertyDetail struct {
	Property      *models.Property
	AverageRating float64
}

func NewPropertyService(
	propertyRepo repository.PropertyRepository,
	reviewRepo repository.ReviewRepository,
	cityRepo repository.CityRepository,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		reviewRepo:   reviewRepo,
		cityRepo:     cityRepo,
	}
}

// ListProperties returns active properties matching the filter, each with its
// average rating computed in a single grouped query.
func (s *PropertyService) ListProperties(ctx context.Context, filter repository.PropertyFilter, limit, offset int) ([]PropertyListing, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, models.NewValidationError("unknown property type")
	}
	if filter.MinPrice < 0 || filter.MaxPrice < 0 {
		return nil, models.NewValidationError("price filters must not be negative")
	}
	if filter.MinPrice > 0 && filter.MaxPrice > 0 && filter.MinPrice > filter.MaxPrice {
		return nil, models.NewValidationError("min_price must not exceed max_price")
	}

	properties, err := s.propertyRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(properties))
	for i, p := range properties {
		ids[i] = p.ID
	}
	ratings, err := s.reviewRepo.AverageRatings(ctx, ids)
	if err != nil {
		return nil, err
	}

	listings := make([]PropertyListing, len(properties))
	for i, p := range properties {
		listings[i] = PropertyListing{
			Property:      p,
			AverageRating: ratings[p.ID],
		}
	}
	return listings, nil
}

// GetPropertyDetail returns a property with nested city, owner, images and
// reviews, plus the freshly computed average rating.
func (s *PropertyService) GetPropertyDetail(ctx context.Context, id uint) (*PropertyDetail, error) {
	property, err := s.propertyRepo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	rating, err := s.reviewRepo.AverageRating(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PropertyDetail{Property: property, AverageRating: rating}, nil
}

func (s *PropertyService) CreateProperty(ctx context.Context, in CreatePropertyInput) (*models.Property, error) {
	if err := validatePropertyFields(in.Title, in.Address, in.PricePerNight, in.MaxGuests, in.Type, in.Rules); err != nil {
		return nil, err
	}
	if _, err := s.cityRepo.GetByID(ctx, in.CityID); err != nil {
		return nil, err
	}

	property := &models.Property{
		Title:         in.Title,
		Description:   in.Description,
		PricePerNight: in.PricePerNight,
		CityID:        in.CityID,
		Address:       in.Address,
		Type:          in.Type,
		Rules:         in.Rules,
		MaxGuests:     in.MaxGuests,
		OwnerID:       in.OwnerID,
		IsActive:      in.IsActive,
	}
	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *PropertyService) UpdateProperty(ctx context.Context, in UpdatePropertyInput) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.OwnerID != in.OwnerID {
		return nil, models.NewForbiddenError("you do not own this property")
	}

	if in.Title != "" {
		property.Title = in.Title
	}
	if in.Description != "" {
		property.Description = in.Description
	}
	if in.PricePerNight != 0 {
		property.PricePerNight = in.PricePerNight
	}
	if in.CityID != 0 {
		if _, err := s.cityRepo.GetByID(ctx, in.CityID); err != nil {
			return nil, err
		}
		property.CityID = in.CityID
	}
	if in.Address != "" {
		property.Address = in.Address
	}
	if in.Type != "" {
		property.Type = in.Type
	}
	if in.Rules != "" {
		property.Rules = in.Rules
	}
	if in.MaxGuests != 0 {
		property.MaxGuests = in.MaxGuests
	}
	if in.IsActive != nil {
		property.IsActive = *in.IsActive
	}

	if err := validatePropertyFields(property.Title, property.Address, property.PricePerNight,
		property.MaxGuests, property.Type, property.Rules); err != nil {
		return nil, err
	}

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *PropertyService) DeleteProperty(ctx context.Context, ownerID, propertyID uint) error {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if property.OwnerID != ownerID {
		return models.NewForbiddenError("you do not own this property")
	}
	return s.propertyRepo.Delete(ctx, propertyID)
}

func validatePropertyFields(title, address string, price, maxGuests int, pType models.PropertyType, rules models.PropertyRules) error {
	if title == "" {
		return models.NewValidationError("title is required")
	}
	if len(title) > maxPropertyTitleLen {
		return models.NewValidationError("title too long (max 64 characters)")
	}
	if address == "" {
		return models.NewValidationError("address is required")
	}
	if len(address) > maxPropertyAddressLen {
		return models.NewValidationError("address too long (max 120 characters)")
	}
	if price <= 0 {
		return models.NewValidationError("price_per_night must be positive")
	}
	if maxGuests <= 0 {
		return models.NewValidationError("max_guests must be positive")
	}
	if !pType.Valid() {
		return models.NewValidationError("unknown property type")
	}
	if rules != "" && !rules.Valid() {
		return models.NewValidationError("unknown rules value")
	}
	return nil
}
