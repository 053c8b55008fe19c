// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"stayhub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password assigned to every seeded account.
const DefaultPassword = "Password12345"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user with the given role.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(role models.Role, overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Password:  string(hashed),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Phone:     fmt.Sprintf("+%d", gofakeit.Number(10000000000, 99999999999)),
		Role:      role,
		Avatar:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	return user, nil
}

// CreateProperty persists a sample listing for the given host and city.
func (f *Factory) CreateProperty(owner *models.User, city *models.City, overrides ...func(*models.Property)) (*models.Property, error) {
	types := []models.PropertyType{
		models.PropertyTypeApartment,
		models.PropertyTypeHouse,
		models.PropertyTypeStudio,
	}
	rules := []models.PropertyRules{models.RulesNoSmoking, models.RulesPetsAllowed}

	property := &models.Property{
		Title:         gofakeit.Sentence(3),
		Description:   gofakeit.Paragraph(1, 3, 8, "\n"),
		PricePerNight: gofakeit.Number(30, 600),
		CityID:        city.ID,
		Address:       gofakeit.Street(),
		Type:          types[f.rng.Intn(len(types))],
		Rules:         rules[f.rng.Intn(len(rules))],
		MaxGuests:     gofakeit.Number(1, 8),
		OwnerID:       owner.ID,
		IsActive:      true,
	}

	for _, override := range overrides {
		override(property)
	}

	if err := f.db.Create(property).Error; err != nil {
		return nil, fmt.Errorf("seed property: %w", err)
	}

	for i := 0; i < f.rng.Intn(3)+1; i++ {
		image := &models.PropertyImage{
			PropertyID: property.ID,
			Image:      fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
		}
		if err := f.db.Create(image).Error; err != nil {
			return nil, fmt.Errorf("seed property image: %w", err)
		}
	}

	return property, nil
}

// CreateBooking persists a sample stay for the guest, spread over the last
// and next 60 days.
func (f *Factory) CreateBooking(guest *models.User, property *models.Property) (*models.Booking, error) {
	statuses := []models.BookingStatus{
		models.BookingPending,
		models.BookingApproved,
		models.BookingRejected,
		models.BookingCancelled,
	}

	start := time.Now().AddDate(0, 0, f.rng.Intn(120)-60)
	nights := f.rng.Intn(13) + 1

	booking := &models.Booking{
		PropertyID: property.ID,
		GuestID:    guest.ID,
		CheckIn:    start,
		CheckOut:   start.AddDate(0, 0, nights),
		Status:     statuses[f.rng.Intn(len(statuses))],
	}
	if err := f.db.Create(booking).Error; err != nil {
		return nil, fmt.Errorf("seed booking: %w", err)
	}
	return booking, nil
}

// CreateReview persists a sample review by the guest.
func (f *Factory) CreateReview(guest *models.User, property *models.Property) (*models.Review, error) {
	review := &models.Review{
		PropertyID: property.ID,
		GuestID:    guest.ID,
		Rating:     gofakeit.Number(models.MinRating, models.MaxRating),
		Comment:    gofakeit.Sentence(12),
	}
	if err := f.db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("seed review: %w", err)
	}
	return review, nil
}

// AddFavorite saves a property to the guest's wishlist, creating the list on
// first use. Duplicate saves are skipped silently.
func (f *Factory) AddFavorite(guest *models.User, property *models.Property) error {
	var favorite models.Favorite
	err := f.db.Where("guest_id = ?", guest.ID).First(&favorite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		favorite = models.Favorite{GuestID: guest.ID}
		err = f.db.Create(&favorite).Error
	}
	if err != nil {
		return fmt.Errorf("seed favorite: %w", err)
	}

	item := &models.FavoriteItem{FavoriteID: favorite.ID, PropertyID: property.ID}
	if err := f.db.Create(item).Error; err != nil {
		// unique (favorite, property) pair; a duplicate pick is fine
		return nil
	}
	return nil
}
