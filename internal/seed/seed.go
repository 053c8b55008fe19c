// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"stayhub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a marketplace seeding run.
type Options struct {
	NumHosts    int
	NumGuests   int
	MaxListings int // listings per host
	MaxBookings int // bookings per guest
	MaxReviews  int // reviews per guest
}

// DefaultOptions are sized for a usable development database.
func DefaultOptions() Options {
	return Options{
		NumHosts:    10,
		NumGuests:   40,
		MaxListings: 4,
		MaxBookings: 5,
		MaxReviews:  3,
	}
}

// Seeder orchestrates demo data generation.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Order respects FK constraints.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.FavoriteItem{},
		&models.Favorite{},
		&models.Review{},
		&models.Booking{},
		&models.PropertyImage{},
		&models.Property{},
		&models.City{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	log.Println("database cleared")
	return nil
}

// SeedAdmin ensures a known admin account exists for city management.
func (s *Seeder) SeedAdmin() (*models.User, error) {
	var existing models.User
	if err := s.db.Where("username = ?", "admin").First(&existing).Error; err == nil {
		return &existing, nil
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	admin := &models.User{
		Username:  "admin",
		Email:     "admin@stayhub.dev",
		Password:  string(hashed),
		FirstName: "Site",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	return admin, nil
}

// SeedMarketplace populates cities, hosts with listings, and guests with
// bookings, reviews and favorites.
func (s *Seeder) SeedMarketplace(opts Options) error {
	cities, err := Cities(s.db)
	if err != nil {
		return err
	}
	if len(cities) == 0 {
		return fmt.Errorf("no cities to attach listings to")
	}

	if _, err := s.SeedAdmin(); err != nil {
		return err
	}

	var properties []*models.Property
	for i := 0; i < opts.NumHosts; i++ {
		host, err := s.factory.CreateUser(models.RoleHost)
		if err != nil {
			return err
		}
		for j := 0; j < s.rng.Intn(opts.MaxListings)+1; j++ {
			city := &cities[s.rng.Intn(len(cities))]
			property, err := s.factory.CreateProperty(host, city)
			if err != nil {
				return err
			}
			properties = append(properties, property)
		}
	}
	log.Printf("seeded %d hosts with %d listings", opts.NumHosts, len(properties))

	for i := 0; i < opts.NumGuests; i++ {
		guest, err := s.factory.CreateUser(models.RoleGuest)
		if err != nil {
			return err
		}
		for j := 0; j < s.rng.Intn(opts.MaxBookings); j++ {
			property := properties[s.rng.Intn(len(properties))]
			if _, err := s.factory.CreateBooking(guest, property); err != nil {
				return err
			}
		}
		for j := 0; j < s.rng.Intn(opts.MaxReviews); j++ {
			property := properties[s.rng.Intn(len(properties))]
			if _, err := s.factory.CreateReview(guest, property); err != nil {
				return err
			}
		}
		if s.rng.Intn(2) == 0 {
			property := properties[s.rng.Intn(len(properties))]
			if err := s.factory.AddFavorite(guest, property); err != nil {
				return err
			}
		}
	}
	log.Printf("seeded %d guests", opts.NumGuests)

	return nil
}
