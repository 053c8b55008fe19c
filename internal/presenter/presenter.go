// Package presenter shapes domain models into API responses. Derived fields
// (nightly charge estimate, average rating) exist only here; they are never
// stored.
package presenter

import (
	"time"

	"stayhub/internal/models"
)

// TimestampLayout is the wire format for all response timestamps.
const TimestampLayout = "02-01-2006 15:04"

// FormatTime renders a timestamp in the API's day-first layout.
func FormatTime(t time.Time) string {
	return t.Format(TimestampLayout)
}

type UserView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

type ProfileView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"created_at"`
}

type CityView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type ImageView struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

// PropertyListView is the compact shape used in listings, bookings and
// favorites.
type PropertyListView struct {
	ID                    uint        `json:"id"`
	Title                 string      `json:"title"`
	City                  CityView    `json:"city"`
	PricePerNight         int         `json:"price_per_night"`
	NightlyChargeEstimate int         `json:"nightly_charge_estimate"`
	AverageRating         float64     `json:"average_rating"`
	Type                  string      `json:"type"`
	MaxGuests             int         `json:"max_guests"`
	IsActive              bool        `json:"is_active"`
	Images                []ImageView `json:"images"`
}

// PropertyDetailView adds the fields listings omit plus nested owner and
// reviews.
type PropertyDetailView struct {
	PropertyListView
	Description string       `json:"description"`
	Address     string       `json:"address"`
	Rules       string       `json:"rules"`
	Owner       UserView     `json:"owner"`
	Reviews     []ReviewView `json:"reviews"`
	CreatedAt   string       `json:"created_at"`
}

type ReviewView struct {
	ID        uint     `json:"id"`
	Guest     UserView `json:"guest"`
	Rating    int      `json:"rating"`
	Comment   string   `json:"comment"`
	CreatedAt string   `json:"created_at"`
}

// MyReviewView is a guest's own review with the property it refers to.
type MyReviewView struct {
	ID        uint             `json:"id"`
	Property  PropertyListView `json:"property"`
	Rating    int              `json:"rating"`
	Comment   string           `json:"comment"`
	CreatedAt string           `json:"created_at"`
}

type BookingView struct {
	ID        uint             `json:"id"`
	Property  PropertyListView `json:"property"`
	CheckIn   string           `json:"check_in"`
	CheckOut  string           `json:"check_out"`
	Status    string           `json:"status"`
	CreatedAt string           `json:"created_at"`
}

type FavoriteItemView struct {
	ID        uint             `json:"id"`
	Property  PropertyListView `json:"property"`
	CreatedAt string           `json:"created_at"`
}

type FavoriteView struct {
	ID    uint               `json:"id"`
	Items []FavoriteItemView `json:"items"`
}

func User(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}

func Profile(u *models.User) ProfileView {
	return ProfileView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Avatar:    u.Avatar,
		CreatedAt: FormatTime(u.CreatedAt),
	}
}

func City(c *models.City) CityView {
	return CityView{ID: c.ID, Name: c.Name, Image: c.Image}
}

func Cities(cities []models.City) []CityView {
	out := make([]CityView, len(cities))
	for i := range cities {
		out[i] = City(&cities[i])
	}
	return out
}

func Image(img *models.PropertyImage) ImageView {
	return ImageView{ID: img.ID, Image: img.Image}
}

func Images(images []models.PropertyImage) []ImageView {
	out := make([]ImageView, len(images))
	for i := range images {
		out[i] = Image(&images[i])
	}
	return out
}

func PropertyList(p *models.Property, averageRating float64) PropertyListView {
	return PropertyListView{
		ID:                    p.ID,
		Title:                 p.Title,
		City:                  City(&p.City),
		PricePerNight:         p.PricePerNight,
		NightlyChargeEstimate: p.NightlyChargeEstimate(),
		AverageRating:         averageRating,
		Type:                  string(p.Type),
		MaxGuests:             p.MaxGuests,
		IsActive:              p.IsActive,
		Images:                Images(p.Images),
	}
}

func PropertyDetail(p *models.Property, averageRating float64) PropertyDetailView {
	reviews := make([]ReviewView, len(p.Reviews))
	for i := range p.Reviews {
		reviews[i] = Review(&p.Reviews[i])
	}
	return PropertyDetailView{
		PropertyListView: PropertyList(p, averageRating),
		Description:      p.Description,
		Address:          p.Address,
		Rules:            string(p.Rules),
		Owner:            User(&p.Owner),
		Reviews:          reviews,
		CreatedAt:        FormatTime(p.CreatedAt),
	}
}

func Review(r *models.Review) ReviewView {
	return ReviewView{
		ID:        r.ID,
		Guest:     User(&r.Guest),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: FormatTime(r.CreatedAt),
	}
}

func MyReview(r *models.Review) MyReviewView {
	return MyReviewView{
		ID:        r.ID,
		Property:  PropertyList(&r.Property, 0),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: FormatTime(r.CreatedAt),
	}
}

func MyReviews(reviews []models.Review) []MyReviewView {
	out := make([]MyReviewView, len(reviews))
	for i := range reviews {
		out[i] = MyReview(&reviews[i])
	}
	return out
}

func Booking(b *models.Booking) BookingView {
	return BookingView{
		ID:        b.ID,
		Property:  PropertyList(&b.Property, 0),
		CheckIn:   FormatTime(b.CheckIn),
		CheckOut:  FormatTime(b.CheckOut),
		Status:    string(b.Status),
		CreatedAt: FormatTime(b.CreatedAt),
	}
}

func Bookings(bookings []models.Booking) []BookingView {
	out := make([]BookingView, len(bookings))
	for i := range bookings {
		out[i] = Booking(&bookings[i])
	}
	return out
}

func FavoriteItem(item *models.FavoriteItem) FavoriteItemView {
	return FavoriteItemView{
		ID:        item.ID,
		Property:  PropertyList(&item.Property, 0),
		CreatedAt: FormatTime(item.CreatedAt),
	}
}

func Favorite(f *models.Favorite, items []models.FavoriteItem) FavoriteView {
	views := make([]FavoriteItemView, len(items))
	for i := range items {
		views[i] = FavoriteItem(&items[i])
	}
	return FavoriteView{ID: f.ID, Items: views}
}
