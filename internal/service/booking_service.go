package service

import (
	"context"
	"time"

	"stayhub/internal/featureflags"
	"stayhub/internal/models"
	"stayhub/internal/notifications"
	"stayhub/internal/observability"
	"stayhub/internal/repository"
)

type BookingService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
	notifier     *notifications.Notifier
	flags        *featureflags.Manager
}

type CreateBookingInput struct {
	GuestID    uint
	PropertyID uint
	CheckIn    time.Time
	CheckOut   time.Time
}

type UpdateBookingInput struct {
	GuestID   uint
	BookingID uint
	CheckIn   time.Time
	CheckOut  time.Time
	Status    models.BookingStatus
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	propertyRepo repository.PropertyRepository,
	notifier *notifications.Notifier,
	flags *featureflags.Manager,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		notifier:     notifier,
		flags:        flags,
	}
}

// ListMyBookings returns the requesting guest's bookings, newest first.
// Other users' bookings are never reachable through this path.
func (s *BookingService) ListMyBookings(ctx context.Context, guestID uint, limit, offset int) ([]models.Booking, error) {
	return s.bookingRepo.ListByGuest(ctx, guestID, limit, offset)
}

// GetMyBooking returns a booking only if it belongs to the requesting guest.
func (s *BookingService) GetMyBooking(ctx context.Context, guestID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != guestID {
		return nil, models.NewNotFoundError("Booking", bookingID)
	}
	return booking, nil
}

func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if err := validateStayDates(in.CheckIn, in.CheckOut); err != nil {
		return nil, err
	}
	property, err := s.propertyRepo.GetByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if !property.IsActive {
		return nil, models.NewValidationError("property is not available for booking")
	}

	status := models.BookingPending
	if s.flags.Enabled(featureflags.FlagInstantApproval, in.GuestID) {
		status = models.BookingApproved
	}

	booking := &models.Booking{
		PropertyID: in.PropertyID,
		GuestID:    in.GuestID,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Status:     status,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	observability.BookingsCreated.Inc()
	s.publishEvent(ctx, "booking_created", booking, property.OwnerID)

	return s.bookingRepo.GetByID(ctx, booking.ID)
}

func (s *BookingService) UpdateBooking(ctx context.Context, in UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != in.GuestID {
		return nil, models.NewNotFoundError("Booking", in.BookingID)
	}

	previousStatus := booking.Status
	if !in.CheckIn.IsZero() {
		booking.CheckIn = in.CheckIn
	}
	if !in.CheckOut.IsZero() {
		booking.CheckOut = in.CheckOut
	}
	if err := validateStayDates(booking.CheckIn, booking.CheckOut); err != nil {
		return nil, err
	}
	if in.Status != "" {
		if !in.Status.Valid() {
			return nil, models.NewValidationError("unknown booking status")
		}
		booking.Status = in.Status
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if booking.Status != previousStatus {
		observability.BookingStatusChanges.WithLabelValues(string(booking.Status)).Inc()
		s.publishEvent(ctx, "booking_status_changed", booking, booking.Property.OwnerID)
	}

	return booking, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, guestID, bookingID uint) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.GuestID != guestID {
		return models.NewNotFoundError("Booking", bookingID)
	}
	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		return err
	}
	s.publishEvent(ctx, "booking_deleted", booking, booking.Property.OwnerID)
	return nil
}

// publishEvent notifies the guest and the property owner. Delivery is
// best-effort; a publish failure never fails the write that triggered it.
func (s *BookingService) publishEvent(ctx context.Context, eventType string, booking *models.Booking, ownerID uint) {
	event := notifications.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		Status:     booking.Status,
		OccurredAt: time.Now().UTC(),
	}
	_ = s.notifier.PublishBookingEvent(ctx, booking.GuestID, event)
	if ownerID != 0 && ownerID != booking.GuestID {
		_ = s.notifier.PublishBookingEvent(ctx, ownerID, event)
	}
}

func validateStayDates(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return models.NewValidationError("check_in and check_out are required")
	}
	if !checkOut.After(checkIn) {
		return models.NewValidationError("check_out must be after check_in")
	}
	return nil
}
