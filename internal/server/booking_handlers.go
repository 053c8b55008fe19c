package server

import (
	"time"

	"stayhub/internal/models"
	"stayhub/internal/presenter"
	"stayhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// bookingDateLayouts are accepted check-in/check-out formats: date-only or
// the API's day-first timestamp.
var bookingDateLayouts = []string{"2006-01-02", presenter.TimestampLayout}

func parseBookingDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ListMyBookings handles GET /api/bookings. Only the caller's bookings are
// visible.
// @Summary List own bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} presenter.BookingView
// @Router /bookings [get]
func (s *Server) ListMyBookings(c *fiber.Ctx) error {
	p := s.parsePagination(c)
	bookings, err := s.bookingService.ListMyBookings(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"bookings": presenter.Bookings(bookings)})
}

// GetMyBooking handles GET /api/bookings/:id
func (s *Server) GetMyBooking(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	booking, err := s.bookingService.GetMyBooking(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"booking": presenter.Booking(booking)})
}

// CreateBooking handles POST /api/bookings
// @Summary Book a property
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{property_id=int,check_in=string,check_out=string} true "Booking request"
// @Success 201 {object} presenter.BookingView
// @Failure 400 {object} models.ErrorResponse
// @Router /bookings [post]
func (s *Server) CreateBooking(c *fiber.Ctx) error {
	var req struct {
		PropertyID uint   `json:"property_id"`
		CheckIn    string `json:"check_in"`
		CheckOut   string `json:"check_out"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	checkIn, okIn := parseBookingDate(req.CheckIn)
	checkOut, okOut := parseBookingDate(req.CheckOut)
	if !okIn || !okOut {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Dates must be YYYY-MM-DD or DD-MM-YYYY HH:MM"))
	}

	booking, err := s.bookingService.CreateBooking(c.Context(), service.CreateBookingInput{
		GuestID:    currentUserID(c),
		PropertyID: req.PropertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"booking": presenter.Booking(booking)})
}

// UpdateMyBooking handles PUT /api/bookings/:id. Dates and status are
// independently optional.
func (s *Server) UpdateMyBooking(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		CheckIn  string `json:"check_in"`
		CheckOut string `json:"check_out"`
		Status   string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	checkIn, okIn := parseBookingDate(req.CheckIn)
	checkOut, okOut := parseBookingDate(req.CheckOut)
	if !okIn || !okOut {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Dates must be YYYY-MM-DD or DD-MM-YYYY HH:MM"))
	}

	booking, err := s.bookingService.UpdateBooking(c.Context(), service.UpdateBookingInput{
		GuestID:   currentUserID(c),
		BookingID: id,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Status:    models.BookingStatus(req.Status),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"booking": presenter.Booking(booking)})
}

// DeleteMyBooking handles DELETE /api/bookings/:id
func (s *Server) DeleteMyBooking(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.bookingService.DeleteBooking(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Booking deleted"})
}
