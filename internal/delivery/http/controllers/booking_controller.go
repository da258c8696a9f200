package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

// CreateBookingRequest is the request body for POST /events/{eventID}/bookings.
type CreateBookingRequest struct {
	Email string `json:"email"`
}

// Validate reports a missing email. Format checks happen in the booking service.
func (r CreateBookingRequest) Validate() []string {
	if strings.TrimSpace(r.Email) == "" {
		return []string{"email is required"}
	}
	return nil
}

// BookingSuccessResponse is the success response envelope for POST /events/{eventID}/bookings (201).
type BookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BookingCount is the body of GET /events/{eventID}/bookings/count.
type BookingCount struct {
	EventID string `json:"event_id"`
	Count   int64  `json:"count"`
}

// BookingCountSuccessResponse is the success response envelope for the booking count (200).
type BookingCountSuccessResponse struct {
	Data  BookingCount      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBooking godoc
// @Summary Book an event
// @Description Books the event for an email address. The email is trimmed and lower-cased. The event must exist.
// @Tags bookings
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param booking body CreateBookingRequest true "Booking"
// @Success 201 {object} controllers.BookingSuccessResponse "data contains the created booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBooking(r.Context(), r.PathValue("eventID"), req.Email)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// CountBookings godoc
// @Summary Count bookings for an event
// @Description Returns 0 for events without bookings and for unknown event IDs.
// @Tags bookings
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.BookingCountSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookings/count [get]
func (c *BookingController) CountBookings(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	n, err := c.Service.CountBookingsForEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BookingCount{EventID: eventID, Count: n})
}
