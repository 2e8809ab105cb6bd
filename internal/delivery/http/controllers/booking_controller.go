package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"sixspa/internal/delivery/http/helpers"
	"sixspa/internal/domain"
)

// CreateBookingRequest is the request body for POST /api/bookings.
type CreateBookingRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	People int    `json:"people"`
}

// Validate implements Validator. All fields are required; people must be positive.
func (c CreateBookingRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Email == "" {
		errs = append(errs, "email is required")
	}
	if c.Date == "" {
		errs = append(errs, "date is required")
	}
	if c.Time == "" {
		errs = append(errs, "time is required")
	}
	if c.People <= 0 {
		errs = append(errs, "people must be a positive integer")
	}
	return errs
}

// CreateBookingResponse is the success response body for POST /api/bookings (201).
// swagger:model CreateBookingResponse
type CreateBookingResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
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

// Health godoc
// @Summary Liveness check
// @Description Returns a plain text message confirming the service is up.
// @Tags system
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (c *BookingController) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Six Spa booking API is running"))
}

// CreateBooking godoc
// @Summary Create a booking
// @Description Books a slot for the given date, time, and party size. Each slot holds at most 5 people in total; a request that would exceed that is rejected with code slot_full. On success a confirmation email is sent to the requester.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Booking request"
// @Success 201 {object} controllers.CreateBookingResponse
// @Failure 400 {object} helpers.APIError "error.code: bad_request or slot_full"
// @Failure 500 {object} helpers.APIError "error.code: internal_error"
// @Router /api/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking := domain.NewBooking(req.Name, req.Email, req.Date, req.Time, req.People, time.Time{})
	if err := c.Service.CreateBooking(r.Context(), booking); err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotFull):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeSlotFull, "this slot is fully booked")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid booking request")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not save booking")
		}
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, CreateBookingResponse{
		Message: "Booking confirmed",
		Booking: booking,
	})
}

// GetAvailability godoc
// @Summary Slot occupancy for a date
// @Description Returns a mapping of time key to total party size for the given date. Slots with no bookings are absent.
// @Tags bookings
// @Produce json
// @Param date query string true "Date key, e.g. 2024-07-01"
// @Success 200 {object} map[string]int
// @Failure 400 {object} helpers.APIError "error.code: bad_request"
// @Failure 500 {object} helpers.APIError "error.code: internal_error"
// @Router /api/availability [get]
func (c *BookingController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date query parameter is required")
		return
	}
	occupancy, err := c.Service.GetAvailability(r.Context(), date)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid date")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not load availability")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, occupancy)
}
