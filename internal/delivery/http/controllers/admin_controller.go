package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"sixspa/internal/delivery/http/helpers"
	"sixspa/internal/domain"
)

// DeleteBookingResponse is the success response body for DELETE /api/admin/bookings/{id} (200).
// swagger:model DeleteBookingResponse
type DeleteBookingResponse struct {
	Message string `json:"message"`
}

type AdminController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewAdminController(logger *slog.Logger, svc domain.BookingService) *AdminController {
	return &AdminController{
		Logger:  logger,
		Service: svc,
	}
}

// ListBookings godoc
// @Summary List all bookings
// @Description Returns every booking ordered by date descending, then time ascending. Requires the admin key.
// @Tags admin
// @Produce json
// @Param key query string true "Admin key"
// @Success 200 {array} domain.Booking
// @Failure 401 {object} helpers.APIError "error.code: unauthorized"
// @Failure 500 {object} helpers.APIError "error.code: internal_error"
// @Router /api/admin/bookings [get]
func (c *AdminController) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := c.Service.ListBookings(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not load bookings")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, bookings)
}

// DeleteBooking godoc
// @Summary Delete a booking
// @Description Deletes the booking with the given id. Requires the admin key.
// @Tags admin
// @Produce json
// @Param id path int true "Booking id"
// @Param key query string true "Admin key"
// @Success 200 {object} controllers.DeleteBookingResponse
// @Failure 400 {object} helpers.APIError "error.code: bad_request"
// @Failure 401 {object} helpers.APIError "error.code: unauthorized"
// @Failure 404 {object} helpers.APIError "error.code: not_found"
// @Failure 500 {object} helpers.APIError "error.code: internal_error"
// @Router /api/admin/bookings/{id} [delete]
func (c *AdminController) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "booking id must be an integer")
		return
	}
	if err := c.Service.DeleteBooking(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "booking not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not delete booking")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, DeleteBookingResponse{Message: "Booking deleted"})
}
