package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"sixspa/internal/delivery/http/controllers"
	"sixspa/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes.
// Admin routes are gated by the shared admin key.
func NewRouter(bookingController *controllers.BookingController, adminController *controllers.AdminController, adminKey string) *http.ServeMux {
	mux := http.NewServeMux()

	// Liveness
	mux.HandleFunc("GET /{$}", bookingController.Health)

	// API Routes
	mux.HandleFunc("POST /api/bookings", bookingController.CreateBooking)
	mux.HandleFunc("GET /api/availability", bookingController.GetAvailability)

	// Admin
	requireKey := middleware.RequireAdminKey(adminKey)
	mux.HandleFunc("GET /api/admin/bookings", requireKey(adminController.ListBookings))
	mux.HandleFunc("DELETE /api/admin/bookings/{id}", requireKey(adminController.DeleteBooking))

	// Metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
