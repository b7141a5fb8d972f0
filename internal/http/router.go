package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mboma-backend/internal/handlers"
	"mboma-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	bookingHandler *handlers.BookingHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Health and metrics
	r.HandleFunc("/healthz", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/readyz", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Public API routes - Catalog browsing
	catalogAPI := r.PathPrefix("/api/catalog").Subrouter()
	catalogAPI.HandleFunc("/counties", catalogHandler.ListCounties).Methods("GET")
	catalogAPI.HandleFunc("/counties/{countyId}/towns", catalogHandler.ListTowns).Methods("GET")
	catalogAPI.HandleFunc("/towns/{townId}/houses", catalogHandler.ListHouses).Methods("GET")
	catalogAPI.HandleFunc("/houses/search", catalogHandler.SearchHouses).Methods("GET")
	catalogAPI.HandleFunc("/houses/{houseId}", catalogHandler.GetHouse).Methods("GET")
	catalogAPI.HandleFunc("/houses/{houseId}/payment-instructions", catalogHandler.GetPaymentInstructions).Methods("GET")

	// Protected API routes - Profile
	meAPI := r.PathPrefix("/api/me").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", authHandler.Me).Methods("GET")

	// Protected API routes - Bookings
	bookingAPI := r.PathPrefix("/api/bookings").Subrouter()
	bookingAPI.Use(authMiddleware.Authenticate)
	bookingAPI.HandleFunc("", bookingHandler.CreateBooking).Methods("POST")
	bookingAPI.HandleFunc("", bookingHandler.ListMyBookings).Methods("GET")
	bookingAPI.HandleFunc("/{bookingId}", bookingHandler.GetBooking).Methods("GET")
	bookingAPI.HandleFunc("/{bookingId}/receipt", paymentHandler.GetReceipt).Methods("GET")

	// Protected API routes - Payments
	paymentAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentAPI.Use(authMiddleware.Authenticate)
	paymentAPI.HandleFunc("", paymentHandler.CreatePayment).Methods("POST")

	return r
}
