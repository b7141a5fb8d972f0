package handlers

import (
	"encoding/json"
	"net/http"

	"mboma-backend/internal/metrics"
	"mboma-backend/internal/middleware"
	"mboma-backend/internal/models"
	"mboma-backend/internal/services"
	"mboma-backend/pkg/utils"
)

type BookingHandler struct {
	Service *services.BookingService
}

func NewBookingHandler(s *services.BookingService) *BookingHandler {
	return &BookingHandler{Service: s}
}

// CreateBooking places a hold on a house for the authenticated user
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.HouseID <= 0 {
		utils.Error(w, http.StatusBadRequest, "house_id is required")
		return
	}

	booking, err := h.Service.CreateBooking(r.Context(), userID, req.HouseID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	metrics.BookingsCreated.Inc()
	utils.JSON(w, http.StatusCreated, booking)
}

// GetBooking returns one of the user's bookings
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	bookingID, err := pathInt(r, "bookingId")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid booking id")
		return
	}

	booking, err := h.Service.GetBooking(r.Context(), userID, bookingID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, booking)
}

// ListMyBookings returns the user's bookings with house details
func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	bookings, err := h.Service.ListUserBookings(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, bookings)
}
