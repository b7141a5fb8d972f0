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

type PaymentHandler struct {
	Service *services.PaymentService
}

func NewPaymentHandler(s *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: s}
}

// CreatePayment settles the deposit for one of the user's bookings
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BookingID <= 0 {
		utils.Error(w, http.StatusBadRequest, "booking_id is required")
		return
	}
	if req.Amount <= 0 {
		utils.Error(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	payment, err := h.Service.ProcessPayment(r.Context(), userID, &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	metrics.PaymentsProcessed.WithLabelValues(payment.Method).Inc()
	utils.JSON(w, http.StatusCreated, payment)
}

// GetReceipt returns the payment recorded for a booking
func (h *PaymentHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
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

	payment, err := h.Service.GetReceipt(r.Context(), userID, bookingID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, payment)
}
