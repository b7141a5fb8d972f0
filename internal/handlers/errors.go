package handlers

import (
	"errors"
	"log"
	"net/http"

	"mboma-backend/internal/models"
	"mboma-backend/pkg/utils"
)

var domainErrors = []error{
	models.ErrCountyNotFound,
	models.ErrTownNotFound,
	models.ErrHouseNotFound,
	models.ErrBookingNotFound,
	models.ErrPaymentNotFound,
	models.ErrUserNotFound,
	models.ErrHouseAlreadyBooked,
	models.ErrHouseUnavailable,
	models.ErrAlreadyPaid,
	models.ErrBookingExpired,
	models.ErrAmountMismatch,
	models.ErrInvalidMethod,
	models.ErrDuplicateEmail,
	models.ErrInvalidCredentials,
	models.ErrNotBookingOwner,
}

// isDomainError reports whether err is one of the known domain errors
func isDomainError(err error) bool {
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return true
		}
	}
	return false
}

// writeDomainError maps domain errors to HTTP statuses. Anything unmapped is
// treated as a storage failure and reported as 503 without leaking internals.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrCountyNotFound),
		errors.Is(err, models.ErrTownNotFound),
		errors.Is(err, models.ErrHouseNotFound),
		errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrPaymentNotFound),
		errors.Is(err, models.ErrUserNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrHouseAlreadyBooked),
		errors.Is(err, models.ErrHouseUnavailable),
		errors.Is(err, models.ErrAlreadyPaid),
		errors.Is(err, models.ErrBookingExpired):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrAmountMismatch),
		errors.Is(err, models.ErrInvalidMethod):
		utils.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrDuplicateEmail):
		utils.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		utils.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrNotBookingOwner):
		utils.Error(w, http.StatusForbidden, err.Error())
	default:
		log.Printf("[HTTP] Storage error: %v", err)
		utils.Error(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	}
}
