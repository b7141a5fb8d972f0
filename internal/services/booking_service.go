package services

import (
	"context"
	"log"

	"mboma-backend/internal/cache"
	"mboma-backend/internal/models"
	"mboma-backend/internal/timeutil"
)

// BookingStore is the persistence surface for booking holds
type BookingStore interface {
	CreateHold(ctx context.Context, b *models.Booking) error
	Get(ctx context.Context, id int) (*models.Booking, error)
	ListByUser(ctx context.Context, userID int) ([]*models.BookingWithHouse, error)
	ReleaseHold(ctx context.Context, bookingID int) error
}

type BookingService struct {
	Bookings BookingStore
	Houses   HouseStore
}

func NewBookingService(bookings BookingStore, houses HouseStore) *BookingService {
	return &BookingService{Bookings: bookings, Houses: houses}
}

// CreateBooking places a 30-day deposit hold on a house for a user. The
// repository serializes competing holds on the same house; at most one can
// be active at a time.
func (s *BookingService) CreateBooking(ctx context.Context, userID, houseID int) (*models.Booking, error) {
	house, err := s.Houses.Get(ctx, houseID)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	booking := &models.Booking{
		UserID:      userID,
		HouseID:     houseID,
		BookingDate: now,
		ExpiryDate:  now.AddDate(0, 0, models.HoldDays),
	}
	if err := s.Bookings.CreateHold(ctx, booking); err != nil {
		return nil, err
	}

	cache.InvalidateHouses(ctx, house.TownID)
	log.Printf("[Booking] User %d placed hold on house %d until %s",
		userID, houseID, timeutil.FormatEAT(booking.ExpiryDate, timeutil.DateLayout))
	return booking, nil
}

// GetBooking returns a booking, checking ownership and applying lazy expiry:
// an unpaid booking read after its expiry date releases the house on the
// spot and is reported expired.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID int) (*models.Booking, error) {
	booking, err := s.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, models.ErrNotBookingOwner
	}

	if !booking.IsPaid && booking.Expired(timeutil.Now()) {
		s.expireHold(ctx, booking)
	}
	return booking, nil
}

// ListUserBookings returns a user's bookings, newest first
func (s *BookingService) ListUserBookings(ctx context.Context, userID int) ([]*models.BookingWithHouse, error) {
	bookings, err := s.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	for _, b := range bookings {
		if !b.IsPaid && b.Expired(now) {
			s.expireHold(ctx, &b.Booking)
		}
	}
	return bookings, nil
}

// expireHold releases the house behind a lapsed unpaid booking. Failures are
// logged and swallowed; the next read or booking attempt retries the release.
func (s *BookingService) expireHold(ctx context.Context, booking *models.Booking) {
	if err := s.Bookings.ReleaseHold(ctx, booking.ID); err != nil {
		log.Printf("[Booking] Failed to release expired hold %d: %v", booking.ID, err)
		return
	}
	if house, err := s.Houses.Get(ctx, booking.HouseID); err == nil {
		cache.InvalidateHouses(ctx, house.TownID)
	}
	log.Printf("[Booking] Hold %d on house %d expired, house released", booking.ID, booking.HouseID)
}
