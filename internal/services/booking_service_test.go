package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboma-backend/internal/models"
	"mboma-backend/internal/timeutil"
)

func newBookingFixture(t *testing.T) (*BookingService, *fakeBookingStore, *fakeHouseStore) {
	t.Helper()

	houses := newFakeHouseStore()
	houses.houses[1] = &models.House{
		ID: 1, Type: "Bedsitter", TownID: 10, Address: "Sunrise Court, Room 4B",
		DepositFee: 8000, MonthlyRent: 8000, IsAvailable: true,
	}
	houses.houses[2] = &models.House{
		ID: 2, Type: "Two Bedroom", TownID: 10, Address: "Parklands Road, Apt 12",
		DepositFee: 45000, MonthlyRent: 45000, IsAvailable: false,
	}

	bookings := newFakeBookingStore(houses)
	return NewBookingService(bookings, houses), bookings, houses
}

func TestCreateBookingHoldsForThirtyDays(t *testing.T) {
	svc, _, houses := newBookingFixture(t)
	ctx := context.Background()

	before := timeutil.Now()
	booking, err := svc.CreateBooking(ctx, 7, 1)
	require.NoError(t, err)

	assert.Equal(t, 7, booking.UserID)
	assert.Equal(t, 1, booking.HouseID)
	assert.False(t, booking.IsPaid)

	wantExpiry := booking.BookingDate.AddDate(0, 0, 30)
	assert.Equal(t, wantExpiry, booking.ExpiryDate)
	assert.False(t, booking.BookingDate.Before(before))

	assert.True(t, houses.houses[1].IsBooked)
	require.NotNil(t, houses.houses[1].BookedUntil)
	assert.Equal(t, booking.ExpiryDate, *houses.houses[1].BookedUntil)
}

func TestCreateBookingRejectsSecondHold(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, 7, 1)
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, 8, 1)
	assert.ErrorIs(t, err, models.ErrHouseAlreadyBooked)
}

func TestCreateBookingUnavailableHouse(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	_, err := svc.CreateBooking(context.Background(), 7, 2)
	assert.ErrorIs(t, err, models.ErrHouseUnavailable)
}

func TestCreateBookingUnknownHouse(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	_, err := svc.CreateBooking(context.Background(), 7, 99)
	assert.ErrorIs(t, err, models.ErrHouseNotFound)
}

func TestCreateBookingAfterExpiredHold(t *testing.T) {
	svc, bookings, houses := newBookingFixture(t)
	ctx := context.Background()

	// Seed an already-lapsed unpaid hold directly in the store
	past := timeutil.Now().AddDate(0, 0, -31)
	stale := &models.Booking{
		UserID: 5, HouseID: 1,
		BookingDate: past, ExpiryDate: past.AddDate(0, 0, 30),
	}
	require.NoError(t, bookings.CreateHold(ctx, stale))
	require.True(t, houses.houses[1].IsBooked)

	booking, err := svc.CreateBooking(ctx, 7, 1)
	require.NoError(t, err)
	assert.NotEqual(t, stale.ID, booking.ID)
	assert.True(t, houses.houses[1].IsBooked)
}

func TestStaleHoldSweepKeepsNewerHold(t *testing.T) {
	svc, bookings, houses := newBookingFixture(t)
	ctx := context.Background()

	past := timeutil.Now().AddDate(0, 0, -31)
	stale := &models.Booking{
		UserID: 5, HouseID: 1,
		BookingDate: past, ExpiryDate: past.AddDate(0, 0, 30),
	}
	require.NoError(t, bookings.CreateHold(ctx, stale))

	fresh, err := svc.CreateBooking(ctx, 7, 1)
	require.NoError(t, err)

	// The stale holder viewing their bookings sweeps the lapsed hold;
	// the fresh hold must survive the sweep.
	_, err = svc.ListUserBookings(ctx, 5)
	require.NoError(t, err)
	assert.True(t, houses.houses[1].IsBooked)
	require.NotNil(t, houses.houses[1].BookedUntil)
	assert.Equal(t, fresh.ExpiryDate, *houses.houses[1].BookedUntil)

	_, err = svc.CreateBooking(ctx, 8, 1)
	assert.ErrorIs(t, err, models.ErrHouseAlreadyBooked)
}

func TestGetBookingExpiresLazily(t *testing.T) {
	svc, bookings, houses := newBookingFixture(t)
	ctx := context.Background()

	past := timeutil.Now().AddDate(0, 0, -31)
	stale := &models.Booking{
		UserID: 7, HouseID: 1,
		BookingDate: past, ExpiryDate: past.AddDate(0, 0, 30),
	}
	require.NoError(t, bookings.CreateHold(ctx, stale))

	booking, err := svc.GetBooking(ctx, 7, stale.ID)
	require.NoError(t, err)
	assert.True(t, booking.Expired(timeutil.Now()))

	// The house was released as a side effect of the read
	assert.False(t, houses.houses[1].IsBooked)
	assert.Contains(t, bookings.released, stale.ID)
}

func TestGetBookingOwnershipEnforced(t *testing.T) {
	svc, _, _ := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, 7, 1)
	require.NoError(t, err)

	_, err = svc.GetBooking(ctx, 8, booking.ID)
	assert.ErrorIs(t, err, models.ErrNotBookingOwner)
}

func TestGetBookingInsideHoldWindowNotReleased(t *testing.T) {
	svc, bookings, houses := newBookingFixture(t)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, 7, 1)
	require.NoError(t, err)

	got, err := svc.GetBooking(ctx, 7, booking.ID)
	require.NoError(t, err)
	assert.False(t, got.Expired(timeutil.Now()))
	assert.True(t, houses.houses[1].IsBooked)
	assert.Empty(t, bookings.released)
}

func TestListUserBookingsReleasesLapsedHolds(t *testing.T) {
	svc, bookings, houses := newBookingFixture(t)
	ctx := context.Background()

	past := timeutil.Now().Add(-31 * 24 * time.Hour)
	stale := &models.Booking{
		UserID: 7, HouseID: 1,
		BookingDate: past, ExpiryDate: past.AddDate(0, 0, 30),
	}
	require.NoError(t, bookings.CreateHold(ctx, stale))

	list, err := svc.ListUserBookings(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bedsitter", list[0].HouseType)
	assert.False(t, houses.houses[1].IsBooked)
}
