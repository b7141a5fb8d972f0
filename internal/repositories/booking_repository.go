package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mboma-backend/internal/models"
)

type BookingRepository struct {
	DB *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{DB: db}
}

// CreateHold places a 30-day hold on a house. The house row is locked for
// the duration of the transaction so two tenants racing for the same house
// serialize; the loser sees the winner's hold and fails. An expired unpaid
// hold found under the lock is released before the new one is placed.
func (r *BookingRepository) CreateHold(ctx context.Context, b *models.Booking) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		isAvailable bool
		isBooked    bool
		bookedUntil *time.Time
	)
	err = tx.QueryRow(ctx,
		`SELECT is_available, is_booked, booked_until
		 FROM houses WHERE house_id=$1 FOR UPDATE`, b.HouseID).
		Scan(&isAvailable, &isBooked, &bookedUntil)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrHouseNotFound
	}
	if err != nil {
		return err
	}

	if !isAvailable {
		return models.ErrHouseUnavailable
	}

	if isBooked {
		var (
			activeID     int
			activeExpiry time.Time
			activePaid   bool
		)
		err = tx.QueryRow(ctx,
			`SELECT booking_id, expiry_date, is_paid
			 FROM bookings WHERE house_id=$1
			 ORDER BY booking_id DESC LIMIT 1`, b.HouseID).
			Scan(&activeID, &activeExpiry, &activePaid)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		// A paid booking never lapses; an unpaid one blocks only until
		// its expiry date has passed.
		if err == nil {
			if activePaid || !b.BookingDate.After(activeExpiry) {
				return models.ErrHouseAlreadyBooked
			}
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO bookings(user_id, house_id, booking_date, expiry_date, is_paid)
		 VALUES($1, $2, $3, $4, FALSE)
		 RETURNING booking_id, created_at`,
		b.UserID, b.HouseID, b.BookingDate, b.ExpiryDate,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE houses SET is_booked=TRUE, booked_until=$1 WHERE house_id=$2`,
		b.ExpiryDate, b.HouseID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Get returns a booking by id
func (r *BookingRepository) Get(ctx context.Context, id int) (*models.Booking, error) {
	var b models.Booking
	err := r.DB.QueryRow(ctx,
		`SELECT booking_id, user_id, house_id, booking_date, expiry_date, is_paid, created_at
		 FROM bookings WHERE booking_id=$1`, id).
		Scan(&b.ID, &b.UserID, &b.HouseID, &b.BookingDate, &b.ExpiryDate, &b.IsPaid, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByUser returns a user's bookings with house details, newest first
func (r *BookingRepository) ListByUser(ctx context.Context, userID int) ([]*models.BookingWithHouse, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT b.booking_id, b.user_id, b.house_id, b.booking_date, b.expiry_date, b.is_paid, b.created_at,
		        h.house_type, h.house_address
		 FROM bookings b
		 JOIN houses h ON h.house_id = b.house_id
		 WHERE b.user_id=$1
		 ORDER BY b.booking_id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.BookingWithHouse
	for rows.Next() {
		var bw models.BookingWithHouse
		err := rows.Scan(&bw.ID, &bw.UserID, &bw.HouseID, &bw.BookingDate, &bw.ExpiryDate,
			&bw.IsPaid, &bw.CreatedAt, &bw.HouseType, &bw.HouseAddress)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, &bw)
	}
	return bookings, rows.Err()
}

// ReleaseHold frees the house behind an expired unpaid booking. The house
// row is locked and the booking re-checked so a concurrent payment cannot
// race the release. The house flags are only cleared when this booking is
// still the house's current holder; a newer hold placed after the lapse
// must not be erased by a sweep of the stale one.
func (r *BookingRepository) ReleaseHold(ctx context.Context, bookingID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin release transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		houseID int
		isPaid  bool
	)
	err = tx.QueryRow(ctx,
		`SELECT b.house_id, b.is_paid
		 FROM bookings b
		 JOIN houses h ON h.house_id = b.house_id
		 WHERE b.booking_id=$1
		 FOR UPDATE OF h`, bookingID).
		Scan(&houseID, &isPaid)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrBookingNotFound
	}
	if err != nil {
		return err
	}

	if isPaid {
		return models.ErrAlreadyPaid
	}

	var latestID int
	err = tx.QueryRow(ctx,
		`SELECT booking_id FROM bookings WHERE house_id=$1
		 ORDER BY booking_id DESC LIMIT 1`, houseID).Scan(&latestID)
	if err != nil {
		return err
	}

	// A newer booking owns the house now; there is nothing to free.
	if latestID != bookingID {
		return tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx,
		`UPDATE houses SET is_booked=FALSE, booked_until=NULL WHERE house_id=$1`, houseID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
