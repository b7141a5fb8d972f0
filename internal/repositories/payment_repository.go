package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"mboma-backend/internal/models"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

// nextReceiptNumber draws the next value from the receipt sequence.
// Sequence values are never reused, so receipt numbers are strictly
// increasing even across concurrent payments.
func (r *PaymentRepository) nextReceiptNumber(ctx context.Context, tx pgx.Tx) (string, error) {
	var nextNum int
	err := tx.QueryRow(ctx, "SELECT nextval('receipt_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next receipt number: %w", err)
	}
	return fmt.Sprintf("RCP%d", nextNum), nil
}

// Create records a deposit payment and marks the booking paid, as one
// transaction. Both the booking and its house row are locked, so settlement
// serializes with hold placement and release on the same house; under the
// lock the paid flag, the hold's expiry, the house's availability, and
// current holdership are all re-checked. A unique index on
// payments.booking_id backs the no-double-payment guarantee at the schema
// level too.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin payment transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		houseID     int
		isPaid      bool
		expiry      time.Time
		isAvailable bool
	)
	err = tx.QueryRow(ctx,
		`SELECT b.house_id, b.is_paid, b.expiry_date, h.is_available
		 FROM bookings b
		 JOIN houses h ON h.house_id = b.house_id
		 WHERE b.booking_id=$1
		 FOR UPDATE OF b, h`, p.BookingID).
		Scan(&houseID, &isPaid, &expiry, &isAvailable)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrBookingNotFound
	}
	if err != nil {
		return err
	}
	if isPaid {
		return models.ErrAlreadyPaid
	}
	if !isAvailable {
		return models.ErrHouseUnavailable
	}
	if p.PaymentDate.After(expiry) {
		return models.ErrBookingExpired
	}

	var latestID int
	err = tx.QueryRow(ctx,
		`SELECT booking_id FROM bookings WHERE house_id=$1
		 ORDER BY booking_id DESC LIMIT 1`, houseID).Scan(&latestID)
	if err != nil {
		return err
	}
	// A hold that lapsed and was superseded can no longer settle.
	if latestID != p.BookingID {
		return models.ErrBookingExpired
	}

	receiptNumber, err := r.nextReceiptNumber(ctx, tx)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO payments(booking_id, amount, payment_date, payment_method, receipt_number)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING payment_id, created_at`,
		p.BookingID, p.Amount, p.PaymentDate, p.Method, receiptNumber,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.ErrAlreadyPaid
		}
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE bookings SET is_paid=TRUE WHERE booking_id=$1`, p.BookingID)
	if err != nil {
		return err
	}

	// A paid house is taken for good, not just for the hold window.
	_, err = tx.Exec(ctx,
		`UPDATE houses SET is_available=FALSE, is_booked=TRUE, booked_until=NULL
		 WHERE house_id=$1`, houseID)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	p.ReceiptNumber = receiptNumber
	return nil
}

// GetByBooking returns the payment recorded for a booking, if any
func (r *PaymentRepository) GetByBooking(ctx context.Context, bookingID int) (*models.Payment, error) {
	var p models.Payment
	err := r.DB.QueryRow(ctx,
		`SELECT payment_id, booking_id, amount, payment_date, payment_method, receipt_number, created_at
		 FROM payments WHERE booking_id=$1`, bookingID).
		Scan(&p.ID, &p.BookingID, &p.Amount, &p.PaymentDate, &p.Method, &p.ReceiptNumber, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
