package services

import (
	"context"
	"log"

	"mboma-backend/internal/cache"
	"mboma-backend/internal/models"
	"mboma-backend/internal/timeutil"
)

// PaymentStore is the persistence surface for deposit payments
type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByBooking(ctx context.Context, bookingID int) (*models.Payment, error)
}

// ReceiptIssuer renders and stores receipt artifacts after a payment lands
type ReceiptIssuer interface {
	Issue(ctx context.Context, rcpt *models.Receipt) error
}

type PaymentService struct {
	Payments PaymentStore
	Bookings BookingStore
	Houses   HouseStore
	Users    UserStore
	Receipts ReceiptIssuer
}

func NewPaymentService(payments PaymentStore, bookings BookingStore, houses HouseStore, users UserStore, receipts ReceiptIssuer) *PaymentService {
	return &PaymentService{
		Payments: payments,
		Bookings: bookings,
		Houses:   houses,
		Users:    users,
		Receipts: receipts,
	}
}

// ProcessPayment settles the deposit for a booking. The amount must match
// the house's deposit fee exactly and the booking must still be inside its
// hold window. The payment record is the source of truth; receipt artifacts
// are issued best-effort afterwards.
func (s *PaymentService) ProcessPayment(ctx context.Context, userID int, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if !models.ValidPaymentMethod(req.Method) {
		return nil, models.ErrInvalidMethod
	}

	booking, err := s.Bookings.Get(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, models.ErrNotBookingOwner
	}
	if booking.IsPaid {
		return nil, models.ErrAlreadyPaid
	}

	now := timeutil.Now()
	if booking.Expired(now) {
		if err := s.Bookings.ReleaseHold(ctx, booking.ID); err != nil {
			log.Printf("[Payment] Failed to release expired hold %d: %v", booking.ID, err)
		}
		return nil, models.ErrBookingExpired
	}

	house, err := s.Houses.Get(ctx, booking.HouseID)
	if err != nil {
		return nil, err
	}
	if req.Amount != house.DepositFee {
		return nil, models.ErrAmountMismatch
	}

	payment := &models.Payment{
		BookingID:   booking.ID,
		Amount:      req.Amount,
		PaymentDate: now,
		Method:      req.Method,
	}
	if err := s.Payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	cache.InvalidateHouses(ctx, house.TownID)
	log.Printf("[Payment] Booking %d paid, receipt %s", booking.ID, payment.ReceiptNumber)

	s.issueReceipt(ctx, payment, booking, house)
	return payment, nil
}

// GetReceipt returns the payment recorded for one of the user's bookings
func (s *PaymentService) GetReceipt(ctx context.Context, userID, bookingID int) (*models.Payment, error) {
	booking, err := s.Bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, models.ErrNotBookingOwner
	}
	return s.Payments.GetByBooking(ctx, bookingID)
}

// issueReceipt renders the receipt artifacts. A failure here never fails the
// payment; the database row already proves the deposit was settled.
func (s *PaymentService) issueReceipt(ctx context.Context, payment *models.Payment, booking *models.Booking, house *models.House) {
	if s.Receipts == nil {
		return
	}

	user, err := s.Users.Get(ctx, booking.UserID)
	if err != nil {
		log.Printf("[Payment] Receipt %s: failed to load user %d: %v", payment.ReceiptNumber, booking.UserID, err)
		return
	}

	rcpt := &models.Receipt{
		Number:       payment.ReceiptNumber,
		Date:         payment.PaymentDate,
		CustomerName: user.Name,
		Phone:        user.Phone,
		Email:        user.Email,
		HouseType:    house.Type,
		HouseAddress: house.Address,
		Amount:       payment.Amount,
		Method:       payment.Method,
	}
	if err := s.Receipts.Issue(ctx, rcpt); err != nil {
		log.Printf("[Payment] Failed to issue receipt %s: %v", payment.ReceiptNumber, err)
	}
}
