package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"mboma-backend/internal/models"
)

// In-memory stores mirroring the repository semantics closely enough for
// service-level tests. The pgx implementations are exercised against a real
// database separately.

type fakeLocationStore struct {
	counties map[int]*models.Location
	towns    map[int]*models.Location
}

func newFakeLocationStore() *fakeLocationStore {
	return &fakeLocationStore{
		counties: make(map[int]*models.Location),
		towns:    make(map[int]*models.Location),
	}
}

func (f *fakeLocationStore) ListCounties(ctx context.Context) ([]*models.Location, error) {
	var out []*models.Location
	for _, c := range f.counties {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeLocationStore) GetCounty(ctx context.Context, id int) (*models.Location, error) {
	c, ok := f.counties[id]
	if !ok {
		return nil, models.ErrCountyNotFound
	}
	return c, nil
}

func (f *fakeLocationStore) ListTowns(ctx context.Context, countyID int) ([]*models.Location, error) {
	var out []*models.Location
	for _, t := range f.towns {
		if t.CountyID != nil && *t.CountyID == countyID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeLocationStore) GetTown(ctx context.Context, id int) (*models.Location, error) {
	t, ok := f.towns[id]
	if !ok {
		return nil, models.ErrTownNotFound
	}
	return t, nil
}

type fakeHouseStore struct {
	houses  map[int]*models.House
	details map[int]*models.PaymentDetails
}

func newFakeHouseStore() *fakeHouseStore {
	return &fakeHouseStore{
		houses:  make(map[int]*models.House),
		details: make(map[int]*models.PaymentDetails),
	}
}

func (f *fakeHouseStore) Get(ctx context.Context, id int) (*models.House, error) {
	h, ok := f.houses[id]
	if !ok {
		return nil, models.ErrHouseNotFound
	}
	cp := *h
	return &cp, nil
}

func (f *fakeHouseStore) ListByTown(ctx context.Context, townID int) ([]*models.House, error) {
	var out []*models.House
	for _, h := range f.houses {
		if h.TownID == townID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeHouseStore) Search(ctx context.Context, filter models.HouseSearchFilter) ([]*models.House, error) {
	var out []*models.House
	for _, h := range f.houses {
		if !h.IsAvailable {
			continue
		}
		if filter.Type != "" && !strings.Contains(strings.ToLower(h.Type), strings.ToLower(filter.Type)) {
			continue
		}
		if filter.MinRent > 0 && h.MonthlyRent < filter.MinRent {
			continue
		}
		if filter.MaxRent > 0 && h.MonthlyRent > filter.MaxRent {
			continue
		}
		if filter.TownID > 0 && h.TownID != filter.TownID {
			continue
		}
		cp := *h
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeHouseStore) GetPaymentDetails(ctx context.Context, houseID int) (*models.PaymentDetails, error) {
	d, ok := f.details[houseID]
	if !ok {
		return nil, models.ErrHouseNotFound
	}
	return d, nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[int]*models.Booking
	houses   *fakeHouseStore
	nextID   int
	released []int
}

func newFakeBookingStore(houses *fakeHouseStore) *fakeBookingStore {
	return &fakeBookingStore{
		bookings: make(map[int]*models.Booking),
		houses:   houses,
		nextID:   1,
	}
}

func (f *fakeBookingStore) CreateHold(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	house, ok := f.houses.houses[b.HouseID]
	if !ok {
		return models.ErrHouseNotFound
	}
	if !house.IsAvailable {
		return models.ErrHouseUnavailable
	}
	if house.IsBooked {
		active := f.latestForHouse(b.HouseID)
		if active != nil && (active.IsPaid || !b.BookingDate.After(active.ExpiryDate)) {
			return models.ErrHouseAlreadyBooked
		}
	}

	b.ID = f.nextID
	f.nextID++
	cp := *b
	f.bookings[b.ID] = &cp

	house.IsBooked = true
	expiry := b.ExpiryDate
	house.BookedUntil = &expiry
	return nil
}

func (f *fakeBookingStore) latestForHouse(houseID int) *models.Booking {
	var latest *models.Booking
	for _, b := range f.bookings {
		if b.HouseID == houseID && (latest == nil || b.ID > latest.ID) {
			latest = b
		}
	}
	return latest
}

func (f *fakeBookingStore) Get(ctx context.Context, id int) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingStore) ListByUser(ctx context.Context, userID int) ([]*models.BookingWithHouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.BookingWithHouse
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		bw := &models.BookingWithHouse{Booking: *b}
		if h, ok := f.houses.houses[b.HouseID]; ok {
			bw.HouseType = h.Type
			bw.HouseAddress = h.Address
		}
		out = append(out, bw)
	}
	return out, nil
}

func (f *fakeBookingStore) ReleaseHold(ctx context.Context, bookingID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok {
		return models.ErrBookingNotFound
	}
	if b.IsPaid {
		return models.ErrAlreadyPaid
	}
	// A newer booking owns the house now; there is nothing to free.
	if latest := f.latestForHouse(b.HouseID); latest != nil && latest.ID != bookingID {
		return nil
	}
	if house, ok := f.houses.houses[b.HouseID]; ok {
		house.IsBooked = false
		house.BookedUntil = nil
	}
	f.released = append(f.released, bookingID)
	return nil
}

// checkSettleable re-runs the settlement guards the way the payment
// transaction does under its row locks.
func (f *fakeBookingStore) checkSettleable(bookingID int, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok {
		return models.ErrBookingNotFound
	}
	if b.IsPaid {
		return models.ErrAlreadyPaid
	}
	if house, ok := f.houses.houses[b.HouseID]; ok && !house.IsAvailable {
		return models.ErrHouseUnavailable
	}
	if at.After(b.ExpiryDate) {
		return models.ErrBookingExpired
	}
	if latest := f.latestForHouse(b.HouseID); latest != nil && latest.ID != bookingID {
		return models.ErrBookingExpired
	}
	return nil
}

func (f *fakeBookingStore) markPaid(bookingID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[bookingID]
	if !ok {
		return
	}
	b.IsPaid = true
	if house, ok := f.houses.houses[b.HouseID]; ok {
		house.IsAvailable = false
		house.IsBooked = true
		house.BookedUntil = nil
	}
}

type fakePaymentStore struct {
	mu       sync.Mutex
	payments map[int]*models.Payment
	bookings *fakeBookingStore
	counter  int
}

func newFakePaymentStore(bookings *fakeBookingStore) *fakePaymentStore {
	return &fakePaymentStore{
		payments: make(map[int]*models.Payment),
		bookings: bookings,
		counter:  1000,
	}
}

func (f *fakePaymentStore) Create(ctx context.Context, p *models.Payment) error {
	if err := f.bookings.checkSettleable(p.BookingID, p.PaymentDate); err != nil {
		return err
	}

	f.mu.Lock()
	if _, exists := f.payments[p.BookingID]; exists {
		f.mu.Unlock()
		return models.ErrAlreadyPaid
	}
	f.counter++
	p.ID = len(f.payments) + 1
	p.ReceiptNumber = fmt.Sprintf("RCP%d", f.counter)
	cp := *p
	f.payments[p.BookingID] = &cp
	f.mu.Unlock()

	f.bookings.markPaid(p.BookingID)
	return nil
}

func (f *fakePaymentStore) GetByBooking(ctx context.Context, bookingID int) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.payments[bookingID]
	if !ok {
		return nil, models.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[int]*models.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int]*models.User), nextID: 1}
}

func (f *fakeUserStore) Create(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return models.ErrDuplicateEmail
		}
	}
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) Get(ctx context.Context, id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrUserNotFound
}

type fakeReceiptIssuer struct {
	mu     sync.Mutex
	issued []*models.Receipt
}

func (f *fakeReceiptIssuer) Issue(ctx context.Context, rcpt *models.Receipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued = append(f.issued, rcpt)
	return nil
}
