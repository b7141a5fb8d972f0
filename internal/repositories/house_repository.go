package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mboma-backend/internal/models"
)

type HouseRepository struct {
	DB *pgxpool.Pool
}

func NewHouseRepository(db *pgxpool.Pool) *HouseRepository {
	return &HouseRepository{DB: db}
}

const houseColumns = `house_id, house_type, town_id, house_address, map_link,
	deposit_fee, monthly_rent, is_available, is_booked, booked_until, created_at`

func scanHouse(row pgx.Row) (*models.House, error) {
	var h models.House
	err := row.Scan(&h.ID, &h.Type, &h.TownID, &h.Address, &h.MapLink,
		&h.DepositFee, &h.MonthlyRent, &h.IsAvailable, &h.IsBooked, &h.BookedUntil, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Get returns a single house by id
func (r *HouseRepository) Get(ctx context.Context, id int) (*models.House, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+houseColumns+` FROM houses WHERE house_id=$1`, id)
	h, err := scanHouse(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrHouseNotFound
	}
	return h, err
}

// ListByTown returns all houses in a town ordered by id
func (r *HouseRepository) ListByTown(ctx context.Context, townID int) ([]*models.House, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+houseColumns+` FROM houses WHERE town_id=$1 ORDER BY house_id`, townID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectHouses(rows)
}

// Search returns available houses matching the filter. Every criterion is
// optional; all SQL is parameterized and never assembled from raw user input.
func (r *HouseRepository) Search(ctx context.Context, f models.HouseSearchFilter) ([]*models.House, error) {
	conds := []string{"is_available = TRUE"}
	var args []interface{}

	if f.Type != "" {
		args = append(args, "%"+f.Type+"%")
		conds = append(conds, fmt.Sprintf("house_type ILIKE $%d", len(args)))
	}
	if f.MinRent > 0 {
		args = append(args, f.MinRent)
		conds = append(conds, fmt.Sprintf("monthly_rent >= $%d", len(args)))
	}
	if f.MaxRent > 0 {
		args = append(args, f.MaxRent)
		conds = append(conds, fmt.Sprintf("monthly_rent <= $%d", len(args)))
	}
	if f.TownID > 0 {
		args = append(args, f.TownID)
		conds = append(conds, fmt.Sprintf("town_id = $%d", len(args)))
	}

	query := `SELECT ` + houseColumns + ` FROM houses WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY town_id, house_id`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectHouses(rows)
}

// GetPaymentDetails returns the owner's payout channels for a house
func (r *HouseRepository) GetPaymentDetails(ctx context.Context, houseID int) (*models.PaymentDetails, error) {
	var d models.PaymentDetails
	err := r.DB.QueryRow(ctx,
		`SELECT house_id, bank_account, mpesa_till, owner_contacts
		 FROM payment_details WHERE house_id=$1`, houseID).
		Scan(&d.HouseID, &d.BankAccount, &d.MpesaTill, &d.OwnerContacts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrHouseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func collectHouses(rows pgx.Rows) ([]*models.House, error) {
	var houses []*models.House
	for rows.Next() {
		h, err := scanHouse(rows)
		if err != nil {
			return nil, err
		}
		houses = append(houses, h)
	}
	return houses, rows.Err()
}
