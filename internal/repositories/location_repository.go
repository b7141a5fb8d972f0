package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mboma-backend/internal/models"
)

type LocationRepository struct {
	DB *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{DB: db}
}

// ListCounties returns every county ordered by id
func (r *LocationRepository) ListCounties(ctx context.Context) ([]*models.Location, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT county_id, county_name FROM counties ORDER BY county_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counties []*models.Location
	for rows.Next() {
		loc := &models.Location{Kind: models.LocationKindCounty}
		if err := rows.Scan(&loc.ID, &loc.Name); err != nil {
			return nil, err
		}
		counties = append(counties, loc)
	}
	return counties, rows.Err()
}

// ListTowns returns all towns in a county ordered by id
func (r *LocationRepository) ListTowns(ctx context.Context, countyID int) ([]*models.Location, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT town_id, town_name, county_id FROM towns WHERE county_id=$1 ORDER BY town_id`,
		countyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var towns []*models.Location
	for rows.Next() {
		loc := &models.Location{Kind: models.LocationKindTown}
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.CountyID); err != nil {
			return nil, err
		}
		towns = append(towns, loc)
	}
	return towns, rows.Err()
}

// GetCounty returns a single county by id
func (r *LocationRepository) GetCounty(ctx context.Context, id int) (*models.Location, error) {
	loc := &models.Location{Kind: models.LocationKindCounty}
	err := r.DB.QueryRow(ctx,
		`SELECT county_id, county_name FROM counties WHERE county_id=$1`, id).
		Scan(&loc.ID, &loc.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrCountyNotFound
	}
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// GetTown returns a single town by id
func (r *LocationRepository) GetTown(ctx context.Context, id int) (*models.Location, error) {
	loc := &models.Location{Kind: models.LocationKindTown}
	err := r.DB.QueryRow(ctx,
		`SELECT town_id, town_name, county_id FROM towns WHERE town_id=$1`, id).
		Scan(&loc.ID, &loc.Name, &loc.CountyID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrTownNotFound
	}
	if err != nil {
		return nil, err
	}
	return loc, nil
}
