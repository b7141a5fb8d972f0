package services

import (
	"context"

	"mboma-backend/internal/cache"
	"mboma-backend/internal/models"
	"mboma-backend/internal/timeutil"
)

// CatalogStore is the read surface the catalog needs from storage
type CatalogStore interface {
	ListCounties(ctx context.Context) ([]*models.Location, error)
	GetCounty(ctx context.Context, id int) (*models.Location, error)
	ListTowns(ctx context.Context, countyID int) ([]*models.Location, error)
	GetTown(ctx context.Context, id int) (*models.Location, error)
}

// HouseStore is the house read surface used by the catalog
type HouseStore interface {
	Get(ctx context.Context, id int) (*models.House, error)
	ListByTown(ctx context.Context, townID int) ([]*models.House, error)
	Search(ctx context.Context, f models.HouseSearchFilter) ([]*models.House, error)
	GetPaymentDetails(ctx context.Context, houseID int) (*models.PaymentDetails, error)
}

type CatalogService struct {
	Locations CatalogStore
	Houses    HouseStore
}

func NewCatalogService(locations CatalogStore, houses HouseStore) *CatalogService {
	return &CatalogService{Locations: locations, Houses: houses}
}

// ListCounties returns all counties, cached when Redis is up
func (s *CatalogService) ListCounties(ctx context.Context) ([]*models.Location, error) {
	var counties []*models.Location
	if cache.GetJSON(ctx, cache.CountiesKey, &counties) {
		return counties, nil
	}

	counties, err := s.Locations.ListCounties(ctx)
	if err != nil {
		return nil, err
	}

	cache.SetJSON(ctx, cache.CountiesKey, counties, cache.CatalogTTL())
	return counties, nil
}

// ListTowns returns the towns of a county
func (s *CatalogService) ListTowns(ctx context.Context, countyID int) ([]*models.Location, error) {
	if _, err := s.Locations.GetCounty(ctx, countyID); err != nil {
		return nil, err
	}

	var towns []*models.Location
	if cache.GetJSON(ctx, cache.TownsKey(countyID), &towns) {
		return towns, nil
	}

	towns, err := s.Locations.ListTowns(ctx, countyID)
	if err != nil {
		return nil, err
	}

	cache.SetJSON(ctx, cache.TownsKey(countyID), towns, cache.CatalogTTL())
	return towns, nil
}

// ListHouses returns the houses of a town, with lapsed holds cleared in the
// returned view. When availableOnly is set, houses already paid for (and so
// permanently off the market) are filtered out; holds still show, annotated
// with their booked-until date. The house list cache has a short TTL so a
// just-expired hold never looks active for long.
func (s *CatalogService) ListHouses(ctx context.Context, townID int, availableOnly bool) ([]*models.House, error) {
	if _, err := s.Locations.GetTown(ctx, townID); err != nil {
		return nil, err
	}

	var houses []*models.House
	if !cache.GetJSON(ctx, cache.HousesKey(townID), &houses) {
		fetched, err := s.Houses.ListByTown(ctx, townID)
		if err != nil {
			return nil, err
		}
		cache.SetJSON(ctx, cache.HousesKey(townID), fetched, cache.HouseListTTL())
		houses = fetched
	}

	clearLapsedHolds(houses)
	if !availableOnly {
		return houses, nil
	}

	available := make([]*models.House, 0, len(houses))
	for _, h := range houses {
		if h.IsAvailable {
			available = append(available, h)
		}
	}
	return available, nil
}

// GetHouse returns a single house
func (s *CatalogService) GetHouse(ctx context.Context, id int) (*models.House, error) {
	house, err := s.Houses.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	clearLapsedHolds([]*models.House{house})
	return house, nil
}

// SearchHouses returns houses matching the filter
func (s *CatalogService) SearchHouses(ctx context.Context, f models.HouseSearchFilter) ([]*models.House, error) {
	houses, err := s.Houses.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	clearLapsedHolds(houses)
	return houses, nil
}

// GetPaymentInstructions returns the owner's payout channels for a house
func (s *CatalogService) GetPaymentInstructions(ctx context.Context, houseID int) (*models.PaymentDetails, error) {
	return s.Houses.GetPaymentDetails(ctx, houseID)
}

// clearLapsedHolds rewrites the booked flags of houses whose unpaid hold has
// run out. This is a read-side view only; the rows themselves are released
// lazily when the house is next booked.
func clearLapsedHolds(houses []*models.House) {
	now := timeutil.Now()
	for _, h := range houses {
		if h.IsBooked && h.BookedUntil != nil && now.After(*h.BookedUntil) {
			h.IsBooked = false
			h.BookedUntil = nil
		}
	}
}
