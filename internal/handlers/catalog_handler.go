package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mboma-backend/internal/models"
	"mboma-backend/internal/services"
	"mboma-backend/pkg/utils"
)

type CatalogHandler struct {
	Service *services.CatalogService
}

func NewCatalogHandler(s *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: s}
}

// ListCounties returns all counties
func (h *CatalogHandler) ListCounties(w http.ResponseWriter, r *http.Request) {
	counties, err := h.Service.ListCounties(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, counties)
}

// ListTowns returns the towns of a county
func (h *CatalogHandler) ListTowns(w http.ResponseWriter, r *http.Request) {
	countyID, err := pathInt(r, "countyId")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid county id")
		return
	}

	towns, err := h.Service.ListTowns(r.Context(), countyID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, towns)
}

// ListHouses returns the houses of a town
func (h *CatalogHandler) ListHouses(w http.ResponseWriter, r *http.Request) {
	townID, err := pathInt(r, "townId")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid town id")
		return
	}

	availableOnly := r.URL.Query().Get("available_only") == "true"

	houses, err := h.Service.ListHouses(r.Context(), townID, availableOnly)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, houses)
}

// GetHouse returns a single house
func (h *CatalogHandler) GetHouse(w http.ResponseWriter, r *http.Request) {
	houseID, err := pathInt(r, "houseId")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid house id")
		return
	}

	house, err := h.Service.GetHouse(r.Context(), houseID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, house)
}

// SearchHouses returns houses matching query-string criteria. All criteria
// are optional: type, min_rent, max_rent, town_id.
func (h *CatalogHandler) SearchHouses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter models.HouseSearchFilter
	filter.Type = q.Get("type")
	if v := q.Get("min_rent"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			utils.Error(w, http.StatusBadRequest, "Invalid min_rent")
			return
		}
		filter.MinRent = f
	}
	if v := q.Get("max_rent"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			utils.Error(w, http.StatusBadRequest, "Invalid max_rent")
			return
		}
		filter.MaxRent = f
	}
	if v := q.Get("town_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			utils.Error(w, http.StatusBadRequest, "Invalid town_id")
			return
		}
		filter.TownID = id
	}

	houses, err := h.Service.SearchHouses(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, houses)
}

// GetPaymentInstructions returns the owner's payout channels for a house
func (h *CatalogHandler) GetPaymentInstructions(w http.ResponseWriter, r *http.Request) {
	houseID, err := pathInt(r, "houseId")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid house id")
		return
	}

	details, err := h.Service.GetPaymentInstructions(r.Context(), houseID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, details)
}

// pathInt reads a positive integer path variable
func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || v <= 0 {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
