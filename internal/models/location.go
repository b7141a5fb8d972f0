package models

// Location kinds as stored in the counties/towns tables
const (
	LocationKindCounty = "county"
	LocationKindTown   = "town"
)

// Location is a node in the county→town browsing hierarchy.
// CountyID is set only for towns.
type Location struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	CountyID *int   `json:"county_id,omitempty"`
}
