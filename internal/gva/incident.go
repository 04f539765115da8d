package gva

import (
	"fmt"
	"strings"
)

// Record represents a single reported gun-violence incident
type Record struct {
	Date       string `json:"date"`
	State      string `json:"state"`
	CityCounty string `json:"city_county"`
	Address    string `json:"address"`
	Killed     int    `json:"killed"`
	Injured    int    `json:"injured"`
	SourceLink string `json:"source_link,omitempty"`
}

// Validate checks record invariants (non-negative casualty counts).
func (r Record) Validate() error {
	if r.Killed < 0 {
		return fmt.Errorf("record %q/%q: killed must be >= 0, got %d", r.State, r.CityCounty, r.Killed)
	}
	if r.Injured < 0 {
		return fmt.Errorf("record %q/%q: injured must be >= 0, got %d", r.State, r.CityCounty, r.Injured)
	}
	return nil
}

// Coordinates is an optional geographic retrieval bias for resource lookups.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Filter returns the ordered sublist of records whose State contains
// stateQuery and whose CityCounty contains cityQuery, both case-insensitive.
// Empty queries match everything. The result preserves the relative order of
// the input; the input slice is never modified.
func Filter(records []Record, stateQuery, cityQuery string) []Record {
	state := strings.ToLower(stateQuery)
	city := strings.ToLower(cityQuery)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if state != "" && !strings.Contains(strings.ToLower(r.State), state) {
			continue
		}
		if city != "" && !strings.Contains(strings.ToLower(r.CityCounty), city) {
			continue
		}
		out = append(out, r)
	}
	return out
}
