// Package dataset is the static data boundary: the compiled-in 10-year
// summary table and incident sample, an optional JSON override file, and the
// display-only scraper listing. Nothing here fetches data at runtime.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gvawatch/gva-console/internal/gva"
)

// Dataset bundles everything the dashboard displays.
type Dataset struct {
	Table     gva.Table    `json:"table"`
	Incidents []gva.Record `json:"incidents"`
}

// Validate checks the table row-length invariant and each record's
// casualty-count invariants.
func (d *Dataset) Validate() error {
	if err := d.Table.Validate(); err != nil {
		return err
	}
	for _, r := range d.Incidents {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile reads a dataset override from a JSON file and validates it.
func LoadFile(path string) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	var d Dataset
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse dataset file %s: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset in %s: %w", path, err)
	}
	return &d, nil
}

// Load returns the dataset from path when non-empty, the compiled-in
// default otherwise.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
