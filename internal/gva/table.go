package gva

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// PendingSentinel is the literal text used for metric values the upstream
// archive has not finalized yet. It is preserved verbatim through export.
const PendingSentinel = "Pending"

// Cell is one value in a yearly metric row: a number, the "Pending"
// sentinel, or null (no value recorded).
type Cell struct {
	Count   int
	Pending bool
	Valid   bool // false and !Pending means null
}

// Number returns a numeric cell.
func Number(n int) Cell { return Cell{Count: n, Valid: true} }

// Pending returns the "Pending" sentinel cell.
func Pending() Cell { return Cell{Pending: true} }

// Null returns an empty cell.
func Null() Cell { return Cell{} }

// Text renders the cell the way it appears in exports: a plain number,
// the literal "Pending", or the empty string for null.
func (c Cell) Text() string {
	switch {
	case c.Pending:
		return PendingSentinel
	case c.Valid:
		return strconv.Itoa(c.Count)
	default:
		return ""
	}
}

// MarshalJSON encodes numeric cells as numbers, pending cells as the
// sentinel string and null cells as JSON null.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch {
	case c.Pending:
		return json.Marshal(PendingSentinel)
	case c.Valid:
		return json.Marshal(c.Count)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a number, the "Pending" sentinel string, or null.
func (c *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Null()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Number(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("metric cell: expected number, %q or null, got %s", PendingSentinel, string(data))
	}
	if s != PendingSentinel {
		return fmt.Errorf("metric cell: unknown sentinel %q", s)
	}
	*c = Pending()
	return nil
}

// Category is one named metric row aligned positionally with Table.Years.
type Category struct {
	Name  string `json:"name"`
	Cells []Cell `json:"values"`
}

// Table is the 10-year summary of yearly metrics.
type Table struct {
	Years      []int      `json:"years"`
	Categories []Category `json:"categories"`
}

// Validate checks that every category row has exactly one cell per year.
func (t Table) Validate() error {
	if len(t.Years) == 0 {
		return fmt.Errorf("metric table: no years defined")
	}
	for _, cat := range t.Categories {
		if len(cat.Cells) != len(t.Years) {
			return fmt.Errorf("metric table: category %q has %d values for %d years",
				cat.Name, len(cat.Cells), len(t.Years))
		}
	}
	return nil
}
