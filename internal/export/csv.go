// Package export serializes the summary table and incident lists into CSV
// text and writes the downloadable files. The cell layout is fixed: string
// fields are always double-quoted, numeric cells are written bare, and the
// "Pending"/null sentinels pass through unmodified.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gvawatch/gva-console/internal/gva"
)

// SummaryFilename is the fixed name of the exported 10-year summary.
const SummaryFilename = "gva_10yr_summary.csv"

// IncidentsFilename returns the incident export name for the given day,
// e.g. gva_filtered_incidents_2026-08-31.csv.
func IncidentsFilename(now time.Time) string {
	return fmt.Sprintf("gva_filtered_incidents_%s.csv", now.Format("2006-01-02"))
}

// quote wraps s in double quotes, doubling any embedded quotes. Applied to
// every string-typed field regardless of content.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// SummaryCSV renders the yearly metric table:
//
//	Category,2015,2016,...
//	"<category>",<v1>,<v2>,...
//
// Numeric cells are plain numbers; "Pending" and null cells keep their
// sentinel text (null renders empty).
func SummaryCSV(t gva.Table) string {
	var sb strings.Builder

	sb.WriteString("Category")
	for _, y := range t.Years {
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(y))
	}
	sb.WriteByte('\n')

	for _, cat := range t.Categories {
		sb.WriteString(quote(cat.Name))
		for _, c := range cat.Cells {
			sb.WriteByte(',')
			sb.WriteString(c.Text())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// IncidentsCSV renders an incident list:
//
//	Date,State,City/County,Address,Killed,Injured
//	<date>,"<state>","<city>","<address>",<killed>,<injured>
func IncidentsCSV(records []gva.Record) string {
	var sb strings.Builder
	sb.WriteString("Date,State,City/County,Address,Killed,Injured\n")
	for _, r := range records {
		sb.WriteString(r.Date)
		sb.WriteByte(',')
		sb.WriteString(quote(r.State))
		sb.WriteByte(',')
		sb.WriteString(quote(r.CityCounty))
		sb.WriteByte(',')
		sb.WriteString(quote(r.Address))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(r.Killed))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(r.Injured))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteSummary writes the 10-year summary CSV into dir and returns the full
// path of the written file.
func WriteSummary(dir string, t gva.Table) (string, error) {
	return writeFile(dir, SummaryFilename, SummaryCSV(t))
}

// WriteIncidents writes the incident CSV into dir, stamping the filename
// with the current calendar date, and returns the full path.
func WriteIncidents(dir string, records []gva.Record, now time.Time) (string, error) {
	return writeFile(dir, IncidentsFilename(now), IncidentsCSV(records))
}

func writeFile(dir, name, content string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write export %s: %w", path, err)
	}
	return path, nil
}
