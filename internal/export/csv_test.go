package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gvawatch/gva-console/internal/gva"
)

func testTable() gva.Table {
	return gva.Table{
		Years: []int{2023, 2024},
		Categories: []gva.Category{
			{Name: "Suicides", Cells: []gva.Cell{gva.Number(27300), gva.Pending()}},
			{Name: "Mass Shootings", Cells: []gva.Cell{gva.Number(656), gva.Number(503)}},
			{Name: "Unreported", Cells: []gva.Cell{gva.Null(), gva.Null()}},
		},
	}
}

func TestSummaryCSV(t *testing.T) {
	got := SummaryCSV(testTable())
	want := "Category,2023,2024\n" +
		"\"Suicides\",27300,Pending\n" +
		"\"Mass Shootings\",656,503\n" +
		"\"Unreported\",,\n"
	assert.Equal(t, want, got)
}

func TestSummaryCSVQuotesCategoryNames(t *testing.T) {
	tbl := gva.Table{
		Years: []int{2024},
		Categories: []gva.Category{
			{Name: `Children (0-11) "at risk"`, Cells: []gva.Cell{gva.Number(1)}},
		},
	}
	got := SummaryCSV(tbl)
	assert.Contains(t, got, `"Children (0-11) ""at risk"""`)
}

func TestSummaryCSVParsesBack(t *testing.T) {
	rows, err := csv.NewReader(strings.NewReader(SummaryCSV(testTable()))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Category", "2023", "2024"}, rows[0])
	assert.Equal(t, []string{"Suicides", "27300", "Pending"}, rows[1])
	assert.Equal(t, []string{"Mass Shootings", "656", "503"}, rows[2])
	assert.Equal(t, []string{"Unreported", "", ""}, rows[3])
}

func TestIncidentsCSV(t *testing.T) {
	records := []gva.Record{
		{Date: "2024-07-04", State: "Texas", CityCounty: "Houston", Address: "1200 Main St", Killed: 2, Injured: 5},
		{Date: "2024-07-02", State: "Illinois", CityCounty: "Chicago", Address: "", Killed: 1, Injured: 3},
	}
	got := IncidentsCSV(records)
	want := "Date,State,City/County,Address,Killed,Injured\n" +
		"2024-07-04,\"Texas\",\"Houston\",\"1200 Main St\",2,5\n" +
		"2024-07-02,\"Illinois\",\"Chicago\",\"\",1,3\n"
	assert.Equal(t, want, got)
}

func TestIncidentsCSVEmptyList(t *testing.T) {
	got := IncidentsCSV(nil)
	assert.Equal(t, "Date,State,City/County,Address,Killed,Injured\n", got)
}

// The fixed quoting style must still be standard CSV: a stock reader has to
// parse the output back into the original fields.
func TestIncidentsCSVParsesBack(t *testing.T) {
	records := []gva.Record{
		{Date: "2024-01-15", State: "Ohio", CityCounty: `Franklin "County"`, Address: "a, b", Killed: 0, Injured: 2},
	}
	rows, err := csv.NewReader(strings.NewReader(IncidentsCSV(records))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Date", "State", "City/County", "Address", "Killed", "Injured"}, rows[0])
	assert.Equal(t, []string{"2024-01-15", "Ohio", `Franklin "County"`, "a, b", "0", "2"}, rows[1])
}

func TestIncidentsFilename(t *testing.T) {
	now := time.Date(2026, 8, 31, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, "gva_filtered_incidents_2026-08-31.csv", IncidentsFilename(now))
}

func TestWriteSummaryAndIncidents(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteSummary(dir, testTable())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SummaryFilename), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, SummaryCSV(testTable()), string(content))

	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	path, err = WriteIncidents(dir, nil, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gva_filtered_incidents_2026-08-31.csv"), path)
}

func TestWriteCreatesExportDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, err := WriteSummary(dir, testTable())
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, SummaryFilename))
	assert.NoError(t, err)
}
