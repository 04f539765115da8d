package gva

import (
	"reflect"
	"testing"
)

func sampleRecords() []Record {
	return []Record{
		{Date: "2024-07-04", State: "Texas", CityCounty: "Houston", Address: "1200 Main St", Killed: 2, Injured: 5},
		{Date: "2024-07-02", State: "Illinois", CityCounty: "Chicago", Address: "500 W Madison", Killed: 1, Injured: 3},
		{Date: "2024-06-28", State: "Texas", CityCounty: "San Antonio", Address: "Alamo Plaza", Killed: 0, Injured: 4},
		{Date: "2024-06-20", State: "California", CityCounty: "Oakland", Address: "", Killed: 3, Injured: 0},
		{Date: "2024-06-15", State: "New Mexico", CityCounty: "Albuquerque", Address: "Central Ave", Killed: 1, Injured: 1},
	}
}

func TestFilterEmptyQueriesReturnEverything(t *testing.T) {
	records := sampleRecords()
	got := Filter(records, "", "")
	if !reflect.DeepEqual(got, records) {
		t.Fatalf("empty queries should return all records, got %d of %d", len(got), len(records))
	}
}

func TestFilterByState(t *testing.T) {
	got := Filter(sampleRecords(), "texas", "")
	if len(got) != 2 {
		t.Fatalf("expected 2 Texas records, got %d", len(got))
	}
	if got[0].CityCounty != "Houston" || got[1].CityCounty != "San Antonio" {
		t.Errorf("input order not preserved: %q, %q", got[0].CityCounty, got[1].CityCounty)
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	records := sampleRecords()
	for _, q := range []string{"TEXAS", "Texas", "tExAs"} {
		if got := Filter(records, q, ""); len(got) != 2 {
			t.Errorf("query %q: expected 2 records, got %d", q, len(got))
		}
	}
	if got := Filter(records, "", "CHICAGO"); len(got) != 1 {
		t.Errorf("city query CHICAGO: expected 1 record, got %d", len(got))
	}
}

func TestFilterSubstringMatch(t *testing.T) {
	records := sampleRecords()

	// "mexico" matches New Mexico as a substring
	if got := Filter(records, "mexico", ""); len(got) != 1 || got[0].State != "New Mexico" {
		t.Errorf("substring match on state failed: %+v", got)
	}

	// both filters apply conjunctively
	if got := Filter(records, "texas", "antonio"); len(got) != 1 || got[0].CityCounty != "San Antonio" {
		t.Errorf("conjunctive filter failed: %+v", got)
	}

	// literal substring: surrounding spaces are part of the query
	if got := Filter(records, " texas ", ""); len(got) != 0 {
		t.Errorf("query with spaces should not match, got %d records", len(got))
	}
}

func TestFilterNoMatches(t *testing.T) {
	got := Filter(sampleRecords(), "wyoming", "")
	if got == nil {
		t.Fatal("no-match result should be an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	records := sampleRecords()
	want := sampleRecords()
	Filter(records, "texas", "houston")
	if !reflect.DeepEqual(records, want) {
		t.Error("input slice was modified")
	}
}

func TestRecordValidate(t *testing.T) {
	ok := Record{Date: "2024-01-01", State: "Ohio", CityCounty: "Columbus", Killed: 0, Injured: 0}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}

	bad := Record{State: "Ohio", CityCounty: "Columbus", Killed: -1}
	if err := bad.Validate(); err == nil {
		t.Error("negative killed count accepted")
	}
	bad = Record{State: "Ohio", CityCounty: "Columbus", Injured: -2}
	if err := bad.Validate(); err == nil {
		t.Error("negative injured count accepted")
	}
}
