package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gvawatch/gva-console/internal/dataset"
	"github.com/gvawatch/gva-console/internal/export"
	"github.com/gvawatch/gva-console/internal/gva"
	"github.com/gvawatch/gva-console/internal/llm"
)

// stubGateway satisfies Gateway without any network traffic.
type stubGateway struct{}

func (stubGateway) GenerateReport(ctx context.Context, table gva.Table, sample []gva.Record) (*llm.GroundedResponse, error) {
	return &llm.GroundedResponse{Text: "stub report", Sources: []llm.SourceChunk{}}, nil
}

func (stubGateway) FindLocalSafetyResources(ctx context.Context, coords *gva.Coordinates) (*llm.GroundedResponse, error) {
	return &llm.GroundedResponse{Text: "stub resources", Sources: []llm.SourceChunk{}}, nil
}

func (stubGateway) Chat(ctx context.Context, s *llm.Session, text string) (string, error) {
	return "stub reply", nil
}

func newTestUI(t *testing.T) *UI {
	t.Helper()
	return NewUI(context.Background(), dataset.Default(), stubGateway{}, Options{
		ExportDir: t.TempDir(),
	})
}

func TestNewUIRendersFullDataset(t *testing.T) {
	u := newTestUI(t)

	// Header row plus one row per category / incident
	if got := u.summaryTable.GetRowCount(); got != 9 {
		t.Errorf("summary rows: got %d, want 9", got)
	}
	if got := u.incidentTable.GetRowCount(); got != 11 {
		t.Errorf("incident rows: got %d, want 11", got)
	}

	// Pending cells render the sentinel text
	last := u.summaryTable.GetCell(1, 10).Text
	if last != gva.PendingSentinel {
		t.Errorf("2024 cell of first category: got %q, want %q", last, gva.PendingSentinel)
	}
}

func TestSetFiltersNarrowsIncidents(t *testing.T) {
	u := newTestUI(t)

	u.SetFilters("texas", "")
	got := u.FilteredIncidents()
	if len(got) != 2 {
		t.Fatalf("texas filter: got %d incidents, want 2", len(got))
	}
	if rows := u.incidentTable.GetRowCount(); rows != 3 {
		t.Errorf("incident table rows after filter: got %d, want 3", rows)
	}
	if !strings.Contains(u.incidentTable.GetTitle(), "(2)") {
		t.Errorf("incident pane title does not show count: %q", u.incidentTable.GetTitle())
	}

	u.SetFilters("", "")
	if len(u.FilteredIncidents()) != 10 {
		t.Error("clearing filters did not restore the full list")
	}
}

func TestExportSummaryWritesFile(t *testing.T) {
	u := newTestUI(t)
	u.exportSummary()

	path := filepath.Join(u.exportDir, export.SummaryFilename)
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("summary export not written: %v", err)
	}
	if !strings.HasPrefix(string(content), "Category,2015,") {
		t.Errorf("unexpected export header: %q", strings.SplitN(string(content), "\n", 2)[0])
	}
}

func TestExportIncidentsHonorsFilter(t *testing.T) {
	u := newTestUI(t)
	u.SetFilters("texas", "")
	u.exportIncidents()

	entries, err := os.ReadDir(u.exportDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected 1 exported file, got %d (%v)", len(entries), err)
	}
	content, err := os.ReadFile(filepath.Join(u.exportDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Count(string(content), "\n")
	if lines != 3 {
		t.Errorf("filtered export: got %d lines, want header + 2 incidents", lines)
	}
}

func TestChatPendingInitiallyFalse(t *testing.T) {
	u := newTestUI(t)
	if u.ChatPending() {
		t.Error("no chat request should be pending at startup")
	}
}
