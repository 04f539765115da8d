package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/gvawatch/gva-console/internal/dataset"
	"github.com/gvawatch/gva-console/internal/export"
	"github.com/gvawatch/gva-console/internal/gva"
	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the summary table or incident list as CSV",
	Long: `Export the ten-year summary table or the (optionally filtered)
incident list as CSV files, using the same format as the TUI export keys.

Examples:
  # Export the summary table to the export directory
  gva-console export summary

  # Export Texas incidents only
  gva-console export incidents --state texas

  # Export both into a specific directory
  gva-console export all --export-dir ./out`,
	RunE: runExport,
}

var (
	exportState string
	exportCity  string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportState, "state", "", "Case-insensitive state substring filter")
	exportCmd.Flags().StringVar(&exportCity, "city", "", "Case-insensitive city/county substring filter")
}

func runExport(cmd *cobra.Command, args []string) error {
	config := GetConfig()

	data, err := dataset.Load(config.Data.File)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	target := "all"
	if len(args) > 0 {
		target = strings.ToLower(args[0])
	}

	switch target {
	case "summary":
		return exportSummaryCSV(config.Export.Dir, data.Table)
	case "incidents":
		return exportIncidentsCSV(config.Export.Dir, gva.Filter(data.Incidents, exportState, exportCity))
	case "all":
		if err := exportSummaryCSV(config.Export.Dir, data.Table); err != nil {
			return err
		}
		return exportIncidentsCSV(config.Export.Dir, gva.Filter(data.Incidents, exportState, exportCity))
	default:
		return fmt.Errorf("unknown export target: %s (use 'summary', 'incidents' or 'all')", target)
	}
}

func exportSummaryCSV(dir string, t gva.Table) error {
	path, err := export.WriteSummary(dir, t)
	if err != nil {
		return fmt.Errorf("failed to export summary: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func exportIncidentsCSV(dir string, records []gva.Record) error {
	path, err := export.WriteIncidents(dir, records, time.Now())
	if err != nil {
		return fmt.Errorf("failed to export incidents: %w", err)
	}
	fmt.Printf("Wrote %s (%d incidents)\n", path, len(records))
	return nil
}
