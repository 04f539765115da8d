package cmd

import (
	"fmt"
	"strings"

	"github.com/gvawatch/gva-console/internal/dataset"
	"github.com/gvawatch/gva-console/internal/gva"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List incidents or the summary table",
	Long: `List incidents or the ten-year summary table in a simple text format.
This command works in any terminal environment and provides an alternative
to the TUI interface when terminal capabilities are limited.

Examples:
  # List all incidents
  gva-console list incidents

  # List incidents filtered by state and city
  gva-console list incidents --state texas --city houston

  # Print the ten-year summary table
  gva-console list summary`,
	RunE: runList,
}

var (
	listType  string
	listState string
	listCity  string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listType, "type", "incidents", "What to list: incidents, summary")
	listCmd.Flags().StringVar(&listState, "state", "", "Case-insensitive state substring filter")
	listCmd.Flags().StringVar(&listCity, "city", "", "Case-insensitive city/county substring filter")
}

func runList(cmd *cobra.Command, args []string) error {
	config := GetConfig()

	data, err := dataset.Load(config.Data.File)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	// Determine what to list from args or flags
	var targetType string
	if len(args) > 0 {
		targetType = strings.ToLower(args[0])
	} else {
		targetType = strings.ToLower(listType)
	}

	switch targetType {
	case "incidents":
		printIncidents(gva.Filter(data.Incidents, listState, listCity))
		return nil
	case "summary":
		printSummary(data.Table)
		return nil
	default:
		return fmt.Errorf("unknown list type: %s (use 'incidents' or 'summary')", targetType)
	}
}

func printSummary(t gva.Table) {
	header := make([]string, 0, len(t.Years)+1)
	header = append(header, "Category")
	for _, y := range t.Years {
		header = append(header, fmt.Sprintf("%d", y))
	}
	fmt.Println(strings.Join(header, "  "))

	for _, cat := range t.Categories {
		row := make([]string, 0, len(cat.Cells)+1)
		row = append(row, cat.Name)
		for _, cell := range cat.Cells {
			row = append(row, cell.Text())
		}
		fmt.Println(strings.Join(row, "  "))
	}
}

func printIncidents(records []gva.Record) {
	if len(records) == 0 {
		fmt.Println("No incidents found.")
		return
	}

	fmt.Printf("Showing %d incidents:\n\n", len(records))

	for i, r := range records {
		fmt.Printf("%d. %s  %s, %s\n", i+1, r.Date, r.CityCounty, r.State)
		if r.Address != "" {
			fmt.Printf("   Address: %s\n", r.Address)
		}
		fmt.Printf("   Killed: %d  Injured: %d\n", r.Killed, r.Injured)
		if r.SourceLink != "" {
			fmt.Printf("   Source: %s\n", r.SourceLink)
		}
		fmt.Println()
	}
}
