package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/gvawatch/gva-console/internal/dataset"
	"github.com/gvawatch/gva-console/internal/llm"
	"github.com/spf13/cobra"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a search-grounded statistical report",
	Long: `Generate an analyst report over the current dataset using the Gemini
API with web search grounding, and print it to stdout.

The command always prints something: on any API failure it prints a fixed
fallback message and exits zero, with the diagnostic logged to stderr.

Examples:
  # Report over the built-in dataset
  GEMINI_API_KEY=... gva-console report

  # Report over a dataset file
  gva-console report --data-file ./data/gva.json`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	config := GetConfig()

	data, err := dataset.Load(config.Data.File)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	logger := log.New(os.Stderr, "[report] ", log.LstdFlags)
	gateway := llm.NewClient(config.Gemini.Endpoint, config.Gemini.Model, config.Gemini.APIKey, logger)

	resp, err := gateway.GenerateReport(ctx, data.Table, data.Incidents)
	if err != nil {
		logger.Printf("Report generation failed (reason=%s): %v", llm.ReasonOf(err), err)
		fmt.Println(llm.FallbackReport)
		return nil
	}

	fmt.Println(resp.Text)
	printSources(resp.Sources)
	return nil
}

func printSources(sources []llm.SourceChunk) {
	if len(sources) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Sources:")
	for i, s := range sources {
		title := s.Title
		if title == "" {
			title = s.URI
		}
		fmt.Printf("  %d. %s (%s)\n", i+1, title, s.URI)
	}
}
