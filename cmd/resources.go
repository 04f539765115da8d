package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/gvawatch/gva-console/internal/gva"
	"github.com/gvawatch/gva-console/internal/llm"
	"github.com/spf13/cobra"
)

// resourcesCmd represents the resources command
var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Look up local safety resources",
	Long: `Look up victim support organizations, counseling services, and violence
prevention programs using the Gemini API with Google Maps grounding.

When --lat and --lng are given the lookup is biased to that location;
otherwise it falls back to the configured location, and failing that to a
general nationwide lookup.

Examples:
  # Nationwide lookup
  gva-console resources

  # Lookup near Houston, TX
  gva-console resources --lat 29.7604 --lng -95.3698`,
	RunE: runResources,
}

var (
	resourcesLat float64
	resourcesLng float64
)

func init() {
	rootCmd.AddCommand(resourcesCmd)

	resourcesCmd.Flags().Float64Var(&resourcesLat, "lat", 0, "Latitude to bias the lookup")
	resourcesCmd.Flags().Float64Var(&resourcesLng, "lng", 0, "Longitude to bias the lookup")
}

func runResources(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	config := GetConfig()

	// Flag-provided coordinates win; (0,0) flags count if set explicitly.
	var coords *gva.Coordinates
	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
		coords = &gva.Coordinates{Lat: resourcesLat, Lng: resourcesLng}
	} else {
		coords = configuredCoords(config)
	}

	logger := log.New(os.Stderr, "[resources] ", log.LstdFlags)
	gateway := llm.NewClient(config.Gemini.Endpoint, config.Gemini.Model, config.Gemini.APIKey, logger)

	resp, err := gateway.FindLocalSafetyResources(ctx, coords)
	if err != nil {
		logger.Printf("Resource lookup failed (reason=%s): %v", llm.ReasonOf(err), err)
		fmt.Println(llm.FallbackResources)
		return nil
	}

	fmt.Println(resp.Text)
	printSources(resp.Sources)
	return nil
}
