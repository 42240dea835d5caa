// Command preprocess-browser turns the analysis outputs into the
// person-indexed JSON files served to the browser application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/doclens/doclens/internal/browser"
	"github.com/doclens/doclens/pkg/logging"
	"github.com/doclens/doclens/pkg/pipeline"
)

func main() {
	config := pipeline.DefaultPipelineConfig()

	if err := logging.SetupLogger(config.Logging); err != nil {
		fmt.Printf("Failed to setup logging: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Person Browser Data Preprocessor")
	fmt.Println("================================")
	if config.Browser.SkipGeocoding {
		fmt.Println("SKIP_GEOCODING set, map locations come from cache only")
	}
	fmt.Println()

	preprocessor := browser.NewPreprocessor(config)
	if err := preprocessor.Run(context.Background()); err != nil {
		fmt.Printf("Preprocessing failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Preprocessing complete")
	fmt.Printf("Output directory: %s\n", config.DataPaths.BrowserDataDir)
	fmt.Println("  person_index.json  search index for all persons")
	fmt.Println("  persons/           individual person data files")
	fmt.Println("  timeline.json      global year buckets")
	fmt.Println("  map_locations.json geocoded location overlay")
	fmt.Println()
	fmt.Println("Run the server to browse the data.")
}
