// Command extract-names runs named-entity recognition over the corpus text
// files and saves the person names found in each file.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/doclens/doclens/internal/names"
	"github.com/doclens/doclens/pkg/logging"
	"github.com/doclens/doclens/pkg/pipeline"
)

func main() {
	dir := flag.String("dir", "", "corpus directory (default from config)")
	out := flag.String("out", "", "output JSON path (default from config)")
	workers := flag.Int("workers", 0, "worker pool size (default NumCPU)")
	flag.Parse()

	config := pipeline.DefaultPipelineConfig()
	if *dir != "" {
		config.DataPaths.CorpusDir = *dir
	}
	if *out != "" {
		config.DataPaths.NamesJSON = *out
	}
	if *workers > 0 {
		config.Analysis.MaxWorkers = *workers
	}

	if err := logging.SetupLogger(config.Logging); err != nil {
		fmt.Printf("Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	logger := logging.GetStageLogger("extract-names", uuid.New().String())

	files, err := names.FindTextFiles(config.DataPaths.CorpusDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", config.DataPaths.CorpusDir).Msg("Cannot walk corpus")
	}

	fmt.Println("Person Name Extraction")
	fmt.Println("======================")
	fmt.Printf("Found %d text files, %d workers\n\n", len(files), config.Analysis.MaxWorkers)

	start := time.Now()
	results := names.ExtractAll(files, config.Analysis)

	if err := names.SaveNames(results, config.DataPaths.NamesJSON); err != nil {
		logger.Fatal().Err(err).Str("path", config.DataPaths.NamesJSON).Msg("Cannot save results")
	}

	fmt.Println("Extraction complete")
	fmt.Printf("  files with persons: %d\n", len(results))
	fmt.Printf("  unique persons:     %d\n", names.UniquePersons(results))
	fmt.Printf("  elapsed:            %s\n", time.Since(start).Round(time.Second))
	fmt.Printf("  saved:              %s\n", config.DataPaths.NamesJSON)
}
