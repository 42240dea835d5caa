// Command analyze-sentiment scores the polarity of every corpus subfolder
// and writes the per-folder results with a console summary.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/doclens/doclens/internal/sentiment"
	"github.com/doclens/doclens/pkg/logging"
	"github.com/doclens/doclens/pkg/pipeline"
)

func main() {
	dir := flag.String("dir", "", "corpus directory (default from config)")
	out := flag.String("out", "", "output CSV path (default from config)")
	workers := flag.Int("workers", 0, "worker pool size (default NumCPU)")
	flag.Parse()

	config := pipeline.DefaultPipelineConfig()
	if *dir != "" {
		config.DataPaths.CorpusDir = *dir
	}
	if *out != "" {
		config.DataPaths.SentimentCSV = *out
	}
	if *workers > 0 {
		config.Analysis.MaxWorkers = *workers
	}

	if err := logging.SetupLogger(config.Logging); err != nil {
		fmt.Printf("Failed to setup logging: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Folder Sentiment Analysis")
	fmt.Println("=========================")
	fmt.Printf("Scoring folders under %s, %d workers\n\n",
		config.DataPaths.CorpusDir, config.Analysis.MaxWorkers)

	start := time.Now()
	results, err := sentiment.AnalyzeFolders(config.DataPaths.CorpusDir, config.Analysis)
	if err != nil {
		fmt.Printf("Analysis failed: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Println("No .txt files found. Run extract-text first.")
		os.Exit(1)
	}

	if err := sentiment.WriteCSV(results, config.DataPaths.SentimentCSV); err != nil {
		fmt.Printf("Failed to write CSV: %v\n", err)
		os.Exit(1)
	}

	summary := sentiment.Summarize(results)

	fmt.Printf("Scored %d folders in %s\n", summary.Folders, time.Since(start).Round(time.Second))
	fmt.Printf("Mean compound score: %.4f\n\n", summary.MeanCompound)

	fmt.Println("Most positive folders:")
	for i, r := range summary.MostPositive {
		fmt.Printf("  %2d. %-50s %+.4f (%d words)\n", i+1, clip(r.Subfolder, 50), r.Compound, r.WordCount)
	}
	fmt.Println()
	fmt.Println("Most negative folders:")
	for i, r := range summary.MostNegative {
		fmt.Printf("  %2d. %-50s %+.4f (%d words)\n", i+1, clip(r.Subfolder, 50), r.Compound, r.WordCount)
	}

	fmt.Println()
	fmt.Printf("Distribution: %d positive (>0.05), %d negative (<-0.05), %d neutral\n",
		summary.PositiveN, summary.NegativeN, summary.NeutralN)
	fmt.Printf("Saved: %s\n", config.DataPaths.SentimentCSV)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
