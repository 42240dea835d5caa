// Command quality-report classifies every extracted .txt file as real text,
// empty, or garbage, and reports per-folder statistics.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/doclens/doclens/internal/quality"
	"github.com/doclens/doclens/pkg/logging"
	"github.com/doclens/doclens/pkg/pipeline"
)

func main() {
	dir := flag.String("dir", "", "corpus directory (default from config)")
	out := flag.String("out", "", "output CSV path (default from config)")
	flag.Parse()

	config := pipeline.DefaultPipelineConfig()
	if *dir != "" {
		config.DataPaths.CorpusDir = *dir
	}
	if *out != "" {
		config.DataPaths.QualityCSV = *out
	}

	if err := logging.SetupLogger(config.Logging); err != nil {
		fmt.Printf("Failed to setup logging: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Text Quality Report")
	fmt.Println("===================")
	fmt.Printf("Analyzing .txt files under %s\n\n", config.DataPaths.CorpusDir)

	results, err := quality.AnalyzeTree(config.DataPaths.CorpusDir)
	if err != nil {
		fmt.Printf("Analysis failed: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Println("No .txt files found. Run extract-text first.")
		os.Exit(1)
	}

	fmt.Printf("%-50s %8s %10s %8s %8s\n", "folder", "files", "real_text", "empty", "garbage")
	for _, r := range results {
		fmt.Printf("%-50s %8d %9.1f%% %7.1f%% %7.1f%%\n",
			clip(r.Folder, 50), r.TotalFiles, r.RealTextPct, r.EmptyPct, r.GarbagePct)
	}

	total := quality.Totals(results)
	fmt.Println()
	fmt.Printf("TOTAL: %d files, %.1f%% real text, %.1f%% empty, %.1f%% garbage\n",
		total.TotalFiles, total.RealTextPct, total.EmptyPct, total.GarbagePct)

	if err := quality.WriteCSV(results, config.DataPaths.QualityCSV); err != nil {
		fmt.Printf("Failed to write CSV: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nSaved: %s\n", config.DataPaths.QualityCSV)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
