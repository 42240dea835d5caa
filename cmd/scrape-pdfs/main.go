// Command scrape-pdfs collects PDF links from the document library listing
// pages and downloads them into the local corpus tree.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/doclens/doclens/internal/scraper"
	"github.com/doclens/doclens/pkg/logging"
	"github.com/doclens/doclens/pkg/pipeline"
)

func main() {
	yes := flag.Bool("yes", false, "skip the download confirmation prompt")
	downloadSaved := flag.Bool("download-saved", false, "download from the saved URL manifest without re-scraping")
	outDir := flag.String("out", "", "corpus output directory (default from config)")
	flag.Parse()

	config := pipeline.DefaultPipelineConfig()
	if *outDir != "" {
		config.DataPaths.CorpusDir = *outDir
	}

	if err := logging.SetupLogger(config.Logging); err != nil {
		fmt.Printf("Failed to setup logging: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("PDF Corpus Scraper")
	fmt.Println("==================")

	ctx := context.Background()
	paths := config.DataPaths

	var manifest *scraper.URLManifest
	var err error

	if *downloadSaved {
		manifest, err = scraper.LoadManifest(paths.URLManifestJSON)
		if err != nil {
			fmt.Printf("No saved manifest at %s: %v\n", paths.URLManifestJSON, err)
			fmt.Println("Run without -download-saved to scrape first.")
			os.Exit(1)
		}
		fmt.Printf("Loaded saved manifest: %d URLs (run %s)\n", len(manifest.All), manifest.RunID)
	} else {
		service := scraper.NewService(config.Scraper)
		manifest, err = service.ScrapeAll(ctx)
		if err != nil {
			fmt.Printf("Scraping failed: %v\n", err)
			os.Exit(1)
		}

		if err := manifest.Save(paths.URLManifestJSON, paths.URLManifestCSV, paths.CorpusDir); err != nil {
			fmt.Printf("Failed to save manifest: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved manifest: %s (%d URLs)\n", paths.URLManifestJSON, len(manifest.All))
	}

	for section, urls := range manifest.Sections {
		fmt.Printf("  %-16s %d PDFs\n", section, len(urls))
	}
	fmt.Printf("  %-16s %d PDFs\n", "total unique", len(manifest.All))
	fmt.Println()

	if !*yes && !confirm(fmt.Sprintf("Download %d PDFs to %s? [y/N] ", len(manifest.All), paths.CorpusDir)) {
		fmt.Println("Aborted. URL manifest is saved; rerun with -download-saved to download later.")
		return
	}

	downloader := scraper.NewDownloader(config.Scraper, paths.CorpusDir)
	summary := downloader.DownloadAll(ctx, manifest.All)

	fmt.Println()
	fmt.Println("Download complete")
	fmt.Printf("  new:     %d\n", summary.New)
	fmt.Printf("  skipped: %d\n", summary.Skipped)
	fmt.Printf("  failed:  %d\n", summary.Failed)
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
