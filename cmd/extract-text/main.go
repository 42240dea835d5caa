// Command extract-text walks the PDF corpus and writes a sidecar .txt file
// with the extracted text next to each PDF.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/doclens/doclens/pkg/document"
	"github.com/doclens/doclens/pkg/extractor"
	"github.com/doclens/doclens/pkg/logging"
	"github.com/doclens/doclens/pkg/pipeline"
)

func main() {
	dir := flag.String("dir", "", "corpus directory (default from config)")
	force := flag.Bool("force", false, "re-extract even when a sidecar .txt exists")
	flag.Parse()

	config := pipeline.DefaultPipelineConfig()
	if *dir != "" {
		config.DataPaths.CorpusDir = *dir
	}

	if err := logging.SetupLogger(config.Logging); err != nil {
		fmt.Printf("Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	logger := logging.GetStageLogger("extract-text", uuid.New().String())

	pdfs, err := findPDFs(config.DataPaths.CorpusDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", config.DataPaths.CorpusDir).Msg("Cannot walk corpus")
	}

	fmt.Println("PDF Text Extraction")
	fmt.Println("===================")
	fmt.Printf("Found %d PDFs under %s\n\n", len(pdfs), config.DataPaths.CorpusDir)

	engine := extractor.NewEngine()
	ctx := context.Background()
	start := time.Now()

	counts := &extractCounts{}

	g := new(errgroup.Group)
	g.SetLimit(config.Analysis.MaxWorkers)

	for _, path := range pdfs {
		path := path
		g.Go(func() error {
			extractOne(ctx, engine, logger, path, *force, counts)

			done := counts.extracted.Load() + counts.empty.Load()
			if done > 0 && done%100 == 0 {
				logger.Info().Int64("extracted", done).Int("total", len(pdfs)).Msg("Extraction progress")
			}
			return nil
		})
	}

	// Workers never return errors, failures are logged and counted
	_ = g.Wait()

	fmt.Println("Extraction complete")
	fmt.Printf("  extracted: %d\n", counts.extracted.Load())
	fmt.Printf("  empty:     %d\n", counts.empty.Load())
	fmt.Printf("  skipped:   %d\n", counts.skipped.Load())
	fmt.Printf("  failed:    %d\n", counts.failed.Load())
	fmt.Printf("  elapsed:   %s\n", time.Since(start).Round(time.Second))
}

type extractCounts struct {
	extracted atomic.Int64
	empty     atomic.Int64
	skipped   atomic.Int64
	failed    atomic.Int64
}

// extractOne extracts a single PDF into its sidecar .txt. PDFs without a
// text layer still get an empty sidecar so the quality report sees them.
func extractOne(ctx context.Context, engine *extractor.Engine, logger zerolog.Logger, path string, force bool, counts *extractCounts) {
	doc := &document.Document{
		ID:     uuid.New().String(),
		Source: document.Source{Type: "pdf", Path: path},
	}
	if err := doc.Validate(); err != nil {
		logger.Warn().Err(err).Str("pdf", path).Msg("Invalid document, skipping")
		counts.failed.Add(1)
		return
	}

	sidecar := doc.SidecarPath()
	if !force {
		if _, err := os.Stat(sidecar); err == nil {
			counts.skipped.Add(1)
			return
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("pdf", path).Msg("Cannot read PDF, skipping")
		counts.failed.Add(1)
		return
	}

	text, _, err := engine.Extract(ctx, content, "pdf")
	if err != nil && !errors.Is(err, extractor.ErrNoText) {
		logger.Warn().Err(err).Str("pdf", path).Msg("Extraction failed")
		counts.failed.Add(1)
		return
	}

	if err := os.WriteFile(sidecar, []byte(text), 0644); err != nil {
		logger.Warn().Err(err).Str("path", sidecar).Msg("Cannot write sidecar")
		counts.failed.Add(1)
		return
	}

	if text == "" {
		logger.Debug().Str("pdf", path).Str("folder", doc.Folder()).Msg("No text layer, wrote empty sidecar")
		counts.empty.Add(1)
		return
	}
	counts.extracted.Add(1)
}

func findPDFs(baseDir string) ([]string, error) {
	var pdfs []string
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			pdfs = append(pdfs, path)
		}
		return nil
	})
	return pdfs, err
}
