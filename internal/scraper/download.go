package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/doclens/doclens/pkg/pipeline"
)

// DownloadResult reports the outcome for a single PDF
type DownloadResult struct {
	URL       string `json:"url"`
	LocalPath string `json:"local_path"`
	Success   bool   `json:"success"`
	Skipped   bool   `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

// DownloadSummary aggregates a whole download run
type DownloadSummary struct {
	New     int `json:"new"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Downloader fetches PDF files into the corpus directory
type Downloader struct {
	client    *http.Client
	config    *pipeline.ScraperConfig
	limiter   *rate.Limiter
	outputDir string
	overwrite bool
}

// NewDownloader creates a downloader writing under outputDir
func NewDownloader(config *pipeline.ScraperConfig, outputDir string) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: config.DownloadTimeout,
		},
		config:    config,
		limiter:   rate.NewLimiter(rate.Limit(config.RequestsPerSec), 1),
		outputDir: outputDir,
	}
}

// DownloadPDF downloads a single PDF, skipping files that already exist so
// interrupted runs can resume from the saved manifest.
func (d *Downloader) DownloadPDF(ctx context.Context, pdfURL string) DownloadResult {
	result := DownloadResult{
		URL:       pdfURL,
		LocalPath: URLToLocalPath(pdfURL, d.outputDir),
	}

	if err := os.MkdirAll(filepath.Dir(result.LocalPath), 0755); err != nil {
		result.Error = err.Error()
		return result
	}

	if _, err := os.Stat(result.LocalPath); err == nil && !d.overwrite {
		result.Success = true
		result.Skipped = true
		return result
	}

	if err := d.limiter.Wait(ctx); err != nil {
		result.Error = err.Error()
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	req.Header.Set("User-Agent", d.config.UserAgent)

	// The disclosure data sets sit behind an age gate satisfied by a cookie
	if strings.Contains(pdfURL, "DataSet") {
		req.AddCookie(&http.Cookie{Name: "justiceGovAgeVerified", Value: "true"})
	}

	resp, err := d.client.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
		return result
	}

	out, err := os.Create(result.LocalPath)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(result.LocalPath)
		result.Error = err.Error()
		return result
	}
	if err := out.Close(); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Success = true
	return result
}

// DownloadAll downloads every URL in order, logging progress and returning
// the run summary. A failed download is logged and counted, never fatal.
func (d *Downloader) DownloadAll(ctx context.Context, urls []string) DownloadSummary {
	logger := log.With().Str("component", "downloader").Logger()
	summary := DownloadSummary{}

	for i, pdfURL := range urls {
		result := d.DownloadPDF(ctx, pdfURL)

		switch {
		case result.Skipped:
			summary.Skipped++
			logger.Debug().Str("path", result.LocalPath).Msg("Skipping existing file")
		case result.Success:
			summary.New++
			logger.Info().Str("path", result.LocalPath).Msg("Downloaded")
		default:
			summary.Failed++
			logger.Warn().Str("url", pdfURL).Str("error", result.Error).Msg("Download failed")
		}

		if (i+1)%100 == 0 {
			logger.Info().
				Int("done", i+1).
				Int("total", len(urls)).
				Msg("Download progress")
		}
	}

	return summary
}
