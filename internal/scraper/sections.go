package scraper

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/doclens/doclens/pkg/pipeline"
)

// Sections of the document library, keyed by manifest name.
var Sections = map[string]string{
	"court_records":   "/epstein/court-records",
	"doj_disclosures": "/epstein/doj-disclosures",
	"foia":            "/epstein/foia",
}

// Service walks the listing sections and collects PDF URLs.
type Service struct {
	fetcher *Fetcher
	config  *pipeline.ScraperConfig
}

// NewService creates a scraping service
func NewService(config *pipeline.ScraperConfig) *Service {
	return &Service{
		fetcher: NewFetcher(config),
		config:  config,
	}
}

// ScrapeAll scrapes every section and returns a manifest of unique PDF URLs.
func (s *Service) ScrapeAll(ctx context.Context) (*URLManifest, error) {
	manifest := &URLManifest{
		RunID:     uuid.New().String(),
		ScrapedAt: time.Now().UTC(),
		Sections:  make(map[string][]string),
	}

	court, err := s.ScrapeCourtRecords(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Court records scrape failed")
	}
	manifest.Sections["court_records"] = court

	disclosures, err := s.ScrapeDisclosures(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Disclosures scrape failed")
	}
	manifest.Sections["doj_disclosures"] = disclosures

	foia, err := s.ScrapeFOIA(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("FOIA scrape failed")
	}
	manifest.Sections["foia"] = foia

	manifest.All = dedupeSorted(append(append(append([]string{}, court...), disclosures...), foia...))

	log.Info().
		Int("court_records", len(court)).
		Int("doj_disclosures", len(disclosures)).
		Int("foia", len(foia)).
		Int("total_unique", len(manifest.All)).
		Str("run_id", manifest.RunID).
		Msg("Scraping complete")

	return manifest, nil
}

// ScrapeCourtRecords scrapes the court records section: the main listing,
// every sub-page under the section path, and any ?page= pagination links
// found on the sub-pages.
func (s *Service) ScrapeCourtRecords(ctx context.Context) ([]string, error) {
	sectionURL := s.config.BaseURL + Sections["court_records"]
	visited := map[string]bool{sectionURL: true}

	main, err := s.fetcher.FetchPage(ctx, sectionURL)
	if err != nil {
		return nil, fmt.Errorf("loading court records main page: %w", err)
	}

	links := ExtractPDFLinks(main, s.config.BaseURL)
	log.Info().Int("pdfs", len(links)).Msg("Court records main page scraped")

	for _, subURL := range ExtractSubpageLinks(main, Sections["court_records"]+"/", s.config.BaseURL) {
		if visited[subURL] {
			continue
		}
		visited[subURL] = true

		sub, err := s.fetcher.FetchPage(ctx, subURL)
		if err != nil {
			log.Warn().Err(err).Str("url", subURL).Msg("Sub-page scrape failed")
			continue
		}

		subLinks := ExtractPDFLinks(sub, s.config.BaseURL)
		links = append(links, subLinks...)
		log.Debug().Str("url", subURL).Int("pdfs", len(subLinks)).Msg("Sub-page scraped")

		for _, pageURL := range ExtractPaginationLinks(sub, s.config.BaseURL) {
			if visited[pageURL] {
				continue
			}
			visited[pageURL] = true

			paged, err := s.fetcher.FetchPage(ctx, pageURL)
			if err != nil {
				log.Warn().Err(err).Str("url", pageURL).Msg("Paginated scrape failed")
				continue
			}
			links = append(links, ExtractPDFLinks(paged, s.config.BaseURL)...)
		}
	}

	return dedupeSorted(links), nil
}

// ScrapeDisclosures scrapes the disclosures section: the main listing plus
// numbered data-set sub-pages, each walked through ?page=N pagination until
// a page stops yielding new PDFs.
func (s *Service) ScrapeDisclosures(ctx context.Context) ([]string, error) {
	sectionURL := s.config.BaseURL + Sections["doj_disclosures"]

	main, err := s.fetcher.FetchPage(ctx, sectionURL)
	if err != nil {
		return nil, fmt.Errorf("loading disclosures main page: %w", err)
	}

	links := ExtractPDFLinks(main, s.config.BaseURL)
	seen := make(map[string]bool, len(links))
	for _, l := range links {
		seen[l] = true
	}

	for i := 1; i <= s.config.MaxDataSets; i++ {
		dsURL := fmt.Sprintf("%s/data-set-%d-files", sectionURL, i)

		ds, err := s.fetcher.FetchPage(ctx, dsURL)
		if err != nil {
			log.Debug().Int("data_set", i).Msg("Data set not found, skipping")
			continue
		}

		dsLinks := ExtractPDFLinks(ds, s.config.BaseURL)
		if len(dsLinks) == 0 {
			log.Debug().Int("data_set", i).Msg("Data set empty, skipping")
			continue
		}
		links = appendNew(links, dsLinks, seen)
		log.Info().Int("data_set", i).Int("pdfs", len(dsLinks)).Msg("Data set scraped")

		for page := 1; ; page++ {
			paged, err := s.fetcher.FetchPage(ctx, fmt.Sprintf("%s?page=%d", dsURL, page))
			if err != nil {
				break
			}

			pagedLinks := ExtractPDFLinks(paged, s.config.BaseURL)
			if len(pagedLinks) == 0 {
				break
			}

			before := len(links)
			links = appendNew(links, pagedLinks, seen)
			if len(links) == before {
				break
			}
			log.Debug().Int("data_set", i).Int("page", page).Int("new", len(links)-before).Msg("Data set page scraped")
		}
	}

	return dedupeSorted(links), nil
}

// ScrapeFOIA scrapes the FOIA section, a single un-paginated listing.
func (s *Service) ScrapeFOIA(ctx context.Context) ([]string, error) {
	main, err := s.fetcher.FetchPage(ctx, s.config.BaseURL+Sections["foia"])
	if err != nil {
		return nil, fmt.Errorf("loading FOIA main page: %w", err)
	}

	links := ExtractPDFLinks(main, s.config.BaseURL)
	log.Info().Int("pdfs", len(links)).Msg("FOIA page scraped")
	return dedupeSorted(links), nil
}

func appendNew(links, candidates []string, seen map[string]bool) []string {
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		links = append(links, c)
	}
	return links
}

func dedupeSorted(links []string) []string {
	seen := make(map[string]bool, len(links))
	out := make([]string, 0, len(links))
	for _, l := range links {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
