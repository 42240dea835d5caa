package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"github.com/temoto/robotstxt"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/doclens/doclens/pkg/pipeline"
)

// Fetcher performs polite, retrying page fetches for the listing scraper.
type Fetcher struct {
	client  *http.Client
	config  *pipeline.ScraperConfig
	limiter *rate.Limiter

	robotsCache map[string]*robotstxt.RobotsData
	robotsMu    sync.RWMutex
}

// NewFetcher creates a fetcher from scraper configuration
func NewFetcher(config *pipeline.ScraperConfig) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: config.FetchTimeout,
		},
		config:      config,
		limiter:     rate.NewLimiter(rate.Limit(config.RequestsPerSec), 1),
		robotsCache: make(map[string]*robotstxt.RobotsData),
	}
}

// FetchPage fetches a listing page and parses it into a goquery document.
// Transient failures are retried up to MaxRetries with a fixed delay; a nil
// document with an error means every attempt failed.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	allowed, err := f.robotsAllowed(ctx, pageURL)
	if err != nil {
		log.Debug().Err(err).Str("url", pageURL).Msg("robots.txt check failed, assuming allowed")
	} else if !allowed {
		return nil, fmt.Errorf("blocked by robots.txt: %s", pageURL)
	}

	var lastErr error
	for attempt := 1; attempt <= f.config.MaxRetries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		doc, err := f.fetchOnce(ctx, pageURL)
		if err == nil {
			return doc, nil
		}
		lastErr = err

		log.Warn().
			Err(err).
			Str("url", pageURL).
			Int("attempt", attempt).
			Msg("Page fetch failed")

		if attempt < f.config.MaxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.config.RetryDelay):
			}
		}
	}

	return nil, fmt.Errorf("fetching %s: %w", pageURL, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	// Listing pages are not guaranteed UTF-8
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	return goquery.NewDocumentFromReader(body)
}

// robotsAllowed checks the target path against the host's robots.txt,
// fetching and caching it on first use.
func (f *Fetcher) robotsAllowed(ctx context.Context, pageURL string) (bool, error) {
	if !f.config.RespectRobots {
		return true, nil
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return false, err
	}
	base := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)

	f.robotsMu.RLock()
	robots, ok := f.robotsCache[base]
	f.robotsMu.RUnlock()

	if !ok {
		robots, err = f.fetchRobots(ctx, base)
		if err != nil {
			return true, err
		}
		f.robotsMu.Lock()
		f.robotsCache[base] = robots
		f.robotsMu.Unlock()
	}

	if robots == nil {
		return true, nil
	}
	return robots.TestAgent(parsed.Path, f.config.UserAgent), nil
}

func (f *Fetcher) fetchRobots(ctx context.Context, base string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/robots.txt", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Missing robots.txt means everything is allowed
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, err
	}

	return robotstxt.FromBytes(body)
}
