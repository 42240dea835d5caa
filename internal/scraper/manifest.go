package scraper

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// URLManifest records scraped PDF URLs per section so downloads can be
// resumed without re-scraping the listing pages.
type URLManifest struct {
	RunID     string              `json:"run_id"`
	ScrapedAt time.Time           `json:"scraped_at"`
	Sections  map[string][]string `json:"sections"`
	All       []string            `json:"all"`
}

// Save writes the manifest as JSON plus a url,local_path CSV companion.
func (m *URLManifest) Save(jsonPath, csvPath, outputDir string) error {
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return fmt.Errorf("writing manifest JSON: %w", err)
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("writing manifest CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"url", "local_path"}); err != nil {
		return err
	}
	for _, u := range m.All {
		if err := w.Write([]string{u, URLToLocalPath(u, outputDir)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadManifest reads a previously saved manifest JSON.
func LoadManifest(jsonPath string) (*URLManifest, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}

	var m URLManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", jsonPath, err)
	}
	return &m, nil
}
