package browser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
)

// YearBucket aggregates person-year links for one year
type YearBucket struct {
	Year     string `json:"year"`
	Mentions int    `json:"mentions"`
	Persons  int    `json:"persons"`
}

// BuildTimeline aggregates the per-person year links into global year
// buckets, sorted by year ascending.
func BuildTimeline(years map[string]map[string]int) []YearBucket {
	mentions := make(map[string]int)
	persons := make(map[string]int)
	for _, byYear := range years {
		for year, count := range byYear {
			mentions[year] += count
			persons[year]++
		}
	}

	buckets := make([]YearBucket, 0, len(mentions))
	for year := range mentions {
		buckets = append(buckets, YearBucket{
			Year:     year,
			Mentions: mentions[year],
			Persons:  persons[year],
		})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Year < buckets[j].Year })
	return buckets
}

// WriteTimeline writes the global year buckets to dir/timeline.json.
func WriteTimeline(buckets []YearBucket, dir string) error {
	data, err := json.Marshal(buckets)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "timeline.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	log.Info().Str("path", path).Int("years", len(buckets)).Msg("Wrote timeline")
	return nil
}
