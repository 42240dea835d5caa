package browser

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/doclens/doclens/pkg/pipeline"
)

// maxMapLocations caps the map overlay to the most-mentioned places
const maxMapLocations = 100

// CacheEntry is a cached geocoding result. A nil entry in the cache marks
// a location that failed to resolve, so dead names are never re-queried.
type CacheEntry struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Display string  `json:"display"`
}

// Resolver is the slice of the geocoding provider the preprocessor needs
type Resolver interface {
	Geocode(address string) (*geo.Location, error)
}

// Geocoder resolves location names through an on-disk cache backed by a
// rate-limited provider.
type Geocoder struct {
	resolver  Resolver
	limiter   *rate.Limiter
	cache     map[string]*CacheEntry
	cachePath string
	skip      bool
}

// NewGeocoder creates a Nominatim-backed geocoder with the configured rate
// limit and cache path. With SkipGeocoding set it serves cache hits only.
func NewGeocoder(config *pipeline.BrowserConfig, cachePath string) *Geocoder {
	return &Geocoder{
		resolver:  openstreetmap.Geocoder(),
		limiter:   rate.NewLimiter(rate.Limit(config.GeocodeRequestsPerSec), 1),
		cache:     loadGeocodeCache(cachePath),
		cachePath: cachePath,
		skip:      config.SkipGeocoding,
	}
}

// NewGeocoderWithResolver is like NewGeocoder with a custom provider.
func NewGeocoderWithResolver(resolver Resolver, config *pipeline.BrowserConfig, cachePath string) *Geocoder {
	g := NewGeocoder(config, cachePath)
	g.resolver = resolver
	return g
}

func loadGeocodeCache(path string) map[string]*CacheEntry {
	cache := make(map[string]*CacheEntry)

	data, err := os.ReadFile(path)
	if err != nil {
		return cache
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Cannot parse geocode cache, starting empty")
		return make(map[string]*CacheEntry)
	}

	log.Info().Int("entries", len(cache)).Str("path", path).Msg("Loaded geocode cache")
	return cache
}

// SaveCache persists the cache, including negative entries.
func (g *Geocoder) SaveCache() error {
	data, err := json.MarshalIndent(g.cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(g.cachePath, data, 0644)
}

// Resolve returns the coordinates for a location name, consulting the cache
// first. Failed lookups are cached as nil so they resolve to (nil, false)
// without a network round trip on later calls.
func (g *Geocoder) Resolve(ctx context.Context, name string) (*CacheEntry, bool) {
	if entry, ok := g.cache[name]; ok {
		return entry, entry != nil
	}
	if g.skip {
		return nil, false
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, false
	}

	location, err := g.resolver.Geocode(name)
	if err != nil || location == nil {
		if err != nil {
			log.Warn().Err(err).Str("location", name).Msg("Geocoding failed")
		}
		g.cache[name] = nil
		return nil, false
	}

	entry := &CacheEntry{Lat: location.Lat, Lon: location.Lng, Display: name}
	g.cache[name] = entry
	return entry, true
}

// MapLocation is one geocoded place for the map overlay
type MapLocation struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Count int     `json:"count"`
}

// BuildMapLocations aggregates location counts across persons, geocodes the
// most-mentioned places, and returns resolvable ones sorted by count
// descending.
func BuildMapLocations(ctx context.Context, locations map[string][]LinkedEntity, geocoder *Geocoder) []MapLocation {
	totals := make(map[string]int)
	for _, list := range locations {
		for _, loc := range list {
			totals[loc.Name] += loc.Count
		}
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > maxMapLocations {
		names = names[:maxMapLocations]
	}

	resolved := make([]MapLocation, 0, len(names))
	for _, name := range names {
		entry, ok := geocoder.Resolve(ctx, name)
		if !ok {
			continue
		}
		resolved = append(resolved, MapLocation{
			Name:  name,
			Lat:   entry.Lat,
			Lon:   entry.Lon,
			Count: totals[name],
		})
	}

	log.Info().
		Int("candidates", len(names)).
		Int("resolved", len(resolved)).
		Msg("Geocoded map locations")
	return resolved
}

// WriteMapLocations writes the overlay to dir/map_locations.json.
func WriteMapLocations(locations []MapLocation, dir string) error {
	data, err := json.Marshal(locations)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "map_locations.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	log.Info().Str("path", path).Int("locations", len(locations)).Msg("Wrote map locations")
	return nil
}
