package browser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/pkg/pipeline"
)

type stubResolver struct {
	calls     int
	locations map[string]*geo.Location
}

func (s *stubResolver) Geocode(address string) (*geo.Location, error) {
	s.calls++
	loc, ok := s.locations[address]
	if !ok {
		return nil, errors.New("not found")
	}
	return loc, nil
}

func fastBrowserConfig() *pipeline.BrowserConfig {
	config := pipeline.DefaultPipelineConfig().Browser
	config.SkipGeocoding = false
	config.GeocodeRequestsPerSec = 10000
	return config
}

func TestGeocoderResolveAndCache(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "geocode_cache.json")
	stub := &stubResolver{locations: map[string]*geo.Location{
		"PALM BEACH": {Lat: 26.7, Lng: -80.03},
	}}

	g := NewGeocoderWithResolver(stub, fastBrowserConfig(), cachePath)
	ctx := context.Background()

	entry, ok := g.Resolve(ctx, "PALM BEACH")
	require.True(t, ok)
	assert.InDelta(t, 26.7, entry.Lat, 0.001)
	assert.InDelta(t, -80.03, entry.Lon, 0.001)

	// Second resolve is served from the cache
	_, ok = g.Resolve(ctx, "PALM BEACH")
	assert.True(t, ok)
	assert.Equal(t, 1, stub.calls)
}

func TestGeocoderCachesFailures(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "geocode_cache.json")
	stub := &stubResolver{locations: map[string]*geo.Location{}}

	g := NewGeocoderWithResolver(stub, fastBrowserConfig(), cachePath)
	ctx := context.Background()

	_, ok := g.Resolve(ctx, "NOWHERE LAND")
	assert.False(t, ok)
	_, ok = g.Resolve(ctx, "NOWHERE LAND")
	assert.False(t, ok)
	// The failure was cached, not retried
	assert.Equal(t, 1, stub.calls)

	require.NoError(t, g.SaveCache())
	data, err := os.ReadFile(cachePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"NOWHERE LAND": null`)
}

func TestGeocoderCachePersistsAcrossRuns(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "geocode_cache.json")
	stub := &stubResolver{locations: map[string]*geo.Location{
		"LONDON": {Lat: 51.5, Lng: -0.12},
	}}
	config := fastBrowserConfig()

	g := NewGeocoderWithResolver(stub, config, cachePath)
	_, ok := g.Resolve(context.Background(), "LONDON")
	require.True(t, ok)
	require.NoError(t, g.SaveCache())

	// A fresh geocoder with no provider access still serves the cache
	config.SkipGeocoding = true
	g2 := NewGeocoderWithResolver(stub, config, cachePath)
	entry, ok := g2.Resolve(context.Background(), "LONDON")
	require.True(t, ok)
	assert.InDelta(t, 51.5, entry.Lat, 0.001)
	assert.Equal(t, 1, stub.calls)
}

func TestGeocoderSkipMode(t *testing.T) {
	config := fastBrowserConfig()
	config.SkipGeocoding = true
	stub := &stubResolver{locations: map[string]*geo.Location{
		"PARIS": {Lat: 48.8, Lng: 2.35},
	}}

	g := NewGeocoderWithResolver(stub, config, filepath.Join(t.TempDir(), "cache.json"))
	_, ok := g.Resolve(context.Background(), "PARIS")
	assert.False(t, ok)
	assert.Equal(t, 0, stub.calls)
}

func TestBuildMapLocations(t *testing.T) {
	stub := &stubResolver{locations: map[string]*geo.Location{
		"PALM BEACH": {Lat: 26.7, Lng: -80.03},
		"NEW YORK":   {Lat: 40.7, Lng: -74.0},
	}}
	g := NewGeocoderWithResolver(stub, fastBrowserConfig(), filepath.Join(t.TempDir(), "cache.json"))

	locations := map[string][]LinkedEntity{
		"JOHN SMITH": {{Name: "PALM BEACH", Count: 5}, {Name: "ATLANTIS", Count: 9}},
		"JANE DOE":   {{Name: "PALM BEACH", Count: 3}, {Name: "NEW YORK", Count: 4}},
	}

	result := BuildMapLocations(context.Background(), locations, g)

	// ATLANTIS cannot be resolved and is dropped; counts are summed across persons
	require.Len(t, result, 2)
	assert.Equal(t, "PALM BEACH", result[0].Name)
	assert.Equal(t, 8, result[0].Count)
	assert.Equal(t, "NEW YORK", result[1].Name)
	assert.Equal(t, 4, result[1].Count)
}
