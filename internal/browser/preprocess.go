package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/doclens/doclens/pkg/pipeline"
)

// Preprocessor turns the analysis outputs into the person-indexed JSON
// files the browser application loads client-side.
type Preprocessor struct {
	config *pipeline.PipelineConfig
}

// NewPreprocessor creates a preprocessor; nil config uses defaults.
func NewPreprocessor(config *pipeline.PipelineConfig) *Preprocessor {
	if config == nil {
		config = pipeline.DefaultPipelineConfig()
	}
	return &Preprocessor{config: config}
}

// Run loads all analysis outputs and writes the browser data directory:
// the search index, one JSON file per person, the global timeline, and the
// geocoded map overlay.
func (p *Preprocessor) Run(ctx context.Context) error {
	paths := p.config.DataPaths
	browserCfg := p.config.Browser

	aliases, err := LoadAliasMap(paths.AliasCSV)
	if err != nil {
		return fmt.Errorf("loading aliases: %w", err)
	}

	nodes, err := LoadNodes(paths.NodesCSV)
	if err != nil {
		return err
	}

	edges := LoadEdges(paths.EdgesCSV)
	profiles := LoadProfiles(paths.ProfilesJSON)
	quotes := LoadQuotes(paths.QuotesCSV, aliases)
	cross := LoadCrossEntity(paths.CrossEntityDir, browserCfg.MinLinkCount)

	personsDir := filepath.Join(paths.BrowserDataDir, "persons")
	if err := os.MkdirAll(personsDir, 0755); err != nil {
		return fmt.Errorf("creating output directories: %w", err)
	}

	index := BuildIndex(nodes, aliases)
	if err := WriteIndex(index, paths.BrowserDataDir); err != nil {
		return fmt.Errorf("writing person index: %w", err)
	}

	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	written := 0
	for _, name := range names {
		record := BuildPerson(name, nodes, edges, profiles, quotes, cross, aliases, browserCfg)
		if err := WritePerson(record, personsDir); err != nil {
			log.Warn().Err(err).Str("person", name).Msg("Cannot write person file, skipping")
			continue
		}
		written++
		if written%500 == 0 {
			log.Info().Int("written", written).Int("total", len(names)).Msg("Person file progress")
		}
	}
	log.Info().Int("written", written).Str("dir", personsDir).Msg("Generated person files")

	if err := WriteTimeline(BuildTimeline(cross.Years), paths.BrowserDataDir); err != nil {
		return fmt.Errorf("writing timeline: %w", err)
	}

	geocoder := NewGeocoder(browserCfg, paths.GeocodeCache)
	mapLocations := BuildMapLocations(ctx, cross.Locations, geocoder)
	if err := geocoder.SaveCache(); err != nil {
		log.Warn().Err(err).Msg("Cannot save geocode cache")
	}
	if err := WriteMapLocations(mapLocations, paths.BrowserDataDir); err != nil {
		return fmt.Errorf("writing map locations: %w", err)
	}

	return nil
}
