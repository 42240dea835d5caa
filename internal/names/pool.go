package names

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/doclens/doclens/pkg/pipeline"
)

// FindTextFiles returns every .txt file under baseDir, recursively.
func FindTextFiles(baseDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Walk error, skipping")
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".txt") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// ExtractAll fans extraction out over a bounded worker pool, one task per
// file, and returns a file-to-persons map. Files yielding no persons and
// files that cannot be read are omitted.
func ExtractAll(files []string, config *pipeline.AnalysisConfig) map[string][]string {
	extractor := NewPersonExtractor(config)

	results := make(map[string][]string)
	var mu sync.Mutex
	var completed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(config.MaxWorkers)

	for _, file := range files {
		file := file
		g.Go(func() error {
			content, err := os.ReadFile(file)
			if err != nil {
				log.Warn().Err(err).Str("file", file).Msg("Cannot read file, skipping")
				return nil
			}

			persons := extractor.ExtractPersons(string(content))
			if len(persons) > 0 {
				mu.Lock()
				results[file] = persons
				mu.Unlock()
			}

			done := completed.Add(1)
			if done%100 == 0 || done == int64(len(files)) {
				log.Info().
					Int64("done", done).
					Int("total", len(files)).
					Msg("Extraction progress")
			}
			return nil
		})
	}

	// Workers never return errors, failures are logged and skipped
	_ = g.Wait()

	return results
}

// SaveNames writes the file-to-persons map as indented JSON.
func SaveNames(results map[string][]string, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadNames reads a file-to-persons map written by SaveNames.
func LoadNames(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var results map[string][]string
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// UniquePersons returns the count of distinct persons across all files.
func UniquePersons(results map[string][]string) int {
	unique := make(map[string]bool)
	for _, persons := range results {
		for _, p := range persons {
			unique[p] = true
		}
	}
	return len(unique)
}
