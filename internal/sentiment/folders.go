package sentiment

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/doclens/doclens/pkg/pipeline"
)

// FolderResult is the sentiment of one corpus subfolder, scored over the
// concatenated text of its files.
type FolderResult struct {
	Subfolder  string `json:"subfolder"`
	FolderName string `json:"folder_name"`
	FileCount  int    `json:"file_count"`
	WordCount  int    `json:"word_count"`
	Scores
}

// minSummaryWords excludes near-empty folders from the top rankings
const minSummaryWords = 100

// AnalyzeFolders scores every directory under baseDir that contains .txt
// files, fanning out over a bounded worker pool. Results come back sorted
// by compound score descending.
func AnalyzeFolders(baseDir string, config *pipeline.AnalysisConfig) ([]FolderResult, error) {
	folderFiles, err := collectFolders(baseDir)
	if err != nil {
		return nil, err
	}

	var results []FolderResult
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(config.MaxWorkers)

	for dir, files := range folderFiles {
		dir, files := dir, files
		g.Go(func() error {
			// The polarity analyzer keeps internal state, one per task
			analyzer := NewAnalyzer(config)

			var b strings.Builder
			count := 0
			for _, file := range files {
				content, err := os.ReadFile(file)
				if err != nil {
					log.Warn().Err(err).Str("file", file).Msg("Cannot read file, skipping")
					continue
				}
				b.Write(content)
				b.WriteByte('\n')
				count++
			}
			if count == 0 {
				return nil
			}

			text := b.String()
			result := FolderResult{
				Subfolder:  relFolder(baseDir, dir),
				FolderName: filepath.Base(dir),
				FileCount:  count,
				WordCount:  len(strings.Fields(text)),
				Scores:     analyzer.AnalyzeText(text),
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			log.Info().
				Str("folder", result.Subfolder).
				Int("files", result.FileCount).
				Float64("compound", result.Compound).
				Msg("Folder scored")
			return nil
		})
	}

	// Workers never return errors, failures are logged and skipped
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Compound != results[j].Compound {
			return results[i].Compound > results[j].Compound
		}
		return results[i].Subfolder < results[j].Subfolder
	})
	return results, nil
}

// collectFolders maps each directory under baseDir to its .txt files,
// non-recursively per directory.
func collectFolders(baseDir string) (map[string][]string, error) {
	folders := make(map[string][]string)
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Walk error, skipping")
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		dir := filepath.Dir(path)
		folders[dir] = append(folders[dir], path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, files := range folders {
		sort.Strings(files)
	}
	return folders, nil
}

func relFolder(baseDir, dir string) string {
	rel, err := filepath.Rel(baseDir, dir)
	if err != nil {
		return dir
	}
	return rel
}

// WriteCSV writes folder results, one row per folder, sorted as given.
func WriteCSV(results []FolderResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"subfolder", "folder_name", "file_count", "word_count",
		"compound_score", "positive_ratio", "negative_ratio", "neutral_ratio",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Subfolder,
			r.FolderName,
			fmt.Sprintf("%d", r.FileCount),
			fmt.Sprintf("%d", r.WordCount),
			fmt.Sprintf("%.4f", r.Compound),
			fmt.Sprintf("%.4f", r.Positive),
			fmt.Sprintf("%.4f", r.Negative),
			fmt.Sprintf("%.4f", r.Neutral),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// Summary aggregates the per-folder results for console reporting
type Summary struct {
	Folders      int
	MeanCompound float64
	MostPositive []FolderResult // up to 10, word count over minSummaryWords
	MostNegative []FolderResult // up to 10, word count over minSummaryWords
	PositiveN    int            // compound > 0.05
	NegativeN    int            // compound < -0.05
	NeutralN     int
}

// Summarize builds the aggregate view of scored folders.
func Summarize(results []FolderResult) Summary {
	s := Summary{Folders: len(results)}
	if len(results) == 0 {
		return s
	}

	compounds := make([]float64, 0, len(results))
	substantial := make([]FolderResult, 0, len(results))
	for _, r := range results {
		compounds = append(compounds, r.Compound)
		switch {
		case r.Compound > 0.05:
			s.PositiveN++
		case r.Compound < -0.05:
			s.NegativeN++
		default:
			s.NeutralN++
		}
		if r.WordCount > minSummaryWords {
			substantial = append(substantial, r)
		}
	}
	s.MeanCompound = stat.Mean(compounds, nil)

	sort.Slice(substantial, func(i, j int) bool { return substantial[i].Compound > substantial[j].Compound })
	s.MostPositive = topN(substantial, 10)

	reversed := make([]FolderResult, len(substantial))
	copy(reversed, substantial)
	sort.Slice(reversed, func(i, j int) bool { return reversed[i].Compound < reversed[j].Compound })
	s.MostNegative = topN(reversed, 10)

	return s
}

func topN(results []FolderResult, n int) []FolderResult {
	if n > len(results) {
		n = len(results)
	}
	out := make([]FolderResult, n)
	copy(out, results[:n])
	return out
}
