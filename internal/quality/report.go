package quality

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// FolderStats holds classification counts for one directory
type FolderStats struct {
	Folder      string  `json:"folder"`
	TotalFiles  int     `json:"total_files"`
	RealText    int     `json:"real_text_count"`
	Empty       int     `json:"empty_count"`
	Garbage     int     `json:"garbage_count"`
	RealTextPct float64 `json:"real_text_pct"`
	EmptyPct    float64 `json:"empty_pct"`
	GarbagePct  float64 `json:"garbage_pct"`
}

// AnalyzeTree classifies every .txt file per directory under basePath
// (non-recursive within each directory) and returns per-folder stats,
// sorted by folder path. Directories without .txt files are omitted.
func AnalyzeTree(basePath string) ([]FolderStats, error) {
	dirs := []string{basePath}
	err := filepath.WalkDir(basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Walk error, skipping")
			return nil
		}
		if d.IsDir() && path != basePath {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var results []FolderStats
	for _, dir := range dirs {
		stats, ok := analyzeDir(basePath, dir)
		if ok {
			results = append(results, stats)
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Folder < results[j].Folder })
	return results, nil
}

func analyzeDir(basePath, dir string) (FolderStats, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("Cannot read directory, skipping")
		return FolderStats{}, false
	}

	stats := FolderStats{Folder: relFolder(basePath, dir)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}

		stats.TotalFiles++
		switch ClassifyFile(filepath.Join(dir, entry.Name())) {
		case ClassEmpty:
			stats.Empty++
		case ClassGarbage:
			stats.Garbage++
		default:
			stats.RealText++
		}
	}

	if stats.TotalFiles == 0 {
		return FolderStats{}, false
	}

	stats.RealTextPct = pct(stats.RealText, stats.TotalFiles)
	stats.EmptyPct = pct(stats.Empty, stats.TotalFiles)
	stats.GarbagePct = pct(stats.Garbage, stats.TotalFiles)
	return stats, true
}

func relFolder(basePath, dir string) string {
	rel, err := filepath.Rel(basePath, dir)
	if err != nil {
		return dir
	}
	return rel
}

func pct(count, total int) float64 {
	return math.Round(1000*float64(count)/float64(total)) / 10
}

// WriteCSV writes the per-folder stats report.
func WriteCSV(results []FolderStats, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"folder", "total_files",
		"real_text_count", "empty_count", "garbage_count",
		"real_text_pct", "empty_pct", "garbage_pct",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Folder,
			fmt.Sprintf("%d", r.TotalFiles),
			fmt.Sprintf("%d", r.RealText),
			fmt.Sprintf("%d", r.Empty),
			fmt.Sprintf("%d", r.Garbage),
			fmt.Sprintf("%.1f", r.RealTextPct),
			fmt.Sprintf("%.1f", r.EmptyPct),
			fmt.Sprintf("%.1f", r.GarbagePct),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// Totals sums counts across all folders.
func Totals(results []FolderStats) FolderStats {
	total := FolderStats{Folder: "TOTAL"}
	for _, r := range results {
		total.TotalFiles += r.TotalFiles
		total.RealText += r.RealText
		total.Empty += r.Empty
		total.Garbage += r.Garbage
	}
	if total.TotalFiles > 0 {
		total.RealTextPct = pct(total.RealText, total.TotalFiles)
		total.EmptyPct = pct(total.Empty, total.TotalFiles)
		total.GarbagePct = pct(total.Garbage, total.TotalFiles)
	}
	return total
}
