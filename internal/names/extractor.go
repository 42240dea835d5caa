package names

import (
	"sort"
	"strings"
	"unicode/utf8"

	prose "github.com/jdkato/prose/v2"
	"github.com/rs/zerolog/log"

	"github.com/doclens/doclens/pkg/pipeline"
)

// PersonExtractor runs named-entity recognition over corpus text and keeps
// person names that survive the false-positive filters.
type PersonExtractor struct {
	config *pipeline.AnalysisConfig
}

// NewPersonExtractor creates an extractor from analysis configuration
func NewPersonExtractor(config *pipeline.AnalysisConfig) *PersonExtractor {
	return &PersonExtractor{config: config}
}

// ExtractPersons returns the deduplicated, filtered person names found in
// text. Long texts are processed in fixed-size chunks; a chunk the model
// cannot parse is skipped and the remaining chunks still count.
func (e *PersonExtractor) ExtractPersons(text string) []string {
	raw := make(map[string]bool)

	for _, chunk := range Chunks(text, e.config.ChunkSize) {
		doc, err := prose.NewDocument(chunk, prose.WithSegmentation(false))
		if err != nil {
			log.Debug().Err(err).Int("chunk_len", len(chunk)).Msg("NER chunk failed, skipping")
			continue
		}

		for _, ent := range doc.Entities() {
			if ent.Label != "PERSON" {
				continue
			}
			name := strings.TrimSpace(ent.Text)
			// Single words are overwhelmingly false positives
			if !strings.Contains(name, " ") || len(name) < e.config.MinNameLength {
				continue
			}
			raw[strings.Join(strings.Fields(name), " ")] = true
		}
	}

	filtered := FilterPersons(raw, e.config)

	out := make([]string, 0, len(filtered))
	for name := range filtered {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Chunks splits text into runs of at most size bytes. NER cost grows badly
// with input length, so the boundary is a byte cut, backed up so it never
// lands inside a multi-byte rune.
func Chunks(text string, size int) []string {
	if size <= 0 || len(text) <= size {
		if text == "" {
			return nil
		}
		return []string{text}
	}

	chunks := make([]string, 0, len(text)/size+1)
	for start := 0; start < len(text); {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		for end > start && !utf8.RuneStart(text[end]) {
			end--
		}
		if end == start {
			// A run of continuation bytes longer than size is not valid
			// UTF-8, fall back to the hard cut
			end = start + size
		}
		chunks = append(chunks, text[start:end])
		start = end
	}
	return chunks
}
