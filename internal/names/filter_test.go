package names

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/doclens/doclens/pkg/pipeline"
)

func analysisConfig() *pipeline.AnalysisConfig {
	return pipeline.DefaultPipelineConfig().Analysis
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "John Smith", NormalizeName("John Smith's"))
	assert.Equal(t, "The Williams", NormalizeName("The Williams'"))
	assert.Equal(t, "Jane Doe", NormalizeName("  Jane Doe  "))
	assert.Equal(t, "Jane Doe", NormalizeName("Jane Doe"))
}

func TestFilterPersons(t *testing.T) {
	raw := map[string]bool{
		"John Smith":                 true, // kept
		"Jane Doe's":                 true, // possessive stripped, kept
		"Palm Beach County":          true, // excluded keyword
		"First National Bank":        true, // excluded keyword
		"JOHN SMITH":                 true, // all uppercase
		"Agent 007 Smith":            true, // contains digit
		"Bob":                        true, // too short, no space
		"Madonna":                    true, // no space
		"A Person With A Very Long Name That Cannot Possibly Be Real At All": true, // too long
	}

	filtered := FilterPersons(raw, analysisConfig())

	assert.Equal(t, map[string]bool{
		"JOHN SMITH": true,
		"JANE DOE":   true,
	}, filtered)
}

func TestFilterPersonsKeywordIsCaseInsensitive(t *testing.T) {
	raw := map[string]bool{
		"Little St. James Island": true,
		"Cecile de Jongh":         true,
	}

	filtered := FilterPersons(raw, analysisConfig())

	assert.NotContains(t, filtered, "LITTLE ST. JAMES ISLAND")
	assert.Contains(t, filtered, "CECILE DE JONGH")
}

func TestChunks(t *testing.T) {
	assert.Nil(t, Chunks("", 10))
	assert.Equal(t, []string{"short"}, Chunks("short", 10))
	assert.Equal(t, []string{"abcde", "fghij", "kl"}, Chunks("abcdefghijkl", 5))
	// Non-positive size means no chunking
	assert.Equal(t, []string{"abcdef"}, Chunks("abcdef", 0))
}

func TestChunksKeepsRunesIntact(t *testing.T) {
	// "é" is two bytes, so an odd chunk size would land mid-rune without the
	// boundary backup
	text := strings.Repeat("é", 20)

	for _, size := range []int{5, 7, 11} {
		chunks := Chunks(text, size)
		var joined strings.Builder
		for _, c := range chunks {
			assert.True(t, utf8.ValidString(c), "size %d produced a split rune: %q", size, c)
			assert.LessOrEqual(t, len(c), size)
			joined.WriteString(c)
		}
		assert.Equal(t, text, joined.String())
	}
}
