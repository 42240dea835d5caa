package sentiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doclens/doclens/pkg/pipeline"
)

func testAnalyzer() *Analyzer {
	return NewAnalyzer(pipeline.DefaultPipelineConfig().Analysis)
}

func TestAnalyzeTextTooShort(t *testing.T) {
	a := testAnalyzer()
	assert.Equal(t, Scores{}, a.AnalyzeText(""))
	assert.Equal(t, Scores{}, a.AnalyzeText("ok"))
	assert.Equal(t, Scores{}, a.AnalyzeText("   short   "))
}

func TestAnalyzeTextPolarity(t *testing.T) {
	a := testAnalyzer()

	positive := a.AnalyzeText("This is wonderful, excellent work. I am very happy and grateful.")
	assert.Greater(t, positive.Compound, 0.05)

	negative := a.AnalyzeText("This is horrible, terrible and disgusting. I hate everything about it.")
	assert.Less(t, negative.Compound, -0.05)
}

func TestAnalyzeTextChunkedMatchesRange(t *testing.T) {
	a := testAnalyzer()

	// Over the chunk-word limit, forcing the chunked path
	long := strings.Repeat("The outcome was good and everyone was pleased with the result. ", 200)
	scores := a.AnalyzeText(long)

	assert.Greater(t, scores.Compound, 0.0)
	assert.GreaterOrEqual(t, scores.Neutral, 0.0)
	assert.LessOrEqual(t, scores.Compound, 1.0)
}

func TestWordChunks(t *testing.T) {
	words := strings.Fields("a b c d e f g")

	chunks := wordChunks(words, 3)
	assert.Equal(t, []string{"a b c", "d e f", "g"}, chunks)

	chunks = wordChunks(words, 10)
	assert.Equal(t, []string{"a b c d e f g"}, chunks)
}

func TestSampleEvenly(t *testing.T) {
	chunks := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	assert.Equal(t, chunks, sampleEvenly(chunks, 8))
	assert.Equal(t, chunks, sampleEvenly(chunks, 20))

	sampled := sampleEvenly(chunks, 4)
	assert.Len(t, sampled, 4)
	assert.Equal(t, "a", sampled[0])
	// Samples keep their original order
	assert.Equal(t, []string{"a", "c", "e", "g"}, sampled)
}
