package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"

	"github.com/doclens/doclens/pkg/pipeline"
)

// Scores holds the polarity ratios and the compound score for a text
type Scores struct {
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Positive float64 `json:"positive"`
	Compound float64 `json:"compound"`
}

// Analyzer scores text polarity. Not safe for concurrent use; create one
// per worker.
type Analyzer struct {
	vader  *govader.SentimentIntensityAnalyzer
	config *pipeline.AnalysisConfig
}

// NewAnalyzer creates a sentiment analyzer from analysis configuration
func NewAnalyzer(config *pipeline.AnalysisConfig) *Analyzer {
	return &Analyzer{
		vader:  govader.NewSentimentIntensityAnalyzer(),
		config: config,
	}
}

// AnalyzeText scores a text. Texts under 10 characters score zero across
// the board. Short texts are scored whole; long texts are scored as the
// mean over fixed-size word chunks, sampled evenly when the chunk count
// exceeds the cap.
func (a *Analyzer) AnalyzeText(text string) Scores {
	text = strings.TrimSpace(text)
	if len(text) < 10 {
		return Scores{}
	}

	words := strings.Fields(text)
	if len(words) <= a.config.SentimentChunkWords {
		return a.score(text)
	}

	chunks := wordChunks(words, a.config.SentimentChunkWords)
	chunks = sampleEvenly(chunks, a.config.SentimentMaxChunks)

	var sum Scores
	for _, chunk := range chunks {
		s := a.score(chunk)
		sum.Negative += s.Negative
		sum.Neutral += s.Neutral
		sum.Positive += s.Positive
		sum.Compound += s.Compound
	}

	n := float64(len(chunks))
	return Scores{
		Negative: sum.Negative / n,
		Neutral:  sum.Neutral / n,
		Positive: sum.Positive / n,
		Compound: sum.Compound / n,
	}
}

func (a *Analyzer) score(text string) Scores {
	s := a.vader.PolarityScores(text)
	return Scores{
		Negative: s.Negative,
		Neutral:  s.Neutral,
		Positive: s.Positive,
		Compound: s.Compound,
	}
}

// wordChunks joins words back into chunks of at most size words each.
func wordChunks(words []string, size int) []string {
	chunks := make([]string, 0, len(words)/size+1)
	for start := 0; start < len(words); start += size {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}

// sampleEvenly keeps at most limit chunks, spaced evenly across the input
// so the sample covers the whole document.
func sampleEvenly(chunks []string, limit int) []string {
	if limit <= 0 || len(chunks) <= limit {
		return chunks
	}

	sampled := make([]string, 0, limit)
	step := float64(len(chunks)) / float64(limit)
	for i := 0; i < limit; i++ {
		sampled = append(sampled, chunks[int(float64(i)*step)])
	}
	return sampled
}
