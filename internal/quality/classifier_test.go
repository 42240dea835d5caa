package quality

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGarbage(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		garbage bool
	}{
		{
			name:    "empty content",
			content: []byte{},
			garbage: false,
		},
		{
			name:    "normal prose",
			content: []byte("The deposition of the witness was taken on March 3rd before the court reporter."),
			garbage: false,
		},
		{
			name:    "mostly binary",
			content: append([]byte("abc"), bytes.Repeat([]byte{0x00, 0x01, 0x02}, 20)...),
			garbage: true,
		},
		{
			name:    "long repeated run",
			content: []byte("intro " + strings.Repeat("x", 51) + " outro"),
			garbage: true,
		},
		{
			name:    "run at the threshold stays text",
			content: []byte("intro " + strings.Repeat("x", 50) + " outro"),
			garbage: false,
		},
		{
			name:    "low diversity over long content",
			content: []byte(strings.Repeat("abab", 30)),
			garbage: true,
		},
		{
			name:    "short low diversity is fine",
			content: []byte("ababab"),
			garbage: false,
		},
		{
			name: "implausibly long words",
			content: []byte(strings.Repeat(strings.Repeat("q", 45)+"z"+strings.Repeat("w", 45)+" ", 12)),
			garbage: true,
		},
		{
			name:    "tabs and newlines count as printable",
			content: []byte("col1\tcol2\nrow1\trow2\r\n"),
			garbage: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.garbage, IsGarbage(tt.content))
		})
	}
}

func TestHasRepeatedRun(t *testing.T) {
	assert.False(t, hasRepeatedRun("", 50))
	assert.False(t, hasRepeatedRun(strings.Repeat("a", 50), 50))
	assert.True(t, hasRepeatedRun(strings.Repeat("a", 51), 50))
	assert.True(t, hasRepeatedRun("pad"+strings.Repeat(".", 60)+"pad", 50))
	// Alternating runes never accumulate a run
	assert.False(t, hasRepeatedRun(strings.Repeat("ab", 100), 50))
}

func TestClassifyFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	assert.Equal(t, ClassEmpty, ClassifyFile(write("empty.txt", "")))
	assert.Equal(t, ClassEmpty, ClassifyFile(write("blank.txt", "  \n\t \n")))
	assert.Equal(t, ClassEmpty, ClassifyFile(filepath.Join(dir, "missing.txt")))
	assert.Equal(t, ClassGarbage, ClassifyFile(write("noise.txt", strings.Repeat("#", 80))))
	assert.Equal(t, ClassRealText, ClassifyFile(write("ok.txt", "Exhibit 4 was entered into evidence by counsel.")))
}

func TestAnalyzeTree(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "court-records")
	require.NoError(t, os.MkdirAll(sub, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(sub, "a.txt"), []byte("A perfectly ordinary page of testimony."), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.txt"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.TXT"), []byte(strings.Repeat("~", 90)), 0644))
	// Non-txt files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(sub, "d.pdf"), []byte("%PDF"), 0644))

	results, err := AnalyzeTree(dir)
	require.NoError(t, err)
	require.Len(t, results, 1)

	stats := results[0]
	assert.Equal(t, "court-records", stats.Folder)
	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, 1, stats.RealText)
	assert.Equal(t, 1, stats.Empty)
	assert.Equal(t, 1, stats.Garbage)
	assert.InDelta(t, 33.3, stats.RealTextPct, 0.01)

	total := Totals(results)
	assert.Equal(t, 3, total.TotalFiles)
}
