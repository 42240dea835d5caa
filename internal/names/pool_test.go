package names

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindTextFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.TXT"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.pdf"), []byte("x"), 0644))

	files, err := FindTextFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestSaveAndLoadNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.json")
	results := map[string][]string{
		"a.txt": {"JANE DOE", "JOHN SMITH"},
		"b.txt": {"JOHN SMITH"},
	}

	require.NoError(t, SaveNames(results, path))

	loaded, err := LoadNames(path)
	require.NoError(t, err)
	assert.Equal(t, results, loaded)
}

func TestUniquePersons(t *testing.T) {
	results := map[string][]string{
		"a.txt": {"JANE DOE", "JOHN SMITH"},
		"b.txt": {"JOHN SMITH", "MARY JONES"},
	}
	assert.Equal(t, 3, UniquePersons(results))
	assert.Equal(t, 0, UniquePersons(nil))
}
