package network

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVs(t *testing.T) {
	dir := t.TempDir()
	net := Build(testFilePersons(), testConfig())

	edgesPath := filepath.Join(dir, "edges.csv")
	require.NoError(t, WriteEdgesCSV(net, edgesPath))
	data, err := os.ReadFile(edgesPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "from,to,weight\n")
	assert.Contains(t, string(data), "ALICE ADAMS,BOB BROWN,3\n")

	nodesPath := filepath.Join(dir, "nodes.csv")
	require.NoError(t, WriteNodesCSV(net, nodesPath))
	data, err = os.ReadFile(nodesPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name,appearances\n")
	assert.Contains(t, string(data), "ALICE ADAMS,3\n")
}

func TestRenderHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.html")
	net := Build(testFilePersons(), testConfig())

	require.NoError(t, RenderHTML(net, "Test Network", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "Test Network")
	assert.Contains(t, html, "ALICE ADAMS")
	assert.Contains(t, html, "force")
}
