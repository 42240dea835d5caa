package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/pkg/pipeline"
)

func testConfig() *pipeline.AnalysisConfig {
	config := pipeline.DefaultPipelineConfig().Analysis
	config.MinAppearances = 2
	config.MinEdgeWeight = 2
	return config
}

// fixture: A and B co-occur in three files, A and C in one, D appears once.
func testFilePersons() map[string][]string {
	return map[string][]string{
		"f1.txt": {"ALICE ADAMS", "BOB BROWN"},
		"f2.txt": {"ALICE ADAMS", "BOB BROWN", "CAROL CLARK"},
		"f3.txt": {"ALICE ADAMS", "BOB BROWN", "CAROL CLARK"},
		"f4.txt": {"DAN DAVIS"},
	}
}

func TestBuildFiltersByAppearances(t *testing.T) {
	net := Build(testFilePersons(), testConfig())

	names := make([]string, 0, len(net.Nodes))
	for _, n := range net.Nodes {
		names = append(names, n.Name)
	}
	// DAN DAVIS appears once and never reaches the graph
	assert.NotContains(t, names, "DAN DAVIS")
	assert.Contains(t, names, "ALICE ADAMS")
	assert.Contains(t, names, "BOB BROWN")
	assert.Contains(t, names, "CAROL CLARK")
}

func TestBuildEdgeWeights(t *testing.T) {
	net := Build(testFilePersons(), testConfig())

	require.NotEmpty(t, net.Edges)
	// Heaviest edge first
	top := net.Edges[0]
	assert.Equal(t, "ALICE ADAMS", top.From)
	assert.Equal(t, "BOB BROWN", top.To)
	assert.Equal(t, 3, top.Weight)

	for _, e := range net.Edges {
		assert.GreaterOrEqual(t, e.Weight, 2)
		assert.Less(t, e.From, e.To, "edge endpoints must be ordered")
	}
}

func TestBuildDropsWeakEdges(t *testing.T) {
	config := testConfig()
	config.MinEdgeWeight = 4

	net := Build(testFilePersons(), config)
	assert.Empty(t, net.Edges)
	assert.Empty(t, net.Nodes)
}

func TestDegreeAndDensity(t *testing.T) {
	net := Build(testFilePersons(), testConfig())

	// Triangle between the three frequent persons
	assert.Equal(t, 2, net.Degree("ALICE ADAMS"))
	assert.Equal(t, 2, net.Degree("BOB BROWN"))
	assert.Equal(t, 2, net.Degree("CAROL CLARK"))
	assert.Equal(t, 0, net.Degree("DAN DAVIS"))
	assert.InDelta(t, 1.0, net.Density(), 0.0001)
}

func TestAppearancesIncludesFilteredPersons(t *testing.T) {
	net := Build(testFilePersons(), testConfig())
	assert.Equal(t, 3, net.Appearances("ALICE ADAMS"))
	assert.Equal(t, 1, net.Appearances("DAN DAVIS"))
	assert.Equal(t, 0, net.Appearances("NOBODY HERE"))
}

func TestTopByDegreeAndSubgraph(t *testing.T) {
	net := Build(testFilePersons(), testConfig())

	top := net.TopByDegree(2)
	require.Len(t, top, 2)

	sub := net.Subgraph(top)
	assert.Len(t, sub.Nodes, 2)
	// Only edges between kept nodes survive
	for _, e := range sub.Edges {
		assert.Contains(t, top, e.From)
		assert.Contains(t, top, e.To)
	}
}
