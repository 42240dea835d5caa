package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/pkg/pipeline"
)

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"JOHN SMITH", "JOHN_SMITH"},
		{"John Smith", "JOHN_SMITH"},
		{"MARY-JANE O'BRIEN", "MARY_JANE_O_BRIEN"},
		{"  JANE DOE  ", "JANE_DOE"},
		{"A.B. CHARLES", "A_B__CHARLES"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SafeFilename(tt.in))
	}
}

func TestBuildIndex(t *testing.T) {
	nodes := map[string]int{
		"JANE DOE":   40,
		"JOHN SMITH": 100,
		"BOB BROWN":  40,
	}
	aliases := NewAliasMap()
	aliases.ToCanonical["J. SMITH"] = "JOHN SMITH"
	aliases.Aliases["JOHN SMITH"] = []string{"J. SMITH"}

	index := BuildIndex(nodes, aliases)

	require.Len(t, index.Persons, 3)
	assert.Equal(t, "JOHN SMITH", index.Persons[0].Name)
	// Ties broken by name for stable output
	assert.Equal(t, "BOB BROWN", index.Persons[1].Name)
	assert.Equal(t, "JANE DOE", index.Persons[2].Name)

	assert.Equal(t, []string{"J. SMITH"}, index.Persons[0].Aliases)
	assert.Equal(t, []string{}, index.Persons[1].Aliases)
	assert.Equal(t, "JOHN SMITH", index.AliasMap["J. SMITH"])
}

func TestBuildPerson(t *testing.T) {
	config := pipeline.DefaultPipelineConfig().Browser
	config.MaxAssociates = 2
	config.MaxQuotesPerPerson = 1

	nodes := map[string]int{"JOHN SMITH": 10}
	edges := map[string]map[string]int{
		"JOHN SMITH": {"JANE DOE": 5, "BOB BROWN": 9, "CAROL CLARK": 1},
	}
	quotes := map[string][]Quote{
		"JOHN SMITH": {{Quote: "first"}, {Quote: "second"}},
	}
	cross := &CrossEntityData{
		Organizations: map[string][]LinkedEntity{
			"JOHN SMITH": {{Name: "ACME CORP", Count: 4}},
		},
		Locations: map[string][]LinkedEntity{},
		Years: map[string]map[string]int{
			"JOHN SMITH": {"2003": 7},
		},
	}

	record := BuildPerson("JOHN SMITH", nodes, edges, map[string]Profile{},
		quotes, cross, NewAliasMap(), config)

	assert.Equal(t, "JOHN SMITH", record.Name)
	assert.Equal(t, 10, record.Mentions)

	// Associates capped and ordered by weight
	require.Len(t, record.Associates, 2)
	assert.Equal(t, "BOB BROWN", record.Associates[0].Name)
	assert.Equal(t, "JANE DOE", record.Associates[1].Name)

	// Quotes capped but the full count reported
	assert.Len(t, record.Quotes, 1)
	assert.Equal(t, 2, record.QuoteCount)

	assert.Equal(t, []LinkedEntity{{Name: "ACME CORP", Count: 4}}, record.Organizations)
	assert.Equal(t, map[string]int{"2003": 7}, record.Timeline)

	// Empty sections serialize as [] not null
	assert.NotNil(t, record.Locations)
	assert.NotNil(t, record.Documents)
}

func TestBuildPersonUnknownName(t *testing.T) {
	config := pipeline.DefaultPipelineConfig().Browser
	record := BuildPerson("NOBODY HERE", map[string]int{}, map[string]map[string]int{},
		map[string]Profile{}, map[string][]Quote{}, &CrossEntityData{
			Organizations: map[string][]LinkedEntity{},
			Locations:     map[string][]LinkedEntity{},
			Years:         map[string]map[string]int{},
		}, NewAliasMap(), config)

	assert.Equal(t, 0, record.Mentions)
	assert.Empty(t, record.Associates)
	assert.Equal(t, map[string]int{}, record.Timeline)
}
