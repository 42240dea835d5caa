package browser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/doclens/doclens/pkg/pipeline"
)

// maxIndexAliases keeps the search index small
const maxIndexAliases = 10

var unsafeNameChars = regexp.MustCompile(`[^A-Z0-9]`)

// SafeFilename converts a person name into a filesystem-safe stem: the
// upper-cased name with every non-alphanumeric run replaced by underscores.
func SafeFilename(name string) string {
	return strings.Trim(unsafeNameChars.ReplaceAllString(strings.ToUpper(name), "_"), "_")
}

// IndexEntry is one person in the search index
type IndexEntry struct {
	Name     string   `json:"name"`
	Mentions int      `json:"mentions"`
	Aliases  []string `json:"aliases"`
}

// Index is the client-side search index: persons by mentions descending
// plus the reverse alias map.
type Index struct {
	Persons  []IndexEntry      `json:"persons"`
	AliasMap map[string]string `json:"alias_map"`
}

// Associate is a co-occurrence partner ranked by edge weight
type Associate struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// PersonRecord is the full per-person data file served to the browser
type PersonRecord struct {
	Name          string            `json:"name"`
	Mentions      int               `json:"mentions"`
	Aliases       []string          `json:"aliases"`
	Associates    []Associate       `json:"associates"`
	Organizations []LinkedEntity    `json:"organizations"`
	Locations     []LinkedEntity    `json:"locations"`
	Timeline      map[string]int    `json:"timeline"`
	Quotes        []Quote           `json:"quotes"`
	Documents     []json.RawMessage `json:"documents"`
	QuoteCount    int               `json:"quote_count"`
}

// BuildIndex assembles the search index from node counts and aliases.
func BuildIndex(nodes map[string]int, aliases *AliasMap) *Index {
	index := &Index{
		Persons:  make([]IndexEntry, 0, len(nodes)),
		AliasMap: make(map[string]string),
	}

	for name, mentions := range nodes {
		entry := IndexEntry{
			Name:     name,
			Mentions: mentions,
			Aliases:  capAliases(aliases.Aliases[name], maxIndexAliases),
		}
		index.Persons = append(index.Persons, entry)
	}
	sort.Slice(index.Persons, func(i, j int) bool {
		if index.Persons[i].Mentions != index.Persons[j].Mentions {
			return index.Persons[i].Mentions > index.Persons[j].Mentions
		}
		return index.Persons[i].Name < index.Persons[j].Name
	})

	for canonical, list := range aliases.Aliases {
		for _, alias := range list {
			index.AliasMap[alias] = canonical
		}
	}

	return index
}

func capAliases(aliases []string, n int) []string {
	if aliases == nil {
		return []string{}
	}
	if len(aliases) > n {
		return aliases[:n]
	}
	return aliases
}

// BuildPerson assembles the full record for one person from all loaded
// inputs, applying the per-section caps.
func BuildPerson(name string, nodes map[string]int, edges map[string]map[string]int,
	profiles map[string]Profile, quotes map[string][]Quote, cross *CrossEntityData,
	aliases *AliasMap, config *pipeline.BrowserConfig) PersonRecord {

	record := PersonRecord{
		Name:          name,
		Mentions:      nodes[name],
		Aliases:       capAliases(aliases.Aliases[name], len(aliases.Aliases[name])),
		Associates:    topAssociates(edges[name], config.MaxAssociates),
		Organizations: topLinked(cross.Organizations[name], config.MaxLinkedEntities),
		Locations:     topLinked(cross.Locations[name], config.MaxLinkedEntities),
		Timeline:      cross.Years[name],
		QuoteCount:    len(quotes[name]),
	}
	if record.Timeline == nil {
		record.Timeline = map[string]int{}
	}

	personQuotes := quotes[name]
	if len(personQuotes) > config.MaxQuotesPerPerson {
		personQuotes = personQuotes[:config.MaxQuotesPerPerson]
	}
	if personQuotes == nil {
		personQuotes = []Quote{}
	}
	record.Quotes = personQuotes

	documents := profiles[name].Documents
	if len(documents) > config.MaxDocumentsPerPerson {
		documents = documents[:config.MaxDocumentsPerPerson]
	}
	if documents == nil {
		documents = []json.RawMessage{}
	}
	record.Documents = documents

	return record
}

func topAssociates(neighbors map[string]int, limit int) []Associate {
	associates := make([]Associate, 0, len(neighbors))
	for name, weight := range neighbors {
		associates = append(associates, Associate{Name: name, Weight: weight})
	}
	sort.Slice(associates, func(i, j int) bool {
		if associates[i].Weight != associates[j].Weight {
			return associates[i].Weight > associates[j].Weight
		}
		return associates[i].Name < associates[j].Name
	})
	if len(associates) > limit {
		associates = associates[:limit]
	}
	return associates
}

func topLinked(entities []LinkedEntity, limit int) []LinkedEntity {
	sorted := make([]LinkedEntity, len(entities))
	copy(sorted, entities)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Name < sorted[j].Name
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// WriteIndex writes the search index to dir/person_index.json.
func WriteIndex(index *Index, dir string) error {
	data, err := json.Marshal(index)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, "person_index.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	log.Info().
		Str("path", path).
		Int("persons", len(index.Persons)).
		Int("aliases", len(index.AliasMap)).
		Msg("Wrote person index")
	return nil
}

// WritePerson writes one person record to personsDir/<SAFE_NAME>.json.
func WritePerson(record PersonRecord, personsDir string) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(personsDir, SafeFilename(record.Name)+".json"), data, 0644)
}
