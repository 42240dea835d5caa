package browser

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// AliasMap resolves alias spellings to canonical person names and lists the
// known aliases of each canonical name.
type AliasMap struct {
	ToCanonical map[string]string
	Aliases     map[string][]string
}

// NewAliasMap returns an empty alias map
func NewAliasMap() *AliasMap {
	return &AliasMap{
		ToCanonical: make(map[string]string),
		Aliases:     make(map[string][]string),
	}
}

// Canonical resolves a name through the alias table, returning the input
// unchanged when no mapping exists.
func (m *AliasMap) Canonical(name string) string {
	if canonical, ok := m.ToCanonical[name]; ok {
		return canonical
	}
	return name
}

// LoadAliasMap reads an alias,canonical CSV. A missing file is not an
// error; the browser data is still useful without alias resolution.
func LoadAliasMap(path string) (*AliasMap, error) {
	m := NewAliasMap()

	f, err := os.Open(path)
	if err != nil {
		log.Warn().Str("path", path).Msg("Alias mapping not found, continuing without")
		return m, nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return m, err
	}
	col := columnIndex(header)

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Bad alias row, skipping")
			continue
		}

		alias := strings.TrimSpace(field(row, col, "alias"))
		canonical := strings.TrimSpace(field(row, col, "canonical"))
		if alias == "" || canonical == "" {
			continue
		}

		m.ToCanonical[alias] = canonical
		if !containsString(m.Aliases[canonical], alias) {
			m.Aliases[canonical] = append(m.Aliases[canonical], alias)
		}
	}

	log.Info().Int("aliases", len(m.ToCanonical)).Msg("Loaded alias mappings")
	return m, nil
}

// columnIndex maps header names to positions so loaders tolerate column
// reordering.
func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
