package browser

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// maxQuoteFieldLen caps question/answer/quote fields for browsing
const maxQuoteFieldLen = 500

// Quote is one attributed quotation row, fields truncated for browsing
type Quote struct {
	Type     string `json:"type"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Quote    string `json:"quote"`
	File     string `json:"file"`
}

// LinkedEntity is an organization or location tied to a person
type LinkedEntity struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Profile carries the per-person fields consumed from the entity profiles
// dump; unknown fields are ignored.
type Profile struct {
	Name      string            `json:"name"`
	Documents []json.RawMessage `json:"documents"`
}

// LoadNodes reads the name,appearances node CSV. Nodes are the backbone of
// the browser data, so a missing file is an error.
func LoadNodes(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening nodes file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading nodes header: %w", err)
	}
	col := columnIndex(header)

	nodes := make(map[string]int)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Bad node row, skipping")
			continue
		}

		name := strings.TrimSpace(field(row, col, "name"))
		appearances, _ := strconv.Atoi(strings.TrimSpace(field(row, col, "appearances")))
		if name != "" {
			nodes[name] = appearances
		}
	}

	log.Info().Int("nodes", len(nodes)).Msg("Loaded network nodes")
	return nodes, nil
}

// LoadEdges reads the from,to,weight edge CSV into a symmetric adjacency
// map. A missing file yields an empty map.
func LoadEdges(path string) map[string]map[string]int {
	edges := make(map[string]map[string]int)

	f, err := os.Open(path)
	if err != nil {
		log.Warn().Str("path", path).Msg("Edges file not found, continuing without")
		return edges
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return edges
	}
	col := columnIndex(header)

	add := func(a, b string, w int) {
		if edges[a] == nil {
			edges[a] = make(map[string]int)
		}
		edges[a][b] = w
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Bad edge row, skipping")
			continue
		}

		from := strings.TrimSpace(field(row, col, "from"))
		to := strings.TrimSpace(field(row, col, "to"))
		weight, _ := strconv.Atoi(strings.TrimSpace(field(row, col, "weight")))
		if from == "" || to == "" {
			continue
		}
		add(from, to, weight)
		add(to, from, weight)
	}

	log.Info().Int("persons", len(edges)).Msg("Loaded network edges")
	return edges
}

// LoadProfiles reads the entity profile dump keyed by person name. A
// missing file yields an empty map.
func LoadProfiles(path string) map[string]Profile {
	profiles := make(map[string]Profile)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Str("path", path).Msg("Profiles file not found, continuing without")
		return profiles
	}

	var list []Profile
	if err := json.Unmarshal(data, &list); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Cannot parse profiles, continuing without")
		return profiles
	}

	for _, p := range list {
		name := strings.TrimSpace(p.Name)
		if name != "" {
			profiles[name] = p
		}
	}

	log.Info().Int("profiles", len(profiles)).Msg("Loaded entity profiles")
	return profiles
}

// LoadQuotes reads the attributed-quotes CSV, resolves speakers through the
// alias map, and indexes rows by canonical speaker. Rows without a speaker,
// rows attributed to the anonymous deposition witness, and rows with no
// quoted content are dropped.
func LoadQuotes(path string, aliases *AliasMap) map[string][]Quote {
	quotes := make(map[string][]Quote)

	f, err := os.Open(path)
	if err != nil {
		log.Warn().Str("path", path).Msg("Quotes file not found, continuing without")
		return quotes
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return quotes
	}
	col := columnIndex(header)

	total := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Bad quote row, skipping")
			continue
		}

		speaker := strings.ToUpper(strings.TrimSpace(field(row, col, "speaker")))
		if speaker == "" || speaker == "THE WITNESS" {
			continue
		}
		canonical := aliases.Canonical(speaker)

		q := Quote{
			Type:     field(row, col, "type"),
			Question: truncate(field(row, col, "question"), maxQuoteFieldLen),
			Answer:   truncate(field(row, col, "answer"), maxQuoteFieldLen),
			Quote:    truncate(field(row, col, "quote"), maxQuoteFieldLen),
			File:     field(row, col, "filename"),
		}
		if q.Answer == "" && q.Quote == "" {
			continue
		}

		quotes[canonical] = append(quotes[canonical], q)
		total++
	}

	log.Info().
		Int("speakers", len(quotes)).
		Int("quotes", total).
		Msg("Loaded attributed quotes")
	return quotes
}

// CrossEntityData holds per-person organization, location, and year links
type CrossEntityData struct {
	Organizations map[string][]LinkedEntity
	Locations     map[string][]LinkedEntity
	Years         map[string]map[string]int
}

// LoadCrossEntity reads the person-organization, person-location, and
// person-year link CSVs from dir. Organization and location links below
// minCount co-occurrences are dropped; year links are kept at any count.
// Missing files yield empty maps.
func LoadCrossEntity(dir string, minCount int) *CrossEntityData {
	data := &CrossEntityData{
		Organizations: make(map[string][]LinkedEntity),
		Locations:     make(map[string][]LinkedEntity),
		Years:         make(map[string]map[string]int),
	}

	loadLinks(filepath.Join(dir, "person_organization_links.csv"), "organization",
		func(person, value string, count int) {
			if count >= minCount {
				data.Organizations[person] = append(data.Organizations[person], LinkedEntity{Name: value, Count: count})
			}
		})

	loadLinks(filepath.Join(dir, "person_location_links.csv"), "location",
		func(person, value string, count int) {
			if count >= minCount {
				data.Locations[person] = append(data.Locations[person], LinkedEntity{Name: value, Count: count})
			}
		})

	loadLinks(filepath.Join(dir, "person_year_links.csv"), "year",
		func(person, value string, count int) {
			if data.Years[person] == nil {
				data.Years[person] = make(map[string]int)
			}
			data.Years[person][value] = count
		})

	log.Info().
		Int("org_persons", len(data.Organizations)).
		Int("loc_persons", len(data.Locations)).
		Int("year_persons", len(data.Years)).
		Msg("Loaded cross-entity links")
	return data
}

// loadLinks reads one link CSV with columns person,<valueColumn>,cooccurrences
// and calls visit for each well-formed row.
func loadLinks(path, valueColumn string, visit func(person, value string, count int)) {
	f, err := os.Open(path)
	if err != nil {
		log.Warn().Str("path", path).Msg("Link file not found, continuing without")
		return
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return
	}
	col := columnIndex(header)

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Bad link row, skipping")
			continue
		}

		person := strings.TrimSpace(field(row, col, "person"))
		value := strings.TrimSpace(field(row, col, valueColumn))
		count, _ := strconv.Atoi(strings.TrimSpace(field(row, col, "cooccurrences")))
		if person == "" || value == "" {
			continue
		}
		visit(person, value, count)
	}
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
