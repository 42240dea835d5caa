package server

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/doclens/doclens/pkg/pipeline"
)

const (
	defaultPageLimit = 50
	maxQuoteLen      = 500
	maxContextLen    = 200
)

// quoteRow is one raw row of the attributed-quotes CSV
type quoteRow struct {
	Speaker  string
	Type     string
	Question string
	Answer   string
	Quote    string
	Filename string
	Context  string
}

// QuoteResponse is one quote as served by the API
type QuoteResponse struct {
	Type     string `json:"type"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Quote    string `json:"quote"`
	File     string `json:"file"`
	Context  string `json:"context"`
}

// Handlers contains the HTTP handlers for the browser API
type Handlers struct {
	config *pipeline.PipelineConfig

	quotesOnce sync.Once
	quotes     []quoteRow

	aliasOnce sync.Once
	aliases   map[string]string
}

// NewHandlers creates a new handlers instance
func NewHandlers(config *pipeline.PipelineConfig) *Handlers {
	if config == nil {
		config = pipeline.DefaultPipelineConfig()
	}
	return &Handlers{config: config}
}

// Quotes handles GET /api/quotes?person=NAME&offset=0&limit=50
func (h *Handlers) Quotes(c *fiber.Ctx) error {
	person := c.Query("person")
	if person == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "person parameter required",
		})
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", defaultPageLimit)
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	aliases := h.aliasMap()
	canonical := normalizeName(person)
	if mapped, ok := aliases[canonical]; ok {
		canonical = mapped
	}

	var matching []QuoteResponse
	for _, row := range h.allQuotes() {
		speaker := normalizeName(row.Speaker)
		speakerCanonical := speaker
		if mapped, ok := aliases[speaker]; ok {
			speakerCanonical = mapped
		}
		if speakerCanonical != canonical && speaker != canonical {
			continue
		}
		matching = append(matching, QuoteResponse{
			Type:     row.Type,
			Question: truncate(row.Question, maxQuoteLen),
			Answer:   truncate(row.Answer, maxQuoteLen),
			Quote:    truncate(row.Quote, maxQuoteLen),
			File:     row.Filename,
			Context:  truncate(row.Context, maxContextLen),
		})
	}

	total := len(matching)
	page := paginate(matching, offset, limit)

	return c.JSON(fiber.Map{
		"person": person,
		"total":  total,
		"offset": offset,
		"limit":  limit,
		"quotes": page,
	})
}

// Search handles GET /api/search?q=query&limit=50
func (h *Handlers) Search(c *fiber.Ctx) error {
	query := strings.ToUpper(strings.TrimSpace(c.Query("q")))
	limit := c.QueryInt("limit", defaultPageLimit)

	if query == "" {
		return c.JSON(fiber.Map{"results": []fiber.Map{}})
	}

	indexPath := filepath.Join(h.config.DataPaths.BrowserDataDir, "person_index.json")
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Index not found. Run preprocess-browser first.",
		})
	}

	var index struct {
		Persons []struct {
			Name     string   `json:"name"`
			Mentions int      `json:"mentions"`
			Aliases  []string `json:"aliases"`
		} `json:"persons"`
	}
	if err := json.Unmarshal(data, &index); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Cannot parse person index",
		})
	}

	results := make([]fiber.Map, 0, limit)
	for _, person := range index.Persons {
		if len(results) >= limit {
			break
		}
		if matchesQuery(query, person.Name, person.Aliases) {
			results = append(results, fiber.Map{
				"name":     person.Name,
				"mentions": person.Mentions,
			})
		}
	}

	return c.JSON(fiber.Map{"results": results})
}

func matchesQuery(query, name string, aliases []string) bool {
	if strings.Contains(strings.ToUpper(name), query) {
		return true
	}
	for _, alias := range aliases {
		if strings.Contains(strings.ToUpper(alias), query) {
			return true
		}
	}
	return false
}

// allQuotes loads the quotes CSV into memory once. A missing file serves
// an empty result set rather than an error.
func (h *Handlers) allQuotes() []quoteRow {
	h.quotesOnce.Do(func() {
		f, err := os.Open(h.config.DataPaths.QuotesCSV)
		if err != nil {
			log.Warn().Str("path", h.config.DataPaths.QuotesCSV).Msg("Quotes file not found")
			return
		}
		defer f.Close()

		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		r.LazyQuotes = true

		header, err := r.Read()
		if err != nil {
			return
		}
		col := make(map[string]int, len(header))
		for i, name := range header {
			col[strings.TrimSpace(name)] = i
		}
		get := func(row []string, name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		for {
			row, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				continue
			}
			h.quotes = append(h.quotes, quoteRow{
				Speaker:  get(row, "speaker"),
				Type:     get(row, "type"),
				Question: get(row, "question"),
				Answer:   get(row, "answer"),
				Quote:    get(row, "quote"),
				Filename: get(row, "filename"),
				Context:  get(row, "context"),
			})
		}

		log.Info().Int("quotes", len(h.quotes)).Msg("Loaded quotes cache")
	})
	return h.quotes
}

// aliasMap loads the alias table once, upper-cased on both sides for
// case-insensitive resolution.
func (h *Handlers) aliasMap() map[string]string {
	h.aliasOnce.Do(func() {
		h.aliases = make(map[string]string)

		f, err := os.Open(h.config.DataPaths.AliasCSV)
		if err != nil {
			return
		}
		defer f.Close()

		r := csv.NewReader(f)
		r.FieldsPerRecord = -1

		header, err := r.Read()
		if err != nil {
			return
		}
		aliasIdx, canonicalIdx := -1, -1
		for i, name := range header {
			switch strings.TrimSpace(name) {
			case "alias":
				aliasIdx = i
			case "canonical":
				canonicalIdx = i
			}
		}
		if aliasIdx < 0 || canonicalIdx < 0 {
			return
		}

		for {
			row, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil || aliasIdx >= len(row) || canonicalIdx >= len(row) {
				continue
			}
			h.aliases[normalizeName(row[aliasIdx])] = normalizeName(row[canonicalIdx])
		}
	})
	return h.aliases
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func paginate(quotes []QuoteResponse, offset, limit int) []QuoteResponse {
	if offset >= len(quotes) {
		return []QuoteResponse{}
	}
	end := offset + limit
	if end > len(quotes) {
		end = len(quotes)
	}
	return quotes[offset:end]
}
