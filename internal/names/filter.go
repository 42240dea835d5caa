package names

import (
	"strings"
	"unicode"

	"github.com/doclens/doclens/pkg/pipeline"
)

// Keywords that mark an entity as a place, institution, or legal construct
// rather than a person. Matched case-insensitively as substrings.
var excludeKeywords = []string{
	"county", "city", "state", "court", "district", "university",
	"college", "school", "hospital", "bank", "company", "corp",
	"inc", "llc", "ltd", "foundation", "institute", "center",
	"department", "office", "bureau", "agency", "committee",
	"airport", "street", "avenue", "boulevard", "road", "drive",
	"island", "beach", "park", "lake", "river", "mountain",
	"amendment", "circuit", "airlines", "airways", "hotel",
}

// NormalizeName strips possessive suffixes and surrounding whitespace.
func NormalizeName(name string) string {
	if strings.HasSuffix(name, "'s") {
		name = strings.TrimSuffix(name, "'s")
	} else if strings.HasSuffix(name, "'") {
		name = strings.TrimSuffix(name, "'")
	}
	return strings.TrimSpace(name)
}

// FilterPersons applies the person-name heuristics to a raw entity set and
// returns the surviving names upper-cased.
func FilterPersons(raw map[string]bool, config *pipeline.AnalysisConfig) map[string]bool {
	filtered := make(map[string]bool)

	for name := range raw {
		name = NormalizeName(name)

		if containsExcludedKeyword(name) {
			continue
		}
		// All-caps strings are acronyms or document headers
		if name == strings.ToUpper(name) {
			continue
		}
		if containsDigit(name) {
			continue
		}
		// Over-long "names" are sentence fragments from bad parses
		if len(name) > config.MaxNameLength {
			continue
		}
		if len(name) < config.MinNameLength || !strings.Contains(name, " ") {
			continue
		}

		filtered[strings.ToUpper(name)] = true
	}

	return filtered
}

func containsExcludedKeyword(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range excludeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func containsDigit(name string) bool {
	for _, r := range name {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
