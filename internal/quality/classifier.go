package quality

import (
	"os"
	"strings"
)

// Classification of a corpus text file
type Classification string

const (
	ClassEmpty    Classification = "empty"
	ClassGarbage  Classification = "garbage"
	ClassRealText Classification = "real_text"
)

const (
	// Share of non-printable bytes above which content counts as garbage
	maxNonPrintableRatio = 0.30

	// A single rune repeated more than this many times marks OCR noise
	maxRepeatRun = 50

	// Files longer than this with fewer than minUniqueRunes distinct runes
	// are degenerate output
	diversityCheckLength = 100
	minUniqueRunes       = 5

	// Mean word length above this, over more than minWordsForLengthCheck
	// words, indicates text with no real word boundaries
	maxAvgWordLength       = 50.0
	minWordsForLengthCheck = 10
)

// ClassifyFile classifies a file on disk. Unreadable files count as empty,
// matching the reporting convention for corrupt downloads.
func ClassifyFile(path string) Classification {
	if isEmptyFile(path) {
		return ClassEmpty
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return ClassRealText
	}
	if IsGarbage(content) {
		return ClassGarbage
	}
	return ClassRealText
}

func isEmptyFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	if info.Size() == 0 {
		return true
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return true
	}
	return strings.TrimSpace(string(content)) == ""
}

// IsGarbage reports whether content looks like unreadable extraction output
// rather than text: mostly non-printable bytes, long repeated-character
// runs, near-zero character diversity, or implausibly long "words".
func IsGarbage(content []byte) bool {
	if len(content) == 0 {
		return false
	}

	printable := 0
	for _, b := range content {
		if (b >= 0x20 && b <= 0x7E) || b == '\t' || b == '\n' || b == '\r' {
			printable++
		}
	}
	nonPrintableRatio := float64(len(content)-printable) / float64(len(content))
	if nonPrintableRatio > maxNonPrintableRatio {
		return true
	}

	text := string(content)

	if hasRepeatedRun(text, maxRepeatRun) {
		return true
	}

	if len(text) > diversityCheckLength {
		unique := make(map[rune]bool)
		for _, r := range text {
			unique[r] = true
			if len(unique) >= minUniqueRunes {
				break
			}
		}
		if len(unique) < minUniqueRunes {
			return true
		}
	}

	words := strings.Fields(text)
	if len(words) > minWordsForLengthCheck {
		total := 0
		for _, w := range words {
			total += len(w)
		}
		if float64(total)/float64(len(words)) > maxAvgWordLength {
			return true
		}
	}

	return false
}

// hasRepeatedRun reports whether any rune repeats more than limit times in a
// row. Go's regexp has no backreferences, so this is a linear scan.
func hasRepeatedRun(text string, limit int) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run > limit {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}
