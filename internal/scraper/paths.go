package scraper

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9._() -]`)

// SanitizePathComponent replaces characters unsafe for local filenames.
func SanitizePathComponent(part string) string {
	return unsafePathChars.ReplaceAllString(part, "_")
}

// URLToLocalPath converts a PDF URL to a local file path under outputDir,
// preserving the URL's folder structure so identically named files from
// different listings do not collide.
func URLToLocalPath(rawURL, outputDir string) string {
	decoded, err := url.QueryUnescape(rawURL)
	if err != nil {
		decoded = rawURL
	}

	parsed, err := url.Parse(decoded)
	urlPath := decoded
	if err == nil {
		urlPath = parsed.Path
	}
	urlPath = strings.TrimPrefix(urlPath, "/")

	parts := strings.Split(urlPath, "/")
	sanitized := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		sanitized = append(sanitized, SanitizePathComponent(part))
	}

	return filepath.Join(append([]string{outputDir}, sanitized...)...)
}
