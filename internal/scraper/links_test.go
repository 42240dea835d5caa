package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://www.justice.gov"

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractPDFLinks(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
			<a href="/files/report.pdf">Report</a>
			<a href="https://media.example.com/exhibit.PDF">Exhibit</a>
			<a href="relative-doc.pdf">Relative</a>
			<a href="/files/report.pdf">Duplicate</a>
			<a href="/files/notes.txt">Not a PDF</a>
			<a href="/files/index.html">Page</a>
		</body></html>`)

	links := ExtractPDFLinks(doc, baseURL)

	assert.Equal(t, []string{
		"https://media.example.com/exhibit.PDF",
		"https://www.justice.gov/files/report.pdf",
		"https://www.justice.gov/relative-doc.pdf",
	}, links)
}

func TestExtractPDFLinksNilDocument(t *testing.T) {
	assert.Nil(t, ExtractPDFLinks(nil, baseURL))
}

func TestExtractSubpageLinks(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
			<a href="/epstein/court-records/volume-1">Volume 1</a>
			<a href="/epstein/court-records/volume-2">Volume 2</a>
			<a href="/epstein/doj-disclosures">Other section</a>
			<a href="/about">Unrelated</a>
		</body></html>`)

	links := ExtractSubpageLinks(doc, "/epstein/court-records/", baseURL)

	assert.Equal(t, []string{
		"https://www.justice.gov/epstein/court-records/volume-1",
		"https://www.justice.gov/epstein/court-records/volume-2",
	}, links)
}

func TestExtractPaginationLinks(t *testing.T) {
	doc := parseHTML(t, `
		<html><body>
			<a href="/epstein/court-records/volume-1?page=1">2</a>
			<a href="/epstein/court-records/volume-1?page=2">3</a>
			<a href="/epstein/court-records/volume-1">Current</a>
		</body></html>`)

	links := ExtractPaginationLinks(doc, baseURL)

	assert.Equal(t, []string{
		"https://www.justice.gov/epstein/court-records/volume-1?page=1",
		"https://www.justice.gov/epstein/court-records/volume-1?page=2",
	}, links)
}

func TestResolveHref(t *testing.T) {
	assert.Equal(t, "https://other.example.com/a.pdf", resolveHref("https://other.example.com/a.pdf", baseURL))
	assert.Equal(t, baseURL+"/files/a.pdf", resolveHref("/files/a.pdf", baseURL))
	assert.Equal(t, baseURL+"/a.pdf", resolveHref("a.pdf", baseURL))
}
