package scraper

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// resolveHref turns an anchor href into an absolute URL against the base.
func resolveHref(href, baseURL string) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return baseURL + href
	default:
		return baseURL + "/" + href
	}
}

// ExtractPDFLinks returns every unique absolute .pdf link on a page.
func ExtractPDFLinks(doc *goquery.Document, baseURL string) []string {
	if doc == nil {
		return nil
	}

	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasSuffix(strings.ToLower(href), ".pdf") {
			return
		}
		seen[resolveHref(href, baseURL)] = true
	})

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

// ExtractSubpageLinks returns unique absolute links to sub-pages whose href
// contains the section path.
func ExtractSubpageLinks(doc *goquery.Document, sectionPath, baseURL string) []string {
	if doc == nil {
		return nil
	}

	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.Contains(href, sectionPath) {
			return
		}
		seen[resolveHref(href, baseURL)] = true
	})

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}

// ExtractPaginationLinks returns unique absolute links carrying a ?page=
// query, the pagination style the listing pages use.
func ExtractPaginationLinks(doc *goquery.Document, baseURL string) []string {
	if doc == nil {
		return nil
	}

	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.Contains(href, "?page=") {
			return
		}
		seen[resolveHref(href, baseURL)] = true
	})

	links := make([]string, 0, len(seen))
	for link := range seen {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}
