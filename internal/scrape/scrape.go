// Package scrape extracts document links from source HTML pages.
package scrape

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Links returns every a[href] value in the document that starts with
// prefix, de-duplicated, in document order. An empty prefix matches all
// links.
func Links(r io.Reader, prefix string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if prefix != "" && !strings.HasPrefix(href, prefix) {
			return
		}
		if seen[href] {
			return
		}
		seen[href] = true
		links = append(links, href)
	})

	return links, nil
}

// LinksFromFile reads an HTML file and extracts matching links.
func LinksFromFile(path, prefix string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Links(f, prefix)
}

// LinksFromURL fetches a page and extracts matching links.
func LinksFromURL(pageURL, prefix string) ([]string, error) {
	resp, err := http.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch of %s rejected: %s", pageURL, resp.Status)
	}

	return Links(resp.Body, prefix)
}
