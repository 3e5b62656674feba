// Package discover extracts candidate article links from the index page.
package discover

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/florathai/harvester/internal/harvest"
)

// Discoverer selects content-listing anchors from the index page and filters
// them by the first character of their visible text.
type Discoverer struct {
	base    *url.URL
	pattern *regexp.Regexp
	logger  *zap.Logger
}

// New builds a Discoverer for the given site base URL. pattern matches the
// path of content-listing links.
func New(baseURL, pattern string, logger *zap.Logger) (*Discoverer, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile content pattern: %w", err)
	}
	return &Discoverer{base: base, pattern: re, logger: logger}, nil
}

// Links parses the index page HTML and returns the deduplicated set of
// candidate links whose anchor text starts with an accepted letter. An empty
// result is not an error; it means there is nothing to harvest.
func (d *Discoverer) Links(indexHTML []byte, letters harvest.LetterSet) ([]harvest.CandidateLink, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(indexHTML))
	if err != nil {
		return nil, fmt.Errorf("parse index page: %w", err)
	}

	seen := make(map[string]struct{})
	var links []harvest.CandidateLink
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			d.logger.Debug("skipping unparseable href", zap.String("href", href))
			return
		}
		abs := d.base.ResolveReference(ref)
		if !d.pattern.MatchString(abs.Path) {
			return
		}

		anchor := collapse(s.Text())
		first, ok := firstRune(anchor)
		if !ok || !letters.Has(first) {
			return
		}

		target := abs.String()
		if _, dup := seen[target]; dup {
			return
		}
		seen[target] = struct{}{}
		links = append(links, harvest.CandidateLink{URL: target, Anchor: anchor})
	})

	d.logger.Info("link discovery finished", zap.Int("links", len(links)))
	return links, nil
}

// collapse strips all whitespace from the anchor text.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
