// Package extract turns loosely structured article HTML into ArticleRecords.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/florathai/harvester/internal/harvest"
)

// ErrNoTitle marks a page that yields no usable title; such pages produce no
// record at all.
var ErrNoTitle = errors.New("page has no extractable title")

// Extractor derives one ArticleRecord per article page using label-based
// heuristics. The source pages are hand-edited HTML, so every field goes
// through a fallback chain rather than a fixed selector.
type Extractor struct {
	base   *url.URL
	logger *zap.Logger
}

// New builds an Extractor that absolutizes references against baseURL.
func New(baseURL string, logger *zap.Logger) (*Extractor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Extractor{base: base, logger: logger}, nil
}

// Extract parses one page and assembles its ArticleRecord. It returns
// ErrNoTitle when every title heuristic comes up empty.
func (e *Extractor) Extract(body []byte, sourceURL string) (harvest.ArticleRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return harvest.ArticleRecord{}, fmt.Errorf("parse page: %w", err)
	}

	// Rewrite relative references first so every value extracted below is
	// already absolute.
	e.absolutize(doc)

	pageText := doc.Text()

	title := e.resolveTitle(doc, pageText)
	if title == "" {
		return harvest.ArticleRecord{}, ErrNoTitle
	}

	paragraphs := collectParagraphs(doc)

	summary := harvest.NoValue
	content := harvest.NoValue
	if len(paragraphs) > 0 {
		summary = strings.TrimSpace(paragraphs[0].text)
		var b strings.Builder
		for _, p := range paragraphs {
			b.WriteString("<p>")
			b.WriteString(p.markup)
			b.WriteString("</p>")
		}
		content = b.String()
	}

	var authors []string
	if author := ExtractLabel(pageText, LabelAuthor); author != harvest.NoValue {
		authors = append(authors, author)
	}

	record := harvest.ArticleRecord{
		Slug:           harvest.Slugify(title),
		Title:          title,
		Summary:        summary,
		Content:        content,
		SourceURL:      sourceURL,
		Authors:        authors,
		Images:         collectImages(doc),
		MainName:       ExtractLabel(pageText, LabelMainName),
		ScientificName: ExtractLabel(pageText, LabelScientificName),
	}
	return record, nil
}

// resolveTitle walks the fallback chain: first heading of any level, then the
// first bold element, then the main-name label block.
func (e *Extractor) resolveTitle(doc *goquery.Document, pageText string) string {
	title := strings.TrimSpace(doc.Find("h1, h2, h3, h4").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("b, strong").First().Text())
	}
	if title == "" {
		if v := ExtractLabel(pageText, LabelMainName); v != harvest.NoValue {
			title = v
		}
	}
	return strings.TrimSpace(strings.TrimLeft(title, "# "))
}

// absolutize rewrites relative img src and anchor href attributes in place.
func (e *Extractor) absolutize(doc *goquery.Document) {
	rewrite := func(attr string) func(int, *goquery.Selection) {
		return func(_ int, s *goquery.Selection) {
			val, ok := s.Attr(attr)
			if !ok || val == "" {
				return
			}
			ref, err := url.Parse(val)
			if err != nil {
				e.logger.Debug("skipping unparseable reference", zap.String(attr, val))
				return
			}
			if ref.IsAbs() {
				return
			}
			s.SetAttr(attr, e.base.ResolveReference(ref).String())
		}
	}
	doc.Find("img[src]").Each(rewrite("src"))
	doc.Find("a[href]").Each(rewrite("href"))
}

type paragraph struct {
	markup string
	text   string
}

// collectParagraphs keeps the inner markup of each narrative paragraph,
// excluding the labeled metadata blocks so they are not duplicated into the
// body.
func collectParagraphs(doc *goquery.Document) []paragraph {
	var kept []paragraph
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		for _, label := range metadataLabels {
			if strings.HasPrefix(text, label) {
				return
			}
		}
		markup, err := s.Html()
		if err != nil {
			return
		}
		kept = append(kept, paragraph{markup: strings.TrimSpace(markup), text: text})
	})
	return kept
}

func collectImages(doc *goquery.Document) []string {
	var images []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			images = append(images, src)
		}
	})
	return images
}
