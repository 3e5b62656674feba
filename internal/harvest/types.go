// Package harvest defines core types shared across the pipeline stages.
package harvest

// NoValue is the sentinel emitted when a labeled field is absent from a page
// or carries only placeholder dashes. The downstream loader treats it as null.
const NoValue = "no value"

// CandidateLink pairs an absolute article URL with the visible anchor text it
// was discovered under on the index page.
type CandidateLink struct {
	URL    string
	Anchor string
}

// Page is the raw result of fetching one URL.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Body       []byte
}

// ArticleRecord is the structured result extracted from one article page.
// Title is required; a page that yields no title produces no record at all.
type ArticleRecord struct {
	Slug           string
	Title          string
	TitleEN        string
	Summary        string
	Content        string
	SourceURL      string
	Authors        []string
	Images         []string
	MainName       string
	ScientificName string
}

// HasScientificName reports whether the record qualifies for the taxa set.
func (r ArticleRecord) HasScientificName() bool {
	return r.ScientificName != "" && r.ScientificName != NoValue
}
