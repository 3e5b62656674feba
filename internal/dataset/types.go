// Package dataset builds and writes the two emitted datasets.
package dataset

// Corpus is the content dataset consumed by the downstream loader, which
// upserts articles by slug. Field names and nullability are part of the
// loader contract; treat any change as breaking.
type Corpus struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Letters   []string  `json:"letters"`
	Source    string    `json:"source"`
	Publisher string    `json:"publisher"`
	Language  string    `json:"language"`
	Tags      []string  `json:"tags"`
	Articles  []Article `json:"articles"`
}

// Article is the public shape of one extracted record.
type Article struct {
	Order          int      `json:"order"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	TitleEN        string   `json:"titleEn"`
	Summary        string   `json:"summary"`
	Content        string   `json:"content"`
	SourceURL      string   `json:"sourceUrl"`
	Authors        []string `json:"authors"`
	Images         []string `json:"images"`
	MainName       string   `json:"mainName"`
	ScientificName string   `json:"scientificName"`
}

// TaxaSet is the flat species-level classification dataset. The downstream
// loader upserts by scientific name.
type TaxaSet struct {
	Slug    string   `json:"slug"`
	Date    string   `json:"date"`
	Letters []string `json:"letters"`
	Taxa    []Taxon  `json:"taxa"`
}

// Taxon is one best-effort species candidate. Parent is always empty here;
// hierarchy resolution, if any, happens downstream.
type Taxon struct {
	Rank           string `json:"rank"`
	ScientificName string `json:"scientificName"`
	ThaiName       string `json:"thaiName"`
	Status         string `json:"status"`
	Parent         string `json:"parent"`
	Reference      string `json:"reference"`
}
