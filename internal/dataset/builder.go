package dataset

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/florathai/harvester/internal/harvest"
)

// Fixed values stamped into every emitted dataset.
const (
	languageThai = "th"
	rankSpecies  = "species"
	// statusAccepted is emitted for every taxon; the source pages carry no
	// nomenclatural status of their own.
	statusAccepted = "accepted"
)

// Builder aggregates extracted records into the two output containers.
// Sorting uses Thai collation so the order index is deterministic and
// locale-correct.
type Builder struct {
	collator  *collate.Collator
	clock     harvest.Clock
	source    string
	publisher string
}

// NewBuilder constructs a Builder stamping datasets with the given source
// site and publisher.
func NewBuilder(clock harvest.Clock, source, publisher string) *Builder {
	return &Builder{
		collator:  collate.New(language.Thai),
		clock:     clock,
		source:    source,
		publisher: publisher,
	}
}

// Build sorts the records by Thai title, assigns 1-based order indexes, and
// produces the corpus and taxa containers. Only records carrying a real
// scientific name contribute a taxon; the taxa container is produced even
// when that leaves it empty.
func (b *Builder) Build(records []harvest.ArticleRecord, letters []string) (Corpus, TaxaSet) {
	sorted := append([]harvest.ArticleRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return b.collator.CompareString(sorted[i].Title, sorted[j].Title) < 0
	})

	joined := strings.Join(letters, " ")
	date := b.clock.Now().UTC().Format(time.DateOnly)

	corpus := Corpus{
		Slug:      harvest.Slugify(joined),
		Title:     joined,
		Date:      date,
		Letters:   letters,
		Source:    b.source,
		Publisher: b.publisher,
		Language:  languageThai,
		Tags:      append([]string(nil), letters...),
		Articles:  make([]Article, 0, len(sorted)),
	}
	taxa := TaxaSet{
		Slug:    harvest.Slugify(joined),
		Date:    date,
		Letters: letters,
		Taxa:    make([]Taxon, 0),
	}

	for i, rec := range sorted {
		corpus.Articles = append(corpus.Articles, Article{
			Order:          i + 1,
			Slug:           rec.Slug,
			Title:          rec.Title,
			TitleEN:        rec.TitleEN,
			Summary:        rec.Summary,
			Content:        rec.Content,
			SourceURL:      rec.SourceURL,
			Authors:        emptyIfNil(rec.Authors),
			Images:         emptyIfNil(rec.Images),
			MainName:       rec.MainName,
			ScientificName: rec.ScientificName,
		})

		if !rec.HasScientificName() {
			continue
		}
		taxa.Taxa = append(taxa.Taxa, Taxon{
			Rank:           rankSpecies,
			ScientificName: rec.ScientificName,
			ThaiName:       rec.Title,
			Status:         statusAccepted,
			Parent:         "",
			Reference:      fmt.Sprintf("%s. %s", rec.Title, rec.SourceURL),
		})
	}

	return corpus, taxa
}

// emptyIfNil keeps list fields serializing as [] rather than null.
func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
