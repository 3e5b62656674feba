package harvest

import (
	"context"
	"time"
)

// Fetcher retrieves one page over HTTP.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// Gate answers whether the site's crawling policy permits fetching a URL.
type Gate interface {
	Allowed(rawURL string) bool
}

// Extractor turns one fetched page into an ArticleRecord.
type Extractor interface {
	Extract(body []byte, sourceURL string) (ArticleRecord, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
