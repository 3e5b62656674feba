package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/florathai/harvester/internal/harvest"
	"github.com/florathai/harvester/internal/progress"
)

type stubGate struct {
	denied map[string]bool
}

func (g stubGate) Allowed(rawURL string) bool { return !g.denied[rawURL] }

type stubFetcher struct {
	errs        map[string]error
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *stubFetcher) Fetch(_ context.Context, rawURL string) (harvest.Page, error) {
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		maxSeen := f.maxInFlight.Load()
		if current <= maxSeen || f.maxInFlight.CompareAndSwap(maxSeen, current) {
			break
		}
	}
	if err := f.errs[rawURL]; err != nil {
		return harvest.Page{}, err
	}
	return harvest.Page{URL: rawURL, StatusCode: 200, Body: []byte(rawURL)}, nil
}

type stubExtractor struct {
	fail map[string]bool
}

func (e stubExtractor) Extract(body []byte, sourceURL string) (harvest.ArticleRecord, error) {
	if e.fail[sourceURL] {
		return harvest.ArticleRecord{}, errors.New("no title")
	}
	return harvest.ArticleRecord{Title: string(body), SourceURL: sourceURL}, nil
}

func candidateLinks(n int) []harvest.CandidateLink {
	links := make([]harvest.CandidateLink, 0, n)
	for i := 0; i < n; i++ {
		links = append(links, harvest.CandidateLink{URL: fmt.Sprintf("https://example.or.th/word/%d", i)})
	}
	return links
}

func TestRunCollectsAllRecords(t *testing.T) {
	fetcher := &stubFetcher{}
	s := New(stubGate{}, fetcher, stubExtractor{}, nil, Config{Workers: 3}, zap.NewNop())

	links := candidateLinks(10)
	records, attempted := s.Run(context.Background(), links)

	require.Equal(t, 10, attempted)
	require.Len(t, records, 10)
	seen := map[string]bool{}
	for _, rec := range records {
		require.False(t, seen[rec.SourceURL], "duplicate record for %s", rec.SourceURL)
		seen[rec.SourceURL] = true
	}
	require.LessOrEqual(t, fetcher.maxInFlight.Load(), int32(3))
}

func TestRunEnforcesPerLaneDelay(t *testing.T) {
	s := New(stubGate{}, &stubFetcher{}, stubExtractor{}, nil,
		Config{Workers: 2, Delay: 50 * time.Millisecond}, zap.NewNop())

	start := time.Now()
	records, attempted := s.Run(context.Background(), candidateLinks(4))
	elapsed := time.Since(start)

	require.Equal(t, 4, attempted)
	require.Len(t, records, 4)
	// Two links per lane means two sequential delay waits per lane.
	require.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
}

func TestRunSkipsFailuresWithoutAborting(t *testing.T) {
	links := candidateLinks(5)
	gate := stubGate{denied: map[string]bool{links[0].URL: true}}
	fetcher := &stubFetcher{errs: map[string]error{links[1].URL: errors.New("boom")}}
	extractor := stubExtractor{fail: map[string]bool{links[2].URL: true}}

	s := New(gate, fetcher, extractor, nil, Config{Workers: 2}, zap.NewNop())
	records, attempted := s.Run(context.Background(), links)

	require.Equal(t, 5, attempted)
	require.Len(t, records, 2)
	for _, rec := range records {
		require.NotEqual(t, links[0].URL, rec.SourceURL)
		require.NotEqual(t, links[1].URL, rec.SourceURL)
		require.NotEqual(t, links[2].URL, rec.SourceURL)
	}
}

type panickyExtractor struct{}

func (panickyExtractor) Extract([]byte, string) (harvest.ArticleRecord, error) {
	panic("malformed page")
}

func TestRunSurvivesExtractorPanic(t *testing.T) {
	s := New(stubGate{}, &stubFetcher{}, panickyExtractor{}, nil, Config{Workers: 2}, zap.NewNop())
	records, attempted := s.Run(context.Background(), candidateLinks(3))
	require.Equal(t, 3, attempted)
	require.Empty(t, records)
}

type recordingReporter struct {
	mu     sync.Mutex
	dones  []int
	totals []int
}

func (r *recordingReporter) Attempt(done, total int, _ string, _ progress.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dones = append(r.dones, done)
	r.totals = append(r.totals, total)
}

func TestRunReportsEveryAttempt(t *testing.T) {
	reporter := &recordingReporter{}
	s := New(stubGate{}, &stubFetcher{}, stubExtractor{}, reporter, Config{Workers: 2}, zap.NewNop())
	s.Run(context.Background(), candidateLinks(4))

	require.Len(t, reporter.dones, 4)
	sort.Ints(reporter.dones)
	require.Equal(t, []int{1, 2, 3, 4}, reporter.dones)
	for _, total := range reporter.totals {
		require.Equal(t, 4, total)
	}
}

func TestRunEmptyLinkList(t *testing.T) {
	s := New(stubGate{}, &stubFetcher{}, stubExtractor{}, nil, Config{Workers: 2}, zap.NewNop())
	records, attempted := s.Run(context.Background(), nil)
	require.Zero(t, attempted)
	require.Empty(t, records)
}
