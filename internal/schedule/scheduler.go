// Package schedule drives the bounded worker pool over discovered links.
package schedule

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/florathai/harvester/internal/harvest"
	"github.com/florathai/harvester/internal/progress"
)

// Config controls pool size and per-lane pacing.
type Config struct {
	Workers int
	Delay   time.Duration
}

// Scheduler processes candidate links with at most Workers pages in flight.
// Each worker lane sleeps for Delay after every attempt, so the aggregate
// request rate is roughly Workers requests per Delay interval.
type Scheduler struct {
	gate      harvest.Gate
	fetcher   harvest.Fetcher
	extractor harvest.Extractor
	reporter  progress.Reporter
	cfg       Config
	logger    *zap.Logger
}

// New constructs a Scheduler.
func New(
	gate harvest.Gate,
	fetcher harvest.Fetcher,
	extractor harvest.Extractor,
	reporter progress.Reporter,
	cfg Config,
	logger *zap.Logger,
) *Scheduler {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if reporter == nil {
		reporter = progress.NopReporter{}
	}
	return &Scheduler{
		gate:      gate,
		fetcher:   fetcher,
		extractor: extractor,
		reporter:  reporter,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run fans links out to the worker pool and returns every successfully
// extracted record plus the number of attempted links. Per-link failures are
// logged and skipped; they never abort the run. Record ordering across
// workers is unspecified.
func (s *Scheduler) Run(ctx context.Context, links []harvest.CandidateLink) ([]harvest.ArticleRecord, int) {
	total := len(links)
	if total == 0 {
		return nil, 0
	}

	jobs := make(chan harvest.CandidateLink, total)
	for _, link := range links {
		jobs <- link
	}
	close(jobs)

	// Results flow through a channel to a single-owner collector goroutine,
	// so no lock guards the record slice.
	results := make(chan harvest.ArticleRecord, total)
	collected := make(chan []harvest.ArticleRecord, 1)
	go func() {
		var records []harvest.ArticleRecord
		for record := range results {
			records = append(records, record)
		}
		collected <- records
	}()

	var attempted atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range jobs {
				outcome := s.process(ctx, link, results)
				done := int(attempted.Add(1))
				s.reporter.Attempt(done, total, link.URL, outcome)
				pause(ctx, s.cfg.Delay)
			}
		}()
	}
	wg.Wait()
	close(results)

	return <-collected, int(attempted.Load())
}

func (s *Scheduler) process(
	ctx context.Context,
	link harvest.CandidateLink,
	results chan<- harvest.ArticleRecord,
) progress.Outcome {
	if !s.gate.Allowed(link.URL) {
		s.logger.Warn("link denied by robots policy", zap.String("url", link.URL))
		return progress.OutcomeDenied
	}

	page, err := s.fetcher.Fetch(ctx, link.URL)
	if err != nil {
		s.logger.Warn("fetch failed", zap.String("url", link.URL), zap.Error(err))
		return progress.OutcomeFetchFailed
	}

	record, err := s.extract(page.Body, link.URL)
	if err != nil {
		s.logger.Warn("no record extracted", zap.String("url", link.URL), zap.Error(err))
		return progress.OutcomeNoRecord
	}

	results <- record
	return progress.OutcomeExtracted
}

// extract shields the run from panics inside the heuristic parser; a broken
// page is a per-link failure like any other.
func (s *Scheduler) extract(body []byte, sourceURL string) (record harvest.ArticleRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("extractor panicked")
			s.logger.Error("extractor panic", zap.String("url", sourceURL), zap.Any("panic", r))
		}
	}()
	return s.extractor.Extract(body, sourceURL)
}

// pause sleeps for the configured inter-request delay, honoring ctx.
func pause(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
