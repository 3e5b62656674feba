// Package app wires the pipeline stages into one harvest run.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/florathai/harvester/internal/clock/system"
	"github.com/florathai/harvester/internal/config"
	"github.com/florathai/harvester/internal/dataset"
	"github.com/florathai/harvester/internal/discover"
	"github.com/florathai/harvester/internal/extract"
	"github.com/florathai/harvester/internal/fetch"
	"github.com/florathai/harvester/internal/harvest"
	"github.com/florathai/harvester/internal/policy"
	"github.com/florathai/harvester/internal/progress"
	"github.com/florathai/harvester/internal/schedule"
)

// Run executes one harvest end to end: policy load, link discovery,
// scheduled extraction, dataset build and write. It returns an error only
// for the fatal conditions; per-link failures are absorbed by the scheduler.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	start := time.Now()

	fetcher, err := fetch.New(fetch.Config{
		UserAgent: cfg.Site.UserAgent,
		Timeout:   cfg.Timeout(),
	}, logger)
	if err != nil {
		return fmt.Errorf("init fetcher: %w", err)
	}

	// A crawler must not operate without having confirmed it may.
	gate, err := policy.Load(ctx, nil, cfg.Site.BaseURL, cfg.Site.UserAgent, logger)
	if err != nil {
		return fmt.Errorf("load robots policy: %w", err)
	}

	indexURL := cfg.IndexURL()
	if !gate.Allowed(indexURL) {
		return fmt.Errorf("index page %s is denied by the robots policy", indexURL)
	}

	indexPage, err := fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return fmt.Errorf("fetch index page: %w", err)
	}

	discoverer, err := discover.New(cfg.Site.BaseURL, cfg.Site.ContentPattern, logger)
	if err != nil {
		return fmt.Errorf("init discoverer: %w", err)
	}
	links, err := discoverer.Links(indexPage.Body, harvest.NewLetterSet(cfg.Harvest.Letters))
	if err != nil {
		return fmt.Errorf("discover links: %w", err)
	}
	if len(links) == 0 {
		logger.Info("no links matched the requested letters; nothing to do",
			zap.Strings("letters", cfg.Harvest.Letters),
		)
		return nil
	}

	extractor, err := extract.New(cfg.Site.BaseURL, logger)
	if err != nil {
		return fmt.Errorf("init extractor: %w", err)
	}

	scheduler := schedule.New(
		gate,
		fetcher,
		extractor,
		progress.NewLogReporter(logger),
		schedule.Config{Workers: cfg.Harvest.Concurrency, Delay: cfg.Delay()},
		logger,
	)
	records, attempted := scheduler.Run(ctx, links)

	builder := dataset.NewBuilder(system.New(), cfg.Site.BaseURL, cfg.Site.Publisher)
	corpus, taxa := builder.Build(records, cfg.Harvest.Letters)

	sink := dataset.NewFileSink(logger)
	if err := sink.Write(cfg.Output.CorpusPath, corpus); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}
	if err := sink.Write(cfg.Output.TaxaPath, taxa); err != nil {
		return fmt.Errorf("write taxa: %w", err)
	}

	logger.Info("harvest complete",
		zap.Int("discovered", len(links)),
		zap.Int("attempted", attempted),
		zap.Int("extracted", len(records)),
		zap.Int("taxa", len(taxa.Taxa)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
