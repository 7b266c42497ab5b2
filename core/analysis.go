package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/huangsam/svnstat/core/agg"
	"github.com/huangsam/svnstat/core/classify"
	"github.com/huangsam/svnstat/core/svnlog"
	"github.com/huangsam/svnstat/internal/contract"
	"github.com/huangsam/svnstat/internal/outwriter"
	"github.com/huangsam/svnstat/schema"
	"github.com/panjf2000/ants/v2"
)

// loadCommits reads the log export from cfg.LogPath and parses it.
// It returns the records in export order and the number of dropped blocks.
func loadCommits(cfg *contract.Config) ([]schema.CommitRecord, int, error) {
	data, err := os.ReadFile(cfg.LogPath)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot read log file: %w", err)
	}
	records, dropped := svnlog.Parse(contract.DecodeText(data, cfg.Encoding))
	return records, dropped, nil
}

// runReport classifies the diff of every admitted commit and folds the results
// into monthly tables that are written as soon as their month closes.
//
// Diffs are fetched in windows of 2*cfg.Workers admitted commits through a
// bounded pool. Each window is folded into the aggregator in log order before
// the next one starts, so the aggregator only ever sees ordered input.
func runReport(ctx context.Context, cfg *contract.Config, client contract.SVNClient, records []schema.CommitRecord, now time.Time) ([]schema.MonthSummary, error) {
	ow := outwriter.NewOutWriter(cfg)
	var summaries []schema.MonthSummary
	aggregator := agg.NewMonthlyAggregator(cfg, now, func(table *schema.MonthTable) error {
		path, err := ow.WriteMonth(table)
		summary := table.Summary()
		summary.File = path
		summary.Err = err
		summaries = append(summaries, summary)
		return err
	})

	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	classifier := classify.NewClassifier(cfg)
	windowSize := 2 * cfg.Workers
	window := make([]schema.CommitRecord, 0, windowSize)

	// foldWindow fetches the pending window and hands it to the aggregator.
	// It reports false once no further input is wanted.
	foldWindow := func() bool {
		if len(window) == 0 {
			return true
		}
		results := classifyWindow(ctx, pool, classifier, client, cfg.RepoPath, window)
		if ctx.Err() != nil {
			return false
		}
		for i, rec := range window {
			if !aggregator.Add(rec, results[i]) {
				return false
			}
		}
		window = window[:0]
		return true
	}

	stopped := false
	for _, rec := range records {
		if ctx.Err() != nil {
			stopped = true
			break
		}
		decision := aggregator.Admit(rec)
		if decision == schema.Stop {
			break
		}
		if decision == schema.Skip {
			continue
		}
		window = append(window, rec)
		if len(window) == windowSize && !foldWindow() {
			stopped = true
			break
		}
	}
	if !stopped {
		foldWindow()
	}

	closeErr := aggregator.Close()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return summaries, errors.Join(ctxErr, closeErr)
	}
	return summaries, closeErr
}

// classifyWindow fetches and classifies the diffs of window concurrently.
// Results are stored by index so that they line up with window.
func classifyWindow(ctx context.Context, pool *ants.Pool, classifier *classify.Classifier, client contract.SVNClient, repoPath string, window []schema.CommitRecord) []schema.RevisionMetrics {
	results := make([]schema.RevisionMetrics, len(window))
	var wg sync.WaitGroup
	for i, rec := range window {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = classifyRevision(ctx, classifier, client, repoPath, rec.Revision)
		}
		if err := pool.Submit(task); err != nil {
			// Pool closed or overloaded; do the work inline.
			task()
		}
	}
	wg.Wait()
	return results
}

// classifyRevision returns zero metrics for a revision whose diff is unavailable.
func classifyRevision(ctx context.Context, classifier *classify.Classifier, client contract.SVNClient, repoPath string, revision int) schema.RevisionMetrics {
	metrics, _, err := classifier.FetchAndClassify(ctx, client, repoPath, revision)
	if err != nil {
		if ctx.Err() == nil {
			contract.LogWarn(fmt.Sprintf("counting r%d as empty", revision), err)
		}
		return schema.RevisionMetrics{}
	}
	return metrics
}
