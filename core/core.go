// Package core has the entry points that tie parsing, classification,
// aggregation and output together.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/svnstat/core/classify"
	"github.com/huangsam/svnstat/internal/contract"
	"github.com/huangsam/svnstat/internal/outwriter"
)

// ExecuteReport parses the log export, classifies every revision inside the
// reporting window and writes one CSV file per month to cfg.OutputDir.
// It serves as the main entry point for the 'report' mode.
func ExecuteReport(ctx context.Context, cfg *contract.Config, client contract.SVNClient) error {
	start := time.Now()
	records, dropped, err := loadCommits(cfg)
	if err != nil {
		return err
	}
	if dropped > 0 {
		contract.LogWarn(fmt.Sprintf("dropped %d malformed log blocks", dropped), nil)
	}
	contract.LogInfo("Classifying %d commits from %s with %d workers", len(records), cfg.LogPath, cfg.Workers)

	summaries, err := runReport(ctx, cfg, client, records, start)
	if len(summaries) == 0 && err == nil {
		contract.LogWarn("no commits fell inside the reporting window", nil)
		return nil
	}
	if cfg.Summary && len(summaries) > 0 {
		if werr := outwriter.NewOutWriter(cfg).WriteSummary(os.Stdout, summaries, time.Since(start)); werr != nil {
			err = errors.Join(err, werr)
		}
	}
	return err
}

// ExecuteClassify classifies a single revision and prints its metrics.
// It serves as the main entry point for the 'classify' mode.
func ExecuteClassify(ctx context.Context, cfg *contract.Config, client contract.SVNClient, revision int) error {
	if revision <= 0 {
		return fmt.Errorf("revision must be positive (received %d)", revision)
	}
	metrics, sectors, err := classify.NewClassifier(cfg).FetchAndClassify(ctx, client, cfg.RepoPath, revision)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter(cfg).WriteRevision(os.Stdout, revision, metrics, sectors)
}

// ExecuteCommits prints the commit records parsed from the log export.
// It serves as the main entry point for the 'commits' mode.
func ExecuteCommits(_ context.Context, cfg *contract.Config) error {
	records, dropped, err := loadCommits(cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter(cfg).WriteCommits(os.Stdout, records, dropped)
}
