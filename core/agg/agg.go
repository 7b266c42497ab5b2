// Package agg folds classified revisions into per-author monthly tables.
package agg

import (
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/svnstat/internal/contract"
	"github.com/huangsam/svnstat/schema"
)

// FlushFunc persists a completed month. It is called exactly once per month.
type FlushFunc func(table *schema.MonthTable) error

// MonthlyAggregator consumes (commit, metrics) pairs in log order, which is
// newest first. Records are bucketed by the month of the commit; whenever the
// month changes, the previous month's table is handed to the flush function.
//
// The aggregator is not safe for concurrent use. Feeding it in any order other
// than the export order breaks the month boundaries.
type MonthlyAggregator struct {
	cfg   *contract.Config
	flush FlushFunc

	cutoff    int
	hasCutoff bool

	active  *schema.MonthTable
	flushed map[schema.MonthKey]struct{}
	order   []schema.MonthKey
	stopped bool
	closed  bool
	errs    []error

	// Warn reports dropped records. Defaults to contract.LogWarn.
	Warn func(msg string, err error)
}

// NewMonthlyAggregator creates an aggregator whose look-back window is
// measured from now. A single-month filter in cfg disables the window.
func NewMonthlyAggregator(cfg *contract.Config, now time.Time, flush FlushFunc) *MonthlyAggregator {
	a := &MonthlyAggregator{
		cfg:     cfg,
		flush:   flush,
		flushed: make(map[schema.MonthKey]struct{}),
		Warn:    contract.LogWarn,
	}
	if cfg.Month == "" && cfg.LookbackMonths > 0 {
		a.cutoff = schema.MonthIndex(now) - cfg.LookbackMonths
		a.hasCutoff = true
	}
	return a
}

// Admit decides what happens to commit without changing any state.
// Stop means no later record of the log can be accepted.
func (a *MonthlyAggregator) Admit(commit schema.CommitRecord) schema.Decision {
	if a.stopped || a.closed {
		return schema.Stop
	}

	month := commit.Month()
	if a.cfg.Month != "" {
		if month != a.cfg.Month {
			if month.Index() < a.cfg.Month.Index() {
				return schema.Stop
			}
			return schema.Skip
		}
	} else if a.hasCutoff && month.Index() < a.cutoff {
		return schema.Stop
	}

	if a.cfg.IsExcludedAuthor(commit.Author) {
		return schema.Skip
	}
	if _, done := a.flushed[month]; done {
		return schema.Skip
	}
	return schema.Accept
}

// Add folds one classified commit into its month. It returns false once the
// stream has reached the look-back cutoff and no further input is wanted.
func (a *MonthlyAggregator) Add(commit schema.CommitRecord, metrics schema.RevisionMetrics) bool {
	switch a.Admit(commit) {
	case schema.Stop:
		a.stopped = true
		return false
	case schema.Skip:
		if _, done := a.flushed[commit.Month()]; done && a.Warn != nil && !a.cfg.IsExcludedAuthor(commit.Author) {
			a.Warn(fmt.Sprintf("dropping r%d: month %s was already written", commit.Revision, commit.Month()), nil)
		}
		return true
	}

	month := commit.Month()
	if a.active == nil || a.active.Month != month {
		a.flushActive()
		a.active = schema.NewMonthTable(month)
	}

	tally := a.active.Tally(commit.Author)
	tally.Commits++
	tally.Add(metrics)
	return true
}

// Close flushes the open month, if any. Calling Close again has no effect.
// Flush failures of every month are returned joined.
func (a *MonthlyAggregator) Close() error {
	if !a.closed {
		a.closed = true
		a.flushActive()
	}
	return errors.Join(a.errs...)
}

// Flushed returns the months handed to the flush function, in flush order.
func (a *MonthlyAggregator) Flushed() []schema.MonthKey {
	return append([]schema.MonthKey(nil), a.order...)
}

// flushActive hands the active table to the flush function and clears it.
func (a *MonthlyAggregator) flushActive() {
	if a.active == nil {
		return
	}
	table := a.active
	a.active = nil
	a.flushed[table.Month] = struct{}{}
	a.order = append(a.order, table.Month)

	if a.flush == nil {
		return
	}
	if err := a.flush(table); err != nil {
		a.errs = append(a.errs, fmt.Errorf("month %s: %w", table.Month, err))
	}
}
