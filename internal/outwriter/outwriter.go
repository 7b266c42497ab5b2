// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/huangsam/svnstat/internal/contract"
	"github.com/huangsam/svnstat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the monthly CSV files and the console tables.
type OutWriter struct {
	cfg *contract.Config
}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter(cfg *contract.Config) *OutWriter {
	return &OutWriter{cfg: cfg}
}

// MonthPath returns the CSV path for month inside the output directory.
func (ow *OutWriter) MonthPath(month schema.MonthKey) string {
	return filepath.Join(ow.cfg.OutputDir, month.FileName())
}

// WriteMonth persists one month's table as <output-dir>/<YYYY-MM>.csv.
// Failures wrap contract.ErrOutputWrite and concern this month only.
func (ow *OutWriter) WriteMonth(table *schema.MonthTable) (string, error) {
	path := ow.MonthPath(table.Month)
	err := writeWithFile(path, ow.cfg.Encoding, func(w io.Writer) error {
		return WriteMonthCSV(w, table)
	}, fmt.Sprintf("Wrote %d authors for %s", table.Len(), table.Month))
	if err != nil {
		return path, fmt.Errorf("%w: %s: %w", contract.ErrOutputWrite, path, err)
	}
	return path, nil
}

// WriteSummary prints the per-month roll-up of a report run.
func (ow *OutWriter) WriteSummary(w io.Writer, summaries []schema.MonthSummary, duration time.Duration) error {
	return writeSummaryTable(w, summaries, ow.cfg, duration)
}

// WriteRevision prints the metrics of one revision and, if enabled, its sectors.
func (ow *OutWriter) WriteRevision(w io.Writer, revision int, metrics schema.RevisionMetrics, sectors []schema.FileSector) error {
	if ow.cfg.Sectors {
		if err := writeSectorTable(w, sectors, GetMaxTablePathWidth(ow.cfg)); err != nil {
			return err
		}
	}
	return writeMetricsTable(w, revision, metrics)
}

// WriteCommits prints parsed log records.
func (ow *OutWriter) WriteCommits(w io.Writer, records []schema.CommitRecord, dropped int) error {
	return writeCommitTable(w, records, dropped)
}

// newTable creates a table writer with the shared minimal layout.
func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}
