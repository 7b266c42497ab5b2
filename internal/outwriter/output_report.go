package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/svnstat/internal/contract"
	"github.com/huangsam/svnstat/schema"
)

// commentWidth caps the comment column of the commits table.
const commentWidth = 48

func comma(v int) string {
	return humanize.Comma(int64(v))
}

// writeSummaryTable prints one row per flushed month.
func writeSummaryTable(w io.Writer, summaries []schema.MonthSummary, cfg *contract.Config, duration time.Duration) error {
	headers := []string{"Month", "Authors", "Commits", "Lines +", "Lines -", "Copied", "Bugs", "Status"}

	var (
		data    [][]string
		total   schema.MonthSummary
		failed  int
		pathMax = GetMaxTablePathWidth(cfg)
	)
	for _, s := range summaries {
		status := contract.SuccessColor.Sprint(contract.TruncatePath(s.File, pathMax))
		if s.Err != nil {
			status = contract.FatalColor.Sprint("write failed")
			failed++
		}
		data = append(data, []string{
			string(s.Month),
			comma(s.Authors),
			comma(s.Commits),
			comma(s.LinesAdded),
			comma(s.LinesRemoved),
			comma(s.CopiedAdditions),
			comma(s.BugsMentioned),
			status,
		})
		total.Commits += s.Commits
		total.Add(s.RevisionMetrics)
	}

	if err := writeTable(w, headers, data); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Wrote %d months (total commits: %s, lines added: %s, lines removed: %s, failed: %d)\n",
		len(summaries)-failed, comma(total.Commits), comma(total.LinesAdded), comma(total.LinesRemoved), failed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Report completed in %v with %d workers.\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeSectorTable prints the classification of every file sector of a revision.
func writeSectorTable(w io.Writer, sectors []schema.FileSector, pathMax int) error {
	headers := []string{"Path", "Kind", "Change", "Added", "Removed", "Bugs"}

	data := make([][]string, 0, len(sectors))
	for _, s := range sectors {
		data = append(data, []string{
			contract.TruncatePath(s.Path, pathMax),
			sectorKind(s),
			sectorChange(s),
			comma(s.AddedLines),
			comma(s.RemovedLines),
			strconv.Itoa(s.BugRefs),
		})
	}
	return writeTable(w, headers, data)
}

// writeMetricsTable prints the counters of one revision in CSV column order.
func writeMetricsTable(w io.Writer, revision int, m schema.RevisionMetrics) error {
	headers := []string{"Metric", fmt.Sprintf("r%d", revision)}
	data := [][]string{
		{string(schema.ColLinesAdded), comma(m.LinesAdded)},
		{string(schema.ColLinesRemoved), comma(m.LinesRemoved)},
		{string(schema.ColBugsMentioned), comma(m.BugsMentioned)},
		{string(schema.ColFilesAdded), comma(m.FilesAdded)},
		{string(schema.ColFilesRemoved), comma(m.FilesRemoved)},
		{string(schema.ColBinariesChanged), comma(m.BinariesChanged)},
		{string(schema.ColCopiedAdditions), comma(m.CopiedAdditions)},
		{string(schema.ColGeneratedChanges), comma(m.GeneratedChanges)},
		{string(schema.ColFrameworkChanges), comma(m.FrameworkChanges)},
	}
	return writeTable(w, headers, data)
}

// writeCommitTable prints parsed log records in export order.
func writeCommitTable(w io.Writer, records []schema.CommitRecord, dropped int) error {
	headers := []string{"Rev", "Author", "Date", "Month", "Lines", "Comment"}

	data := make([][]string, 0, len(records))
	for _, r := range records {
		data = append(data, []string{
			"r" + strconv.Itoa(r.Revision),
			r.Author,
			r.Timestamp.Format(time.DateTime),
			string(r.Month()),
			strconv.Itoa(r.LineCount),
			firstLine(r.Comment, commentWidth),
		})
	}

	if err := writeTable(w, headers, data); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Parsed %s commits (dropped %d malformed blocks)\n", comma(len(records)), dropped); err != nil {
		return err
	}
	return nil
}

// sectorKind names the classification that governs how a sector is counted.
func sectorKind(s schema.FileSector) string {
	switch {
	case s.IsFramework:
		return s.FrameworkName
	case s.IsBinary:
		return "binary"
	case s.IsGenerated:
		return "generated"
	case s.IsSource:
		return "source"
	default:
		return "other"
	}
}

// sectorChange returns A, D or M like `svn status`.
func sectorChange(s schema.FileSector) string {
	switch {
	case s.FileAdded:
		return "A"
	case s.FileRemoved:
		return "D"
	default:
		return "M"
	}
}

// firstLine returns the first line of text, cut to limit runes.
func firstLine(text string, limit int) string {
	line, _, _ := strings.Cut(text, "\n")
	runes := []rune(line)
	if len(runes) > limit && limit > 3 {
		return string(runes[:limit-3]) + "..."
	}
	return line
}
