// Package schema has models and constants shared by all parts of svnstat.
package schema

import (
	"fmt"
	"time"
)

// CommitRecord is one entry of the `svn log` export.
type CommitRecord struct {
	Revision  int       // Revision number, order preserved as exported
	Author    string    // Committer name as printed by svn
	Timestamp time.Time // Commit time in the committer's own offset
	LineCount int       // Declared comment line count (informational only)
	Comment   string    // Commit message with empty lines removed
}

// Month returns the calendar month the commit belongs to.
func (c CommitRecord) Month() MonthKey {
	return MonthOf(c.Timestamp)
}

// FileSector is the part of a revision diff that touches a single file.
type FileSector struct {
	Header        string   // "Index: <path>" line, verbatim
	Path          string   // File path inferred from the header or the --- marker
	IsSource      bool     // Extension is in the source set
	IsBinary      bool     // Extension is in the binary set
	IsGenerated   bool     // Path lies under a generated location
	IsFramework   bool     // Path lies inside a framework or bundle
	FrameworkName string   // e.g. "Foo.framework" when IsFramework is set
	FileAdded     bool     // "--- <path> (nonexistent)" marker present
	FileRemoved   bool     // "+++ <path> (nonexistent)" marker present
	AddedLines    int      // Lines starting with a single '+'
	RemovedLines  int      // Lines starting with a single '-'
	BugRefs       int      // Occurrences of the bug tag
	Body          []string // Raw sector lines including header and separator
}

// CountsLines reports whether the sector may contribute to line totals.
func (s FileSector) CountsLines() bool {
	return s.IsSource && !s.IsGenerated && !s.IsBinary && !s.IsFramework
}

// RevisionMetrics holds the counters computed for one revision.
type RevisionMetrics struct {
	FilesAdded       int `json:"files_added"`
	FilesRemoved     int `json:"files_removed"`
	LinesAdded       int `json:"lines_added"`
	LinesRemoved     int `json:"lines_removed"`
	BugsMentioned    int `json:"bugs_mentioned"`
	BinariesChanged  int `json:"binaries_changed"`
	GeneratedChanges int `json:"generated_changes"`
	FrameworkChanges int `json:"framework_changes"`
	CopiedAdditions  int `json:"copied_additions"`
}

// Add accumulates other into m.
func (m *RevisionMetrics) Add(other RevisionMetrics) {
	m.FilesAdded += other.FilesAdded
	m.FilesRemoved += other.FilesRemoved
	m.LinesAdded += other.LinesAdded
	m.LinesRemoved += other.LinesRemoved
	m.BugsMentioned += other.BugsMentioned
	m.BinariesChanged += other.BinariesChanged
	m.GeneratedChanges += other.GeneratedChanges
	m.FrameworkChanges += other.FrameworkChanges
	m.CopiedAdditions += other.CopiedAdditions
}

// IsZero reports whether no counter was incremented.
func (m RevisionMetrics) IsZero() bool {
	return m == RevisionMetrics{}
}

// MonthKey identifies a calendar month as "YYYY-MM".
type MonthKey string

// MonthOf returns the month key of t in t's own location.
func MonthOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// ParseMonthKey validates s as a "YYYY-MM" month key.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return "", fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return MonthOf(t), nil
}

// Index returns a monotonically increasing month number (year*12 + month-1).
// It returns -1 for a malformed key.
func (k MonthKey) Index() int {
	t, err := time.Parse("2006-01", string(k))
	if err != nil {
		return -1
	}
	return MonthIndex(t)
}

// MonthIndex returns the month number of t in t's own location.
func MonthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// FileName returns the CSV file name for the month.
func (k MonthKey) FileName() string {
	return string(k) + CSVExtension
}
