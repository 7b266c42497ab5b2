package schema

import "strconv"

// AuthorTally accumulates one author's activity within one month.
type AuthorTally struct {
	Author  string `json:"author"`
	Commits int    `json:"commits"`
	RevisionMetrics
}

// Record renders the tally as CSV fields in MonthColumns order.
func (a *AuthorTally) Record() []string {
	return []string{
		a.Author,
		strconv.Itoa(a.Commits),
		strconv.Itoa(a.LinesAdded),
		strconv.Itoa(a.LinesRemoved),
		strconv.Itoa(a.BugsMentioned),
		strconv.Itoa(a.FilesAdded),
		strconv.Itoa(a.FilesRemoved),
		strconv.Itoa(a.BinariesChanged),
		strconv.Itoa(a.CopiedAdditions),
		strconv.Itoa(a.GeneratedChanges),
		strconv.Itoa(a.FrameworkChanges),
	}
}

// MonthTable holds the per-author tallies of one month in insertion order.
type MonthTable struct {
	Month   MonthKey
	order   []string
	tallies map[string]*AuthorTally
}

// NewMonthTable creates an empty table for month.
func NewMonthTable(month MonthKey) *MonthTable {
	return &MonthTable{
		Month:   month,
		tallies: make(map[string]*AuthorTally),
	}
}

// Tally returns the tally for author, creating it on first use.
func (t *MonthTable) Tally(author string) *AuthorTally {
	if tally, ok := t.tallies[author]; ok {
		return tally
	}
	tally := &AuthorTally{Author: author}
	t.tallies[author] = tally
	t.order = append(t.order, author)
	return tally
}

// Lookup returns the tally for author without creating it.
func (t *MonthTable) Lookup(author string) (*AuthorTally, bool) {
	tally, ok := t.tallies[author]
	return tally, ok
}

// Rows returns the tallies in author-insertion order.
func (t *MonthTable) Rows() []*AuthorTally {
	rows := make([]*AuthorTally, 0, len(t.order))
	for _, author := range t.order {
		rows = append(rows, t.tallies[author])
	}
	return rows
}

// Len returns the number of authors in the table.
func (t *MonthTable) Len() int {
	return len(t.order)
}

// Summary totals the table into a single MonthSummary.
func (t *MonthTable) Summary() MonthSummary {
	s := MonthSummary{Month: t.Month, Authors: len(t.order)}
	for _, row := range t.Rows() {
		s.Commits += row.Commits
		s.Add(row.RevisionMetrics)
	}
	return s
}

// MonthSummary is the per-month roll-up printed after a run.
type MonthSummary struct {
	Month   MonthKey `json:"month"`
	Authors int      `json:"authors"`
	Commits int      `json:"commits"`
	File    string   `json:"file"`
	Err     error    `json:"-"`
	RevisionMetrics
}
