package schema

// Custom string types for type safety.
type (
	// Column represents a column name in the monthly CSV output.
	Column string

	// Decision represents what the aggregator does with an incoming commit.
	Decision string
)

// Separators used by the Subversion text formats.
const (
	// LogSeparator delimits commit blocks in `svn log` output (72 dashes).
	LogSeparator = "------------------------------------------------------------------------"

	// DiffSeparator follows every "Index:" line in `svn diff` output (67 equals signs).
	DiffSeparator = "==================================================================="
)

// Fixed CSV layout.
const (
	CSVDelimiter = ';'
	CSVExtension = ".csv"
)

// Columns of the monthly CSV, in output order.
const (
	ColAuthor           Column = "author"
	ColCommits          Column = "commits"
	ColLinesAdded       Column = "lines-added"
	ColLinesRemoved     Column = "lines-removed"
	ColBugsMentioned    Column = "bugs-mentioned"
	ColFilesAdded       Column = "files-added"
	ColFilesRemoved     Column = "files-removed"
	ColBinariesChanged  Column = "binaries-changed"
	ColCopiedAdditions  Column = "copied-large-additions"
	ColGeneratedChanges Column = "generated-file-changes"
	ColFrameworkChanges Column = "framework-changes"
)

// MonthColumns is the fixed header of every monthly CSV file.
var MonthColumns = []Column{
	ColAuthor,
	ColCommits,
	ColLinesAdded,
	ColLinesRemoved,
	ColBugsMentioned,
	ColFilesAdded,
	ColFilesRemoved,
	ColBinariesChanged,
	ColCopiedAdditions,
	ColGeneratedChanges,
	ColFrameworkChanges,
}

// All aggregator decisions.
const (
	Accept Decision = "accept" // fold the commit into its month
	Skip   Decision = "skip"   // ignore the commit, keep going
	Stop   Decision = "stop"   // end of the useful stream
)
