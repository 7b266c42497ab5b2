package svnlog

import (
	"strings"
	"testing"
	"time"

	"github.com/huangsam/svnstat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLog joins commit blocks the way `svn log` prints them.
func buildLog(blocks ...string) string {
	var b strings.Builder
	b.WriteString(schema.LogSeparator + "\n")
	for _, block := range blocks {
		b.WriteString(block)
		b.WriteString(schema.LogSeparator + "\n")
	}
	return b.String()
}

func TestParse(t *testing.T) {
	log := buildLog(
		"r120 | alice | 2024-03-05 14:02:11 +0100 (Tue, 05 Mar 2024) | 2 lines\n\nFix crash SCM-12\nsecond line\n",
		"r119 | bob | 2024-02-28 09:00:00 -0800 (Wed, 28 Feb 2024) | 1 line\n\nInitial import\n",
	)

	records, dropped := Parse(log)
	require.Len(t, records, 2)
	assert.Equal(t, 0, dropped)

	first := records[0]
	assert.Equal(t, 120, first.Revision)
	assert.Equal(t, "alice", first.Author)
	assert.Equal(t, 2, first.LineCount)
	assert.Equal(t, "Fix crash SCM-12\nsecond line", first.Comment)
	assert.Equal(t, time.Date(2024, 3, 5, 13, 2, 11, 0, time.UTC), first.Timestamp.UTC())
	assert.Equal(t, schema.MonthKey("2024-03"), first.Month())

	second := records[1]
	assert.Equal(t, 119, second.Revision)
	assert.Equal(t, "bob", second.Author)
	assert.Equal(t, 1, second.LineCount)
	assert.Equal(t, "Initial import", second.Comment)
	_, offset := second.Timestamp.Zone()
	assert.Equal(t, -8*60*60, offset, "the committer's offset is kept")
}

func TestParse_PreservesExportOrder(t *testing.T) {
	log := buildLog(
		"r5 | a | 2024-01-01 00:00:00 +0000 (Mon, 01 Jan 2024) | 1 line\n\nx\n",
		"r9 | b | 2024-01-02 00:00:00 +0000 (Tue, 02 Jan 2024) | 1 line\n\ny\n",
		"r7 | c | 2024-01-03 00:00:00 +0000 (Wed, 03 Jan 2024) | 1 line\n\nz\n",
	)

	records, _ := Parse(log)
	var revs []int
	for _, r := range records {
		revs = append(revs, r.Revision)
	}
	assert.Equal(t, []int{5, 9, 7}, revs)
}

func TestParse_DropsMalformedSectors(t *testing.T) {
	log := buildLog(
		"r10 | alice | 2024-03-05 14:02:11 +0100 (Tue, 05 Mar 2024) | 1 line\n\nok\n",
		"this is not a header\n\nstray text\n",
		"\nr11 | bob | 2024-03-05 14:02:11 +0100 (Tue, 05 Mar 2024) | 1 line\n",
		"r12 | carol | 2024-13-45 14:02:11 +0100 (???) | 1 line\n",
	)

	records, dropped := Parse(log)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Author)
	assert.Equal(t, 3, dropped)
}

func TestParse_Empty(t *testing.T) {
	records, dropped := Parse("")
	assert.Empty(t, records)
	assert.Equal(t, 0, dropped)

	records, dropped = Parse(schema.LogSeparator + "\n")
	assert.Empty(t, records)
	assert.Equal(t, 0, dropped)
}

func TestParse_CRLF(t *testing.T) {
	log := strings.ReplaceAll(buildLog(
		"r3 | alice | 2024-03-05 14:02:11 +0100 (Tue, 05 Mar 2024) | 1 line\n\nmsg\n",
	), "\n", "\r\n")

	records, dropped := Parse(log)
	require.Len(t, records, 1)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, "msg", records[0].Comment)
}

func TestParseHeader(t *testing.T) {
	testCases := []struct {
		name      string
		line      string
		ok        bool
		revision  int
		author    string
		lineCount int
		monthInTZ schema.MonthKey
	}{
		{"plural lines", "r1 | alice | 2024-03-05 14:02:11 +0100 (Tue, 05 Mar 2024) | 3 lines", true, 1, "alice", 3, "2024-03"},
		{"singular line", "r42 | bob | 2023-12-31 23:59:59 -0500 (Sun, 31 Dec 2023) | 1 line", true, 42, "bob", 1, "2023-12"},
		{"dotted author", "r7 | j.doe | 2024-01-01 00:00:00 +0000 (Mon, 01 Jan 2024) | 0 lines", true, 7, "j.doe", 0, "2024-01"},
		{"missing revision prefix", "1 | alice | 2024-03-05 14:02:11 +0100 (Tue, 05 Mar 2024) | 3 lines", false, 0, "", 0, ""},
		{"missing offset", "r1 | alice | 2024-03-05 14:02:11 (Tue, 05 Mar 2024) | 3 lines", false, 0, "", 0, ""},
		{"missing line count", "r1 | alice | 2024-03-05 14:02:11 +0100 (Tue, 05 Mar 2024)", false, 0, "", 0, ""},
		{"revision zero", "r0 | alice | 2024-03-05 14:02:11 +0100 (Tue, 05 Mar 2024) | 3 lines", false, 0, "", 0, ""},
		{"blank author", "r3 |   | 2024-03-05 14:02:11 +0100 (Tue, 05 Mar 2024) | 1 line", false, 0, "", 0, ""},
		{"empty", "", false, 0, "", 0, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record, ok := ParseHeader(tc.line)
			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				return
			}
			assert.Equal(t, tc.revision, record.Revision)
			assert.Equal(t, tc.author, record.Author)
			assert.Equal(t, tc.lineCount, record.LineCount)
			assert.Equal(t, tc.monthInTZ, record.Month())
		})
	}
}
