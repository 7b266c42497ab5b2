// Package svnlog parses the text output of `svn log` into commit records.
package svnlog

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/svnstat/core/section"
	"github.com/huangsam/svnstat/schema"
)

// DateLayout is the timestamp format svn prints before the parenthesized local date.
const DateLayout = "2006-01-02 15:04:05 -0700"

// headerRegex matches the first line of a commit block, e.g.
//
//	r1234 | alice | 2024-03-05 14:02:11 +0100 (Tue, 05 Mar 2024) | 3 lines
var headerRegex = regexp.MustCompile(`^r(\d+) \| (.+?) \| (\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} [+-]\d{4}) \(.*\) \| (\d+) lines?$`)

// Parse extracts commit records from a log export in the order they appear.
// Blocks whose first line is not a commit header are dropped; the number of
// dropped blocks is returned for diagnostics.
func Parse(text string) ([]schema.CommitRecord, int) {
	sectors := section.Split(text, schema.LogSeparator, false)
	records := make([]schema.CommitRecord, 0, len(sectors))
	dropped := 0

	for _, sector := range sectors {
		record, ok := parseSector(sector)
		if !ok {
			dropped++
			continue
		}
		records = append(records, record)
	}
	return records, dropped
}

// parseSector turns one commit block into a record.
func parseSector(lines []string) (schema.CommitRecord, bool) {
	if len(lines) == 0 {
		return schema.CommitRecord{}, false
	}
	record, ok := ParseHeader(lines[0])
	if !ok {
		return schema.CommitRecord{}, false
	}

	var comment []string
	for _, l := range lines[1:] {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		comment = append(comment, l)
	}
	record.Comment = strings.Join(comment, "\n")
	return record, true
}

// ParseHeader parses a commit header line. It reports false for anything
// that does not match the svn log header format.
func ParseHeader(line string) (schema.CommitRecord, bool) {
	m := headerRegex.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return schema.CommitRecord{}, false
	}

	revision, err := strconv.Atoi(m[1])
	if err != nil || revision <= 0 {
		return schema.CommitRecord{}, false
	}
	ts, err := time.Parse(DateLayout, m[3])
	if err != nil {
		return schema.CommitRecord{}, false
	}
	lineCount, err := strconv.Atoi(m[4])
	if err != nil {
		return schema.CommitRecord{}, false
	}
	author := strings.TrimSpace(m[2])
	if author == "" {
		return schema.CommitRecord{}, false
	}

	return schema.CommitRecord{
		Revision:  revision,
		Author:    author,
		Timestamp: ts,
		LineCount: lineCount,
	}, true
}
