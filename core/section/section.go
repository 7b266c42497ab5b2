// Package section splits svn text output into delimiter-bounded sectors.
package section

import "strings"

// HeaderLines is the number of lines prefixed to every sector when headers
// are included: the line preceding the separator and the separator itself.
const HeaderLines = 2

// Lines splits text into lines. A trailing newline terminates the last line
// instead of producing an extra empty one.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Split returns the runs of lines found strictly between consecutive
// occurrences of the separator line. The first separator only opens capture.
// Content after the last separator is returned as a final sector when any
// line was captured.
//
// With includeHeader, every sector starts with the line that preceded its
// opening separator (empty when there was none) followed by the separator,
// so that "Index: <path>" survives in diff output. A separator on the last
// line then still yields a header-only sector.
func Split(text, separator string, includeHeader bool) [][]string {
	var (
		sectors   [][]string
		current   []string
		capturing bool
		prev      string
	)

	for _, line := range Lines(text) {
		if isSeparator(line, separator) {
			if capturing {
				sectors = append(sectors, current)
			}
			current = nil
			if includeHeader {
				current = []string{prev, line}
			}
			capturing = true
		} else if capturing {
			current = append(current, line)
		}
		prev = line
	}

	if capturing && len(current) > 0 {
		sectors = append(sectors, current)
	}
	return sectors
}

// Body strips the header lines added by Split with includeHeader.
func Body(sector []string) []string {
	if len(sector) < HeaderLines {
		return nil
	}
	return sector[HeaderLines:]
}

// isSeparator compares a line against the separator, ignoring a CR left by CRLF exports.
func isSeparator(line, separator string) bool {
	return strings.TrimSuffix(line, "\r") == separator
}
