package svnlog

import (
	"testing"
)

// FuzzParseHeader fuzzes ParseHeader with random header lines.
func FuzzParseHeader(f *testing.F) {
	seeds := []string{
		"r1234 | alice | 2024-03-05 14:02:11 +0100 (Tue, 05 Mar 2024) | 3 lines",
		"r1 | bob | 2023-12-31 23:59:59 -0800 (Sun, 31 Dec 2023) | 1 line",
		"r0 | nobody | 2024-01-01 00:00:00 +0000 (Mon, 01 Jan 2024) | 1 line",
		"r99999999999999999999 | x | 2024-01-01 00:00:00 +0000 () | 1 line",
		"r5 | a | b | 2024-13-01 00:00:00 +0000 (x) | 2 lines",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		record, ok := ParseHeader(input)
		if !ok {
			return
		}
		if record.Revision <= 0 {
			t.Fatalf("accepted non-positive revision %d from %q", record.Revision, input)
		}
		if record.Author == "" {
			t.Fatalf("accepted empty author from %q", input)
		}
	})
}

// FuzzParse checks that every block is either parsed or dropped.
func FuzzParse(f *testing.F) {
	f.Add(buildLog("r120 | alice | 2024-03-05 14:02:11 +0100 (Tue, 05 Mar 2024) | 1 line\n\nFix SCM-12\n"))
	f.Add("")
	f.Add("----\n")

	f.Fuzz(func(t *testing.T, input string) {
		records, dropped := Parse(input)
		if dropped < 0 {
			t.Fatalf("negative dropped count %d", dropped)
		}
		for _, r := range records {
			if r.Revision <= 0 {
				t.Fatalf("record with revision %d", r.Revision)
			}
		}
	})
}
