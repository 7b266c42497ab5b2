// Package classify turns the unified diff of one revision into RevisionMetrics.
//
// A diff is split into per-file sectors on the "=" separator that follows every
// "Index:" line. Each sector is classified independently and the results are
// folded with the following precedence:
//
//   - framework sectors never count as file additions or removals
//   - binary and generated sectors count files but not lines
//   - only plain source sectors contribute lines
//   - a sector whose counted additions reach the large-addition threshold is
//     recorded as one copied addition instead of lines
package classify

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/huangsam/svnstat/core/section"
	"github.com/huangsam/svnstat/internal/contract"
	"github.com/huangsam/svnstat/schema"
	"github.com/src-d/enry/v2"
)

var (
	// addedMarker matches "--- <path>\t(nonexistent)", the old side of a new file.
	addedMarker = regexp.MustCompile(`^--- (.+?)\s+\(nonexistent\)`)

	// removedMarker matches "+++ <path>\t(nonexistent)", the new side of a deleted file.
	removedMarker = regexp.MustCompile(`^\+\+\+ (.+?)\s+\(nonexistent\)`)
)

const indexPrefix = "Index: "

// Classifier applies the configured classification rules to diff text.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	cfg *contract.Config
}

// NewClassifier creates a Classifier for cfg.
func NewClassifier(cfg *contract.Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify computes the metrics of one revision from its diff text.
// The per-file sectors are returned in diff order for reporting.
func (c *Classifier) Classify(diff string) (schema.RevisionMetrics, []schema.FileSector) {
	var (
		metrics    schema.RevisionMetrics
		sectors    []schema.FileSector
		binaries   = make(map[string]struct{})
		generated  = make(map[string]struct{})
		frameworks = make(map[string]struct{})
	)

	for _, lines := range section.Split(diff, schema.DiffSeparator, true) {
		s := c.ClassifySector(lines)
		sectors = append(sectors, s)

		if !s.IsFramework {
			if s.FileAdded {
				metrics.FilesAdded++
			}
			if s.FileRemoved {
				metrics.FilesRemoved++
			}
		}

		if s.AddedLines >= c.cfg.LargeAdditionThreshold {
			metrics.CopiedAdditions++
		} else if s.CountsLines() {
			metrics.LinesAdded += s.AddedLines
		}
		if s.CountsLines() && !s.FileRemoved {
			metrics.LinesRemoved += s.RemovedLines
		}

		metrics.BugsMentioned += s.BugRefs

		key := s.Path
		if key == "" {
			key = s.Header
		}
		if s.IsBinary {
			binaries[key] = struct{}{}
		}
		if s.IsGenerated {
			generated[key] = struct{}{}
		}
		if s.IsFramework {
			frameworks[s.FrameworkName] = struct{}{}
		}
	}

	metrics.BinariesChanged += len(binaries)
	metrics.GeneratedChanges += len(generated)
	metrics.FrameworkChanges += len(frameworks)
	return metrics, sectors
}

// ClassifySector classifies one sector produced by section.Split with headers,
// so lines[0] is the "Index:" line and lines[1] the separator.
func (c *Classifier) ClassifySector(lines []string) schema.FileSector {
	s := schema.FileSector{Body: lines}
	if len(lines) > 0 {
		s.Header = strings.TrimRight(lines[0], "\r")
	}
	body := section.Body(lines)

	s.Path = sectorPath(s.Header, body)
	ext := path.Ext(s.Path)
	s.IsSource = c.cfg.IsSourceExtension(ext)
	s.IsBinary = c.cfg.IsBinaryExtension(ext)
	s.IsGenerated = c.isGenerated(s.Path)
	s.FrameworkName, s.IsFramework = c.frameworkName(s.Header, s.Path)

	for _, line := range body {
		line = strings.TrimRight(line, "\r")
		switch {
		case addedMarker.MatchString(line):
			s.FileAdded = true
		case removedMarker.MatchString(line):
			s.FileRemoved = true
		case isCountedLine(line, '+'):
			s.AddedLines++
		case isCountedLine(line, '-'):
			s.RemovedLines++
		}
	}

	if tag := c.cfg.BugTag; tag != "" {
		for _, line := range lines {
			s.BugRefs += strings.Count(line, tag)
		}
	}
	return s
}

// FetchAndClassify fetches the diff of one revision and classifies it.
// The fetch runs under the configured diff timeout. On failure the returned
// metrics are zero and the error wraps contract.ErrDiffUnavailable.
func (c *Classifier) FetchAndClassify(ctx context.Context, client contract.SVNClient, repoPath string, revision int) (schema.RevisionMetrics, []schema.FileSector, error) {
	if c.cfg.DiffTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.DiffTimeout)
		defer cancel()
	}

	out, err := client.Diff(ctx, repoPath, revision)
	if err != nil {
		if !errors.Is(err, contract.ErrDiffUnavailable) {
			err = fmt.Errorf("%w: r%d: %w", contract.ErrDiffUnavailable, revision, err)
		}
		return schema.RevisionMetrics{}, nil, err
	}

	metrics, sectors := c.Classify(contract.DecodeText(out, c.cfg.Encoding))
	return metrics, sectors, nil
}

// isGenerated reports whether p lies under a generated location.
func (c *Classifier) isGenerated(p string) bool {
	if p == "" {
		return false
	}
	for _, sub := range c.cfg.GeneratedPaths {
		if strings.Contains(p, sub) {
			return true
		}
	}
	return c.cfg.VendorHeuristics && enry.IsVendor(p)
}

// frameworkName returns the first framework directory found in the header,
// e.g. "Foo.framework" for "Index: Libs/Foo.framework/Headers/Foo.h".
func (c *Classifier) frameworkName(header, p string) (string, bool) {
	target := header
	if target == "" {
		target = p
	}
	for _, re := range c.cfg.FrameworkPatterns {
		if m := re.FindString(target); m != "" {
			return strings.TrimSuffix(m, "/"), true
		}
	}
	return "", false
}

// sectorPath reads the path from "Index: <path>", falling back to the
// "--- <path>\t(...)" line when the header is missing.
func sectorPath(header string, body []string) string {
	if p, ok := strings.CutPrefix(header, indexPrefix); ok {
		return strings.TrimSpace(p)
	}
	for _, line := range body {
		rest, ok := strings.CutPrefix(strings.TrimRight(line, "\r"), "--- ")
		if !ok {
			continue
		}
		if i := strings.IndexAny(rest, "\t("); i >= 0 {
			rest = rest[:i]
		}
		return strings.TrimSpace(rest)
	}
	return ""
}

// isCountedLine reports whether line is a single-marker change line:
// it starts with marker but not with a doubled marker or marker+'*'.
func isCountedLine(line string, marker byte) bool {
	if len(line) == 0 || line[0] != marker {
		return false
	}
	if len(line) == 1 {
		return true
	}
	return line[1] != marker && line[1] != '*'
}
