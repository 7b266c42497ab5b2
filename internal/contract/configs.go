package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/svnstat/schema"
	"golang.org/x/text/encoding"
)

// Default values for configuration.
const (
	DefaultLookbackMonths         = 6
	DefaultLargeAdditionThreshold = 5000
	DefaultBugTag                 = "SCM-"
	DefaultDiffTimeout            = 2 * time.Minute
	DefaultEncoding               = "utf-8"
	DefaultOutputDir              = "."
)

// DefaultWorkers is the default number of concurrent diff fetches.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Default classification rules. They mirror an Xcode-era code base where
// frameworks and bundles are checked in next to the sources.
var (
	DefaultSourceExtensions = []string{
		".c", ".cc", ".cpp", ".cxx", ".h", ".hh", ".hpp", ".m", ".mm", ".swift",
		".java", ".kt", ".cs", ".go", ".py", ".rb", ".js", ".ts", ".php", ".sh",
		".sql", ".xml", ".html", ".css", ".xib", ".storyboard", ".plist", ".strings",
	}
	DefaultBinaryExtensions = []string{
		".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".ico", ".icns", ".heic",
		".pdf", ".psd", ".zip", ".gz", ".tar", ".jar", ".a", ".so", ".dylib", ".dll", ".exe",
		".bin", ".car", ".nib", ".mp3", ".wav", ".caf", ".aiff", ".mov", ".mp4", ".ttf", ".otf",
		".xcuserstate", ".sqlite",
	}
	DefaultGeneratedPaths = []string{
		"DerivedData/", "build/", "Pods/", "generated/", "xcuserdata/",
	}
	DefaultFrameworkPatterns = []string{
		`[^/\s]+\.framework/`,
		`[^/\s]+\.bundle/`,
	}
)

// Config holds the runtime configuration for a run.
// It is built once by ProcessAndValidate and never mutated afterwards.
type Config struct {
	LogPath   string
	RepoPath  string
	OutputDir string

	LookbackMonths int             // <= 0 disables the cutoff
	Month          schema.MonthKey // Optional single-month filter

	ExcludedAuthors        map[string]struct{}
	SourceExtensions       map[string]struct{}
	BinaryExtensions       map[string]struct{}
	GeneratedPaths         []string
	FrameworkPatterns      []*regexp.Regexp
	LargeAdditionThreshold int
	BugTag                 string
	VendorHeuristics       bool // Also treat enry vendor paths as generated

	Workers      int
	DiffTimeout  time.Duration
	EncodingName string
	Encoding     encoding.Encoding

	Summary   bool // Print a per-month summary table after a report
	Sectors   bool // Print per-sector classification in classify
	UseColors bool
	Width     int // Terminal width override (0 = auto-detect)
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	LogPathStr  string
	RepoPathStr string

	OutputDir              string   `mapstructure:"output-dir"`
	LookbackMonths         int      `mapstructure:"lookback-months"`
	Month                  string   `mapstructure:"month"`
	ExcludeAuthors         []string `mapstructure:"exclude-authors"`
	SourceExtensions       []string `mapstructure:"source-extensions"`
	BinaryExtensions       []string `mapstructure:"binary-extensions"`
	GeneratedPaths         []string `mapstructure:"generated-paths"`
	FrameworkPatterns      []string `mapstructure:"framework-patterns"`
	LargeAdditionThreshold int      `mapstructure:"large-addition-threshold"`
	BugTag                 string   `mapstructure:"bug-tag"`
	VendorHeuristics       bool     `mapstructure:"vendor-heuristics"`
	Workers                int      `mapstructure:"workers"`
	DiffTimeout            string   `mapstructure:"diff-timeout"`
	Encoding               string   `mapstructure:"encoding"`
	Summary                bool     `mapstructure:"summary"`
	Sectors                bool     `mapstructure:"sectors"`
	Color                  string   `mapstructure:"color"`
	Width                  int      `mapstructure:"width"`
}

// NewDefaultRawInput returns a raw input populated with the built-in defaults.
func NewDefaultRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		OutputDir:              DefaultOutputDir,
		LookbackMonths:         DefaultLookbackMonths,
		SourceExtensions:       DefaultSourceExtensions,
		BinaryExtensions:       DefaultBinaryExtensions,
		GeneratedPaths:         DefaultGeneratedPaths,
		FrameworkPatterns:      DefaultFrameworkPatterns,
		LargeAdditionThreshold: DefaultLargeAdditionThreshold,
		BugTag:                 DefaultBugTag,
		Workers:                DefaultWorkers,
		DiffTimeout:            DefaultDiffTimeout.String(),
		Encoding:               DefaultEncoding,
		Summary:                true,
		Color:                  "yes",
	}
}

// IsExcludedAuthor reports whether commits by author must be ignored.
func (c *Config) IsExcludedAuthor(author string) bool {
	_, ok := c.ExcludedAuthors[author]
	return ok
}

// IsSourceExtension reports whether ext (with leading dot, any case) is a source extension.
func (c *Config) IsSourceExtension(ext string) bool {
	_, ok := c.SourceExtensions[strings.ToLower(ext)]
	return ok
}

// IsBinaryExtension reports whether ext (with leading dot, any case) is a binary extension.
func (c *Config) IsBinaryExtension(ext string) bool {
	_, ok := c.BinaryExtensions[strings.ToLower(ext)]
	return ok
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processClassificationRules(cfg, input); err != nil {
		return err
	}
	if err := processEncoding(cfg, input); err != nil {
		return err
	}
	return resolveInputPaths(cfg, input)
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.LookbackMonths = input.LookbackMonths
	cfg.VendorHeuristics = input.VendorHeuristics
	cfg.Summary = input.Summary
	cfg.Sectors = input.Sectors
	cfg.Width = input.Width
	cfg.BugTag = input.BugTag

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.LargeAdditionThreshold <= 0 {
		return fmt.Errorf("large-addition-threshold must be greater than 0 (received %d)", input.LargeAdditionThreshold)
	}
	cfg.LargeAdditionThreshold = input.LargeAdditionThreshold

	cfg.DiffTimeout = DefaultDiffTimeout
	if s := strings.TrimSpace(input.DiffTimeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid diff-timeout '%s': %w", s, err)
		}
		if d <= 0 {
			return fmt.Errorf("diff-timeout must be positive (received %s)", d)
		}
		cfg.DiffTimeout = d
	}

	cfg.Month = ""
	if s := strings.TrimSpace(input.Month); s != "" {
		month, err := schema.ParseMonthKey(s)
		if err != nil {
			return err
		}
		cfg.Month = month
	}

	cfg.ExcludedAuthors = make(map[string]struct{})
	for _, author := range splitList(input.ExcludeAuthors) {
		cfg.ExcludedAuthors[author] = struct{}{}
	}

	return nil
}

// processClassificationRules builds the extension sets and compiles the framework patterns.
func processClassificationRules(cfg *Config, input *ConfigRawInput) error {
	cfg.SourceExtensions = extensionSet(input.SourceExtensions)
	cfg.BinaryExtensions = extensionSet(input.BinaryExtensions)
	cfg.GeneratedPaths = splitList(input.GeneratedPaths)

	cfg.FrameworkPatterns = nil
	for _, p := range trimList(input.FrameworkPatterns) {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("invalid framework pattern '%s': %w", p, err)
		}
		cfg.FrameworkPatterns = append(cfg.FrameworkPatterns, re)
	}
	return nil
}

// processEncoding resolves the text encoding used for input and output.
func processEncoding(cfg *Config, input *ConfigRawInput) error {
	name := strings.TrimSpace(input.Encoding)
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := LookupEncoding(name)
	if err != nil {
		return err
	}
	cfg.EncodingName = name
	cfg.Encoding = enc
	return nil
}

// resolveInputPaths turns the positional arguments into absolute paths.
// Empty inputs are left empty so commands that do not need them can skip them.
func resolveInputPaths(cfg *Config, input *ConfigRawInput) error {
	if input.LogPathStr != "" {
		p, err := filepath.Abs(input.LogPathStr)
		if err != nil {
			return err
		}
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("cannot read log file: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("log path %q is a directory", p)
		}
		cfg.LogPath = p
	}

	if input.RepoPathStr != "" {
		p, err := filepath.Abs(input.RepoPathStr)
		if err != nil {
			return err
		}
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("cannot access repository: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("repository path %q is not a directory", p)
		}
		cfg.RepoPath = p
	}

	outputDir := strings.TrimSpace(input.OutputDir)
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	p, err := filepath.Abs(outputDir)
	if err != nil {
		return err
	}
	cfg.OutputDir = filepath.Clean(p)
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) {
	profile.Enabled = profilePrefix != ""
	profile.Prefix = profilePrefix
}

// trimList drops blank entries. Patterns may contain commas, so they are not split.
func trimList(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// extensionSet normalizes extensions to lower case with a leading dot.
func extensionSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range splitList(exts) {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// splitList trims entries and also splits comma-separated entries,
// which is how list values arrive from environment variables.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
