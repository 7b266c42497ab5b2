package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/svnstat/core"
	"github.com/huangsam/svnstat/internal/contract"
	"github.com/spf13/cobra"
)

// classifyCmd shows how a single revision is counted.
var classifyCmd = &cobra.Command{
	Use:   "classify <repo-path> <revision>",
	Short: "Show the metrics computed for one revision.",
	Long: `Diff a single revision and print the metrics it contributes to its author.

Use --sectors to see how each file of the diff was classified
(source, binary, generated or framework) and which lines were counted.

Examples:
  svnstat classify ./trunk 1234
  svnstat classify ./trunk r1234 --sectors`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(_ *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, "", args[0])
	},
	Run: func(_ *cobra.Command, args []string) {
		revision, err := parseRevision(args[1])
		if err != nil {
			contract.LogFatal("Invalid revision", err)
		}
		if err := core.ExecuteClassify(rootCtx, cfg, contract.NewLocalSVNClient(), revision); err != nil {
			contract.LogFatal("Cannot classify revision", err)
		}
	},
}

// parseRevision accepts "1234" or "r1234".
func parseRevision(s string) (int, error) {
	rev, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "r"))
	if err != nil {
		return 0, fmt.Errorf("expected a revision number, got %q", s)
	}
	if rev <= 0 {
		return 0, fmt.Errorf("revision must be positive, got %d", rev)
	}
	return rev, nil
}
