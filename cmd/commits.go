package cmd

import (
	"github.com/huangsam/svnstat/core"
	"github.com/huangsam/svnstat/internal/contract"
	"github.com/spf13/cobra"
)

// commitsCmd lists what the log parser understood.
var commitsCmd = &cobra.Command{
	Use:   "commits <log-file>",
	Short: "List the commits parsed from an svn log export.",
	Long: `Parse an svn log export and print every commit record in export order.

Useful for checking that a log file is readable before running a report:
blocks that do not start with a commit header are counted as dropped.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(_ *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, args[0], "")
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCommits(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot list commits", err)
		}
	},
}
