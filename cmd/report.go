package cmd

import (
	"github.com/huangsam/svnstat/core"
	"github.com/huangsam/svnstat/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd runs the full log-to-CSV pipeline.
var reportCmd = &cobra.Command{
	Use:   "report <log-file> <repo-path>",
	Short: "Write monthly per-author CSV reports from an svn log export.",
	Long: `Parse an svn log export, classify the diff of every revision and write
one ';'-separated CSV file per month to the output directory.

The log must be in the default text format, newest first:
  svn log > svn.log

Every revision is diffed with 'svn diff -c <rev>' inside the working copy.
Processing stops at the first commit older than the look-back window.

Examples:
  # Report the last six months
  svnstat report svn.log ./trunk

  # Report the whole history without build bots
  svnstat report svn.log ./trunk --lookback-months 0 --exclude-authors jenkins,buildbot

  # Re-run a single month into a separate folder
  svnstat report svn.log ./trunk --month 2024-03 -o reports/`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(_ *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, args[0], args[1])
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, contract.NewLocalSVNClient()); err != nil {
			contract.LogFatal("Cannot complete report", err)
		}
	},
}
