// Package cmd defines the command-line interface for svnstat.
package cmd

import (
	"github.com/huangsam/svnstat/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(commitsCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringSlice("source-extensions", contract.DefaultSourceExtensions, "File extensions counted as source code")
	rootCmd.PersistentFlags().StringSlice("binary-extensions", contract.DefaultBinaryExtensions, "File extensions counted as binaries")
	rootCmd.PersistentFlags().StringSlice("generated-paths", contract.DefaultGeneratedPaths, "Path substrings that mark generated files")
	rootCmd.PersistentFlags().StringArray("framework-patterns", contract.DefaultFrameworkPatterns, "Regular expressions matching framework or bundle directories")
	rootCmd.PersistentFlags().Int("large-addition-threshold", contract.DefaultLargeAdditionThreshold, "Added lines per file at which a change counts as copied")
	rootCmd.PersistentFlags().String("bug-tag", contract.DefaultBugTag, "Substring that marks a bug reference in diffs")
	rootCmd.PersistentFlags().Bool("vendor-heuristics", false, "Also treat well-known vendored paths as generated")
	rootCmd.PersistentFlags().String("diff-timeout", contract.DefaultDiffTimeout.String(), "Maximum time for a single svn diff")
	rootCmd.PersistentFlags().String("encoding", contract.DefaultEncoding, "Text encoding of svn output and CSV files (e.g. utf-8, windows-1252)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to an env file with SVNSTAT_* variables")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().Int("lookback-months", contract.DefaultLookbackMonths, "Months to report back from the current month (0 = whole log)")
	reportCmd.Flags().StringSlice("exclude-authors", nil, "Authors whose commits are ignored")
	reportCmd.Flags().String("month", "", "Only report this month (YYYY-MM); disables the look-back window")
	reportCmd.Flags().StringP("output-dir", "o", contract.DefaultOutputDir, "Directory for the monthly CSV files")
	reportCmd.Flags().Int("workers", contract.DefaultWorkers, "Number of concurrent svn diff invocations")
	reportCmd.Flags().Bool("summary", true, "Print a per-month summary table when done")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of classifyCmd to Viper
	classifyCmd.Flags().Bool("sectors", false, "Print the classification of every file in the diff")
	if err := viper.BindPFlags(classifyCmd.Flags()); err != nil {
		contract.LogFatal("Error binding classify flags", err)
	}
}
