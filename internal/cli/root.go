package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lqcheck",
	Short: "Liquibase changelog convention checker",
	Long: `lqcheck scans the resource folders of a project for Liquibase XML changelogs
and enforces two conventions on every databaseChangeLog it finds:

  - logicalFilePath matches the file's location (its base name inside
    versioned migration folders, its resource-relative path elsewhere)
  - every changeSet declares a context attribute

Files whose root element is not databaseChangeLog are ignored. A changelog
that cannot be parsed stops the check.

Exit Codes:
  0  - Success (no violations)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  4  - Convention violations found
  5  - Malformed changelog or unreadable file
  10 - Invalid configuration`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for lqcheck")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
