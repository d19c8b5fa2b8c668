package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalProjectPath accepts zero or one project_path argument.
// Without one the current directory is checked.
func OptionalProjectPath(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s

Example:
  %s ./my-service -r src/main/resources`, len(args), cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}

// projectPathFromArgs returns the project path argument or ".".
func projectPathFromArgs(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return "."
	}
	return args[0]
}
