package cli

import (
	"bytes"
	"testing"

	"github.com/vvka-141/lqcheck/pkg/lqcheck"
)

func TestRootCmd_Subcommands(t *testing.T) {
	for _, name := range []string{"check", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Expected subcommand %q to be registered, got %v (err: %v)", name, cmd, err)
		}
	}
}

func TestRootCmd_UnknownFlagIsUsageError(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"version", "--no-such-flag"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("Expected error for unknown flag")
	}
	if code := lqcheck.ExitCodeForError(err); code != lqcheck.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", lqcheck.ExitUsageError, code, err)
	}
}
