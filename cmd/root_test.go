package cmd

import (
	"testing"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"learn", "run", "sessions", "steps", "serve"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestSessionsCommand_HasDelete(t *testing.T) {
	found := false
	for _, c := range sessionsCmd.Commands() {
		if c.Name() == "delete" {
			found = true
		}
	}
	if !found {
		t.Error("sessions should have a delete subcommand")
	}
}
