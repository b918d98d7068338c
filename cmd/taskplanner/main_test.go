package main

import "testing"

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "taskplanner" {
		t.Fatalf("expected root command name taskplanner, got %q", rootCmd.Use)
	}
}
