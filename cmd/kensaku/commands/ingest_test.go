// ABOUTME: Tests for the ingest command structure
// ABOUTME: Verifies flags and variadic file arguments

package commands

import "testing"

func TestNewIngestCmd(t *testing.T) {
	cmd := NewIngestCmd()

	if cmd.Use != "ingest [file...]" {
		t.Errorf("Use = %q", cmd.Use)
	}

	rebuildFlag := cmd.Flags().Lookup("rebuild")
	if rebuildFlag == nil {
		t.Fatal("--rebuild flag not found")
	}
	if rebuildFlag.DefValue != "false" {
		t.Errorf("--rebuild default = %q, want false", rebuildFlag.DefValue)
	}
}
