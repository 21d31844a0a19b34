package main

import (
	"testing"

	"github.com/fatih/color"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/config"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/inventory"
)

func TestSnapshotEntries(t *testing.T) {
	entries := snapshotEntries(testStacks())
	if len(entries) != 3 {
		t.Fatalf("len=%d want=3", len(entries))
	}
	if entries[0].FullName != "api-stack" || entries[0].Status != "CREATE_COMPLETE" {
		t.Fatalf("entries[0]=%+v", entries[0])
	}
	if entries[2].Status != inventory.StatusNameNotDeployed {
		t.Fatalf("entries[2]=%+v", entries[2])
	}
}

func TestSetupCommandRejectsInvalidOptions(t *testing.T) {
	opts := config.NewOptions()
	opts.Concurrency = 0
	if _, err := setupCommand(opts); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestSetupCommandAppliesColorMode(t *testing.T) {
	old := color.NoColor
	defer func() { color.NoColor = old }()

	opts := config.NewOptions()
	opts.ColorMode = "never"
	if _, err := setupCommand(opts); err != nil {
		t.Fatalf("setupCommand: %v", err)
	}
	if !color.NoColor {
		t.Fatalf("color not disabled for --color=never")
	}
}
