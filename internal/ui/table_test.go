package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/inventory"
)

func TestRenderInventoryTable(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	created := time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)
	stacks := []inventory.ReconciledStack{
		{
			DeclaredStack: inventory.DeclaredStack{FullName: "Prod/Edge (cf-edge)"},
			Status:        inventory.StatusCreateComplete,
			StackID:       "arn:edge",
			CreatedAt:     created,
			Description:   "edge network",
		},
		{
			DeclaredStack: inventory.DeclaredStack{FullName: "Prod/Api"},
			Status:        inventory.StatusNotDeployed,
		},
		{
			DeclaredStack: inventory.DeclaredStack{FullName: "Prod/Jobs"},
			Status:        inventory.StatusUnknown,
			LookupErr:     errors.New("AccessDenied"),
		},
	}

	var buf bytes.Buffer
	if err := RenderInventoryTable(&buf, stacks); err != nil {
		t.Fatalf("RenderInventoryTable returned error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"NAME", "STATUS", "CREATED",
		"Prod/Edge (cf-edge)", "✔ Create Complete", "edge network",
		"Prod/Api", "○ Not Deployed",
		"Prod/Jobs", "? Unknown",
		"1 deployed, 1 not deployed of 3 stacks",
		"1 unknown",
		"? Prod/Jobs: status unknown: AccessDenied",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderInventoryTableZeroTimesDash(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	err := RenderInventoryTable(&buf, []inventory.ReconciledStack{{
		DeclaredStack: inventory.DeclaredStack{FullName: "A"},
		Status:        inventory.StatusNotDeployed,
	}})
	if err != nil {
		t.Fatalf("RenderInventoryTable returned error: %v", err)
	}
	line := ""
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(l, "A ") {
			line = l
		}
	}
	if line == "" {
		t.Fatalf("row for stack A not found:\n%s", buf.String())
	}
	if !strings.Contains(line, "-") {
		t.Fatalf("zero times not rendered as dash: %q", line)
	}
}

func TestRenderInventoryTableCountsFailed(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	err := RenderInventoryTable(&buf, []inventory.ReconciledStack{
		{DeclaredStack: inventory.DeclaredStack{FullName: "A"}, Status: inventory.StatusRollbackComplete, StackID: "arn:a"},
		{DeclaredStack: inventory.DeclaredStack{FullName: "B"}, Status: inventory.StatusCreateComplete, StackID: "arn:b"},
	})
	if err != nil {
		t.Fatalf("RenderInventoryTable returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "1 in a failed or rollback state") {
		t.Fatalf("failed count missing:\n%s", buf.String())
	}
}
