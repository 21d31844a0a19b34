package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/cdk"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/guard"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/inventory"
)

func testStacks() []inventory.ReconciledStack {
	mk := func(display, full string, status inventory.Status) inventory.ReconciledStack {
		return inventory.ReconciledStack{
			DeclaredStack: inventory.DeclaredStack{DisplayName: display, FullName: full, BackingID: display},
			Status:        status,
		}
	}
	return []inventory.ReconciledStack{
		mk("api-stack", "api-stack", inventory.StatusCreateComplete),
		mk("worker-stack", "worker-stack (migrations)", inventory.StatusUpdateInProgress),
		mk("payments-prod", "payments-prod", inventory.StatusNotDeployed),
	}
}

func TestResolveTargetsAll(t *testing.T) {
	got, err := resolveTargets(testStacks(), nil, nil, true)
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len=%d want=3", len(got))
	}
}

func TestResolveTargetsByFullName(t *testing.T) {
	got, err := resolveTargets(testStacks(), []string{"worker-stack (migrations)"}, nil, false)
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "worker-stack (migrations)" {
		t.Fatalf("got=%+v want the worker stack", got)
	}
}

func TestResolveTargetsByDisplayName(t *testing.T) {
	got, err := resolveTargets(testStacks(), []string{"worker-stack"}, nil, false)
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "worker-stack (migrations)" {
		t.Fatalf("display name did not resolve: %+v", got)
	}
}

func TestResolveTargetsUnknownName(t *testing.T) {
	_, err := resolveTargets(testStacks(), []string{"missing-stack"}, nil, false)
	if err == nil || !strings.Contains(err.Error(), "unknown stack") {
		t.Fatalf("err=%v want unknown stack error", err)
	}
}

func TestResolveTargetsPattern(t *testing.T) {
	got, err := resolveTargets(testStacks(), nil, []string{"api-*"}, false)
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "api-stack" {
		t.Fatalf("got=%+v want only api-stack", got)
	}
}

func TestResolveTargetsPatternFallsBackToDisplayName(t *testing.T) {
	got, err := resolveTargets(testStacks(), nil, []string{"worker-stack"}, false)
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(got) != 1 || got[0].FullName != "worker-stack (migrations)" {
		t.Fatalf("got=%+v want the worker stack via its display name", got)
	}
}

func TestResolveTargetsPreservesDeclaredOrder(t *testing.T) {
	got, err := resolveTargets(testStacks(), []string{"payments-prod", "api-stack"}, nil, false)
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(got) != 2 || got[0].FullName != "api-stack" || got[1].FullName != "payments-prod" {
		t.Fatalf("order not preserved: %+v", got)
	}
}

func TestResolveTargetsCombinesNamesAndPatterns(t *testing.T) {
	got, err := resolveTargets(testStacks(), []string{"payments-prod"}, []string{"api-*"}, false)
	if err != nil {
		t.Fatalf("resolveTargets: %v", err)
	}
	if len(got) != 2 || got[0].FullName != "api-stack" || got[1].FullName != "payments-prod" {
		t.Fatalf("got=%+v want api-stack then payments-prod", got)
	}
}

func TestResolveTargetsInvalidPattern(t *testing.T) {
	_, err := resolveTargets(testStacks(), nil, []string{"["}, false)
	if err == nil || !strings.Contains(err.Error(), "invalid --match pattern") {
		t.Fatalf("err=%v want invalid pattern error", err)
	}
}

func TestPrintBatchPlanWarnsAboutInProgressStacks(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	printBatchPlan(&buf, cdk.VerbDeploy, testStacks())
	out := buf.String()
	if !strings.Contains(out, "About to deploy 3 stacks:") {
		t.Fatalf("missing plan header: %q", out)
	}
	if !strings.Contains(out, "  worker-stack (migrations)\n") {
		t.Fatalf("missing stack line: %q", out)
	}
	if !strings.Contains(out, "1 of them are mid-operation") {
		t.Fatalf("missing in-progress warning: %q", out)
	}
}

func TestPrintBatchPlanNoWarningWhenSettled(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	printBatchPlan(&buf, cdk.VerbDestroy, testStacks()[:1])
	if strings.Contains(buf.String(), "mid-operation") {
		t.Fatalf("unexpected in-progress warning: %q", buf.String())
	}
}

func TestViolationText(t *testing.T) {
	cases := []struct {
		v    guard.Violation
		want string
	}{
		{guard.Violation{Code: "PROTECTED", Message: "no prod destroys", Subject: "payments-prod"}, "[PROTECTED] no prod destroys (payments-prod)"},
		{guard.Violation{Code: "PROTECTED", Message: "no prod destroys"}, "[PROTECTED] no prod destroys"},
		{guard.Violation{Message: "no prod destroys", Subject: "payments-prod"}, "no prod destroys (payments-prod)"},
		{guard.Violation{Message: "no prod destroys"}, "no prod destroys"},
	}
	for _, c := range cases {
		if got := violationText(c.v); got != c.want {
			t.Fatalf("violationText(%+v)=%q want=%q", c.v, got, c.want)
		}
	}
}

func TestVerbTitle(t *testing.T) {
	if got := verbTitle(cdk.VerbDeploy); got != "Deploy" {
		t.Fatalf("got=%q want=Deploy", got)
	}
	if got := verbTitle(cdk.VerbDestroy); got != "Destroy" {
		t.Fatalf("got=%q want=Destroy", got)
	}
}

func TestFullNames(t *testing.T) {
	got := fullNames(testStacks())
	want := []string{"api-stack", "worker-stack (migrations)", "payments-prod"}
	if len(got) != len(want) {
		t.Fatalf("len=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d]=%q want=%q", i, got[i], want[i])
		}
	}
}
