package main

import "testing"

func TestSelectByNamePreservesDeclaredOrder(t *testing.T) {
	stacks := testStacks()
	got := selectByName(stacks, []string{"payments-prod", "api-stack"})
	if len(got) != 2 {
		t.Fatalf("len=%d want=2", len(got))
	}
	if got[0].FullName != "api-stack" || got[1].FullName != "payments-prod" {
		t.Fatalf("order not preserved: %q, %q", got[0].FullName, got[1].FullName)
	}
}

func TestSelectByNameIgnoresUnknownValues(t *testing.T) {
	got := selectByName(testStacks(), []string{"api-stack", "not-declared"})
	if len(got) != 1 || got[0].FullName != "api-stack" {
		t.Fatalf("got=%+v want only api-stack", got)
	}
}
