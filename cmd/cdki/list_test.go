package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/inventory"
)

func TestPrintInventoryNames(t *testing.T) {
	var buf bytes.Buffer
	if err := printInventory(&buf, "names", testStacks()); err != nil {
		t.Fatalf("printInventory: %v", err)
	}
	want := "api-stack\nworker-stack (migrations)\npayments-prod\n"
	if buf.String() != want {
		t.Fatalf("got=%q want=%q", buf.String(), want)
	}
}

func TestPrintInventoryJSON(t *testing.T) {
	deployed := inventory.ReconciledStack{
		DeclaredStack: inventory.DeclaredStack{DisplayName: "api-stack", FullName: "api-stack", BackingID: "api-stack"},
		Status:        inventory.StatusCreateComplete,
		StackID:       "arn:aws:cloudformation:eu-west-1:123:stack/api-stack/abc",
		CreatedAt:     time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
	}
	pending := inventory.ReconciledStack{
		DeclaredStack: inventory.DeclaredStack{DisplayName: "new-stack", FullName: "new-stack", BackingID: "new-stack"},
		Status:        inventory.StatusNotDeployed,
	}

	var buf bytes.Buffer
	if err := printInventory(&buf, "json", []inventory.ReconciledStack{deployed, pending}); err != nil {
		t.Fatalf("printInventory: %v", err)
	}

	var docs []map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len=%d want=2", len(docs))
	}
	if _, ok := docs[0]["createdAt"]; !ok {
		t.Fatalf("deployed stack lost its createdAt: %v", docs[0])
	}
	if _, ok := docs[1]["createdAt"]; ok {
		t.Fatalf("zero createdAt was not omitted: %v", docs[1])
	}
	if _, ok := docs[1]["stackId"]; ok {
		t.Fatalf("empty stackId was not omitted: %v", docs[1])
	}
}

func TestPrintInventoryYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := printInventory(&buf, "yaml", testStacks()[:1]); err != nil {
		t.Fatalf("printInventory: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "fullName: api-stack") {
		t.Fatalf("missing fullName: %q", out)
	}
	if !strings.Contains(out, "status: CREATE_COMPLETE") {
		t.Fatalf("missing status: %q", out)
	}
	if strings.Contains(out, "createdAt") {
		t.Fatalf("zero createdAt was not omitted: %q", out)
	}
}

func TestPrintInventoryUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := printInventory(&buf, "xml", nil); err == nil {
		t.Fatalf("expected error for unhandled format")
	}
}

func TestStackDocumentsCarryLookupErrors(t *testing.T) {
	st := inventory.ReconciledStack{
		DeclaredStack: inventory.DeclaredStack{DisplayName: "broken", FullName: "broken", BackingID: "broken"},
		Status:        inventory.StatusUnknown,
		LookupErr:     errors.New("access denied"),
	}
	docs := stackDocuments([]inventory.ReconciledStack{st})
	if len(docs) != 1 {
		t.Fatalf("len=%d want=1", len(docs))
	}
	if docs[0].LookupError != "access denied" {
		t.Fatalf("LookupError=%q want=%q", docs[0].LookupError, "access denied")
	}
	if docs[0].Status != inventory.StatusNameUnknown {
		t.Fatalf("Status=%q want=%q", docs[0].Status, inventory.StatusNameUnknown)
	}
}
