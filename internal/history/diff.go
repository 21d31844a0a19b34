package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffSnapshots renders a unified diff of two snapshots as "name status"
// lines. An empty string means no changes.
func DiffSnapshots(previous, current []SnapshotEntry, previousAt time.Time) (string, error) {
	a := snapshotLines(previous)
	b := snapshotLines(current)
	if a == b {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: fmt.Sprintf("previous (%s)", previousAt.UTC().Format(time.RFC3339)),
		ToFile:   "current",
		Context:  3,
	}
	diff, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("render diff: %w", err)
	}
	return diff, nil
}

func snapshotLines(entries []SnapshotEntry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.FullName)
		b.WriteString(" ")
		b.WriteString(e.Status)
		b.WriteString("\n")
	}
	return b.String()
}
