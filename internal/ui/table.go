// File: internal/ui/table.go
// Brief: Reconciled-inventory table rendering.

package ui

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/inventory"
)

// RenderInventoryTable prints the reconciled stacks in declared order, a
// derived summary footer, and one line per failed lookup naming the stack
// the failure belongs to.
func RenderInventoryTable(w io.Writer, stacks []inventory.ReconciledStack) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATUS\tCREATED\tUPDATED\tDESCRIPTION")
	for _, s := range stacks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.FullName,
			StackStatusCell(s),
			formatTime(s.CreatedAt),
			formatTime(s.UpdatedAt),
			s.Description,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	sum := inventory.Summarize(stacks)
	fmt.Fprintf(w, "\n%d deployed, %d not deployed of %d stacks", sum.Deployed, sum.NotDeployed, sum.Total)
	if sum.Unknown > 0 {
		fmt.Fprintf(w, ", %s", color.New(color.FgMagenta).Sprintf("%d unknown", sum.Unknown))
	}
	if failed := countFailed(stacks); failed > 0 {
		fmt.Fprintf(w, ", %s", color.New(color.FgRed).Sprintf("%d in a failed or rollback state", failed))
	}
	fmt.Fprintln(w)

	for _, s := range stacks {
		if s.LookupErr != nil {
			color.New(color.FgMagenta).Fprintf(w, "  ? %s: status unknown: %v\n", s.FullName, s.LookupErr)
		}
	}
	return nil
}

func countFailed(stacks []inventory.ReconciledStack) int {
	n := 0
	for _, s := range stacks {
		if s.Status.Failed() {
			n++
		}
	}
	return n
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
