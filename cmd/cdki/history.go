// history.go implements 'cdki history', the terminal view over the recorded batch log.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/config"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/history"
)

func newHistoryCommand(opts *config.Options) *cobra.Command {
	var (
		limit  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent deploy and destroy batches",
		Long: `History reads the local batch log. Each entry is one toolkit invocation
with its stack list and aggregate outcome; per-stack results are not
recorded because the toolkit does not report them.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts, limit, output)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of batches to show")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table or json")
	return cmd
}

func runHistory(cmd *cobra.Command, opts *config.Options, limit int, output string) error {
	if _, err := setupCommand(opts); err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimSpace(output))
	switch format {
	case "":
		format = "table"
	case "table", "json":
	default:
		return fmt.Errorf("invalid --output value %q (must be one of: table, json)", output)
	}

	path := opts.HistoryPath
	if path == "" {
		p, err := history.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	store, err := history.OpenReadOnly(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(cmd.OutOrStdout(), "No batch history recorded yet.")
		return nil
	}
	if err != nil {
		return err
	}
	defer store.Close()

	batches, err := store.RecentBatches(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(batches)
	}
	return renderHistoryTable(cmd.OutOrStdout(), batches)
}

func renderHistoryTable(w io.Writer, batches []history.Batch) error {
	if len(batches) == 0 {
		fmt.Fprintln(w, "No batch history recorded yet.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tVERB\tSTACKS\tRESULT\tERROR")
	for _, b := range batches {
		result := "running"
		if b.Finished {
			result = "failed"
			if b.Success {
				result = "ok"
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			b.StartedAt.Local().Format("2006-01-02 15:04:05"),
			b.Verb,
			len(b.Stacks),
			result,
			truncateError(b.Error),
		)
	}
	return tw.Flush()
}

// truncateError keeps the table readable; the full text is available via
// --output json.
func truncateError(s string) string {
	const max = 48
	r := []rune(strings.TrimSpace(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max-1]) + "…"
}
