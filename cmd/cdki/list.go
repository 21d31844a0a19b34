// list.go implements 'cdki list': the reconciled inventory in table, json, yaml, or names form, plus --changes diffs.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/config"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/history"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/inventory"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/ui"
)

func newListCommand(opts *config.Options) *cobra.Command {
	var (
		output  string
		changes bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the reconciled stack inventory",
		Long: `List synthesizes the CDK app, reconciles every declared stack against
CloudFormation, and prints the result. Use --changes to see what moved
since the previous run instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, output, changes)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json, yaml, or names")
	cmd.Flags().BoolVar(&changes, "changes", false, "Show status changes since the previous inventory snapshot")
	return cmd
}

func runList(cmd *cobra.Command, opts *config.Options, output string, changes bool) error {
	log, err := setupCommand(opts)
	if err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimSpace(output))
	switch format {
	case "":
		format = "table"
	case "table", "json", "yaml", "names":
	default:
		return fmt.Errorf("invalid --output value %q (must be one of: table, json, yaml, names)", output)
	}
	ctx := cmd.Context()
	stacks, err := loadInventory(ctx, opts, log)
	if err != nil {
		return err
	}
	if changes {
		return printInventoryChanges(cmd, opts, stacks)
	}
	recordSnapshot(ctx, opts, log, stacks)
	return printInventory(cmd.OutOrStdout(), format, stacks)
}

// stackDocument is the machine-readable projection of a reconciled stack.
// Zero timestamps are omitted rather than rendered as the epoch.
type stackDocument struct {
	FullName    string            `json:"fullName" yaml:"fullName"`
	DisplayName string            `json:"displayName" yaml:"displayName"`
	Status      string            `json:"status" yaml:"status"`
	RawStatus   string            `json:"rawStatus,omitempty" yaml:"rawStatus,omitempty"`
	StackID     string            `json:"stackId,omitempty" yaml:"stackId,omitempty"`
	CreatedAt   *time.Time        `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	LookupError string            `json:"lookupError,omitempty" yaml:"lookupError,omitempty"`
}

func stackDocuments(stacks []inventory.ReconciledStack) []stackDocument {
	docs := make([]stackDocument, 0, len(stacks))
	for _, st := range stacks {
		doc := stackDocument{
			FullName:    st.FullName,
			DisplayName: st.DisplayName,
			Status:      st.Status.String(),
			RawStatus:   st.RawStatus,
			StackID:     st.StackID,
			Description: st.Description,
			Tags:        st.Tags,
		}
		if !st.CreatedAt.IsZero() {
			t := st.CreatedAt
			doc.CreatedAt = &t
		}
		if !st.UpdatedAt.IsZero() {
			t := st.UpdatedAt
			doc.UpdatedAt = &t
		}
		if st.LookupErr != nil {
			doc.LookupError = st.LookupErr.Error()
		}
		docs = append(docs, doc)
	}
	return docs
}

func printInventory(w io.Writer, format string, stacks []inventory.ReconciledStack) error {
	switch format {
	case "table":
		return ui.RenderInventoryTable(w, stacks)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stackDocuments(stacks))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(stackDocuments(stacks)); err != nil {
			return err
		}
		return enc.Close()
	case "names":
		for _, st := range stacks {
			fmt.Fprintln(w, st.FullName)
		}
		return nil
	}
	return fmt.Errorf("unhandled output format %q", format)
}

// printInventoryChanges diffs the current inventory against the latest
// recorded snapshot, then records the current one as the new baseline. The
// store is required here: without it there is nothing to diff against.
func printInventoryChanges(cmd *cobra.Command, cfg *config.Options, stacks []inventory.ReconciledStack) error {
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	current := snapshotEntries(stacks)
	previous, takenAt, err := store.LatestSnapshot(ctx)
	if errors.Is(err, history.ErrNoSnapshot) {
		if _, err := store.SaveSnapshot(ctx, current); err != nil {
			return err
		}
		fmt.Fprintln(out, "No previous inventory snapshot; recorded this one as the baseline.")
		return nil
	}
	if err != nil {
		return err
	}
	diff, err := history.DiffSnapshots(previous, current, takenAt)
	if err != nil {
		return err
	}
	if _, err := store.SaveSnapshot(ctx, current); err != nil {
		return err
	}
	if diff == "" {
		fmt.Fprintf(out, "No inventory changes since %s.\n", takenAt.Local().Format("2006-01-02 15:04"))
		return nil
	}
	fmt.Fprint(out, diff)
	return nil
}
