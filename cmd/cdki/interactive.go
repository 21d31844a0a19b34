// interactive.go drives the default cdki session: reconcile, show the inventory, pick an action and stacks, dispatch, repeat.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/cdk"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/config"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/inventory"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/picker"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/ui"
)

type menuAction string

const (
	actionDeploy  menuAction = "deploy"
	actionDestroy menuAction = "destroy"
	actionRefresh menuAction = "refresh"
	actionQuit    menuAction = "quit"
)

func runInteractive(cmd *cobra.Command, opts *config.Options) error {
	log, err := setupCommand(opts)
	if err != nil {
		return err
	}
	if !ui.IsTerminalReader(os.Stdin) || !ui.IsTerminalWriter(os.Stdout) {
		return errors.New("interactive mode needs a terminal; use 'cdki list' or 'cdki deploy --match' in scripts")
	}
	ctx := cmd.Context()
	for {
		stacks, err := loadInventory(ctx, opts, log)
		if err != nil {
			return err
		}
		recordSnapshot(ctx, opts, log, stacks)
		fmt.Println()
		if err := ui.RenderInventoryTable(os.Stdout, stacks); err != nil {
			return err
		}
		fmt.Println()
		action, err := pickAction()
		if err != nil {
			return err
		}
		switch action {
		case actionQuit:
			return nil
		case actionRefresh:
			continue
		case actionDeploy:
			if err := interactiveBatch(cmd, opts, log, cdk.VerbDeploy, stacks); err != nil {
				return err
			}
		case actionDestroy:
			if err := interactiveBatch(cmd, opts, log, cdk.VerbDestroy, stacks); err != nil {
				return err
			}
		}
	}
}

// pickAction runs the single-select menu. Confirming with the list filtered
// down to nothing yields no result; the menu is simply shown again.
func pickAction() (menuAction, error) {
	items := []picker.Item{
		{Label: "Deploy stacks", Value: string(actionDeploy)},
		{Label: "Destroy stacks", Value: string(actionDestroy)},
		{Label: "Refresh status", Value: string(actionRefresh)},
		{Label: "Quit", Value: string(actionQuit)},
	}
	for {
		picked, err := picker.Run(picker.NewStdioSession("cdki: choose an action"), picker.ModeSingle, items)
		if err != nil {
			return "", err
		}
		if len(picked) == 0 {
			continue
		}
		return menuAction(picked[0]), nil
	}
}

// pickStacks runs the multi-select over the reconciled inventory. Labels
// carry the bare status glyph, no color codes: label width is measured in
// cells and escape sequences would be counted.
func pickStacks(verb cdk.Verb, stacks []inventory.ReconciledStack) ([]string, error) {
	items := make([]picker.Item, 0, len(stacks))
	for _, st := range stacks {
		items = append(items, picker.Item{
			Label: fmt.Sprintf("%s %s", ui.StyleFor(st.Status).Glyph, st.FullName),
			Value: st.FullName,
		})
	}
	title := fmt.Sprintf("Select stacks to %s", verb)
	return picker.Run(picker.NewStdioSession(title), picker.ModeMulti, items)
}

// interactiveBatch runs one deploy/destroy round inside the session. A
// declined confirmation, a policy denial, or a failed dispatch all come
// back to the menu; only interrupts and setup failures end the session.
func interactiveBatch(cmd *cobra.Command, opts *config.Options, log logr.Logger, verb cdk.Verb, stacks []inventory.ReconciledStack) error {
	ctx := cmd.Context()
	picked, err := pickStacks(verb, stacks)
	if err != nil {
		return err
	}
	if len(picked) == 0 {
		fmt.Println("Nothing selected.")
		return nil
	}
	selection := selectByName(stacks, picked)
	printBatchPlan(os.Stdout, verb, selection)
	dec := approvalDecision{Approved: approvedFromEnv(), InteractiveTTY: true}
	if err := confirmBatch(ctx, cmd.InOrStdin(), os.Stderr, dec, verb, len(selection)); err != nil {
		if errors.Is(err, errAborted) {
			fmt.Println("Aborted.")
			return nil
		}
		return err
	}
	if err := checkPolicy(ctx, opts, log, verb, selection); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
		return nil
	}
	fmt.Println()
	if err := dispatchBatch(ctx, opts, log, verb, fullNames(selection)); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
		fmt.Fprintln(os.Stderr, batchResultLimitation)
		return nil
	}
	return nil
}

// selectByName maps confirmed picker values back onto the reconciled
// inventory, preserving declared order.
func selectByName(stacks []inventory.ReconciledStack, names []string) []inventory.ReconciledStack {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	out := make([]inventory.ReconciledStack, 0, len(names))
	for _, st := range stacks {
		if _, ok := want[st.FullName]; ok {
			out = append(out, st)
		}
	}
	return out
}
