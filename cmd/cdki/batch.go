// batch.go carries a confirmed stack selection through policy checks, the batched toolkit dispatch, and the history record; both the interactive session and the deploy/destroy commands end up here.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/moby/patternmatcher"
	"github.com/spf13/cobra"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/cdk"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/config"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/guard"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/inventory"
)

type batchFlags struct {
	matches        []string
	all            bool
	yes            bool
	nonInteractive bool
}

func bindBatchFlags(cmd *cobra.Command, fl *batchFlags) {
	cmd.Flags().StringArrayVar(&fl.matches, "match", nil, "Glob pattern of stacks to include (repeat to OR multiple)")
	cmd.Flags().BoolVar(&fl.all, "all", false, "Target every declared stack")
	cmd.Flags().BoolVar(&fl.yes, "yes", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&fl.nonInteractive, "non-interactive", false, "Fail instead of prompting when confirmation is needed")
}

// runBatch is the scripted deploy/destroy path: resolve targets from args
// and flags, confirm, check policy, dispatch once.
func runBatch(cmd *cobra.Command, opts *config.Options, verb cdk.Verb, args []string, fl *batchFlags) error {
	log, err := setupCommand(opts)
	if err != nil {
		return err
	}
	if len(args) == 0 && len(fl.matches) == 0 && !fl.all {
		return fmt.Errorf("nothing to %s: name stacks, use --match, or pass --all", verb)
	}
	ctx := cmd.Context()
	stacks, err := loadInventory(ctx, opts, log)
	if err != nil {
		return err
	}
	recordSnapshot(ctx, opts, log, stacks)
	selection, err := resolveTargets(stacks, args, fl.matches, fl.all)
	if err != nil {
		return err
	}
	if len(selection) == 0 {
		return fmt.Errorf("no declared stacks match the requested targets")
	}
	printBatchPlan(cmd.OutOrStdout(), verb, selection)
	dec, err := approvalMode(cmd, fl.yes, fl.nonInteractive)
	if err != nil {
		return err
	}
	if err := confirmBatch(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), dec, verb, len(selection)); err != nil {
		return err
	}
	if err := checkPolicy(ctx, opts, log, verb, selection); err != nil {
		return err
	}
	if err := dispatchBatch(ctx, opts, log, verb, fullNames(selection)); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), batchResultLimitation)
		return err
	}
	return nil
}

// The toolkit exits once for the whole batch, so a failure cannot be pinned
// on a particular stack. Operators are told so instead of being left to
// assume everything failed.
const batchResultLimitation = "The toolkit reports one result for the whole batch; check the output above for which stacks completed."

// resolveTargets maps names and patterns onto the reconciled inventory,
// preserving declared order. Names resolve against both the full and the
// display name; patterns are dockerignore-style globs.
func resolveTargets(stacks []inventory.ReconciledStack, names []string, patterns []string, all bool) ([]inventory.ReconciledStack, error) {
	if all {
		return stacks, nil
	}
	byName := make(map[string]int, len(stacks)*2)
	for i, st := range stacks {
		byName[st.FullName] = i
		if _, ok := byName[st.DisplayName]; !ok {
			byName[st.DisplayName] = i
		}
	}
	want := make(map[int]struct{})
	for _, name := range names {
		idx, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown stack %q (try 'cdki list --output names')", name)
		}
		want[idx] = struct{}{}
	}
	if len(patterns) > 0 {
		for i, st := range stacks {
			matched, err := matchesAny(st, patterns)
			if err != nil {
				return nil, err
			}
			if matched {
				want[i] = struct{}{}
			}
		}
	}
	out := make([]inventory.ReconciledStack, 0, len(want))
	for i, st := range stacks {
		if _, ok := want[i]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

func matchesAny(st inventory.ReconciledStack, patterns []string) (bool, error) {
	matched, err := patternmatcher.MatchesOrParentMatches(st.FullName, patterns)
	if err != nil {
		return false, fmt.Errorf("invalid --match pattern: %w", err)
	}
	if matched {
		return true, nil
	}
	matched, err = patternmatcher.MatchesOrParentMatches(st.DisplayName, patterns)
	if err != nil {
		return false, fmt.Errorf("invalid --match pattern: %w", err)
	}
	return matched, nil
}

func printBatchPlan(w io.Writer, verb cdk.Verb, selection []inventory.ReconciledStack) {
	fmt.Fprintf(w, "About to %s %d stacks:\n", verb, len(selection))
	inProgress := 0
	for _, st := range selection {
		fmt.Fprintf(w, "  %s\n", st.FullName)
		if st.Status.InProgress() {
			inProgress++
		}
	}
	if inProgress > 0 {
		color.New(color.FgYellow).Fprintf(w, "%d of them are mid-operation in CloudFormation; the toolkit may wait or fail.\n", inProgress)
	}
}

func confirmBatch(ctx context.Context, in io.Reader, out io.Writer, dec approvalDecision, verb cdk.Verb, count int) error {
	if verb == cdk.VerbDestroy {
		prompt := fmt.Sprintf("Type 'destroy' to tear down %d stacks:", count)
		return confirmAction(ctx, in, out, dec, prompt, confirmModeExact, "destroy")
	}
	prompt := fmt.Sprintf("Deploy %d stacks? (yes/no):", count)
	return confirmAction(ctx, in, out, dec, prompt, confirmModeYes, "")
}

// checkPolicy evaluates the configured policy bundle against the batch. No
// policy dir configured means no policy. A broken bundle blocks the batch
// rather than silently waving it through.
func checkPolicy(ctx context.Context, cfg *config.Options, log logr.Logger, verb cdk.Verb, selection []inventory.ReconciledStack) error {
	if cfg.PolicyDir == "" {
		return nil
	}
	bundle, err := guard.LoadBundle(cfg.PolicyDir)
	if err != nil {
		return err
	}
	input := guard.BatchInput{Verb: string(verb), Count: len(selection)}
	for _, st := range selection {
		input.Stacks = append(input.Stacks, guard.StackInput{FullName: st.FullName, Status: st.Status.String()})
	}
	rep, err := guard.Evaluate(ctx, bundle, guard.Mode(cfg.PolicyMode), input)
	if err != nil {
		return err
	}
	warnColor := color.New(color.FgYellow)
	for _, v := range rep.Warn {
		warnColor.Fprintf(os.Stderr, "policy warning: %s\n", violationText(v))
	}
	if !rep.Passed && !rep.Blocking() {
		for _, v := range rep.Deny {
			warnColor.Fprintf(os.Stderr, "policy deny (warn mode): %s\n", violationText(v))
		}
	}
	if rep.Blocking() {
		denyColor := color.New(color.FgRed)
		for _, v := range rep.Deny {
			denyColor.Fprintf(os.Stderr, "policy violation: %s\n", violationText(v))
		}
		return fmt.Errorf("policy blocked the %s batch (%d violations)", verb, rep.DenyCount)
	}
	log.V(1).Info("policy evaluated", "deny", rep.DenyCount, "warn", rep.WarnCount)
	return nil
}

func violationText(v guard.Violation) string {
	switch {
	case v.Code != "" && v.Subject != "":
		return fmt.Sprintf("[%s] %s (%s)", v.Code, v.Message, v.Subject)
	case v.Code != "":
		return fmt.Sprintf("[%s] %s", v.Code, v.Message)
	case v.Subject != "":
		return fmt.Sprintf("%s (%s)", v.Message, v.Subject)
	default:
		return v.Message
	}
}

// dispatchBatch runs one batched toolkit invocation and records it. The
// batch row is written before exec so an interrupted process still leaves
// a trace; the store never fails the dispatch.
func dispatchBatch(ctx context.Context, cfg *config.Options, log logr.Logger, verb cdk.Verb, names []string) error {
	store, err := openHistory(cfg)
	if err != nil {
		log.V(1).Info("history store unavailable", "reason", err.Error())
	}
	var batchID int64 = -1
	if store != nil {
		defer store.Close()
		if id, err := store.BeginBatch(ctx, string(verb), names); err != nil {
			log.Error(err, "failed to record batch start")
		} else {
			batchID = id
		}
	}

	execErr := newRunner(cfg, log).Execute(verb, names)

	if store != nil && batchID >= 0 {
		errText := ""
		if execErr != nil {
			errText = execErr.Error()
		}
		// The result is recorded even when the surrounding context was
		// canceled mid-run.
		if err := store.FinishBatch(context.WithoutCancel(ctx), batchID, execErr == nil, errText); err != nil {
			log.Error(err, "failed to record batch result")
		}
	}
	if execErr != nil {
		return execErr
	}
	fmt.Printf("%s batch of %d stacks completed.\n", verbTitle(verb), len(names))
	return nil
}

func verbTitle(verb cdk.Verb) string {
	if verb == cdk.VerbDestroy {
		return "Destroy"
	}
	return "Deploy"
}

func fullNames(stacks []inventory.ReconciledStack) []string {
	out := make([]string, 0, len(stacks))
	for _, st := range stacks {
		out = append(out, st.FullName)
	}
	return out
}
