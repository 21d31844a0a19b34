// root.go assembles the cdki command tree and the setup shared by every run.
package main

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/cdk"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/cfn"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/config"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/history"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/inventory"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/logging"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/ui"
)

func newRootCommand() *cobra.Command {
	opts := config.NewOptions()
	var configPath string
	cmd := &cobra.Command{
		Use:   "cdki",
		Short: "Interactive deploy and destroy for AWS CDK stacks",
		Long: "cdki reconciles the stacks declared by a CDK app against CloudFormation\n" +
			"and drives batched deploys and destroys from an interactive terminal picker.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to an explicit cdki config file")
	opts.BindFlags(cmd.PersistentFlags())

	listCmd := newListCommand(opts)
	deployCmd := newDeployCommand(opts)
	destroyCmd := newDestroyCommand(opts)
	historyCmd := newHistoryCommand(opts)
	guideCmd := newGuideCommand()
	versionCmd := newVersionCommand()
	cmd.AddCommand(listCmd, deployCmd, destroyCmd, historyCmd, guideCmd, versionCmd)

	cmd.Example = `  # Pick stacks to deploy or destroy interactively
  cdki

  # Reconciled inventory for scripts
  cdki list --output json

  # Deploy everything matching a pattern without prompts
  CDKI_YES=1 cdki deploy --match 'api-*'`

	bindViper(&configPath, cmd, listCmd, deployCmd, destroyCmd, historyCmd, guideCmd, versionCmd)
	return cmd
}

// setupCommand finalizes the shared options after flag parsing and builds
// the process logger.
func setupCommand(opts *config.Options) (logr.Logger, error) {
	if err := opts.Validate(); err != nil {
		return logr.Logger{}, err
	}
	switch opts.ColorMode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
	return logging.New(opts.LogLevel)
}

func newRunner(cfg *config.Options, log logr.Logger) *cdk.Runner {
	return &cdk.Runner{
		Command: cfg.CDKCommand,
		Dir:     cfg.App,
		Profile: cfg.Profile,
		Region:  cfg.Region,
		In:      os.Stdin,
		Out:     os.Stdout,
		Err:     os.Stderr,
		Log:     log,
	}
}

// loadInventory lists the app's stacks and reconciles each against
// CloudFormation. Listing failures abort the caller; per-stack lookup
// failures come back as Unknown rows and never do.
func loadInventory(ctx context.Context, cfg *config.Options, log logr.Logger) ([]inventory.ReconciledStack, error) {
	var stop func(bool)
	if ui.IsTerminalWriter(os.Stderr) {
		stop = ui.StartSpinner(os.Stderr, "Reconciling stack status")
	}
	stacks, err := reconcileInventory(ctx, cfg, log)
	if stop != nil {
		stop(err == nil)
	}
	return stacks, err
}

func reconcileInventory(ctx context.Context, cfg *config.Options, log logr.Logger) ([]inventory.ReconciledStack, error) {
	declared, err := newRunner(cfg, log).List(ctx)
	if err != nil {
		return nil, err
	}
	client, err := cfn.NewClient(ctx, cfn.Options{Profile: cfg.Profile, Region: cfg.Region})
	if err != nil {
		return nil, err
	}
	lookup := cfn.NewStore(client)
	reconciled := inventory.Reconcile(ctx, declared, lookup.Lookup, inventory.ReconcileOptions{Concurrency: cfg.Concurrency})
	log.V(1).Info("reconciled inventory", "stacks", len(reconciled))
	return reconciled, nil
}

func openHistory(cfg *config.Options) (*history.Store, error) {
	path := cfg.HistoryPath
	if path == "" {
		p, err := history.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return history.Open(path)
}

// recordSnapshot stores the reconciled inventory for later `list --changes`
// comparisons. The history store is an observer: failures are logged and
// never interrupt the session.
func recordSnapshot(ctx context.Context, cfg *config.Options, log logr.Logger, stacks []inventory.ReconciledStack) {
	store, err := openHistory(cfg)
	if err != nil {
		log.V(1).Info("history store unavailable", "reason", err.Error())
		return
	}
	defer store.Close()
	if _, err := store.SaveSnapshot(ctx, snapshotEntries(stacks)); err != nil {
		log.Error(err, "failed to record inventory snapshot")
	}
}

func snapshotEntries(stacks []inventory.ReconciledStack) []history.SnapshotEntry {
	out := make([]history.SnapshotEntry, 0, len(stacks))
	for _, st := range stacks {
		out = append(out, history.SnapshotEntry{FullName: st.FullName, Status: st.Status.String()})
	}
	return out
}
