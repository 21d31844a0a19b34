// destroy.go wires 'cdki destroy', the scripted batch-destroy command with its exact-token confirmation.
package main

import (
	"github.com/spf13/cobra"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/cdk"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/config"
)

func newDestroyCommand(opts *config.Options) *cobra.Command {
	fl := &batchFlags{}
	cmd := &cobra.Command{
		Use:   "destroy [STACK...]",
		Short: "Destroy declared stacks after an exact confirmation",
		Long: `Destroy resolves the named stacks (or --match patterns) against the
reconciled inventory and hands them to a single 'cdk destroy' invocation.
Unless --yes is given, the prompt requires typing 'destroy' verbatim.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, cdk.VerbDestroy, args, fl)
		},
	}
	bindBatchFlags(cmd, fl)
	return cmd
}
