// deploy.go wires 'cdki deploy', the scripted batch-deploy command.
package main

import (
	"github.com/spf13/cobra"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/cdk"
	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/config"
)

func newDeployCommand(opts *config.Options) *cobra.Command {
	fl := &batchFlags{}
	cmd := &cobra.Command{
		Use:   "deploy [STACK...]",
		Short: "Deploy declared stacks as one batched toolkit run",
		Long: `Deploy resolves the named stacks (or --match patterns) against the
reconciled inventory and hands them to a single 'cdk deploy' invocation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, opts, cdk.VerbDeploy, args, fl)
		},
	}
	bindBatchFlags(cmd, fl)
	return cmd
}
