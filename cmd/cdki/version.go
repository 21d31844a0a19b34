package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/buildinfo"
)

func newVersionCommand() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:           "version",
		Short:         "Print version information",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildinfo.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), versionLine(info))
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print just the version number")
	return cmd
}

// versionLine renders "cdki v0.3.0 (abc1234, 2026-08-01)", dropping the
// parenthetical when the build carries no commit or date.
func versionLine(info buildinfo.Info) string {
	line := "cdki " + info.Version
	var meta []string
	if info.GitCommit != "" && info.GitCommit != "unknown" {
		meta = append(meta, info.GitCommit)
	}
	if info.BuildDate != "" && info.BuildDate != "unknown" {
		meta = append(meta, info.BuildDate)
	}
	if len(meta) > 0 {
		line += " (" + strings.Join(meta, ", ") + ")"
	}
	return line
}
