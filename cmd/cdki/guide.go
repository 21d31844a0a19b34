// guide.go renders the embedded usage guide, styled for the terminal when one is attached.
package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/ui"
)

//go:embed guide.md
var guideMarkdown string

func newGuideCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "guide",
		Short:         "Show the cdki usage guide",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGuide(cmd)
		},
	}
}

func runGuide(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	if !ui.IsTerminalWriter(os.Stdout) {
		fmt.Fprint(out, guideMarkdown)
		return nil
	}
	width, ok := ui.TerminalWidth(os.Stdout)
	if !ok || width <= 0 || width > 120 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return err
	}
	rendered, err := r.Render(guideMarkdown)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}
