// File: internal/cdk/runner.go
// Brief: CDK toolkit subprocess invocation: stack listing and batch execution.

package cdk

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/go-logr/logr"
	shellwords "github.com/mattn/go-shellwords"
	"github.com/pkg/errors"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/inventory"
)

type Verb string

const (
	VerbDeploy  Verb = "deploy"
	VerbDestroy Verb = "destroy"
)

// Runner shells out to the CDK toolkit. Command is a template, not a bare
// binary, so credential wrappers work unchanged:
// `npx cdk`, `aws-vault exec prod -- npx cdk`.
type Runner struct {
	Command string
	Dir     string
	Profile string
	Region  string

	In  io.Reader
	Out io.Writer
	Err io.Writer

	Log logr.Logger
}

// List obtains the declared stacks, in declared order. Any failure here is
// fatal to the caller: with no listing there is nothing to reconcile.
func (r *Runner) List(ctx context.Context) ([]inventory.DeclaredStack, error) {
	argv, err := r.commandLine("list", nil)
	if err != nil {
		return nil, err
	}
	r.Log.V(1).Info("listing stacks", "argv", argv)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Env = r.env()
	cmd.Stdout = &stdout
	// Synth chatter on stderr is buffered, not streamed: the caller may be
	// animating a spinner, and on success the chatter is noise.
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := lastNonEmptyLine(stderr.String()); msg != "" {
			return nil, errors.Wrapf(err, "failed to list stacks: %s", msg)
		}
		return nil, errors.Wrap(err, "failed to list stacks")
	}

	declared := inventory.ParseListing(stdout.String())
	if len(declared) == 0 {
		return nil, errors.Errorf("no stacks found in listing output (%d bytes)", stdout.Len())
	}
	return declared, nil
}

// Execute dispatches one batched deploy or destroy covering every selected
// stack. A single subprocess call keeps the toolkit's dependency-aware
// parallelization across the batch; per-stack outcomes are not reported
// back, only the aggregate exit status. No context and no timeout: once
// dispatched, the operation runs to process exit.
func (r *Runner) Execute(verb Verb, stacks []string) error {
	if len(stacks) == 0 {
		return errors.New("refusing to dispatch an empty batch")
	}
	argv, err := r.commandLine(string(verb), stacks)
	if err != nil {
		return err
	}
	r.Log.V(1).Info("dispatching batch", "verb", verb, "stacks", len(stacks), "argv", argv)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Env = r.env()
	cmd.Stdin = r.In
	cmd.Stdout = r.Out
	cmd.Stderr = r.Err
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "%s batch of %d stacks failed", verb, len(stacks))
	}
	return nil
}

// commandLine expands the command template and appends the subcommand, the
// stack names, and the flags that keep a batch non-interactive.
func (r *Runner) commandLine(sub string, stacks []string) ([]string, error) {
	template := r.Command
	if template == "" {
		template = "cdk"
	}
	argv, err := shellwords.Parse(template)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse cdk command %q", template)
	}
	if len(argv) == 0 {
		return nil, errors.Errorf("cdk command %q parsed to nothing", template)
	}
	argv = append(argv, sub)
	argv = append(argv, stacks...)
	switch Verb(sub) {
	case VerbDeploy:
		// Approval already happened in the session; the toolkit must not
		// stop the batch to ask again.
		argv = append(argv, "--require-approval", "never")
	case VerbDestroy:
		argv = append(argv, "--force")
	}
	return argv, nil
}

// lastNonEmptyLine pulls the most recent line of toolkit stderr so listing
// failures carry the actual complaint, not just an exit status.
func lastNonEmptyLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

func (r *Runner) env() []string {
	env := os.Environ()
	if r.Profile != "" {
		env = append(env, "AWS_PROFILE="+r.Profile)
	}
	if r.Region != "" {
		env = append(env, "AWS_REGION="+r.Region)
	}
	return env
}
