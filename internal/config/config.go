// File: internal/config/config.go
// Brief: Shared CLI options: flag binding, defaults, validation.

// Package config defines the flag plumbing and runtime options shared by all
// cdki commands, translating Cobra/Viper flag values into a strongly typed
// struct that the inventory and dispatch paths consume.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Options holds the CLI configuration shared by every cdki command.
type Options struct {
	App         string
	CDKCommand  string
	Profile     string
	Region      string
	Concurrency int
	ColorMode   string
	LogLevel    string
	HistoryPath string
	PolicyDir   string
	PolicyMode  string
}

const defaultCDKCommand = "cdk"
const defaultConcurrency = 8

// NewOptions returns Options with defaults applied.
func NewOptions() *Options {
	return &Options{
		CDKCommand:  defaultCDKCommand,
		Concurrency: defaultConcurrency,
		ColorMode:   "auto",
		LogLevel:    "info",
		PolicyMode:  "enforce",
	}
}

// AddFlags binds the shared configuration flags to the provided Cobra command.
func (o *Options) AddFlags(cmd *cobra.Command) {
	o.BindFlags(cmd.PersistentFlags())
}

// BindFlags attaches the shared flags to an arbitrary FlagSet and returns the
// flag names for further customization.
func (o *Options) BindFlags(fs *pflag.FlagSet) []string {
	var names []string
	fs.StringVar(&o.App, "app", "", "Directory of the CDK app (defaults to the working directory)")
	names = append(names, "app")
	fs.StringVar(&o.CDKCommand, "cdk-command", defaultCDKCommand, "Command used to run the CDK toolkit, e.g. \"npx cdk\" or \"aws-vault exec prod -- npx cdk\"")
	names = append(names, "cdk-command")
	fs.StringVar(&o.Profile, "profile", "", "AWS profile used for CloudFormation lookups and passed to the CDK toolkit")
	names = append(names, "profile")
	fs.StringVar(&o.Region, "region", "", "AWS region override")
	names = append(names, "region")
	fs.IntVar(&o.Concurrency, "concurrency", defaultConcurrency, "Maximum concurrent CloudFormation status lookups")
	names = append(names, "concurrency")
	fs.StringVar(&o.ColorMode, "color", "auto", "Force set color output. 'auto': colorize if tty attached, 'always': always colorize, 'never': never colorize")
	names = append(names, "color")
	fs.StringVar(&o.LogLevel, "log-level", "info", "Log verbosity: debug, info, warn, or error")
	names = append(names, "log-level")
	fs.StringVar(&o.HistoryPath, "history-path", "", "Path of the sqlite batch history (defaults to ~/.local/share/cdki/history.db)")
	names = append(names, "history-path")
	fs.StringVar(&o.PolicyDir, "policy-dir", "", "Directory of rego policies evaluated before every dispatch")
	names = append(names, "policy-dir")
	fs.StringVar(&o.PolicyMode, "policy-mode", "enforce", "What a policy deny does: 'enforce' blocks the batch, 'warn' prints and continues")
	names = append(names, "policy-mode")
	return names
}

// Validate ensures provided options are coherent and normalizes enum values.
func (o *Options) Validate() error {
	o.App = strings.TrimSpace(o.App)
	o.Profile = strings.TrimSpace(o.Profile)
	o.Region = strings.TrimSpace(o.Region)
	o.CDKCommand = strings.TrimSpace(o.CDKCommand)
	if o.CDKCommand == "" {
		o.CDKCommand = defaultCDKCommand
	}
	if o.Concurrency <= 0 {
		return fmt.Errorf("--concurrency must be positive, got %d", o.Concurrency)
	}
	switch strings.ToLower(o.ColorMode) {
	case "", "auto":
		o.ColorMode = "auto"
	case "always":
		o.ColorMode = "always"
	case "never":
		o.ColorMode = "never"
	default:
		return fmt.Errorf("invalid --color value %q (allowed: auto, always, never)", o.ColorMode)
	}
	switch strings.ToLower(o.PolicyMode) {
	case "", "enforce":
		o.PolicyMode = "enforce"
	case "warn":
		o.PolicyMode = "warn"
	default:
		return fmt.Errorf("invalid --policy-mode value %q (allowed: enforce, warn)", o.PolicyMode)
	}
	o.PolicyDir = strings.TrimSpace(o.PolicyDir)
	o.HistoryPath = strings.TrimSpace(o.HistoryPath)
	return nil
}
