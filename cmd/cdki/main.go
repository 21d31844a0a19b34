// main.go bootstraps cdki: it builds the root Cobra command and executes it with a signal-aware context.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/aws/smithy-go"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/picker"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	handleError(err)
	if err != nil {
		if interrupted(ctx, err) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// interrupted distinguishes an operator abort from an ordinary failure so
// the process can exit 130 the way shells expect.
func interrupted(ctx context.Context, err error) bool {
	if errors.Is(err, picker.ErrInterrupted) || errors.Is(err, context.Canceled) {
		return true
	}
	return ctx.Err() != nil
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	switch {
	case errors.Is(err, context.Canceled):
		message = "interrupted"
	case errors.Is(err, exec.ErrNotFound):
		message = fmt.Sprintf("%s\nHint: the CDK toolkit was not found. Install it (npm install -g aws-cdk) or point --cdk-command at it.", err)
	case isCredentialError(err):
		message = fmt.Sprintf("%s\nHint: AWS credentials were rejected or expired. Refresh them (aws sso login, aws-vault exec) or check --profile.", err)
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

func isCredentialError(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "ExpiredToken", "ExpiredTokenException", "InvalidClientTokenId",
		"UnrecognizedClientException", "AccessDenied", "AccessDeniedException":
		return true
	}
	return false
}

func bindViper(configPath *string, commands ...*cobra.Command) {
	if len(commands) == 0 {
		return
	}
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("CDKI")
	v.AutomaticEnv()

	cobra.OnInitialize(func() {
		explicit := strings.TrimSpace(*configPath)
		if explicit == "" {
			explicit = strings.TrimSpace(os.Getenv("CDKI_CONFIG"))
		}
		configureConfigFile(v, explicit)
		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				cobra.CheckErr(err)
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				cobra.CheckErr(err)
			}
		}
		if err := readConfigFile(v, explicit != ""); err != nil {
			cobra.CheckErr(err)
		}
		for _, cmd := range commands {
			flagSets := []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()}
			for _, fs := range flagSets {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed {
						return
					}
					if !v.IsSet(f.Name) {
						return
					}
					val := fmt.Sprintf("%v", v.Get(f.Name))
					if val != "" {
						_ = f.Value.Set(val)
					}
				})
			}
		}
	})
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName("cdki")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
	added := make(map[string]struct{})
	var dirs []string
	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := added[path]; ok {
			return
		}
		added[path] = struct{}{}
		dirs = append(dirs, path)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		add(filepath.Join(xdg, "cdki"))
	}
	if home, err := homedir.Dir(); err == nil && home != "" {
		add(filepath.Join(home, ".config", "cdki"))
		add(filepath.Join(home, ".cdki"))
	}
	return dirs
}
