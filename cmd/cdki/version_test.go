package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/buildinfo"
)

func TestVersionLine(t *testing.T) {
	cases := []struct {
		info buildinfo.Info
		want string
	}{
		{buildinfo.Info{Version: "v0.3.0", GitCommit: "abc1234", BuildDate: "2026-08-01"}, "cdki v0.3.0 (abc1234, 2026-08-01)"},
		{buildinfo.Info{Version: "v0.3.0", GitCommit: "abc1234", BuildDate: "unknown"}, "cdki v0.3.0 (abc1234)"},
		{buildinfo.Info{Version: "v0.3.0", GitCommit: "", BuildDate: "2026-08-01"}, "cdki v0.3.0 (2026-08-01)"},
		{buildinfo.Info{Version: "dev", GitCommit: "unknown", BuildDate: "unknown"}, "cdki dev"},
	}
	for _, c := range cases {
		if got := versionLine(c.info); got != c.want {
			t.Fatalf("versionLine(%+v)=%q want=%q", c.info, got, c.want)
		}
	}
}

func TestVersionCommandPrintsVersion(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cdki.yaml")
	if err := os.WriteFile(cfgPath, []byte("{}\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CDKI_CONFIG", cfgPath)

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"version"})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := out.String(); !strings.HasPrefix(got, "cdki ") {
		t.Fatalf("expected version line, got: %q", got)
	}
}
