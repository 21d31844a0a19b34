// Package guard evaluates operator-supplied rego policies against a batch
// before it is dispatched to the CDK toolkit. Policies live in a plain
// directory; no directory configured means no guard.
package guard

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode controls what a deny violation does to the batch: enforce blocks the
// dispatch, warn prints the violation and lets the batch through.
type Mode string

const (
	ModeEnforce Mode = "enforce"
	ModeWarn    Mode = "warn"
)

// Bundle is a directory of rego modules plus optional static data read from
// a data.json file at its root. The data is merged into every evaluation
// input under the "data" key.
type Bundle struct {
	Dir  string
	Data map[string]any
}

func LoadBundle(dir string) (*Bundle, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("policy dir is required")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat policy dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("policy path %s is not a directory", dir)
	}
	data, err := readBundleData(filepath.Join(dir, "data.json"))
	if err != nil {
		return nil, err
	}
	return &Bundle{Dir: dir, Data: data}, nil
}

func readBundleData(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse data.json: %w", err)
	}
	return out, nil
}
