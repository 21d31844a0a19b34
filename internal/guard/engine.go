package guard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/open-policy-agent/opa/rego"
)

// batchQuery is the document every policy bundle is evaluated as. Policies
// contribute deny[msg] and warn[msg] rules under package cdki.batch.
const batchQuery = "data.cdki.batch"

// StackInput is one stack of the batch as policies see it.
type StackInput struct {
	FullName string `json:"fullName"`
	Status   string `json:"status"`
}

// BatchInput is the input document passed to the policy query.
type BatchInput struct {
	Verb   string         `json:"verb"`
	Stacks []StackInput   `json:"stacks"`
	Count  int            `json:"count"`
	Data   map[string]any `json:"data,omitempty"`
}

type Violation struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Subject string `json:"subject,omitempty"`
}

type Report struct {
	PolicyDir   string      `json:"policyDir,omitempty"`
	Mode        Mode        `json:"mode"`
	Passed      bool        `json:"passed"`
	DenyCount   int         `json:"denyCount"`
	WarnCount   int         `json:"warnCount"`
	Deny        []Violation `json:"deny,omitempty"`
	Warn        []Violation `json:"warn,omitempty"`
	EvaluatedAt time.Time   `json:"evaluatedAt"`
}

// Blocking reports whether the evaluated batch must not be dispatched.
func (r *Report) Blocking() bool {
	return r.Mode == ModeEnforce && r.DenyCount > 0
}

func Evaluate(ctx context.Context, bundle *Bundle, mode Mode, input BatchInput) (*Report, error) {
	if bundle == nil {
		return nil, errors.New("policy bundle is required")
	}
	if mode != ModeWarn {
		mode = ModeEnforce
	}
	input.Data = bundle.Data
	modules, err := loadRegoModules(bundle.Dir)
	if err != nil {
		return nil, err
	}
	opts := []func(*rego.Rego){
		rego.Query(batchQuery),
		rego.Input(input),
	}
	for name, src := range modules {
		opts = append(opts, rego.Module(name, src))
	}
	rs, err := rego.New(opts...).Eval(ctx)
	if err != nil {
		return nil, err
	}
	out := &Report{
		PolicyDir:   bundle.Dir,
		Mode:        mode,
		Passed:      true,
		EvaluatedAt: time.Now().UTC(),
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return out, nil
	}
	obj, ok := rs[0].Expressions[0].Value.(map[string]any)
	if !ok {
		return out, nil
	}
	if deny, ok := obj["deny"]; ok {
		out.Deny = parseViolations(deny)
	}
	if warn, ok := obj["warn"]; ok {
		out.Warn = parseViolations(warn)
	}
	out.DenyCount = len(out.Deny)
	out.WarnCount = len(out.Warn)
	out.Passed = out.DenyCount == 0
	return out, nil
}

func parseViolations(v any) []Violation {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Violation, 0, len(list))
	for _, entry := range list {
		switch t := entry.(type) {
		case string:
			out = append(out, Violation{Message: t})
		case map[string]any:
			viol := Violation{}
			if s, ok := t["message"].(string); ok {
				viol.Message = s
			}
			if s, ok := t["code"].(string); ok {
				viol.Code = s
			}
			if s, ok := t["subject"].(string); ok {
				viol.Subject = s
			}
			if viol.Message == "" {
				viol.Message = fmt.Sprintf("%v", t)
			}
			out = append(out, viol)
		default:
			out = append(out, Violation{Message: fmt.Sprintf("%v", t)})
		}
	}
	return out
}

func loadRegoModules(dir string) (map[string]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".rego") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	out := map[string]string{}
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		name := filepath.ToSlash(strings.TrimPrefix(path, dir))
		name = strings.TrimPrefix(name, "/")
		out[name] = string(raw)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no .rego modules found under %s", dir)
	}
	return out, nil
}
