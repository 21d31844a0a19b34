// File: internal/inventory/parse.go
// Brief: Turns raw `cdk list` output into declared stacks.

package inventory

import (
	"regexp"
	"strings"
)

// stackLine matches one declared stack: a path-like identifier, optionally
// annotated with the CloudFormation stack name in trailing parentheses,
// e.g. `Pipeline/ServiceA (cf-pipeline-servicea-prod)`. Anything else on a
// listing line (warning banners, asset build noise, progress output) does
// not match and is dropped.
var stackLine = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9_/.:-]*)(?: \(([A-Za-z0-9][A-Za-z0-9:/._-]*)\))?$`)

// ParseListing extracts declared stacks from listing output, preserving the
// declared order. Lines that do not look like stack identifiers are
// silently skipped; the caller decides whether zero stacks is fatal.
func ParseListing(text string) []DeclaredStack {
	var out []DeclaredStack
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := stackLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, backing := m[1], m[2]
		if backing == "" {
			backing = name
		}
		out = append(out, DeclaredStack{
			DisplayName: name[strings.LastIndex(name, "/")+1:],
			FullName:    line,
			BackingID:   backing,
		})
	}
	return out
}
