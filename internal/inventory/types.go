package inventory

import "time"

// DeclaredStack is one deployable unit as reported by the CDK app listing.
// FullName is the authoritative identifier passed to deploy/destroy and is
// the whole listing line, including any parenthesized annotation. BackingID
// is the CloudFormation stack name used for status lookups.
type DeclaredStack struct {
	DisplayName string
	FullName    string
	BackingID   string
}

// StackDetails is what a successful status lookup returns. RawStatus is
// set only when the backing store reported a lifecycle string the Status
// enum does not know.
type StackDetails struct {
	Status      Status
	RawStatus   string
	StackID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Description string
	Tags        map[string]string
}

// ReconciledStack pairs a declared stack with its live deployment state.
// Exactly one exists per declared stack. LookupErr is set only when Status
// is StatusUnknown because the lookup itself failed.
type ReconciledStack struct {
	DeclaredStack
	Status      Status
	RawStatus   string
	StackID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Description string
	Tags        map[string]string
	LookupErr   error
}

// Summary holds derived counters over a reconciled inventory. Deployed is
// keyed on a resolved backing-store identifier, not on the status value.
type Summary struct {
	Total       int
	Deployed    int
	NotDeployed int
	Unknown     int
}

func Summarize(stacks []ReconciledStack) Summary {
	s := Summary{Total: len(stacks)}
	for _, st := range stacks {
		switch {
		case st.StackID != "":
			s.Deployed++
		case st.Status == StatusNotDeployed:
			s.NotDeployed++
		default:
			s.Unknown++
		}
	}
	return s
}
