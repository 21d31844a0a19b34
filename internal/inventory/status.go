// File: internal/inventory/status.go
// Brief: Closed deployment-status enum and CloudFormation string mapping.

package inventory

// Status is the closed set of deployment states a reconciled stack can be
// in: every CloudFormation stack lifecycle state plus two synthetic ones.
// StatusUnknown (the zero value) means the lookup failed or returned a
// lifecycle string this build does not know; StatusNotDeployed means the
// backing store has no record for the stack. The two are materially
// different conditions and are never collapsed into each other.
type Status int

const (
	StatusUnknown Status = iota
	StatusNotDeployed
	StatusCreateInProgress
	StatusCreateFailed
	StatusCreateComplete
	StatusRollbackInProgress
	StatusRollbackFailed
	StatusRollbackComplete
	StatusDeleteInProgress
	StatusDeleteFailed
	StatusDeleteComplete
	StatusUpdateInProgress
	StatusUpdateCompleteCleanupInProgress
	StatusUpdateComplete
	StatusUpdateFailed
	StatusUpdateRollbackInProgress
	StatusUpdateRollbackFailed
	StatusUpdateRollbackCompleteCleanupInProgress
	StatusUpdateRollbackComplete
	StatusReviewInProgress
	StatusImportInProgress
	StatusImportComplete
	StatusImportRollbackInProgress
	StatusImportRollbackFailed
	StatusImportRollbackComplete

	statusCount // keep last
)

var statusNames = map[Status]string{
	StatusUnknown:                StatusNameUnknown,
	StatusNotDeployed:            StatusNameNotDeployed,
	StatusCreateInProgress:       "CREATE_IN_PROGRESS",
	StatusCreateFailed:           "CREATE_FAILED",
	StatusCreateComplete:         "CREATE_COMPLETE",
	StatusRollbackInProgress:     "ROLLBACK_IN_PROGRESS",
	StatusRollbackFailed:         "ROLLBACK_FAILED",
	StatusRollbackComplete:       "ROLLBACK_COMPLETE",
	StatusDeleteInProgress:       "DELETE_IN_PROGRESS",
	StatusDeleteFailed:           "DELETE_FAILED",
	StatusDeleteComplete:         "DELETE_COMPLETE",
	StatusUpdateInProgress:       "UPDATE_IN_PROGRESS",
	StatusUpdateComplete:         "UPDATE_COMPLETE",
	StatusUpdateFailed:           "UPDATE_FAILED",
	StatusUpdateRollbackFailed:   "UPDATE_ROLLBACK_FAILED",
	StatusUpdateRollbackComplete: "UPDATE_ROLLBACK_COMPLETE",
	StatusReviewInProgress:       "REVIEW_IN_PROGRESS",
	StatusImportInProgress:       "IMPORT_IN_PROGRESS",
	StatusImportComplete:         "IMPORT_COMPLETE",
	StatusImportRollbackFailed:   "IMPORT_ROLLBACK_FAILED",
	StatusImportRollbackComplete: "IMPORT_ROLLBACK_COMPLETE",

	StatusUpdateCompleteCleanupInProgress:         "UPDATE_COMPLETE_CLEANUP_IN_PROGRESS",
	StatusUpdateRollbackInProgress:                "UPDATE_ROLLBACK_IN_PROGRESS",
	StatusUpdateRollbackCompleteCleanupInProgress: "UPDATE_ROLLBACK_COMPLETE_CLEANUP_IN_PROGRESS",
	StatusImportRollbackInProgress:                "IMPORT_ROLLBACK_IN_PROGRESS",
}

// Synthetic status names, distinct from anything CloudFormation reports.
const (
	StatusNameNotDeployed = "NOT_DEPLOYED"
	StatusNameUnknown     = "UNKNOWN"
)

var statusByName = func() map[string]Status {
	m := make(map[string]Status, len(statusNames))
	for s, name := range statusNames {
		m[name] = s
	}
	return m
}()

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return StatusNameUnknown
}

// ParseStatus maps a CloudFormation StackStatus string onto the closed
// enum. Unrecognized strings become StatusUnknown rather than growing the
// enum at runtime.
func ParseStatus(name string) Status {
	if s, ok := statusByName[name]; ok {
		return s
	}
	return StatusUnknown
}

// InProgress reports whether the state is transitional.
func (s Status) InProgress() bool {
	switch s {
	case StatusCreateInProgress, StatusRollbackInProgress, StatusDeleteInProgress,
		StatusUpdateInProgress, StatusUpdateCompleteCleanupInProgress,
		StatusUpdateRollbackInProgress, StatusUpdateRollbackCompleteCleanupInProgress,
		StatusReviewInProgress, StatusImportInProgress, StatusImportRollbackInProgress:
		return true
	}
	return false
}

// Failed reports whether the state is a terminal failure or rollback.
func (s Status) Failed() bool {
	switch s {
	case StatusCreateFailed, StatusRollbackInProgress, StatusRollbackFailed,
		StatusRollbackComplete, StatusDeleteFailed, StatusUpdateFailed,
		StatusUpdateRollbackInProgress, StatusUpdateRollbackFailed,
		StatusUpdateRollbackComplete, StatusUpdateRollbackCompleteCleanupInProgress,
		StatusImportRollbackInProgress, StatusImportRollbackFailed,
		StatusImportRollbackComplete:
		return true
	}
	return false
}

// AllStatuses returns every enum value, synthetic states included. Callers
// that map statuses to presentation use this to prove exhaustiveness.
func AllStatuses() []Status {
	out := make([]Status, 0, int(statusCount))
	for s := Status(0); s < statusCount; s++ {
		out = append(out, s)
	}
	return out
}
