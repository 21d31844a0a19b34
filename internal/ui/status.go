// File: internal/ui/status.go
// Brief: Presentation mapping for deployment statuses (glyph, color, text).

package ui

import (
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dil-palmasi/aws-cdk-interactive-cli/internal/inventory"
)

type StatusStyle struct {
	Glyph string
	Color *color.Color
}

var (
	styleDone        = StatusStyle{Glyph: "✔", Color: color.New(color.FgGreen)}
	styleProgress    = StatusStyle{Glyph: "…", Color: color.New(color.FgYellow)}
	styleFailed      = StatusStyle{Glyph: "✖", Color: color.New(color.FgRed)}
	styleGone        = StatusStyle{Glyph: "-", Color: color.New(color.FgHiBlack)}
	styleNotDeployed = StatusStyle{Glyph: "○", Color: color.New(color.FgHiBlack)}
	styleUnknown     = StatusStyle{Glyph: "?", Color: color.New(color.FgMagenta)}
)

// statusStyles carries one entry per status value; TestStatusStylesCoverEnum
// keeps it exhaustive as the lifecycle taxonomy changes.
var statusStyles = map[inventory.Status]StatusStyle{
	inventory.StatusUnknown:     styleUnknown,
	inventory.StatusNotDeployed: styleNotDeployed,

	inventory.StatusCreateComplete: styleDone,
	inventory.StatusUpdateComplete: styleDone,
	inventory.StatusImportComplete: styleDone,

	inventory.StatusCreateInProgress: styleProgress,
	inventory.StatusDeleteInProgress: styleProgress,
	inventory.StatusUpdateInProgress: styleProgress,
	inventory.StatusReviewInProgress: styleProgress,
	inventory.StatusImportInProgress: styleProgress,

	inventory.StatusCreateFailed:           styleFailed,
	inventory.StatusRollbackInProgress:     styleFailed,
	inventory.StatusRollbackFailed:         styleFailed,
	inventory.StatusRollbackComplete:       styleFailed,
	inventory.StatusDeleteFailed:           styleFailed,
	inventory.StatusUpdateFailed:           styleFailed,
	inventory.StatusUpdateRollbackFailed:   styleFailed,
	inventory.StatusUpdateRollbackComplete: styleFailed,
	inventory.StatusImportRollbackFailed:   styleFailed,
	inventory.StatusImportRollbackComplete: styleFailed,

	inventory.StatusUpdateCompleteCleanupInProgress:         styleProgress,
	inventory.StatusUpdateRollbackInProgress:                styleFailed,
	inventory.StatusUpdateRollbackCompleteCleanupInProgress: styleFailed,
	inventory.StatusImportRollbackInProgress:                styleFailed,

	inventory.StatusDeleteComplete: styleGone,
}

func StyleFor(s inventory.Status) StatusStyle {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return styleUnknown
}

var statusTitle = cases.Title(language.English)

// StatusText renders the status as human words: CREATE_COMPLETE becomes
// "Create Complete", NOT_DEPLOYED becomes "Not Deployed".
func StatusText(s inventory.Status) string {
	words := strings.ReplaceAll(strings.ToLower(s.String()), "_", " ")
	return statusTitle.String(words)
}

// StatusCell is the colored glyph-plus-text form used in tables and picker
// labels.
func StatusCell(s inventory.Status) string {
	st := StyleFor(s)
	return st.Color.Sprintf("%s %s", st.Glyph, StatusText(s))
}

// StackStatusCell renders one reconciled stack's status. A lifecycle
// string the enum does not know is shown verbatim.
func StackStatusCell(s inventory.ReconciledStack) string {
	if s.RawStatus != "" {
		return styleUnknown.Color.Sprintf("%s %s", styleUnknown.Glyph, s.RawStatus)
	}
	return StatusCell(s.Status)
}
