package ui

import (
	"io"

	"golang.org/x/term"
)

type fdProvider interface {
	Fd() uintptr
}

// TerminalSize reports the writer's terminal dimensions, or ok=false when
// the writer is not backed by a terminal.
func TerminalSize(w io.Writer) (cols, rows int, ok bool) {
	v, isFd := w.(fdProvider)
	if !isFd {
		return 0, 0, false
	}
	cols, rows, err := term.GetSize(int(v.Fd()))
	if err != nil {
		return 0, 0, false
	}
	return cols, rows, true
}

func TerminalWidth(w io.Writer) (int, bool) {
	cols, _, ok := TerminalSize(w)
	return cols, ok
}

func IsTerminalWriter(w io.Writer) bool {
	v, ok := w.(fdProvider)
	return ok && term.IsTerminal(int(v.Fd()))
}

func IsTerminalReader(r io.Reader) bool {
	v, ok := r.(fdProvider)
	return ok && term.IsTerminal(int(v.Fd()))
}
