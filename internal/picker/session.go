// File: internal/picker/session.go
// Brief: Interactive selection session: raw-mode guard plus event loop.

package picker

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ErrInterrupted reports that the operator pressed Ctrl-C during selection.
// The terminal is already restored by the time callers see it.
var ErrInterrupted = errors.New("selection interrupted")

// rawModeGuard owns the terminal's input mode for one session. Acquired
// once, released exactly once on whichever exit path runs first; Release is
// idempotent so a deferred call is always safe.
type rawModeGuard struct {
	fd    int
	state *term.State
}

func acquireRawMode(fd int) (*rawModeGuard, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to enter raw terminal mode")
	}
	return &rawModeGuard{fd: fd, state: state}, nil
}

func (g *rawModeGuard) Release() {
	if g == nil || g.state == nil {
		return
	}
	_ = term.Restore(g.fd, g.state)
	g.state = nil
}

// Session wires a selection model to a raw byte source and a frame sink.
type Session struct {
	In  io.Reader
	Out io.Writer
	// RawFd is switched into raw mode for the duration of Run. Negative
	// means the input needs no mode change (scripted input in tests).
	RawFd  int
	Title  string
	Width  int
	Height int
}

func NewStdioSession(title string) Session {
	s := Session{
		In:    os.Stdin,
		Out:   os.Stdout,
		RawFd: int(os.Stdin.Fd()),
		Title: title,
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		s.Width, s.Height = w, h
	}
	return s
}

// Run drives one selection to its terminal state and returns the confirmed
// values. Raw mode is held from before the first frame until the result is
// known and released on every way out: confirm, interrupt, input failure,
// or panic further up.
func Run(sess Session, mode Mode, items []Item) ([]string, error) {
	m := NewModel(mode, items)

	if sess.RawFd >= 0 {
		guard, err := acquireRawMode(sess.RawFd)
		if err != nil {
			return nil, err
		}
		defer guard.Release()
	}

	opts := RenderOptions{Title: sess.Title, Width: sess.Width, Height: sess.Height}
	Render(sess.Out, m, opts)

	buf := make([]byte, 64)
	for {
		// Bytes handed back alongside an error still count: a piped
		// source can deliver its final chunk together with EOF.
		n, err := sess.In.Read(buf)
		for _, ev := range Decode(buf[:n]) {
			if ev.Kind == KeyInterrupt {
				return nil, ErrInterrupted
			}
			if done := m.Apply(ev); done {
				fmt.Fprint(sess.Out, clearScreen)
				return m.Result(), nil
			}
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read terminal input")
		}
		Render(sess.Out, m, opts)
	}
}
