package picker

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

type EventKind int

const (
	KeyUnrecognized EventKind = iota
	KeyMoveUp
	KeyMoveDown
	KeyToggleSelect
	KeyConfirm
	KeyBackspace
	KeyPrintable
	KeyInterrupt
)

type KeyEvent struct {
	Kind EventKind
	Rune rune // set only for KeyPrintable
}

// escapeSequences lists every multi-byte sequence the decoder knows.
// Sequences that carry no action here (left/right, home/end, paging) still
// appear so they are consumed at their real length instead of swallowing
// the bytes that follow them.
var escapeSequences = map[string]EventKind{
	"\x1b[A": KeyMoveUp,
	"\x1b[B": KeyMoveDown,
	"\x1bOA": KeyMoveUp,
	"\x1bOB": KeyMoveDown,

	"\x1b[1;2A": KeyMoveUp,
	"\x1b[1;2B": KeyMoveDown,
	"\x1b[1;3A": KeyMoveUp,
	"\x1b[1;3B": KeyMoveDown,
	"\x1b[1;5A": KeyMoveUp,
	"\x1b[1;5B": KeyMoveDown,

	"\x1b[C":  KeyUnrecognized,
	"\x1b[D":  KeyUnrecognized,
	"\x1bOC":  KeyUnrecognized,
	"\x1bOD":  KeyUnrecognized,
	"\x1b[H":  KeyUnrecognized,
	"\x1b[F":  KeyUnrecognized,
	"\x1bOH":  KeyUnrecognized,
	"\x1bOF":  KeyUnrecognized,
	"\x1b[3~": KeyUnrecognized,
	"\x1b[5~": KeyUnrecognized,
	"\x1b[6~": KeyUnrecognized,
}

// Decode turns one chunk of raw input into logical events. Terminal input
// is noisy: anything the table does not know is reported as
// KeyUnrecognized and never as an error. An escape prefix that matches no
// known sequence discards the remainder of the chunk, since an unknown
// sequence and its tail cannot be told apart.
func Decode(chunk []byte) []KeyEvent {
	var events []KeyEvent
	for i := 0; i < len(chunk); {
		b := chunk[i]
		switch {
		case b == 0x1b:
			kind, n, ok := matchEscape(chunk[i:])
			if !ok {
				return append(events, KeyEvent{Kind: KeyUnrecognized})
			}
			events = append(events, KeyEvent{Kind: kind})
			i += n
		case b == '\r' || b == '\n':
			events = append(events, KeyEvent{Kind: KeyConfirm})
			i++
		case b == 0x03:
			events = append(events, KeyEvent{Kind: KeyInterrupt})
			i++
		case b == 0x10:
			events = append(events, KeyEvent{Kind: KeyMoveUp})
			i++
		case b == 0x0e:
			events = append(events, KeyEvent{Kind: KeyMoveDown})
			i++
		case b == 0x7f || b == 0x08:
			events = append(events, KeyEvent{Kind: KeyBackspace})
			i++
		case b == ' ':
			events = append(events, KeyEvent{Kind: KeyToggleSelect})
			i++
		default:
			r, size := utf8.DecodeRune(chunk[i:])
			if r == utf8.RuneError && size <= 1 {
				events = append(events, KeyEvent{Kind: KeyUnrecognized})
				i++
				continue
			}
			if unicode.IsGraphic(r) {
				events = append(events, KeyEvent{Kind: KeyPrintable, Rune: r})
			} else {
				events = append(events, KeyEvent{Kind: KeyUnrecognized})
			}
			i += size
		}
	}
	return events
}

func matchEscape(chunk []byte) (EventKind, int, bool) {
	kind := KeyUnrecognized
	best := 0
	for seq, k := range escapeSequences {
		if len(seq) > best && bytes.HasPrefix(chunk, []byte(seq)) {
			kind, best = k, len(seq)
		}
	}
	return kind, best, best > 0
}
