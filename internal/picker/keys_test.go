package picker

import (
	"reflect"
	"testing"
)

func kinds(events []KeyEvent) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestDecodeArrows(t *testing.T) {
	cases := []struct {
		name  string
		chunk string
		want  EventKind
	}{
		{"csi up", "\x1b[A", KeyMoveUp},
		{"csi down", "\x1b[B", KeyMoveDown},
		{"ss3 up", "\x1bOA", KeyMoveUp},
		{"ss3 down", "\x1bOB", KeyMoveDown},
		{"shift up", "\x1b[1;2A", KeyMoveUp},
		{"alt down", "\x1b[1;3B", KeyMoveDown},
		{"ctrl up", "\x1b[1;5A", KeyMoveUp},
	}
	for _, c := range cases {
		got := Decode([]byte(c.chunk))
		if len(got) != 1 || got[0].Kind != c.want {
			t.Fatalf("%s: Decode(%q)=%v want single %v", c.name, c.chunk, got, c.want)
		}
	}
}

func TestDecodeSingleBytes(t *testing.T) {
	cases := []struct {
		chunk string
		want  EventKind
	}{
		{"\r", KeyConfirm},
		{"\n", KeyConfirm},
		{"\x03", KeyInterrupt},
		{"\x7f", KeyBackspace},
		{"\x08", KeyBackspace},
		{"\x10", KeyMoveUp},
		{"\x0e", KeyMoveDown},
		{" ", KeyToggleSelect},
	}
	for _, c := range cases {
		got := Decode([]byte(c.chunk))
		if len(got) != 1 || got[0].Kind != c.want {
			t.Fatalf("Decode(%q)=%v want single %v", c.chunk, got, c.want)
		}
	}
}

func TestDecodePrintable(t *testing.T) {
	got := Decode([]byte("aZ9-"))
	want := []KeyEvent{
		{Kind: KeyPrintable, Rune: 'a'},
		{Kind: KeyPrintable, Rune: 'Z'},
		{Kind: KeyPrintable, Rune: '9'},
		{Kind: KeyPrintable, Rune: '-'},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Decode got=%v want=%v", got, want)
	}
}

func TestDecodeMultiByteRune(t *testing.T) {
	got := Decode([]byte("é"))
	if len(got) != 1 || got[0].Kind != KeyPrintable || got[0].Rune != 'é' {
		t.Fatalf("Decode(é)=%v want printable é", got)
	}
}

func TestDecodeUnknownEscapeDiscardsRestOfChunk(t *testing.T) {
	got := Decode([]byte("\x1b[Zab"))
	if len(got) != 1 || got[0].Kind != KeyUnrecognized {
		t.Fatalf("Decode=%v want single unrecognized", got)
	}
}

func TestDecodeBareEscape(t *testing.T) {
	got := Decode([]byte{0x1b})
	if len(got) != 1 || got[0].Kind != KeyUnrecognized {
		t.Fatalf("Decode=%v want single unrecognized", got)
	}
}

func TestDecodeInertSequencesAreConsumedAtLength(t *testing.T) {
	// Right arrow carries no action but must not swallow the byte after it.
	got := kinds(Decode([]byte("\x1b[Cx")))
	want := []EventKind{KeyUnrecognized, KeyPrintable}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Decode kinds=%v want=%v", got, want)
	}
}

func TestDecodeMixedChunk(t *testing.T) {
	got := kinds(Decode([]byte("ab\x1b[B \r")))
	want := []EventKind{KeyPrintable, KeyPrintable, KeyMoveDown, KeyToggleSelect, KeyConfirm}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Decode kinds=%v want=%v", got, want)
	}
}

func TestDecodeControlByteIsNoise(t *testing.T) {
	got := Decode([]byte{0x01})
	if len(got) != 1 || got[0].Kind != KeyUnrecognized {
		t.Fatalf("Decode=%v want single unrecognized", got)
	}
}

func TestDecodeInvalidUTF8ByteIsNoise(t *testing.T) {
	got := kinds(Decode([]byte{0xff, 'a'}))
	want := []EventKind{KeyUnrecognized, KeyPrintable}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Decode kinds=%v want=%v", got, want)
	}
}

func TestDecodeEmptyChunk(t *testing.T) {
	if got := Decode(nil); len(got) != 0 {
		t.Fatalf("Decode(nil)=%v want empty", got)
	}
}
