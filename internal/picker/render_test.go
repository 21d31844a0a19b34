package picker

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func renderPlain(t *testing.T, m *Model, opts RenderOptions) string {
	t.Helper()
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	var buf bytes.Buffer
	Render(&buf, m, opts)
	return buf.String()
}

func TestRenderMarksCursorRow(t *testing.T) {
	m := NewModel(ModeSingle, namedItems("alpha", "beta"))
	m.Apply(KeyEvent{Kind: KeyMoveDown})
	out := renderPlain(t, m, RenderOptions{Title: "Pick one"})

	if !strings.HasPrefix(out, clearScreen) {
		t.Fatalf("frame does not start with a clear sequence")
	}
	if !strings.Contains(out, " > beta") {
		t.Fatalf("cursor row not marked:\n%s", out)
	}
	if strings.Contains(out, " > alpha") {
		t.Fatalf("non-cursor row marked:\n%s", out)
	}
}

func TestRenderMultiShowsCheckboxesAndCount(t *testing.T) {
	m := NewModel(ModeMulti, namedItems("alpha", "beta"))
	m.Apply(KeyEvent{Kind: KeyToggleSelect})
	out := renderPlain(t, m, RenderOptions{Title: "Pick stacks"})

	if !strings.Contains(out, " > [x] alpha") {
		t.Fatalf("selected row missing checked box:\n%s", out)
	}
	if !strings.Contains(out, "   [ ] beta") {
		t.Fatalf("unselected row missing empty box:\n%s", out)
	}
	if !strings.Contains(out, "1 selected of 2") {
		t.Fatalf("selection count missing:\n%s", out)
	}
	if !strings.Contains(out, "[space] Select") {
		t.Fatalf("multi-select key legend missing:\n%s", out)
	}
}

func TestRenderSingleOmitsSelectKey(t *testing.T) {
	m := NewModel(ModeSingle, namedItems("alpha"))
	out := renderPlain(t, m, RenderOptions{})
	if strings.Contains(out, "[space]") {
		t.Fatalf("single-select frame mentions space:\n%s", out)
	}
}

func TestRenderEmptyFilter(t *testing.T) {
	m := NewModel(ModeSingle, namedItems("alpha"))
	typeString(m, "zzz")
	out := renderPlain(t, m, RenderOptions{})
	if !strings.Contains(out, "(no matches)") {
		t.Fatalf("empty filter not indicated:\n%s", out)
	}
	if !strings.Contains(out, "Filter: zzz") {
		t.Fatalf("query not shown:\n%s", out)
	}
}

func TestRenderWindowsLongLists(t *testing.T) {
	var names []string
	for i := 0; i < 100; i++ {
		names = append(names, fmt.Sprintf("stack-%03d", i))
	}
	m := NewModel(ModeSingle, namedItems(names...))
	for i := 0; i < 70; i++ {
		m.Apply(KeyEvent{Kind: KeyMoveDown})
	}
	out := renderPlain(t, m, RenderOptions{Height: 20})

	if !strings.Contains(out, " > "+names[70]) {
		t.Fatalf("cursor row missing from window:\n%s", out)
	}
	if strings.Contains(out, names[0]+"\r\n") {
		t.Fatalf("window did not scroll, first row still visible:\n%s", out)
	}
}

func TestWindowDerivedFromCursor(t *testing.T) {
	cases := []struct {
		total, visible, cursor int
		wantStart, wantEnd     int
	}{
		{10, 20, 0, 0, 10},
		{10, 4, 0, 0, 4},
		{10, 4, 9, 6, 10},
		{10, 4, 5, 3, 7},
	}
	for _, c := range cases {
		start, end := window(c.total, c.visible, c.cursor)
		if start != c.wantStart || end != c.wantEnd {
			t.Fatalf("window(%d,%d,%d)=(%d,%d) want=(%d,%d)",
				c.total, c.visible, c.cursor, start, end, c.wantStart, c.wantEnd)
		}
		if c.cursor < start || c.cursor >= end {
			if c.total > 0 {
				t.Fatalf("window(%d,%d,%d) does not contain cursor", c.total, c.visible, c.cursor)
			}
		}
	}
}

func TestTrimToWidth(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"longer than ten", 10, "longer th…"},
		{"anything", 0, ""},
		{"anything", 1, "a"},
	}
	for _, c := range cases {
		if got := trimToWidth(c.in, c.width); got != c.want {
			t.Fatalf("trimToWidth(%q,%d)=%q want=%q", c.in, c.width, got, c.want)
		}
	}
}
