package picker

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const clearScreen = "\033[H\033[2J"

type RenderOptions struct {
	Title  string
	Width  int
	Height int
}

// Render redraws the whole frame from the model's current state. It holds
// no state of its own: the visible window is derived from the cursor, so
// the same model always renders the same frame. Lines end in \r\n because
// the terminal is in raw mode while frames are drawn.
func Render(w io.Writer, m *Model, opts RenderOptions) {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	height := opts.Height
	if height <= 0 {
		height = 24
	}

	var b strings.Builder
	b.WriteString(clearScreen)

	title := opts.Title
	if title == "" {
		title = "Select"
	}
	line(&b, color.New(color.FgCyan, color.Bold).Sprintf(" %s ", title))
	line(&b, strings.Repeat("-", width))
	line(&b, "Filter: "+m.Query())

	rows := height - 6
	if m.mode == ModeMulti {
		rows--
	}
	if rows < 1 {
		rows = 1
	}

	filtered := m.Filtered()
	start, end := window(len(filtered), rows, m.Cursor())
	if len(filtered) == 0 {
		line(&b, color.New(color.FgHiBlack).Sprint("   (no matches)"))
	}
	for i := start; i < end; i++ {
		it := filtered[i]
		marker := "   "
		if i == m.Cursor() {
			marker = " > "
		}
		box := ""
		if m.mode == ModeMulti {
			if m.IsSelected(it.OriginalIndex) {
				box = color.New(color.FgGreen).Sprint("[x]") + " "
			} else {
				box = "[ ] "
			}
		}
		avail := width - len(marker) - 4
		line(&b, marker+box+trimToWidth(it.Label, avail))
	}

	line(&b, strings.Repeat("-", width))
	if m.mode == ModeMulti {
		line(&b, color.New(color.FgHiBlack).Sprintf("%d selected of %d", m.SelectedCount(), m.TotalItems()))
		line(&b, "Keys: [up/down] Move | [space] Select | [enter] Confirm | [type] Filter | [ctrl-c] Quit")
	} else {
		line(&b, "Keys: [up/down] Move | [enter] Confirm | [type] Filter | [ctrl-c] Quit")
	}

	fmt.Fprint(w, b.String())
}

func line(b *strings.Builder, s string) {
	b.WriteString(s)
	b.WriteString("\r\n")
}

// window derives the visible slice bounds from the cursor so scrolling
// needs no stored offset.
func window(total, visible, cursor int) (int, int) {
	if total <= visible {
		return 0, total
	}
	start := cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > total {
		start = total - visible
	}
	return start, start + visible
}

func trimToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 1 {
		r := []rune(s)
		return string(r[:1])
	}
	limit := width - 1
	var out []rune
	w := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			rw = 1
		}
		if w+rw > limit {
			break
		}
		out = append(out, r)
		w += rw
	}
	return string(out) + "…"
}
