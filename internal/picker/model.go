// File: internal/picker/model.go
// Brief: Selection state machine: query, filter, cursor, selection set.

package picker

import (
	"strings"
	"unicode/utf8"
)

type Mode int

const (
	ModeSingle Mode = iota
	ModeMulti
)

// Item is one selectable row. OriginalIndex keys the item in the full,
// unfiltered list; the selection set stores these so filtering never loses
// or misattributes a selection.
type Item struct {
	Label         string
	Value         string
	OriginalIndex int
}

// Model owns the state of one selection session. It is pure with respect
// to I/O: Apply consumes decoded key events, rendering reads the accessors.
type Model struct {
	mode     Mode
	items    []Item
	query    string
	filtered []Item
	cursor   int
	selected map[int]struct{}
	done     bool
	result   []string
}

func NewModel(mode Mode, items []Item) *Model {
	indexed := make([]Item, len(items))
	for i, it := range items {
		it.OriginalIndex = i
		indexed[i] = it
	}
	return &Model{
		mode:     mode,
		items:    indexed,
		filtered: filterItems(indexed, ""),
		selected: map[int]struct{}{},
	}
}

// Apply advances the state machine by one event and reports whether the
// session reached its terminal state. Events that do not apply in the
// current mode (ToggleSelect in single-select) and unrecognized input are
// ignored.
func (m *Model) Apply(ev KeyEvent) bool {
	if m.done {
		return true
	}
	switch ev.Kind {
	case KeyMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case KeyMoveDown:
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case KeyPrintable:
		m.query += string(ev.Rune)
		m.refilter()
	case KeyBackspace:
		if m.query != "" {
			_, size := utf8.DecodeLastRuneInString(m.query)
			m.query = m.query[:len(m.query)-size]
			m.refilter()
		}
	case KeyToggleSelect:
		if m.mode == ModeMulti && len(m.filtered) > 0 {
			idx := m.filtered[m.cursor].OriginalIndex
			if _, ok := m.selected[idx]; ok {
				delete(m.selected, idx)
			} else {
				m.selected[idx] = struct{}{}
			}
		}
	case KeyConfirm:
		m.confirm()
	}
	return m.done
}

func (m *Model) refilter() {
	m.filtered = filterItems(m.items, m.query)
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// filterItems recomputes the visible list from the full one. An item
// matches when the query is empty or appears case-insensitively in its
// label or value.
func filterItems(items []Item, query string) []Item {
	if query == "" {
		return append([]Item(nil), items...)
	}
	q := strings.ToLower(query)
	var out []Item
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Label), q) ||
			strings.Contains(strings.ToLower(it.Value), q) {
			out = append(out, it)
		}
	}
	return out
}

func (m *Model) confirm() {
	m.done = true
	switch m.mode {
	case ModeSingle:
		if len(m.filtered) > 0 {
			m.result = []string{m.filtered[m.cursor].Value}
		}
	case ModeMulti:
		// Original-list order, not selection order.
		for _, it := range m.items {
			if _, ok := m.selected[it.OriginalIndex]; ok {
				m.result = append(m.result, it.Value)
			}
		}
	}
}

func (m *Model) Mode() Mode         { return m.mode }
func (m *Model) Query() string      { return m.query }
func (m *Model) Filtered() []Item   { return m.filtered }
func (m *Model) Cursor() int        { return m.cursor }
func (m *Model) Done() bool         { return m.done }
func (m *Model) Result() []string   { return m.result }
func (m *Model) TotalItems() int    { return len(m.items) }
func (m *Model) SelectedCount() int { return len(m.selected) }

func (m *Model) IsSelected(originalIndex int) bool {
	_, ok := m.selected[originalIndex]
	return ok
}
