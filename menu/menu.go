// Package menu is a fixed list with a clamped cursor, driven by normalized
// gamepad input and drawn by a Renderer.
package menu

import (
	"fmt"
	"sync"
)

// DefaultItems is the number of entries DefaultLabels produces when no
// count is given.
const DefaultItems = 5

// DefaultLabels returns n labels "Menu Option 0" .. "Menu Option n-1".
func DefaultLabels(n int) []string {
	if n <= 0 {
		n = DefaultItems
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Menu Option %d", i)
	}
	return out
}

// View is a point-in-time copy of a Menu.
type View struct {
	Items  []string
	Cursor int
	// Selected is the index of the last selected item, or -1.
	Selected int
}

type listener struct {
	id uint64
	fn func(int)
}

// Menu holds a cursor over a fixed list of items. The cursor never leaves
// [0, len(items)-1] and does not wrap around. Methods are safe for
// concurrent use; listeners run without the lock held.
type Menu struct {
	mu       sync.Mutex
	items    []string
	cursor   int
	selected int

	nextID   uint64
	onChange []listener
	onSelect []listener
}

func New(items []string) *Menu {
	return &Menu{
		items:    append([]string(nil), items...),
		selected: -1,
	}
}

func (m *Menu) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Menu) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

func (m *Menu) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return View{
		Items:    append([]string(nil), m.items...),
		Cursor:   m.cursor,
		Selected: m.selected,
	}
}

// Next moves the cursor down one item unless it is on the last one.
func (m *Menu) Next() { m.move(1) }

// Prev moves the cursor up one item unless it is on the first one.
func (m *Menu) Prev() { m.move(-1) }

func (m *Menu) move(delta int) {
	m.mu.Lock()
	to := m.cursor + delta
	if to < 0 || to >= len(m.items) {
		m.mu.Unlock()
		return
	}
	m.cursor = to
	fns := snapshot(m.onChange)
	m.mu.Unlock()

	for _, fn := range fns {
		fn(to)
	}
}

// Select marks the item under the cursor as selected.
func (m *Menu) Select() {
	m.mu.Lock()
	if len(m.items) == 0 {
		m.mu.Unlock()
		return
	}
	m.selected = m.cursor
	idx := m.cursor
	fns := snapshot(m.onSelect)
	m.mu.Unlock()

	for _, fn := range fns {
		fn(idx)
	}
}

// OnChange registers fn to run with the new cursor after every move.
func (m *Menu) OnChange(fn func(cursor int)) (remove func()) {
	return m.add(&m.onChange, fn)
}

// OnSelect registers fn to run with the selected index after every Select.
func (m *Menu) OnSelect(fn func(index int)) (remove func()) {
	return m.add(&m.onSelect, fn)
}

func (m *Menu) add(list *[]listener, fn func(int)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	*list = append(*list, listener{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, l := range *list {
				if l.id == id {
					*list = append((*list)[:i:i], (*list)[i+1:]...)
					return
				}
			}
		})
	}
}

func snapshot(ls []listener) []func(int) {
	fns := make([]func(int), len(ls))
	for i, l := range ls {
		fns[i] = l.fn
	}
	return fns
}
