package menu_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/btn0s/prototype-playground/backbone"
	th "github.com/btn0s/prototype-playground/internal/testing"
	"github.com/btn0s/prototype-playground/menu"
)

func TestDefaultLabels(t *testing.T) {
	assert.Equal(t, []string{"Menu Option 0", "Menu Option 1"}, menu.DefaultLabels(2))
	assert.Len(t, menu.DefaultLabels(0), menu.DefaultItems)
}

func TestCursorIsClamped(t *testing.T) {
	m := menu.New(menu.DefaultLabels(3))
	var changes []int
	m.OnChange(func(c int) { changes = append(changes, c) })

	m.Prev()
	assert.Equal(t, 0, m.Cursor())
	assert.Empty(t, changes, "no change event at the lower bound")

	for i := 0; i < 5; i++ {
		m.Next()
	}
	assert.Equal(t, 2, m.Cursor())
	assert.Equal(t, []int{1, 2}, changes)

	m.Prev()
	assert.Equal(t, 1, m.Cursor())
}

func TestSelect(t *testing.T) {
	m := menu.New([]string{"a", "b"})
	assert.Equal(t, -1, m.View().Selected)

	var selected []int
	remove := m.OnSelect(func(i int) { selected = append(selected, i) })
	m.Next()
	m.Select()
	assert.Equal(t, []int{1}, selected)
	assert.Equal(t, menu.View{Items: []string{"a", "b"}, Cursor: 1, Selected: 1}, m.View())

	remove()
	remove()
	m.Select()
	assert.Equal(t, []int{1}, selected)
}

func TestEmptyMenu(t *testing.T) {
	m := menu.New(nil)
	fired := false
	m.OnChange(func(int) { fired = true })
	m.OnSelect(func(int) { fired = true })

	m.Next()
	m.Prev()
	m.Select()
	assert.False(t, fired)
	assert.Equal(t, 0, m.Cursor())
	assert.Zero(t, m.Len())
}

func TestDefaultBindings(t *testing.T) {
	sched := th.NewManualScheduler()
	n := backbone.New(sched, backbone.Options{}, nil)
	t.Cleanup(n.Close)

	m := menu.New(menu.DefaultLabels(5))
	require.NoError(t, menu.Bind(n, m, menu.DefaultBindings))
	var selected []int
	m.OnSelect(func(i int) { selected = append(selected, i) })

	const dpadDown, dpadUp = 13, 12

	n.Update(th.Pad(nil, dpadDown))
	assert.Equal(t, 1, m.Cursor())
	n.Update(th.Pad(nil, dpadDown))
	assert.Equal(t, 1, m.Cursor(), "holding the D-pad does not repeat")
	n.Update(th.Pad(nil))
	n.Update(th.Pad(nil, dpadDown))
	assert.Equal(t, 2, m.Cursor())

	// Stick directions repeat every cycle while deflected.
	for i := 0; i < 4; i++ {
		n.Update(th.Pad([]float64{0, 0.9}))
	}
	assert.Equal(t, 4, m.Cursor())

	n.Update(th.Pad([]float64{0, -0.9}))
	assert.Equal(t, 3, m.Cursor())
	n.Update(th.Pad(nil, dpadUp))
	assert.Equal(t, 2, m.Cursor())

	n.Update(th.Pad(nil, 0))
	assert.Equal(t, []int{2}, selected)
}

func TestBindUnknownInput(t *testing.T) {
	n := backbone.New(th.NewManualScheduler(), backbone.Options{}, nil)
	t.Cleanup(n.Close)
	err := menu.Bind(n, menu.New(nil), menu.Bindings{Next: []string{"Turbo"}})
	assert.ErrorIs(t, err, backbone.ErrUnknownInput)
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &menu.TextRenderer{W: &buf}
	r.Render(menu.View{Items: []string{"a", "b", "c"}, Cursor: 1, Selected: -1})
	assert.Equal(t, "  a\n> b\n  c\n\n", buf.String())
}

func TestTextRendererRun(t *testing.T) {
	var buf bytes.Buffer
	r := &menu.TextRenderer{W: &buf}
	m := menu.New([]string{"a", "b"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, r.Run(ctx, m))
	assert.Equal(t, "> a\n  b\n\n", buf.String())

	m.Next()
	assert.Equal(t, "> a\n  b\n\n", buf.String(), "listeners are removed when Run returns")
}
