package menu

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Renderer draws a menu until ctx is done or the user quits.
type Renderer interface {
	Run(ctx context.Context, m *Menu) error
}

// TextRenderer prints the whole menu to W after every change. The active
// item is prefixed with ">".
type TextRenderer struct {
	W  io.Writer
	mu sync.Mutex
}

func (r *TextRenderer) Run(ctx context.Context, m *Menu) error {
	redraw := func(int) { r.Render(m.View()) }
	defer m.OnChange(redraw)()
	defer m.OnSelect(func(i int) {
		r.mu.Lock()
		_, _ = fmt.Fprintf(r.W, "selected %d: %s\n", i, m.View().Items[i])
		r.mu.Unlock()
	})()

	r.Render(m.View())
	<-ctx.Done()
	return nil
}

// Render writes v once.
func (r *TextRenderer) Render(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range v.Items {
		marker := " "
		if i == v.Cursor {
			marker = ">"
		}
		_, _ = fmt.Fprintf(r.W, "%s %s\n", marker, item)
	}
	_, _ = fmt.Fprintln(r.W)
}

// TerminalRenderer draws the menu full screen with tcell. The active item is
// underlined and a status line shows the last selection. q, Esc and Ctrl-C
// quit.
type TerminalRenderer struct {
	screen tcell.Screen
}

func NewTerminalRenderer() (*TerminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &TerminalRenderer{screen: screen}, nil
}

// Run takes over the terminal until ctx is done or a quit key is pressed.
// Menu changes arrive from the poll goroutine and are turned into interrupt
// events so that all drawing happens here.
func (r *TerminalRenderer) Run(ctx context.Context, m *Menu) error {
	if err := r.screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer r.screen.Fini()
	r.screen.HideCursor()

	wake := func(int) { _ = r.screen.PostEvent(tcell.NewEventInterrupt(nil)) }
	defer m.OnChange(wake)()
	defer m.OnSelect(wake)()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			wake(0)
		case <-stop:
		}
	}()

	r.draw(m.View())
	for {
		switch ev := r.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if isQuit(ev) {
				return nil
			}
		case *tcell.EventResize:
			r.screen.Sync()
		}
		if ctx.Err() != nil {
			return nil
		}
		r.draw(m.View())
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func (r *TerminalRenderer) draw(v View) {
	r.screen.Clear()
	plain := tcell.StyleDefault
	active := plain.Underline(true).Bold(true)

	for i, item := range v.Items {
		style := plain
		if i == v.Cursor {
			style = active
			r.text(0, i, ">", plain)
		}
		r.text(2, i, item, style)
	}

	status := "A select  Up/Down move  q quit"
	if v.Selected >= 0 {
		status = "selected: " + v.Items[v.Selected]
	}
	r.text(0, len(v.Items)+1, status, plain.Dim(true))
	r.screen.Show()
}

func (r *TerminalRenderer) text(x, y int, s string, style tcell.Style) {
	for i, c := range []rune(s) {
		r.screen.SetContent(x+i, y, c, nil, style)
	}
}
