package tui

import (
	"fmt"
	"io"

	"github.com/Makepad-fr/impact/internal/model"
	"github.com/Makepad-fr/impact/internal/ui"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// actionItem adapts model.Action to bubbles/list.Item
type actionItem struct {
	model.Action
}

func (i actionItem) Title() string       { return i.Text }
func (i actionItem) Description() string { return "" }
func (i actionItem) FilterValue() string { return i.Text }

// single-line rows: cursor, checkbox, text, weight badge
type actionDelegate struct{}

func (d actionDelegate) Height() int                               { return 1 }
func (d actionDelegate) Spacing() int                              { return 0 }
func (d actionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d actionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(actionItem)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	text := ui.Truncate(it.Text, max(m.Width()-16, 10))
	if it.Completed {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	if it.Editing {
		text = t.Accent.Render("✎ ") + text
	}
	badge := t.Weight.Render(fmt.Sprintf("(%d)", it.Weight))

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, box, text, badge)
}
