// Package tui is the full-screen weighted list.
package tui

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/impact/internal/list"
	"github.com/Makepad-fr/impact/internal/model"
	"github.com/Makepad-fr/impact/internal/ui"
	"github.com/Makepad-fr/impact/internal/view"
	"github.com/charmbracelet/bubbles/key"
	bubblelist "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const heading = "Today is Your Masterpiece!"

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
)

type field int

const (
	fieldText field = iota
	fieldWeight
)

// Model is the bubbletea model. Every change goes through the list
// store, which persists it; the model only re-derives what it shows.
type Model struct {
	store   *list.Store
	actions []model.Action // canonical order, latest snapshot
	summary view.Summary

	list bubblelist.Model
	keys keyMap

	mode   mode
	focus  field
	text   textinput.Model
	weight int // 0 until a weight is picked
	editID int64

	width, height int
}

// New builds a Model over store.
func New(store *list.Store) Model {
	keys := defaultKeys()

	l := bubblelist.New(nil, actionDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("action", "actions")
	l.AdditionalShortHelpKeys = keys.listHelp
	l.AdditionalFullHelpKeys = keys.listHelp

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		store:  store,
		list:   l,
		keys:   keys,
		text:   ti,
		width:  80,
		height: 24,
	}
	m.refresh(store.Actions())
	m.resize()
	return m
}

// Run starts the program on the alternate screen.
func Run(store *list.Store) error {
	p := tea.NewProgram(New(store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	switch m.mode {
	case modeAdd, modeEdit:
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == bubblelist.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.Add):
		cmd := m.openForm(modeAdd, model.Action{})
		return m, cmd
	case key.Matches(km, m.keys.Toggle):
		if a, ok := m.selected(); ok {
			cmd := m.refresh(m.store.ToggleComplete(a.ID))
			return m, cmd
		}
		return m, nil
	case key.Matches(km, m.keys.Edit):
		a, ok := m.selected()
		if !ok {
			return m, nil
		}
		cmd := tea.Batch(m.refresh(m.store.ToggleEdit(a.ID)), m.openForm(modeEdit, a))
		return m, cmd
	case key.Matches(km, m.keys.Reset):
		cmd := m.refresh(m.store.Reset())
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, m.keys.Cancel):
		var cmd tea.Cmd
		if m.mode == modeEdit {
			cmd = m.refresh(m.store.ToggleEdit(m.editID))
		}
		m.closeForm()
		return m, cmd
	case key.Matches(km, m.keys.Submit):
		cmd := m.submit()
		return m, cmd
	case key.Matches(km, m.keys.NextField):
		if m.focus == fieldText {
			m.focus = fieldWeight
			m.text.Blur()
			return m, nil
		}
		m.focus = fieldText
		cmd := m.text.Focus()
		return m, cmd
	}

	if m.focus == fieldWeight {
		m.pickWeight(km)
		return m, nil
	}
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

// pickWeight moves the impact selector. Digits jump straight to a
// value, with 0 meaning 10.
func (m *Model) pickWeight(km tea.KeyMsg) {
	switch {
	case key.Matches(km, m.keys.WeightDown):
		if m.weight > model.MinWeight {
			m.weight--
		} else {
			m.weight = model.MinWeight
		}
	case key.Matches(km, m.keys.WeightUp):
		if m.weight < model.MaxWeight {
			m.weight++
		}
	default:
		s := km.String()
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			m.weight = int(s[0] - '0')
			if m.weight == 0 {
				m.weight = model.MaxWeight
			}
		}
	}
}

func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.text.Value())
	var cmd tea.Cmd
	switch m.mode {
	case modeAdd:
		before := len(m.actions)
		cmd = m.refresh(m.store.Add(text, m.weight))
		if len(m.actions) == before {
			// rejected: keep the form open with what was typed
			return cmd
		}
		m.selectID(m.actions[len(m.actions)-1].ID)
	case modeEdit:
		// the store trusts its caller, so the form checks here
		if text == "" || !model.ValidWeight(m.weight) {
			return nil
		}
		cmd = m.refresh(m.store.EditSave(m.editID, text, m.weight))
	}
	m.closeForm()
	return cmd
}

func (m *Model) openForm(md mode, a model.Action) tea.Cmd {
	m.mode = md
	m.focus = fieldText
	m.editID = a.ID
	m.weight = a.Weight
	m.text.SetValue(a.Text)
	m.text.CursorEnd()
	if md == modeAdd {
		m.text.Placeholder = "Add a new action"
	} else {
		m.text.Placeholder = "Edit action"
	}
	m.resize()
	return m.text.Focus()
}

func (m *Model) closeForm() {
	m.mode = modeBrowse
	m.editID = 0
	m.weight = 0
	m.text.SetValue("")
	m.text.Blur()
	m.resize()
}

// refresh installs a new snapshot and keeps the cursor on the same
// action where possible.
func (m *Model) refresh(actions []model.Action) tea.Cmd {
	var keep int64
	if a, ok := m.selected(); ok {
		keep = a.ID
	}

	m.actions = actions
	m.summary = view.Summarize(actions)

	ordered := view.DisplayOrder(actions)
	items := make([]bubblelist.Item, len(ordered))
	for i, a := range ordered {
		items[i] = actionItem{a}
	}
	cmd := m.list.SetItems(items)
	if keep != 0 {
		m.selectID(keep)
	}
	return cmd
}

func (m *Model) selectID(id int64) {
	for i, it := range m.list.VisibleItems() {
		if a, ok := it.(actionItem); ok && a.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) selected() (model.Action, bool) {
	it, ok := m.list.SelectedItem().(actionItem)
	if !ok {
		return model.Action{}, false
	}
	return it.Action, true
}

func (m *Model) resize() {
	// border + padding eat 4 columns and 2 rows; header is 3 rows
	h := m.height - 2 - 3
	if m.mode != modeBrowse {
		h -= 4
	}
	m.list.SetSize(max(m.width-4, 20), max(h, 3))
}

func (m Model) View() string {
	t := ui.Current()
	header := []string{
		t.Title.Render(heading),
		fmt.Sprintf("%s   %s",
			t.Accent.Render(m.summary.PercentLabel()),
			t.Muted.Render(m.summary.ImpactLabel())),
		ui.ProgressBar(m.summary.Fraction(), max(m.width-6, 10)),
	}

	content := strings.Join(header, "\n") + "\n" + m.list.View()
	if m.mode != modeBrowse {
		content += "\n" + m.formView()
	}
	return ui.Panel([]string{content})
}

func (m Model) formView() string {
	t := ui.Current()
	title := "Add action"
	if m.mode == modeEdit {
		title = "Edit action"
	}

	impact := "Impact: " + t.Muted.Render("–")
	if model.ValidWeight(m.weight) {
		impact = fmt.Sprintf("Impact: ‹ %s ›", t.Weight.Render(fmt.Sprint(m.weight)))
	}
	if m.focus == fieldWeight {
		impact = t.Selected.Render(impact)
	}

	box := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	return box.Render(title + "\n" + m.text.View() + "   " + impact)
}
