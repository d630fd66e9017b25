package cli

import (
	"fmt"

	"github.com/Makepad-fr/impact/internal/model"
	"github.com/Makepad-fr/impact/internal/ui"
	"github.com/Makepad-fr/impact/internal/view"
)

// -------------- rendering helpers --------------

func listLines(actions []model.Action, group bool) []string {
	t := ui.Current()
	s := view.Summarize(actions)

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Impact"),
		t.Success.Render(t.SymDone), s.Done,
		t.Pending.Render(t.SymPending), s.Pending,
		t.Accent.Render("Total"), len(actions),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, fmt.Sprintf("%s   %s", s.PercentLabel(), t.Muted.Render(s.ImpactLabel())))
	lines = append(lines, ui.ProgressBar(s.Fraction(), 28))
	lines = append(lines, "")

	ordered := view.DisplayOrder(actions)
	if group {
		lines = append(lines, groupLines(ordered)...)
	} else {
		lines = append(lines, flatLines(ordered, 1)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `impact add \"Write report\" -w 5`"))
	return lines
}

// flatLines numbers rows from start so indexes match display order.
func flatLines(actions []model.Action, start int) []string {
	t := ui.Current()
	if len(actions) == 0 {
		return []string{t.Muted.Render("no actions")}
	}
	out := make([]string, 0, len(actions))
	for i, a := range actions {
		idx := fmt.Sprintf("%2d.", start+i)
		box := t.Muted.Render(t.BoxUnchecked)
		text := ui.Truncate(a.Text, 80)
		if a.Completed {
			box = t.Success.Render(t.BoxChecked)
			text = t.Done.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s %s",
			t.Muted.Render(idx), box, text, t.Weight.Render(fmt.Sprintf("(%d)", a.Weight))))
	}
	return out
}

// groupLines expects display order, so pending rows come first.
func groupLines(ordered []model.Action) []string {
	t := ui.Current()
	split := len(ordered)
	for i, a := range ordered {
		if a.Completed {
			split = i
			break
		}
	}
	pend, done := ordered[:split], ordered[split:]

	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend, 1)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done, split+1)...)
	}
	return lines
}
