// Package view derives everything the screens show from a list snapshot.
// Nothing here holds state; call it again after every change.
package view

import (
	"fmt"
	"math"
	"slices"

	"github.com/Makepad-fr/impact/internal/model"
)

// TotalImpact sums every weight.
func TotalImpact(actions []model.Action) int {
	total := 0
	for _, a := range actions {
		total += a.Weight
	}
	return total
}

// CompletedImpact sums the weights of completed actions.
func CompletedImpact(actions []model.Action) int {
	done := 0
	for _, a := range actions {
		if a.Completed {
			done += a.Weight
		}
	}
	return done
}

// ProgressPercent is completed/total impact as a percentage rounded to
// one decimal place, or 0 for an empty total.
func ProgressPercent(actions []model.Action) float64 {
	return percent(CompletedImpact(actions), TotalImpact(actions))
}

func percent(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(done) / float64(total) * 100
	return math.Round(p*10) / 10
}

// DisplayOrder puts incomplete actions before completed ones, keeping
// canonical order inside each group. The input is left untouched.
func DisplayOrder(actions []model.Action) []model.Action {
	out := slices.Clone(actions)
	slices.SortStableFunc(out, func(a, b model.Action) int {
		switch {
		case a.Completed == b.Completed:
			return 0
		case a.Completed:
			return 1
		default:
			return -1
		}
	})
	return out
}

// Summary is the progress readout.
type Summary struct {
	Total     int
	Completed int
	Percent   float64
	Pending   int // incomplete action count
	Done      int // completed action count
}

// Summarize computes the readout for a snapshot.
func Summarize(actions []model.Action) Summary {
	s := Summary{
		Total:     TotalImpact(actions),
		Completed: CompletedImpact(actions),
	}
	s.Percent = percent(s.Completed, s.Total)
	for _, a := range actions {
		if a.Completed {
			s.Done++
		} else {
			s.Pending++
		}
	}
	return s
}

// PercentLabel renders e.g. "28.6% Complete".
func (s Summary) PercentLabel() string {
	return fmt.Sprintf("%.1f%% Complete", s.Percent)
}

// ImpactLabel renders e.g. "2 / 7 Impact".
func (s Summary) ImpactLabel() string {
	return fmt.Sprintf("%d / %d Impact", s.Completed, s.Total)
}

// Fraction is Percent scaled to 0..1 for progress bars.
func (s Summary) Fraction() float64 {
	return s.Percent / 100
}
