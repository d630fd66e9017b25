package model

// Weight bounds for an action's impact.
const (
	MinWeight = 1
	MaxWeight = 10
)

// Action is the domain model for a weighted todo entry.
// Editing is view state only and never leaves the process.
type Action struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Weight    int    `json:"weight"`
	Completed bool   `json:"completed"`
	Editing   bool   `json:"-"`
}

// ValidWeight reports whether w is one of the selectable weights.
func ValidWeight(w int) bool {
	return w >= MinWeight && w <= MaxWeight
}

// Weights returns the enumerated weight choices in ascending order.
func Weights() []int {
	out := make([]int, 0, MaxWeight-MinWeight+1)
	for w := MinWeight; w <= MaxWeight; w++ {
		out = append(out, w)
	}
	return out
}
