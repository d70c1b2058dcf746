// Package check resolves a roll total against a difficulty.
package check

// Result is the outcome of a difficulty check.
type Result struct {
	Total      int
	Difficulty int
	Success    bool
	// Margin is positive on success and negative on failure.
	Margin int
}

// Resolve checks total against difficulty. Meeting the difficulty exactly
// succeeds with a margin of zero.
func Resolve(total, difficulty int) Result {
	return Result{
		Total:      total,
		Difficulty: difficulty,
		Success:    total >= difficulty,
		Margin:     total - difficulty,
	}
}

// Distance is the absolute margin.
func (r Result) Distance() int {
	if r.Margin < 0 {
		return -r.Margin
	}
	return r.Margin
}
