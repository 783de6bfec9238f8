package components

import (
	"fmt"
	"strings"
)

const (
	filledChar = "■"
	emptyChar  = "□"
)

// Progress renders a progress bar like: ■■■■□□□□ 50%
type Progress struct {
	Current int
	Total   int
	Width   int // character width of the bar portion
}

// NewProgress creates a new Progress instance.
func NewProgress(current, total, width int) Progress {
	return Progress{
		Current: current,
		Total:   total,
		Width:   width,
	}
}

// View returns the rendered progress bar string. A zero-task plan renders
// as an empty bar at 0%.
func (p Progress) View() string {
	if p.Width <= 0 {
		return ""
	}
	if p.Total <= 0 {
		return fmt.Sprintf("%s 0%%", strings.Repeat(emptyChar, p.Width))
	}

	// Clamp current to valid range
	current := p.Current
	if current < 0 {
		current = 0
	}
	if current > p.Total {
		current = p.Total
	}

	// Round half up so the label matches the plan's progress accounting.
	percent := (current*200 + p.Total) / (2 * p.Total)
	filled := (current * p.Width) / p.Total

	bar := strings.Repeat(filledChar, filled) + strings.Repeat(emptyChar, p.Width-filled)
	return fmt.Sprintf("%s %d%%", bar, percent)
}
