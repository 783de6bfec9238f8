// Package display renders plans for plain CLI output. The interactive
// rendering lives in the TUI; this is the non-interactive counterpart used
// by commands like status.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindarch/mindarch/internal/plan"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C6C6C"))

	themeStyle = lipgloss.NewStyle().
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73F59F"))
)

const barWidth = 30

// Render writes the full plan: header, progress, then every day with its
// tasks and checkboxes.
func Render(w io.Writer, p *plan.StudyPlan) {
	fmt.Fprintln(w, titleStyle.Render(p.Subject))
	fmt.Fprintln(w, subtleStyle.Render("Goal: "+p.Goal))
	fmt.Fprintln(w, subtleStyle.Render(fmt.Sprintf("%s to %s", p.StartDate, p.EndDate)))
	fmt.Fprintln(w)
	fmt.Fprintln(w, Summary(p))

	for i := range p.Days {
		day := &p.Days[i]
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s %s\n",
			themeStyle.Render(fmt.Sprintf("Day %d", day.DayNumber)),
			subtleStyle.Render(fmt.Sprintf("(%s) %s", day.Date, day.Theme)))
		for j := range day.Tasks {
			fmt.Fprintln(w, renderTask(&day.Tasks[j]))
		}
	}
}

func renderTask(t *plan.StudyTask) string {
	box := "[ ]"
	title := t.Title
	if t.Completed {
		box = doneStyle.Render("[x]")
	}
	line := fmt.Sprintf("  %s %s (%dm)", box, title, t.EstimatedMinutes)
	if t.Description != "" {
		line += "\n      " + subtleStyle.Render(t.Description)
	}
	return line
}

// Summary is the one-line progress view: a bar plus counters.
func Summary(p *plan.StudyPlan) string {
	percent := plan.ProgressPercent(p)
	return fmt.Sprintf("%s %d%% (%d/%d tasks)",
		progressBar(percent, barWidth), percent, p.CompletedTasks, p.TotalTasks)
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return "[" + doneStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled) + "]"
}
