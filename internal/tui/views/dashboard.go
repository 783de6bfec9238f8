package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindarch/mindarch/internal/plan"
	"github.com/mindarch/mindarch/internal/tui/components"
	"github.com/mindarch/mindarch/internal/tui/msgs"
	"github.com/mindarch/mindarch/internal/tui/styles"
)

// ToggleFunc flips one task's completion and persists the plan.
type ToggleFunc func(ctx context.Context, dayNumber int, taskID string) error

// DeleteFunc removes the saved plan.
type DeleteFunc func(ctx context.Context) error

// taskRef addresses a task by its position in the plan.
type taskRef struct {
	dayIdx  int
	taskIdx int
}

// DashboardModel shows the current plan day by day and lets the user
// check tasks off.
type DashboardModel struct {
	plan   *plan.StudyPlan
	toggle ToggleFunc
	delete DeleteFunc

	// Flattened cursor over every task in day order.
	tasks  []taskRef
	cursor int

	confirmDelete bool
	errMsg        string

	statusBar components.StatusBar
	width     int
	height    int
}

// NewDashboardModel creates the dashboard for the given plan.
func NewDashboardModel(p *plan.StudyPlan, toggle ToggleFunc, del DeleteFunc) DashboardModel {
	m := DashboardModel{
		plan:      p,
		toggle:    toggle,
		delete:    del,
		statusBar: components.NewStatusBar(),
	}
	for dayIdx := range p.Days {
		for taskIdx := range p.Days[dayIdx].Tasks {
			m.tasks = append(m.tasks, taskRef{dayIdx: dayIdx, taskIdx: taskIdx})
		}
	}
	return m
}

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.confirmDelete {
			return m.handleDeleteConfirm(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}

	case " ", "enter":
		return m.toggleCurrent()

	case "n":
		return m, func() tea.Msg { return msgs.GoToGeneratorMsg{} }

	case "a":
		return m, func() tea.Msg { return msgs.GoToAnalyticsMsg{} }

	case "d":
		m.confirmDelete = true
	}
	return m, nil
}

func (m DashboardModel) handleDeleteConfirm(msg tea.KeyMsg) (DashboardModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirmDelete = false
		if err := m.delete(context.Background()); err != nil {
			m.errMsg = fmt.Sprintf("Failed to delete plan: %v", err)
			return m, nil
		}
		return m, func() tea.Msg { return msgs.PlanDeletedMsg{} }
	case "n", "N", "esc":
		m.confirmDelete = false
	}
	return m, nil
}

func (m DashboardModel) toggleCurrent() (DashboardModel, tea.Cmd) {
	if len(m.tasks) == 0 {
		return m, nil
	}

	ref := m.tasks[m.cursor]
	day := &m.plan.Days[ref.dayIdx]
	task := &day.Tasks[ref.taskIdx]

	if err := m.toggle(context.Background(), day.DayNumber, task.ID); err != nil {
		m.errMsg = fmt.Sprintf("Change not saved: %v", err)
		return m, nil
	}
	m.errMsg = ""
	return m, nil
}

// View implements tea.Model.
func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(m.plan.Subject))
	b.WriteString("\n")
	b.WriteString(styles.SubtleStyle.Render(fmt.Sprintf("Goal: %s", m.plan.Goal)))
	b.WriteString("\n\n")

	bar := components.NewProgress(m.plan.CompletedTasks, m.plan.TotalTasks, 24)
	b.WriteString(fmt.Sprintf("%s  %d/%d tasks\n", bar.View(), m.plan.CompletedTasks, m.plan.TotalTasks))

	for dayIdx := range m.plan.Days {
		day := &m.plan.Days[dayIdx]
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s %s\n",
			styles.SelectedStyle.Render(fmt.Sprintf("Day %d", day.DayNumber)),
			styles.SubtleStyle.Render(fmt.Sprintf("%s · %s", day.Date, day.Theme))))

		for taskIdx := range day.Tasks {
			b.WriteString(m.renderTaskLine(dayIdx, taskIdx))
			b.WriteString("\n")
		}
		if len(day.Tasks) == 0 {
			b.WriteString(styles.SubtleStyle.Render("  (rest day)"))
			b.WriteString("\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.confirmDelete {
		b.WriteString(styles.ErrorStyle.Render("Delete this plan? (y/n)"))
	} else {
		b.WriteString(m.statusBar.Render(m.width, []string{
			"↑↓ Navigate", "Space Toggle", "n New plan", "a Analytics", "d Delete", "q Quit",
		}))
	}
	return b.String()
}

func (m DashboardModel) renderTaskLine(dayIdx, taskIdx int) string {
	day := &m.plan.Days[dayIdx]
	task := &day.Tasks[taskIdx]

	box := "[ ]"
	if task.Completed {
		box = styles.SuccessStyle.Render("[x]")
	}
	line := fmt.Sprintf("  %s %s (%dm)", box, task.Title, task.EstimatedMinutes)

	selected := len(m.tasks) > 0 &&
		m.tasks[m.cursor].dayIdx == dayIdx &&
		m.tasks[m.cursor].taskIdx == taskIdx
	if selected {
		return styles.SelectedStyle.Render("›") + line
	}
	return " " + line
}
