package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindarch/mindarch/internal/plan"
	"github.com/mindarch/mindarch/internal/tui/components"
	"github.com/mindarch/mindarch/internal/tui/msgs"
	"github.com/mindarch/mindarch/internal/tui/styles"
)

// AnalyticsModel shows per-day completion as a bar chart.
type AnalyticsModel struct {
	plan      *plan.StudyPlan
	statusBar components.StatusBar
	width     int
	height    int
}

// NewAnalyticsModel creates the analytics view for the given plan.
func NewAnalyticsModel(p *plan.StudyPlan) AnalyticsModel {
	return AnalyticsModel{
		plan:      p,
		statusBar: components.NewStatusBar(),
	}
}

// Init implements tea.Model.
func (m AnalyticsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m AnalyticsModel) Update(msg tea.Msg) (AnalyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "b":
			return m, func() tea.Msg { return msgs.GoToDashboardMsg{} }
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m AnalyticsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Progress by Day"))
	b.WriteString("\n\n")

	overall := components.NewProgress(m.plan.CompletedTasks, m.plan.TotalTasks, 24)
	b.WriteString(fmt.Sprintf("Overall  %s  %d/%d tasks\n\n", overall.View(), m.plan.CompletedTasks, m.plan.TotalTasks))

	for _, stats := range plan.Breakdown(m.plan) {
		bar := components.NewProgress(stats.Completed, stats.Total, 16)
		label := fmt.Sprintf("Day %-3d", stats.DayNumber)
		if stats.Total == 0 {
			b.WriteString(fmt.Sprintf("%s %s\n", label, styles.SubtleStyle.Render("(rest day)")))
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s  %d/%d\n", label, bar.View(), stats.Completed, stats.Total))
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar.Render(m.width, []string{"Esc Back", "q Quit"}))
	return b.String()
}
