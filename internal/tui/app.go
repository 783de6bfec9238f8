// Package tui implements the interactive terminal interface: a generator
// form, a plan dashboard with task toggling, and an analytics view.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindarch/mindarch/internal/app"
	"github.com/mindarch/mindarch/internal/tui/msgs"
	"github.com/mindarch/mindarch/internal/tui/views"
)

// View represents the different screens in the TUI.
type View int

const (
	ViewGenerator View = iota
	ViewDashboard
	ViewAnalytics
)

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	currentView View
	application *app.App

	generator views.GeneratorModel
	dashboard views.DashboardModel
	analytics views.AnalyticsModel

	width  int
	height int
}

// Run starts the TUI. The application should already have tried to load
// the saved plan; with no plan the generator form opens first.
func Run(application *app.App) error {
	p := tea.NewProgram(
		newModel(application),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

func newModel(application *app.App) Model {
	m := Model{application: application}

	if current := application.Current(); current != nil {
		m.currentView = ViewDashboard
		m.dashboard = views.NewDashboardModel(current, application.ToggleTask, application.DeletePlan)
	} else {
		m.currentView = ViewGenerator
		m.generator = views.NewGeneratorModel(application.GeneratePlan, false)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	switch m.currentView {
	case ViewGenerator:
		return m.generator.Init()
	case ViewDashboard:
		return m.dashboard.Init()
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Fall through to the current view so it can resize too.

	case msgs.PlanGeneratedMsg:
		m.currentView = ViewDashboard
		m.dashboard = views.NewDashboardModel(msg.Plan, m.application.ToggleTask, m.application.DeletePlan)
		return m.resized(m.dashboard.Init())

	case msgs.PlanDeletedMsg:
		m.currentView = ViewGenerator
		m.generator = views.NewGeneratorModel(m.application.GeneratePlan, false)
		return m.resized(m.generator.Init())

	case msgs.GoToGeneratorMsg:
		m.currentView = ViewGenerator
		m.generator = views.NewGeneratorModel(m.application.GeneratePlan, true)
		return m.resized(m.generator.Init())

	case msgs.GoToDashboardMsg:
		if current := m.application.Current(); current != nil {
			m.currentView = ViewDashboard
			m.dashboard = views.NewDashboardModel(current, m.application.ToggleTask, m.application.DeletePlan)
			return m.resized(m.dashboard.Init())
		}
		return m, nil

	case msgs.GoToAnalyticsMsg:
		if current := m.application.Current(); current != nil {
			m.currentView = ViewAnalytics
			m.analytics = views.NewAnalyticsModel(current)
			return m.resized(m.analytics.Init())
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewGenerator:
		m.generator, cmd = m.generator.Update(msg)
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case ViewAnalytics:
		m.analytics, cmd = m.analytics.Update(msg)
	}
	return m, cmd
}

// resized replays the stored window size into the freshly created view, so
// transitions keep the layout.
func (m Model) resized(initCmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.width == 0 && m.height == 0 {
		return m, initCmd
	}
	size := tea.WindowSizeMsg{Width: m.width, Height: m.height}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewGenerator:
		m.generator, cmd = m.generator.Update(size)
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(size)
	case ViewAnalytics:
		m.analytics, cmd = m.analytics.Update(size)
	}
	return m, tea.Batch(initCmd, cmd)
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.currentView {
	case ViewGenerator:
		return m.generator.View()
	case ViewDashboard:
		return m.dashboard.View()
	case ViewAnalytics:
		return m.analytics.View()
	}
	return ""
}
