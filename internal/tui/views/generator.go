package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindarch/mindarch/internal/plan"
	"github.com/mindarch/mindarch/internal/tui/components"
	"github.com/mindarch/mindarch/internal/tui/msgs"
	"github.com/mindarch/mindarch/internal/tui/styles"
	"github.com/mindarch/mindarch/internal/util"
)

// generatorField identifies the focused form element.
type generatorField int

const (
	fieldSubject generatorField = iota
	fieldGoal
	fieldStart
	fieldEnd
	fieldMinutes
	fieldDifficulty
	fieldSubmit
	fieldCount
)

// GenerateFunc runs the generation pipeline and returns the persisted plan.
// It is injected so tests can avoid real generation calls.
type GenerateFunc func(ctx context.Context, params plan.GenerationParams) (*plan.StudyPlan, error)

// generationDoneMsg reports the outcome of a background generation.
type generationDoneMsg struct {
	plan *plan.StudyPlan
	err  error
}

// GeneratorModel is the plan creation form.
type GeneratorModel struct {
	inputs        [4]textinput.Model // subject, goal, start date, end date
	minutesIdx    int
	difficultyIdx int
	focus         generatorField

	generating bool
	spinner    spinner.Model
	errMsg     string

	generate  GenerateFunc
	canGoBack bool // true when a plan already exists to return to

	statusBar components.StatusBar
	width     int
	height    int
}

// NewGeneratorModel creates the form. canGoBack controls whether Esc
// returns to the dashboard.
func NewGeneratorModel(generate GenerateFunc, canGoBack bool) GeneratorModel {
	m := GeneratorModel{
		generate:      generate,
		canGoBack:     canGoBack,
		minutesIdx:    3, // 60 minutes
		difficultyIdx: 1, // Intermediate
		statusBar:     components.NewStatusBar(),
	}

	labels := []struct {
		placeholder string
		limit       int
	}{
		{"e.g. Linear Algebra", 100},
		{"e.g. Pass the final exam", 200},
		{util.Today(), 10},
		{"YYYY-MM-DD", 10},
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i].placeholder
		ti.CharLimit = labels[i].limit
		m.inputs[i] = ti
	}
	m.inputs[fieldStart].SetValue(util.Today())
	m.inputs[fieldSubject].Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle
	m.spinner = s

	return m
}

// Init implements tea.Model.
func (m GeneratorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Params builds the generation parameters from the current form values.
func (m GeneratorModel) Params() plan.GenerationParams {
	return plan.GenerationParams{
		Subject:      strings.TrimSpace(m.inputs[fieldSubject].Value()),
		Goal:         strings.TrimSpace(m.inputs[fieldGoal].Value()),
		StartDate:    strings.TrimSpace(m.inputs[fieldStart].Value()),
		EndDate:      strings.TrimSpace(m.inputs[fieldEnd].Value()),
		DailyMinutes: plan.DailyMinuteChoices[m.minutesIdx],
		Difficulty:   plan.Difficulties[m.difficultyIdx],
	}
}

// Update implements tea.Model.
func (m GeneratorModel) Update(msg tea.Msg) (GeneratorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case generationDoneMsg:
		m.generating = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return msgs.PlanGeneratedMsg{Plan: msg.plan} }

	case spinner.TickMsg:
		if !m.generating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.generating {
			// Generation cannot be interrupted from the form; quit still works.
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m GeneratorModel) handleKey(msg tea.KeyMsg) (GeneratorModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.canGoBack {
			return m, func() tea.Msg { return msgs.GoToDashboardMsg{} }
		}
		return m, tea.Quit

	case "tab", "down":
		return m.moveFocus(1), nil

	case "shift+tab", "up":
		return m.moveFocus(-1), nil

	case "left":
		return m.cycleChoice(-1), nil

	case "right":
		return m.cycleChoice(1), nil

	case "enter":
		if m.focus == fieldSubmit {
			return m.submit()
		}
		return m.moveFocus(1), nil
	}

	return m.updateFocusedInput(msg)
}

func (m GeneratorModel) updateFocusedInput(msg tea.Msg) (GeneratorModel, tea.Cmd) {
	if m.focus >= fieldSubject && m.focus <= fieldEnd {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m GeneratorModel) moveFocus(delta int) GeneratorModel {
	m.inputsBlur()
	m.focus = (m.focus + generatorField(delta) + fieldCount) % fieldCount
	if m.focus <= fieldEnd {
		m.inputs[m.focus].Focus()
	}
	return m
}

func (m *GeneratorModel) inputsBlur() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m GeneratorModel) cycleChoice(delta int) GeneratorModel {
	switch m.focus {
	case fieldMinutes:
		n := len(plan.DailyMinuteChoices)
		m.minutesIdx = (m.minutesIdx + delta + n) % n
	case fieldDifficulty:
		n := len(plan.Difficulties)
		m.difficultyIdx = (m.difficultyIdx + delta + n) % n
	}
	return m
}

func (m GeneratorModel) submit() (GeneratorModel, tea.Cmd) {
	params := m.Params()
	if err := params.Validate(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.errMsg = ""
	m.generating = true
	return m, tea.Batch(m.spinner.Tick, m.startGeneration(params))
}

// startGeneration runs the pipeline in the background. The context outlives
// key handling on purpose; quitting mid-generation abandons the result.
func (m GeneratorModel) startGeneration(params plan.GenerationParams) tea.Cmd {
	generate := m.generate
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		p, err := generate(ctx, params)
		return generationDoneMsg{plan: p, err: err}
	}
}

// View implements tea.Model.
func (m GeneratorModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("New Study Plan"))
	b.WriteString("\n\n")

	if m.generating {
		b.WriteString(fmt.Sprintf("%s Generating your study plan...\n\n", m.spinner.View()))
		b.WriteString(styles.SubtleStyle.Render("This usually takes a few seconds."))
		return b.String()
	}

	writeInput := func(field generatorField, label string) {
		b.WriteString(m.renderLabel(field, label))
		b.WriteString("\n")
		b.WriteString(m.inputs[field].View())
		b.WriteString("\n\n")
	}
	writeInput(fieldSubject, "Subject")
	writeInput(fieldGoal, "Goal")
	writeInput(fieldStart, "Start date")
	writeInput(fieldEnd, "End date")

	b.WriteString(m.renderLabel(fieldMinutes, "Daily minutes"))
	b.WriteString("\n")
	b.WriteString(m.renderChoice(fieldMinutes, fmt.Sprintf("%d", plan.DailyMinuteChoices[m.minutesIdx])))
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel(fieldDifficulty, "Difficulty"))
	b.WriteString("\n")
	b.WriteString(m.renderChoice(fieldDifficulty, string(plan.Difficulties[m.difficultyIdx])))
	b.WriteString("\n\n")

	submit := "[ Generate ]"
	if m.focus == fieldSubmit {
		submit = styles.SelectedStyle.Render("[ Generate ]")
	}
	b.WriteString(submit)
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	items := []string{"Tab Next field", "←→ Change value", "Enter Generate"}
	if m.canGoBack {
		items = append(items, "Esc Back")
	} else {
		items = append(items, "Esc Quit")
	}
	b.WriteString("\n")
	b.WriteString(m.statusBar.Render(m.width, items))

	return b.String()
}

func (m GeneratorModel) renderLabel(field generatorField, label string) string {
	if m.focus == field {
		return styles.SelectedStyle.Render(label)
	}
	return label
}

func (m GeneratorModel) renderChoice(field generatorField, value string) string {
	text := fmt.Sprintf("‹ %s ›", value)
	if m.focus == field {
		return styles.SelectedStyle.Render(text)
	}
	return styles.SubtleStyle.Render(text)
}
