// Package msgs defines shared message types for TUI view transitions.
package msgs

import "github.com/mindarch/mindarch/internal/plan"

// GoToGeneratorMsg signals transition to the plan generator form.
type GoToGeneratorMsg struct{}

// GoToDashboardMsg signals transition to the plan dashboard.
type GoToDashboardMsg struct{}

// GoToAnalyticsMsg signals transition to the analytics view.
type GoToAnalyticsMsg struct{}

// PlanGeneratedMsg is sent when generation succeeds and the new plan has
// been persisted.
type PlanGeneratedMsg struct {
	Plan *plan.StudyPlan
}

// PlanDeletedMsg is sent after the current plan was deleted.
type PlanDeletedMsg struct{}
