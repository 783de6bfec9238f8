package plan

import (
	"fmt"

	"github.com/mindarch/mindarch/internal/util"
)

// Difficulty is the requested intensity of the generated plan.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Difficulties lists the accepted values in display order.
var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// DailyMinuteChoices are the daily time budgets the form offers. Validation
// rejects anything outside this set, which also covers non-positive values.
var DailyMinuteChoices = []int{15, 30, 45, 60, 90, 120, 180}

// GenerationParams are the user-supplied inputs to plan generation.
// They are transient: validated, embedded into the generation prompt,
// and copied onto the assembled plan, but never persisted on their own.
type GenerationParams struct {
	Subject      string     `json:"subject"`
	Goal         string     `json:"goal"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate"`
	DailyMinutes int        `json:"dailyMinutes"`
	Difficulty   Difficulty `json:"difficulty"`
}

// ValidationError reports invalid form input. Validation failures are
// surfaced locally and never reach the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks that all fields are present and well-formed.
func (p GenerationParams) Validate() error {
	if p.Subject == "" {
		return &ValidationError{Field: "subject", Reason: "required"}
	}
	if p.Goal == "" {
		return &ValidationError{Field: "goal", Reason: "required"}
	}

	start, err := util.ParseDate(p.StartDate)
	if err != nil {
		return &ValidationError{Field: "startDate", Reason: "must be an ISO date (YYYY-MM-DD)"}
	}
	end, err := util.ParseDate(p.EndDate)
	if err != nil {
		return &ValidationError{Field: "endDate", Reason: "must be an ISO date (YYYY-MM-DD)"}
	}
	if end.Before(start) {
		return &ValidationError{Field: "endDate", Reason: "must not be before start date"}
	}

	if !validDailyMinutes(p.DailyMinutes) {
		return &ValidationError{
			Field:  "dailyMinutes",
			Reason: fmt.Sprintf("must be one of %v", DailyMinuteChoices),
		}
	}

	switch p.Difficulty {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return &ValidationError{Field: "difficulty", Reason: "must be Beginner, Intermediate or Advanced"}
	}

	return nil
}

// DurationDays returns the inclusive day count of the requested range.
// Callers must validate first; invalid dates yield 0.
func (p GenerationParams) DurationDays() int {
	start, err := util.ParseDate(p.StartDate)
	if err != nil {
		return 0
	}
	end, err := util.ParseDate(p.EndDate)
	if err != nil {
		return 0
	}
	return util.DurationDays(start, end)
}

func validDailyMinutes(m int) bool {
	for _, choice := range DailyMinuteChoices {
		if m == choice {
			return true
		}
	}
	return false
}
