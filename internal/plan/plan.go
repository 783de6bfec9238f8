package plan

import "time"

// StudyTask is a single actionable study item with an estimated time cost
// and a completion flag. Tasks are created at assembly time and mutated
// only through Toggle; they are never deleted individually.
type StudyTask struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
	Completed        bool   `json:"completed"`
}

// StudyDay groups the tasks scheduled for a single calendar day.
// DayNumber is 1-based; Date is an ISO date string derived from the plan's
// start date plus the generated day offset.
type StudyDay struct {
	DayNumber int         `json:"dayNumber"`
	Date      string      `json:"date"`
	Theme     string      `json:"theme"`
	Tasks     []StudyTask `json:"tasks"`
}

// StudyPlan is the full multi-day schedule for one subject/goal.
// TotalTasks is fixed at assembly time; CompletedTasks is always recomputed
// from the per-task flags, never adjusted incrementally.
type StudyPlan struct {
	ID             string     `json:"id"`
	Subject        string     `json:"subject"`
	Goal           string     `json:"goal"`
	StartDate      string     `json:"startDate"`
	EndDate        string     `json:"endDate"`
	DailyMinutes   int        `json:"dailyMinutes"`
	CreatedAt      time.Time  `json:"createdAt"`
	Days           []StudyDay `json:"days"`
	TotalTasks     int        `json:"totalTasks"`
	CompletedTasks int        `json:"completedTasks"`
}

// Day returns the day with the given 1-based number, or nil.
func (p *StudyPlan) Day(dayNumber int) *StudyDay {
	for i := range p.Days {
		if p.Days[i].DayNumber == dayNumber {
			return &p.Days[i]
		}
	}
	return nil
}
