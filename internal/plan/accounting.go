package plan

import (
	"fmt"
	"math"
)

// Toggle flips the completion flag of one task, identified by its owning
// day number and task id, then recounts CompletedTasks. Both directions
// (pending to done and back) are allowed; there are no bulk or cascading
// transitions.
func Toggle(p *StudyPlan, dayNumber int, taskID string) error {
	day := p.Day(dayNumber)
	if day == nil {
		return fmt.Errorf("day %d not found", dayNumber)
	}

	for i := range day.Tasks {
		if day.Tasks[i].ID == taskID {
			day.Tasks[i].Completed = !day.Tasks[i].Completed
			Recount(p)
			return nil
		}
	}
	return fmt.Errorf("task %s not found in day %d", taskID, dayNumber)
}

// Recount recomputes CompletedTasks from the per-task flags. A full
// recount after every mutation keeps the counter honest even when the plan
// was loaded from a stale persisted snapshot.
func Recount(p *StudyPlan) {
	count := 0
	for i := range p.Days {
		for j := range p.Days[i].Tasks {
			if p.Days[i].Tasks[j].Completed {
				count++
			}
		}
	}
	p.CompletedTasks = count
}

// ProgressPercent returns the overall completion percentage, rounded to
// the nearest integer. A plan with no tasks is 0%.
func ProgressPercent(p *StudyPlan) int {
	if p.TotalTasks == 0 {
		return 0
	}
	return int(math.Round(float64(p.CompletedTasks) / float64(p.TotalTasks) * 100))
}

// DayStats is the per-day completed/total breakdown shown in analytics.
type DayStats struct {
	DayNumber int
	Completed int
	Total     int
}

// Breakdown returns per-day task counts in day order.
func Breakdown(p *StudyPlan) []DayStats {
	stats := make([]DayStats, len(p.Days))
	for i := range p.Days {
		completed := 0
		for j := range p.Days[i].Tasks {
			if p.Days[i].Tasks[j].Completed {
				completed++
			}
		}
		stats[i] = DayStats{
			DayNumber: p.Days[i].DayNumber,
			Completed: completed,
			Total:     len(p.Days[i].Tasks),
		}
	}
	return stats
}
