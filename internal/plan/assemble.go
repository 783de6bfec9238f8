package plan

import (
	"fmt"
	"time"

	"github.com/mindarch/mindarch/internal/util"
)

// Assemble maps a generated schedule onto a new StudyPlan. Day order
// follows the schedule array as returned by the service; dayOffset values
// are trusted as given and not re-sorted or deduplicated. Every task gets
// a fresh identifier and starts pending. Aside from identifier randomness
// the transform is pure; persisting the result is the caller's concern.
func Assemble(params GenerationParams, schedule *GeneratedSchedule) (*StudyPlan, error) {
	start, err := util.ParseDate(params.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date: %w", err)
	}

	days := make([]StudyDay, len(schedule.Schedule))
	totalTasks := 0
	for i, raw := range schedule.Schedule {
		tasks := make([]StudyTask, len(raw.Tasks))
		for j, rt := range raw.Tasks {
			id, err := util.GenerateID()
			if err != nil {
				return nil, fmt.Errorf("failed to generate task id: %w", err)
			}
			tasks[j] = StudyTask{
				ID:               id,
				Title:            rt.Title,
				Description:      rt.Description,
				EstimatedMinutes: rt.Minutes,
				Completed:        false,
			}
		}

		days[i] = StudyDay{
			DayNumber: raw.DayOffset + 1,
			Date:      util.AddDays(start, raw.DayOffset),
			Theme:     raw.Theme,
			Tasks:     tasks,
		}
		totalTasks += len(tasks)
	}

	id, err := util.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan id: %w", err)
	}

	return &StudyPlan{
		ID:             id,
		Subject:        params.Subject,
		Goal:           params.Goal,
		StartDate:      params.StartDate,
		EndDate:        params.EndDate,
		DailyMinutes:   params.DailyMinutes,
		CreatedAt:      time.Now(),
		Days:           days,
		TotalTasks:     totalTasks,
		CompletedTasks: 0,
	}, nil
}
