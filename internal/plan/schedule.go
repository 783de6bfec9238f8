package plan

import (
	"errors"
	"fmt"
)

// GeneratedSchedule is the structured response from the generation service.
type GeneratedSchedule struct {
	Overview string         `json:"overview"`
	Schedule []GeneratedDay `json:"schedule"`
}

// GeneratedDay is one raw day entry as returned by the service. DayOffset
// is relative to the requested start date: 0 for the start date itself.
type GeneratedDay struct {
	DayOffset int             `json:"dayOffset"`
	Theme     string          `json:"theme"`
	Tasks     []GeneratedTask `json:"tasks"`
}

// GeneratedTask is one raw task entry as returned by the service.
type GeneratedTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Minutes     int    `json:"minutes"`
}

// Validate checks the schedule against the declared output schema. An empty
// schedule is valid (the service decides the day count); negative offsets
// are not, since dates derived from them would precede the start date.
func (g *GeneratedSchedule) Validate() error {
	if g.Schedule == nil {
		return errors.New("missing schedule array")
	}
	for i, day := range g.Schedule {
		if day.DayOffset < 0 {
			return fmt.Errorf("schedule entry %d has negative dayOffset %d", i, day.DayOffset)
		}
		if day.Tasks == nil {
			return fmt.Errorf("schedule entry %d missing tasks array", i)
		}
	}
	return nil
}
