package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mindarch/mindarch/internal/display"
	"github.com/mindarch/mindarch/internal/plan"
	"github.com/mindarch/mindarch/internal/store"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <day> <task>",
	Short: "Toggle a task's completion",
	Long:  `Toggle a task between done and not done. <day> is the day number shown by status; <task> is the task's position within that day (1-based) or its id.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runToggle,
}

func runToggle(cmd *cobra.Command, args []string) error {
	dayNumber, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("day must be a number, got %q", args[0])
	}

	application, err := buildApp(false)
	if err != nil {
		return err
	}

	p, err := application.Load(cmd.Context())
	if err != nil {
		if errors.Is(err, store.ErrNoPlan) {
			return errors.New("no study plan yet; create one with: mindarch generate")
		}
		return fmt.Errorf("failed to load plan: %w", err)
	}

	taskID, err := resolveTaskID(p.Day(dayNumber), args[1])
	if err != nil {
		return err
	}
	if err := application.ToggleTask(cmd.Context(), dayNumber, taskID); err != nil {
		return err
	}

	fmt.Println(display.Summary(application.Current()))
	return nil
}

// resolveTaskID accepts a 1-based position ("2") or a task id ("k3x9p1a7q").
func resolveTaskID(day *plan.StudyDay, ref string) (string, error) {
	if day == nil {
		return "", errors.New("no such day in the plan")
	}
	if index, err := strconv.Atoi(ref); err == nil {
		if index < 1 || index > len(day.Tasks) {
			return "", fmt.Errorf("day %d has %d tasks, got task %d", day.DayNumber, len(day.Tasks), index)
		}
		return day.Tasks[index-1].ID, nil
	}
	return ref, nil
}
