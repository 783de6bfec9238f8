package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindarch/mindarch/internal/display"
	"github.com/mindarch/mindarch/internal/plan"
)

var generateFlags struct {
	subject    string
	goal       string
	start      string
	end        string
	minutes    int
	difficulty string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new study plan",
	Long:  `Generate a day-by-day study plan from a subject, a goal and a date range. The new plan replaces any existing one.`,
	RunE:  runGenerate,
}

func init() {
	flags := generateCmd.Flags()
	flags.StringVar(&generateFlags.subject, "subject", "", "what to study (required)")
	flags.StringVar(&generateFlags.goal, "goal", "", "what you want to achieve (required)")
	flags.StringVar(&generateFlags.start, "start", "", "start date, YYYY-MM-DD (required)")
	flags.StringVar(&generateFlags.end, "end", "", "end date, YYYY-MM-DD (required)")
	flags.IntVar(&generateFlags.minutes, "minutes", 60, fmt.Sprintf("daily minutes, one of %v", plan.DailyMinuteChoices))
	flags.StringVar(&generateFlags.difficulty, "difficulty", string(plan.DifficultyIntermediate), "Beginner, Intermediate or Advanced")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	application, err := buildApp(true)
	if err != nil {
		return err
	}

	params := plan.GenerationParams{
		Subject:      generateFlags.subject,
		Goal:         generateFlags.goal,
		StartDate:    generateFlags.start,
		EndDate:      generateFlags.end,
		DailyMinutes: generateFlags.minutes,
		Difficulty:   plan.Difficulty(generateFlags.difficulty),
	}
	if err := params.Validate(); err != nil {
		return err
	}

	fmt.Println("Generating your study plan...")
	p, err := application.GeneratePlan(cmd.Context(), params)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Println()
	display.Render(os.Stdout, p)
	return nil
}
