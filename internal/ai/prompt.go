package ai

import (
	"fmt"
	"strings"

	"github.com/mindarch/mindarch/internal/plan"
)

// BuildPrompt embeds the normalized request parameters into the generation
// instruction. The duration and daily budget are context for the model; the
// model decides the actual day count and is not constrained to match.
func BuildPrompt(params plan.GenerationParams) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a detailed study plan for: %s.\n", params.Subject)
	fmt.Fprintf(&sb, "Goal: %s.\n", params.Goal)
	fmt.Fprintf(&sb, "Difficulty Level: %s.\n", params.Difficulty)
	fmt.Fprintf(&sb, "Duration: %d days (from %s to %s).\n", params.DurationDays(), params.StartDate, params.EndDate)
	fmt.Fprintf(&sb, "Daily availability: %d minutes.\n", params.DailyMinutes)
	sb.WriteString("\nReturn a structured JSON response with a day-by-day breakdown.\n")
	sb.WriteString("Each day should have a specific theme and a list of actionable tasks.\n")
	sb.WriteString("The tasks should sum up approximately to the daily availability minutes.\n")
	return sb.String()
}

// responseSchema is the machine-enforced output schema sent with every
// generation request, so the service returns structured JSON instead of
// free text.
func responseSchema() map[string]any {
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"overview": map[string]any{
				"type":        "STRING",
				"description": "A brief encouraging overview of the plan.",
			},
			"schedule": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"dayOffset": map[string]any{
							"type":        "INTEGER",
							"description": "0 for start date, 1 for next day, etc.",
						},
						"theme": map[string]any{"type": "STRING"},
						"tasks": map[string]any{
							"type": "ARRAY",
							"items": map[string]any{
								"type": "OBJECT",
								"properties": map[string]any{
									"title":       map[string]any{"type": "STRING"},
									"description": map[string]any{"type": "STRING"},
									"minutes":     map[string]any{"type": "INTEGER"},
								},
								"required": []string{"title", "description", "minutes"},
							},
						},
					},
					"required": []string{"dayOffset", "theme", "tasks"},
				},
			},
		},
		"required": []string{"overview", "schedule"},
	}
}
