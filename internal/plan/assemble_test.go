package plan

import "testing"

func threeDaySchedule() *GeneratedSchedule {
	return &GeneratedSchedule{
		Overview: "You can do this.",
		Schedule: []GeneratedDay{
			{
				DayOffset: 0,
				Theme:     "Foundations",
				Tasks: []GeneratedTask{
					{Title: "Read chapter 1", Description: "Sections 1.1-1.3", Minutes: 30},
					{Title: "Practice problems", Description: "Odd-numbered exercises", Minutes: 30},
				},
			},
			{
				DayOffset: 1,
				Theme:     "Linear equations",
				Tasks: []GeneratedTask{
					{Title: "Watch lecture", Description: "Solving for x", Minutes: 60},
				},
			},
			{
				DayOffset: 2,
				Theme:     "Review",
				Tasks: []GeneratedTask{
					{Title: "Flashcards", Description: "Key terms", Minutes: 20},
					{Title: "Mock quiz", Description: "Timed, 30 minutes", Minutes: 40},
				},
			},
		},
	}
}

func TestAssemble(t *testing.T) {
	params := validParams()
	params.EndDate = "2024-01-03"

	p, err := Assemble(params, threeDaySchedule())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Subject != "Algebra" || p.Goal != "Pass the midterm" {
		t.Errorf("params not copied onto plan: %+v", p)
	}
	if len(p.Days) != 3 {
		t.Fatalf("day count mismatch: got %d, want 3", len(p.Days))
	}
	if p.Days[0].Date != "2024-01-01" {
		t.Errorf("days[0].Date = %s, want 2024-01-01", p.Days[0].Date)
	}
	if p.Days[2].DayNumber != 3 {
		t.Errorf("days[2].DayNumber = %d, want 3", p.Days[2].DayNumber)
	}
	if p.Days[2].Date != "2024-01-03" {
		t.Errorf("days[2].Date = %s, want 2024-01-03", p.Days[2].Date)
	}
	if p.TotalTasks != 5 {
		t.Errorf("TotalTasks = %d, want 5", p.TotalTasks)
	}
	if p.CompletedTasks != 0 {
		t.Errorf("CompletedTasks = %d, want 0", p.CompletedTasks)
	}
	if p.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if p.ID == "" {
		t.Error("plan id should be set")
	}

	for _, day := range p.Days {
		for _, task := range day.Tasks {
			if task.ID == "" {
				t.Errorf("task %q missing id", task.Title)
			}
			if task.Completed {
				t.Errorf("task %q should start pending", task.Title)
			}
		}
	}
}

func TestAssemble_DayNumbersContiguous(t *testing.T) {
	schedule := &GeneratedSchedule{Schedule: make([]GeneratedDay, 7)}
	for i := range schedule.Schedule {
		schedule.Schedule[i] = GeneratedDay{DayOffset: i, Theme: "Day", Tasks: []GeneratedTask{}}
	}

	p, err := Assemble(validParams(), schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, day := range p.Days {
		if day.DayNumber != i+1 {
			t.Errorf("days[%d].DayNumber = %d, want %d", i, day.DayNumber, i+1)
		}
	}
}

func TestAssemble_PreservesArrayOrder(t *testing.T) {
	// The service is trusted: out-of-order offsets are kept in array order,
	// not re-sorted.
	schedule := &GeneratedSchedule{
		Schedule: []GeneratedDay{
			{DayOffset: 2, Theme: "Later", Tasks: []GeneratedTask{}},
			{DayOffset: 0, Theme: "Earlier", Tasks: []GeneratedTask{}},
		},
	}

	p, err := Assemble(validParams(), schedule)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Days[0].Theme != "Later" || p.Days[0].DayNumber != 3 {
		t.Errorf("days[0] = %+v, want theme Later with dayNumber 3", p.Days[0])
	}
	if p.Days[1].Theme != "Earlier" || p.Days[1].DayNumber != 1 {
		t.Errorf("days[1] = %+v, want theme Earlier with dayNumber 1", p.Days[1])
	}
}

func TestAssemble_EmptySchedule(t *testing.T) {
	p, err := Assemble(validParams(), &GeneratedSchedule{Schedule: []GeneratedDay{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(p.Days) != 0 {
		t.Errorf("expected no days, got %d", len(p.Days))
	}
	if p.TotalTasks != 0 {
		t.Errorf("TotalTasks = %d, want 0", p.TotalTasks)
	}
	if got := ProgressPercent(p); got != 0 {
		t.Errorf("ProgressPercent = %d, want 0", got)
	}
}

func TestGeneratedSchedule_Validate(t *testing.T) {
	tests := []struct {
		name     string
		schedule GeneratedSchedule
		wantErr  bool
	}{
		{"valid", *threeDaySchedule(), false},
		{"empty schedule", GeneratedSchedule{Schedule: []GeneratedDay{}}, false},
		{"nil schedule", GeneratedSchedule{}, true},
		{"negative offset", GeneratedSchedule{Schedule: []GeneratedDay{
			{DayOffset: -1, Theme: "Bad", Tasks: []GeneratedTask{}},
		}}, true},
		{"nil tasks", GeneratedSchedule{Schedule: []GeneratedDay{
			{DayOffset: 0, Theme: "Bad"},
		}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
