package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mindarch/mindarch/internal/plan"
)

const planFile = "plan.json"

// Local stores the plan as a JSON file inside dir.
type Local struct {
	dir string
}

func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

func (l *Local) planPath() string {
	return filepath.Join(l.dir, planFile)
}

// Load reads the saved plan from disk.
func (l *Local) Load(ctx context.Context) (*plan.StudyPlan, error) {
	data, err := os.ReadFile(l.planPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoPlan
		}
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p plan.StudyPlan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}
	return &p, nil
}

// Save writes the plan atomically: write to a temp file in the same
// directory, then rename over the previous file.
func (l *Local) Save(ctx context.Context, p *plan.StudyPlan) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	planPath := l.planPath()
	tmpPath := planPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, planPath); err != nil {
		// Clean up temp file on failure
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Delete removes the plan file if present.
func (l *Local) Delete(ctx context.Context) error {
	if err := os.Remove(l.planPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete plan file: %w", err)
	}
	return nil
}
