// Package app owns the session state: the single current plan, generation
// orchestration, and persistence. The TUI and CLI both drive this layer.
package app

import (
	"context"
	"errors"
	"sync"

	"github.com/mindarch/mindarch/internal/ai"
	"github.com/mindarch/mindarch/internal/logger"
	"github.com/mindarch/mindarch/internal/plan"
	"github.com/mindarch/mindarch/internal/store"
)

var (
	// ErrGenerationInFlight is returned when a generation is already running.
	ErrGenerationInFlight = errors.New("a plan is already being generated")

	// ErrNoPlanLoaded is returned by plan operations before a plan exists.
	ErrNoPlanLoaded = errors.New("no plan loaded")
)

type App struct {
	log       *logger.Logger
	store     store.Store
	generator ai.Generator

	mu      sync.Mutex
	busy    bool
	current *plan.StudyPlan
}

func New(log *logger.Logger, st store.Store, generator ai.Generator) *App {
	return &App{log: log, store: st, generator: generator}
}

// Load pulls the saved plan into the session. store.ErrNoPlan passes
// through so callers can start fresh.
func (a *App) Load(ctx context.Context) (*plan.StudyPlan, error) {
	p, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Recompute the completion counters on load rather than trusting the
	// stored ones.
	plan.Recount(p)

	a.mu.Lock()
	a.current = p
	a.mu.Unlock()
	return p, nil
}

// Current returns the loaded plan, or nil.
func (a *App) Current() *plan.StudyPlan {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Busy reports whether a generation is in flight.
func (a *App) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

// GeneratePlan runs the full pipeline: validate, call the generation
// service, assemble, persist, then swap the session's current plan. Any
// failure leaves the previous plan untouched, in memory and on disk. At
// most one generation runs at a time.
func (a *App) GeneratePlan(ctx context.Context, params plan.GenerationParams) (*plan.StudyPlan, error) {
	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	a.busy = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.busy = false
		a.mu.Unlock()
	}()

	if a.generator == nil {
		return nil, errors.New("generation is not configured; set MINDARCH_API_KEY or log in to a server")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	schedule, err := a.generator.Generate(ctx, params)
	if err != nil {
		a.log.Warn("generation failed", "error", err)
		return nil, err
	}

	newPlan, err := plan.Assemble(params, schedule)
	if err != nil {
		return nil, err
	}

	if err := a.store.Save(ctx, newPlan); err != nil {
		a.log.Warn("failed to persist generated plan", "error", err)
		return nil, err
	}

	a.mu.Lock()
	a.current = newPlan
	a.mu.Unlock()

	a.log.Info("plan generated",
		"subject", newPlan.Subject,
		"days", len(newPlan.Days),
		"tasks", newPlan.TotalTasks,
	)
	return newPlan, nil
}

// ToggleTask flips a task's completion and persists the plan. The toggle
// applies in memory first; if persistence fails the in-memory plan stays
// toggled and the error reports the save failure.
func (a *App) ToggleTask(ctx context.Context, dayNumber int, taskID string) error {
	a.mu.Lock()
	current := a.current
	a.mu.Unlock()
	if current == nil {
		return ErrNoPlanLoaded
	}

	if err := plan.Toggle(current, dayNumber, taskID); err != nil {
		return err
	}

	if err := a.store.Save(ctx, current); err != nil {
		a.log.Warn("failed to persist toggle", "day", dayNumber, "task", taskID, "error", err)
		return err
	}
	return nil
}

// DeletePlan removes the saved plan and clears the session. Deleting with
// no plan saved succeeds.
func (a *App) DeletePlan(ctx context.Context) error {
	if err := a.store.Delete(ctx); err != nil {
		return err
	}
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()
	return nil
}
