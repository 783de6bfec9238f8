// Package store persists the user's current study plan. Two backends
// implement the same interface: a local JSON file under the data directory,
// and the remote HTTP backend for synced accounts.
package store

import (
	"context"
	"errors"

	"github.com/mindarch/mindarch/internal/plan"
)

// ErrNoPlan is returned by Load when no plan has been saved yet.
var ErrNoPlan = errors.New("no saved plan")

// Store holds at most one plan per user.
type Store interface {
	// Load returns the saved plan, or ErrNoPlan when there is none.
	Load(ctx context.Context) (*plan.StudyPlan, error)

	// Save writes the plan, replacing any previously saved one.
	Save(ctx context.Context, p *plan.StudyPlan) error

	// Delete removes the saved plan. Deleting when nothing is saved is not
	// an error.
	Delete(ctx context.Context) error
}
