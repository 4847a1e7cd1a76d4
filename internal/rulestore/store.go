// Package rulestore provides loan program rule set storage. Providers share
// one Store interface so the engine can run against in-memory defaults, a
// YAML file, Postgres, or a cache-wrapped combination of these.
package rulestore

import (
	"context"
	"errors"

	"github.com/lendcore/underwrite/internal/domain"
)

// ErrProgramNotFound is returned when a program id has no rule set.
var ErrProgramNotFound = errors.New("rulestore: program not found")

// Store serves program rule sets. Implementations must be safe for
// concurrent use; the engine fans out per-program lookups.
type Store interface {
	// GetProgramRuleSet returns the rule set for one program id, or
	// ErrProgramNotFound.
	GetProgramRuleSet(ctx context.Context, id domain.ProgramID) (*domain.ProgramRuleSet, error)

	// ListPrograms returns the ids of every known program, stable order.
	ListPrograms(ctx context.Context) ([]domain.ProgramID, error)
}
