package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/collcheck/internal/core/plan"
	"github.com/example/collcheck/internal/ports/secondary"
)

// Executor runs remediation plans inside a single transaction.
type Executor struct {
	db *sql.DB
}

// NewExecutor creates a new Executor.
func NewExecutor(db *sql.DB) *Executor {
	return &Executor{db: db}
}

// Execute applies every SQL statement of the plan in order within one
// transaction, so rebuilds and the baseline writes recording them commit
// together or not at all. Comment-only entries are print-time documentation
// and are skipped here.
func (e *Executor) Execute(ctx context.Context, p plan.Plan) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range p.SQLStatements() {
		if _, err := tx.ExecContext(ctx, s.SQL, s.Args...); err != nil {
			return fmt.Errorf("failed to execute %q: %w", s.SQL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Ensure Executor implements the interface
var _ secondary.PlanExecutor = (*Executor)(nil)
