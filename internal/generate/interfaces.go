package generate

import (
	"context"

	"github.com/dvloznov/finance-datagen/internal/domain"
)

// Generator produces the three record tiers. The concrete implementation is
// model-backed; tests substitute a mock.
type Generator interface {
	// Profile generates one user profile.
	Profile(ctx context.Context) (domain.User, error)

	// Accounts generates 2-4 accounts for the given profile.
	Accounts(ctx context.Context, profile domain.User) ([]domain.Account, error)

	// Transactions generates a 2-year transaction batch for one account.
	Transactions(ctx context.Context, account domain.Account, profile domain.User) ([]domain.Transaction, error)
}

// Store is the persistence surface the runner needs. The postgres store is the
// concrete implementation.
type Store interface {
	// EnsureSchema creates the tables if absent. Idempotent.
	EnsureSchema(ctx context.Context) error

	// InsertAggregate persists one user aggregate atomically and returns the
	// database-assigned user identifier.
	InsertAggregate(ctx context.Context, ag domain.UserAggregate) (int64, error)

	// StartRun records a generation run as RUNNING.
	StartRun(ctx context.Context, runID string, targetUsers int) error

	// MarkRunSucceeded finalizes a run record with persisted counts.
	MarkRunSucceeded(ctx context.Context, runID string, users, accounts, transactions int) error

	// MarkRunFailed finalizes a run record with the terminal error. Best
	// effort: the original failure is what gets reported, so this never
	// returns an error.
	MarkRunFailed(ctx context.Context, runID string, runErr error)
}
