package generate

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dvloznov/finance-datagen/internal/logger"
)

// DefaultUserCount is used when no target is given on the command line.
const DefaultUserCount = 100

// Runner drives the sequential per-user loop. One user is generated and
// persisted completely before the next begins; the first failure aborts the
// run and previously committed users remain intact.
type Runner struct {
	gen   Generator
	store Store
}

// NewRunner creates a Runner over the given generator and store.
func NewRunner(gen Generator, store Store) *Runner {
	return &Runner{gen: gen, store: store}
}

// Run ensures the schema exists, then generates and persists numUsers user
// aggregates under a single run record.
func (r *Runner) Run(ctx context.Context, numUsers int) error {
	log := logger.FromContext(ctx)

	if numUsers <= 0 {
		return fmt.Errorf("generate.Run: user count must be positive, got %d", numUsers)
	}

	if err := r.store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("generate.Run: ensure schema: %w", err)
	}

	runID := uuid.NewString()
	if err := r.store.StartRun(ctx, runID, numUsers); err != nil {
		return fmt.Errorf("generate.Run: start run: %w", err)
	}

	log.Info().Str("run_id", runID).Int("target_users", numUsers).Msg("Starting generation run")

	pipeline := NewUserPipeline(r.gen, r.store)

	var totalAccounts, totalTransactions int
	for i := 0; i < numUsers; i++ {
		log.Info().Int("user", i+1).Int("total", numUsers).Msg("Generating user")

		state := &UserState{Index: i, Total: numUsers}
		if err := pipeline.Execute(ctx, state); err != nil {
			wrapped := fmt.Errorf("generate.Run: user %d/%d: %w", i+1, numUsers, err)
			r.store.MarkRunFailed(ctx, runID, wrapped)
			return wrapped
		}

		totalAccounts += len(state.Aggregate.Accounts)
		totalTransactions += state.Aggregate.TransactionCount()

		log.Info().
			Int("user", i+1).
			Int("total", numUsers).
			Int64("user_id", state.UserID).
			Str("name", state.Aggregate.User.Name).
			Int("accounts", len(state.Aggregate.Accounts)).
			Int("transactions", state.Aggregate.TransactionCount()).
			Msg("Completed user")
	}

	if err := r.store.MarkRunSucceeded(ctx, runID, numUsers, totalAccounts, totalTransactions); err != nil {
		return fmt.Errorf("generate.Run: finalize run: %w", err)
	}

	log.Info().
		Str("run_id", runID).
		Int("users", numUsers).
		Int("accounts", totalAccounts).
		Int("transactions", totalTransactions).
		Msg("Generation run completed")

	return nil
}
