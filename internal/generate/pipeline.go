package generate

import (
	"context"
	"fmt"

	"github.com/dvloznov/finance-datagen/internal/domain"
)

// Step represents a single step in the per-user generation pipeline.
type Step interface {
	Execute(ctx context.Context, state *UserState) error
}

// UserState holds the shared state across all steps for one user.
type UserState struct {
	Index int // zero-based position in the run
	Total int // target user count for the run

	Aggregate domain.UserAggregate
	UserID    int64 // database-assigned, set by PersistStep
}

// Step 1: GenerateProfileStep generates the user profile.
type GenerateProfileStep struct {
	Gen Generator
}

func (s *GenerateProfileStep) Execute(ctx context.Context, state *UserState) error {
	profile, err := s.Gen.Profile(ctx)
	if err != nil {
		return err
	}
	state.Aggregate.User = profile
	return nil
}

// Step 2: GenerateAccountsStep generates 2-4 accounts from the profile.
type GenerateAccountsStep struct {
	Gen Generator
}

func (s *GenerateAccountsStep) Execute(ctx context.Context, state *UserState) error {
	accounts, err := s.Gen.Accounts(ctx, state.Aggregate.User)
	if err != nil {
		return err
	}
	state.Aggregate.Accounts = make([]domain.AccountWithTransactions, len(accounts))
	for i, acct := range accounts {
		state.Aggregate.Accounts[i] = domain.AccountWithTransactions{Account: acct}
	}
	return nil
}

// Step 3: GenerateTransactionsStep generates a 2-year batch per account. Each
// batch is stored on its own account so persistence never crosses accounts.
type GenerateTransactionsStep struct {
	Gen Generator
}

func (s *GenerateTransactionsStep) Execute(ctx context.Context, state *UserState) error {
	for i := range state.Aggregate.Accounts {
		txns, err := s.Gen.Transactions(ctx, state.Aggregate.Accounts[i].Account, state.Aggregate.User)
		if err != nil {
			return err
		}
		state.Aggregate.Accounts[i].Transactions = txns
	}
	return nil
}

// Step 4: ValidateAggregateStep checks all generated records against the
// domain bounds before anything is written.
type ValidateAggregateStep struct{}

func (s *ValidateAggregateStep) Execute(ctx context.Context, state *UserState) error {
	return state.Aggregate.Validate()
}

// Step 5: PersistStep writes the aggregate atomically and captures the
// database-assigned user identifier.
type PersistStep struct {
	Store Store
}

func (s *PersistStep) Execute(ctx context.Context, state *UserState) error {
	userID, err := s.Store.InsertAggregate(ctx, state.Aggregate)
	if err != nil {
		return err
	}
	state.UserID = userID
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps in the pipeline sequentially.
func (p *Pipeline) Execute(ctx context.Context, state *UserState) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewUserPipeline creates the standard 5-step pipeline that generates and
// persists one user aggregate.
func NewUserPipeline(gen Generator, store Store) *Pipeline {
	return NewPipeline(
		&GenerateProfileStep{Gen: gen},
		&GenerateAccountsStep{Gen: gen},
		&GenerateTransactionsStep{Gen: gen},
		&ValidateAggregateStep{},
		&PersistStep{Store: store},
	)
}
