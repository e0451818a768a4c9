package generate_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dvloznov/finance-datagen/internal/domain"
	"github.com/dvloznov/finance-datagen/internal/generate"
)

// mockGenerator is a function-field mock for generate.Generator.
type mockGenerator struct {
	ProfileFunc      func(ctx context.Context) (domain.User, error)
	AccountsFunc     func(ctx context.Context, profile domain.User) ([]domain.Account, error)
	TransactionsFunc func(ctx context.Context, account domain.Account, profile domain.User) ([]domain.Transaction, error)
}

func (m *mockGenerator) Profile(ctx context.Context) (domain.User, error) {
	return m.ProfileFunc(ctx)
}

func (m *mockGenerator) Accounts(ctx context.Context, profile domain.User) ([]domain.Account, error) {
	return m.AccountsFunc(ctx, profile)
}

func (m *mockGenerator) Transactions(ctx context.Context, account domain.Account, profile domain.User) ([]domain.Transaction, error) {
	return m.TransactionsFunc(ctx, account, profile)
}

// mockStore records every call so tests can assert the persistence sequence.
type mockStore struct {
	schemaCalls int
	aggregates  []domain.UserAggregate

	startedRuns   []string
	succeededRuns []string
	failedRuns    []string
	failedErrs    []error

	insertErr error

	// counts reported on success
	users, accounts, transactions int
}

func (m *mockStore) EnsureSchema(ctx context.Context) error {
	m.schemaCalls++
	return nil
}

func (m *mockStore) InsertAggregate(ctx context.Context, ag domain.UserAggregate) (int64, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.aggregates = append(m.aggregates, ag)
	return int64(len(m.aggregates)), nil
}

func (m *mockStore) StartRun(ctx context.Context, runID string, targetUsers int) error {
	m.startedRuns = append(m.startedRuns, runID)
	return nil
}

func (m *mockStore) MarkRunSucceeded(ctx context.Context, runID string, users, accounts, transactions int) error {
	m.succeededRuns = append(m.succeededRuns, runID)
	m.users, m.accounts, m.transactions = users, accounts, transactions
	return nil
}

func (m *mockStore) MarkRunFailed(ctx context.Context, runID string, runErr error) {
	m.failedRuns = append(m.failedRuns, runID)
	m.failedErrs = append(m.failedErrs, runErr)
}

func fixedGenerator() *mockGenerator {
	return &mockGenerator{
		ProfileFunc: func(ctx context.Context) (domain.User, error) {
			return domain.User{Name: "Jane Doe", Age: 34, Occupation: "Engineer", IncomeBracket: "75k-100k"}, nil
		},
		AccountsFunc: func(ctx context.Context, profile domain.User) ([]domain.Account, error) {
			return []domain.Account{
				{AccountType: "checking", Institution: "Test Bank", CurrentBalance: 1000.00},
				{AccountType: "savings", Institution: "Test Bank", CurrentBalance: 5000.00},
			}, nil
		},
		TransactionsFunc: func(ctx context.Context, account domain.Account, profile domain.User) ([]domain.Transaction, error) {
			return []domain.Transaction{
				{
					Date:            time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
					Amount:          -50.00,
					Category:        "groceries",
					MerchantName:    "Store",
					TransactionType: "debit",
				},
			}, nil
		},
	}
}

func TestRunner_SingleUser(t *testing.T) {
	store := &mockStore{}
	runner := generate.NewRunner(fixedGenerator(), store)

	if err := runner.Run(context.Background(), 1); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if store.schemaCalls != 1 {
		t.Errorf("schema calls = %d, want 1", store.schemaCalls)
	}
	if len(store.aggregates) != 1 {
		t.Fatalf("persisted aggregates = %d, want 1", len(store.aggregates))
	}

	ag := store.aggregates[0]
	if ag.User.Name != "Jane Doe" {
		t.Errorf("persisted user = %q, want Jane Doe", ag.User.Name)
	}
	if len(ag.Accounts) != 2 {
		t.Fatalf("persisted accounts = %d, want 2", len(ag.Accounts))
	}
	// Each account carries its own batch; nothing crosses accounts.
	for i, acct := range ag.Accounts {
		if len(acct.Transactions) != 1 {
			t.Errorf("account %d transactions = %d, want 1", i, len(acct.Transactions))
		}
	}

	if len(store.startedRuns) != 1 || len(store.succeededRuns) != 1 {
		t.Fatalf("run lifecycle: started %d, succeeded %d, want 1 and 1",
			len(store.startedRuns), len(store.succeededRuns))
	}
	if store.startedRuns[0] != store.succeededRuns[0] {
		t.Error("run finalized under a different run ID than it started with")
	}
	if store.users != 1 || store.accounts != 2 || store.transactions != 2 {
		t.Errorf("reported counts = %d/%d/%d, want 1/2/2",
			store.users, store.accounts, store.transactions)
	}
}

func TestRunner_MultipleUsers(t *testing.T) {
	store := &mockStore{}
	runner := generate.NewRunner(fixedGenerator(), store)

	if err := runner.Run(context.Background(), 3); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(store.aggregates) != 3 {
		t.Errorf("persisted aggregates = %d, want 3", len(store.aggregates))
	}
	if store.users != 3 || store.accounts != 6 || store.transactions != 6 {
		t.Errorf("reported counts = %d/%d/%d, want 3/6/6",
			store.users, store.accounts, store.transactions)
	}
}

func TestRunner_GenerationFailureAbortsWithoutPersisting(t *testing.T) {
	gen := fixedGenerator()
	gen.AccountsFunc = func(ctx context.Context, profile domain.User) ([]domain.Account, error) {
		return nil, errors.New("llm.DecodeList: unmarshal JSON: invalid character 'T'")
	}

	store := &mockStore{}
	runner := generate.NewRunner(gen, store)

	err := runner.Run(context.Background(), 5)
	if err == nil {
		t.Fatal("expected run to fail")
	}
	if len(store.aggregates) != 0 {
		t.Errorf("persisted aggregates = %d, want 0 (no partial rows)", len(store.aggregates))
	}
	if len(store.failedRuns) != 1 {
		t.Fatalf("failed runs = %d, want 1", len(store.failedRuns))
	}
	if len(store.succeededRuns) != 0 {
		t.Error("run marked succeeded despite failure")
	}
}

func TestRunner_FailureMidRunKeepsEarlierUsers(t *testing.T) {
	calls := 0
	gen := fixedGenerator()
	base := gen.ProfileFunc
	gen.ProfileFunc = func(ctx context.Context) (domain.User, error) {
		calls++
		if calls == 3 {
			return domain.User{}, errors.New("service unavailable")
		}
		return base(ctx)
	}

	store := &mockStore{}
	runner := generate.NewRunner(gen, store)

	err := runner.Run(context.Background(), 5)
	if err == nil {
		t.Fatal("expected run to fail on user 3")
	}
	if !strings.Contains(err.Error(), "user 3/5") {
		t.Errorf("error %q does not identify the failing user", err)
	}
	// Users 1 and 2 were persisted before the abort.
	if len(store.aggregates) != 2 {
		t.Errorf("persisted aggregates = %d, want 2", len(store.aggregates))
	}
}

func TestRunner_OutOfBoundsAggregateFails(t *testing.T) {
	gen := fixedGenerator()
	gen.AccountsFunc = func(ctx context.Context, profile domain.User) ([]domain.Account, error) {
		// Five accounts exceeds the fan-out bound.
		accounts := make([]domain.Account, 5)
		for i := range accounts {
			accounts[i] = domain.Account{AccountType: "checking", Institution: "Test Bank"}
		}
		return accounts, nil
	}

	store := &mockStore{}
	runner := generate.NewRunner(gen, store)

	if err := runner.Run(context.Background(), 1); err == nil {
		t.Fatal("expected validation failure for 5 accounts")
	}
	if len(store.aggregates) != 0 {
		t.Error("out-of-bounds aggregate was persisted")
	}
}

func TestRunner_RejectsNonPositiveCount(t *testing.T) {
	store := &mockStore{}
	runner := generate.NewRunner(fixedGenerator(), store)

	if err := runner.Run(context.Background(), 0); err == nil {
		t.Error("expected error for zero user count")
	}
	if store.schemaCalls != 0 {
		t.Error("schema touched for invalid user count")
	}
}

func TestRunner_PersistFailureMarksRunFailed(t *testing.T) {
	store := &mockStore{insertErr: errors.New("pq: connection refused")}
	runner := generate.NewRunner(fixedGenerator(), store)

	err := runner.Run(context.Background(), 1)
	if err == nil {
		t.Fatal("expected run to fail")
	}
	if len(store.failedRuns) != 1 {
		t.Errorf("failed runs = %d, want 1", len(store.failedRuns))
	}
	if !errors.Is(store.failedErrs[0], store.insertErr) {
		t.Errorf("recorded error %v does not wrap the insert failure", store.failedErrs[0])
	}
}
