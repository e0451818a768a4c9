package generate

import (
	"context"
	"fmt"

	"github.com/dvloznov/finance-datagen/internal/domain"
	"github.com/dvloznov/finance-datagen/internal/llm"
)

// Per-tier completion budgets. Accounts and transactions need more room than a
// single profile object.
const (
	profileMaxTokens      = 300
	accountsMaxTokens     = 500
	transactionsMaxTokens = 1000

	generationTemperature = 0.7
)

// ModelGenerator is the Completer-backed Generator. Each tier sends one prompt
// and decodes a strict-JSON response.
type ModelGenerator struct {
	completer llm.Completer
}

// NewModelGenerator creates a Generator backed by the given completer.
func NewModelGenerator(completer llm.Completer) *ModelGenerator {
	return &ModelGenerator{completer: completer}
}

func (g *ModelGenerator) Profile(ctx context.Context) (domain.User, error) {
	raw, err := g.completer.Complete(ctx, llm.Request{
		Prompt:      buildProfilePrompt(),
		MaxTokens:   profileMaxTokens,
		Temperature: generationTemperature,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("generate.Profile: %w", err)
	}

	obj, err := llm.DecodeObject(raw)
	if err != nil {
		return domain.User{}, fmt.Errorf("generate.Profile: %w", err)
	}

	user, err := userFromModelOutput(obj)
	if err != nil {
		return domain.User{}, fmt.Errorf("generate.Profile: %w", err)
	}
	return user, nil
}

func (g *ModelGenerator) Accounts(ctx context.Context, profile domain.User) ([]domain.Account, error) {
	raw, err := g.completer.Complete(ctx, llm.Request{
		Prompt:      buildAccountsPrompt(profile),
		MaxTokens:   accountsMaxTokens,
		Temperature: generationTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate.Accounts: %w", err)
	}

	list, err := llm.DecodeList(raw)
	if err != nil {
		return nil, fmt.Errorf("generate.Accounts: %w", err)
	}

	accounts, err := accountsFromModelOutput(list)
	if err != nil {
		return nil, fmt.Errorf("generate.Accounts: %w", err)
	}
	return accounts, nil
}

func (g *ModelGenerator) Transactions(ctx context.Context, account domain.Account, profile domain.User) ([]domain.Transaction, error) {
	raw, err := g.completer.Complete(ctx, llm.Request{
		Prompt:      buildTransactionsPrompt(account, profile),
		MaxTokens:   transactionsMaxTokens,
		Temperature: generationTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate.Transactions: %w", err)
	}

	list, err := llm.DecodeList(raw)
	if err != nil {
		return nil, fmt.Errorf("generate.Transactions: %w", err)
	}

	txns, err := transactionsFromModelOutput(list)
	if err != nil {
		return nil, fmt.Errorf("generate.Transactions: %w", err)
	}
	return txns, nil
}
