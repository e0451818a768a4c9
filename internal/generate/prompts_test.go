package generate

import (
	"strings"
	"testing"

	"github.com/dvloznov/finance-datagen/internal/domain"
)

func TestBuildProfilePrompt(t *testing.T) {
	prompt := buildProfilePrompt()

	for _, want := range []string{"name", "age", "occupation", "income_bracket", "25", "75"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("profile prompt missing %q", want)
		}
	}
	for _, bracket := range domain.IncomeBrackets {
		if !strings.Contains(prompt, bracket) {
			t.Errorf("profile prompt missing bracket %q", bracket)
		}
	}
	if !strings.Contains(prompt, "raw JSON") {
		t.Error("profile prompt missing strict JSON rules")
	}
}

func TestBuildAccountsPrompt(t *testing.T) {
	profile := domain.User{Name: "Jane Doe", Age: 34, Occupation: "Engineer", IncomeBracket: "75k-100k"}
	prompt := buildAccountsPrompt(profile)

	if !strings.Contains(prompt, "75k-100k") {
		t.Error("accounts prompt not parameterized by income bracket")
	}
	for _, accountType := range domain.AccountTypes {
		if !strings.Contains(prompt, accountType) {
			t.Errorf("accounts prompt missing account type %q", accountType)
		}
	}
	if !strings.Contains(prompt, "2 to 4") {
		t.Error("accounts prompt missing fan-out bounds")
	}
}

func TestBuildTransactionsPrompt(t *testing.T) {
	profile := domain.User{Name: "Jane Doe", IncomeBracket: "150k+", Age: 40, Occupation: "Doctor"}
	account := domain.Account{AccountType: "credit_card", Institution: "Test Bank", CurrentBalance: -432.10}
	prompt := buildTransactionsPrompt(account, profile)

	if !strings.Contains(prompt, "credit_card") {
		t.Error("transactions prompt not parameterized by account type")
	}
	if !strings.Contains(prompt, "-432.10") {
		t.Error("transactions prompt not parameterized by balance")
	}
	if !strings.Contains(prompt, "150k+") {
		t.Error("transactions prompt not parameterized by income bracket")
	}
	if !strings.Contains(prompt, "2022-01-01") || !strings.Contains(prompt, "2023-12-31") {
		t.Error("transactions prompt missing date window")
	}
	if !strings.Contains(prompt, "debit") || !strings.Contains(prompt, "credit") {
		t.Error("transactions prompt missing transaction types")
	}
}
