// Package domain holds the generated entities as plain structs. These are not
// database rows; the postgres store maps them into the table schema.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Income brackets the profile generator is allowed to produce.
var IncomeBrackets = []string{"25k-50k", "50k-75k", "75k-100k", "100k-150k", "150k+"}

// Account types the account generator is allowed to produce.
var AccountTypes = []string{"checking", "savings", "credit_card", "investment"}

const (
	// MinAge and MaxAge bound a generated profile's age.
	MinAge = 25
	MaxAge = 75

	// MinAccounts and MaxAccounts bound the per-user account fan-out.
	MinAccounts = 2
	MaxAccounts = 4
)

// TransactionWindowStart and TransactionWindowEnd bound generated transaction
// dates (inclusive).
var (
	TransactionWindowStart = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
	TransactionWindowEnd   = time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// User is one generated profile. Write-once: persisted a single time, the
// database assigns the identifier on insert.
type User struct {
	Name          string
	Age           int
	Occupation    string
	IncomeBracket string
}

// Account belongs to exactly one User.
type Account struct {
	AccountType    string
	Institution    string
	CurrentBalance float64
}

// Transaction belongs to exactly one Account.
type Transaction struct {
	Date            time.Time // within the 2022-01-01..2023-12-31 window
	Amount          float64   // signed by type (debit negative, credit positive)
	Category        string
	MerchantName    string
	TransactionType string // "debit" or "credit"
}

// AccountWithTransactions pairs one account with the transaction batch
// generated for it. Transactions stay associated with their own account; the
// store never writes one account's batch against another account's key.
type AccountWithTransactions struct {
	Account      Account
	Transactions []Transaction
}

// UserAggregate is the full set of records produced for one user before
// persistence: the profile plus its accounts and their transaction batches.
type UserAggregate struct {
	User     User
	Accounts []AccountWithTransactions
}

// Validate checks the profile bounds.
func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user: name is empty")
	}
	if u.Age < MinAge || u.Age > MaxAge {
		return fmt.Errorf("user %q: age %d outside [%d,%d]", u.Name, u.Age, MinAge, MaxAge)
	}
	if !containsString(IncomeBrackets, u.IncomeBracket) {
		return fmt.Errorf("user %q: invalid income bracket %q", u.Name, u.IncomeBracket)
	}
	return nil
}

// Validate checks the account bounds.
func (a Account) Validate() error {
	if !containsString(AccountTypes, a.AccountType) {
		return fmt.Errorf("account: invalid account type %q", a.AccountType)
	}
	if strings.TrimSpace(a.Institution) == "" {
		return fmt.Errorf("account: institution is empty")
	}
	return nil
}

// Validate checks the transaction bounds.
func (t Transaction) Validate() error {
	if t.Date.Before(TransactionWindowStart) || t.Date.After(TransactionWindowEnd) {
		return fmt.Errorf("transaction: date %s outside window %s..%s",
			t.Date.Format("2006-01-02"),
			TransactionWindowStart.Format("2006-01-02"),
			TransactionWindowEnd.Format("2006-01-02"))
	}
	if t.TransactionType != "debit" && t.TransactionType != "credit" {
		return fmt.Errorf("transaction: invalid type %q", t.TransactionType)
	}
	return nil
}

// Validate checks the whole aggregate: profile and record bounds plus the
// 2-4 account fan-out.
func (ag UserAggregate) Validate() error {
	if err := ag.User.Validate(); err != nil {
		return err
	}
	if len(ag.Accounts) < MinAccounts || len(ag.Accounts) > MaxAccounts {
		return fmt.Errorf("user %q: %d accounts outside [%d,%d]",
			ag.User.Name, len(ag.Accounts), MinAccounts, MaxAccounts)
	}
	for i, acct := range ag.Accounts {
		if err := acct.Account.Validate(); err != nil {
			return fmt.Errorf("account %d: %w", i, err)
		}
		for j, txn := range acct.Transactions {
			if err := txn.Validate(); err != nil {
				return fmt.Errorf("account %d transaction %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// TransactionCount returns the total number of transactions across all
// accounts in the aggregate.
func (ag UserAggregate) TransactionCount() int {
	n := 0
	for _, acct := range ag.Accounts {
		n += len(acct.Transactions)
	}
	return n
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
