package generate

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dvloznov/finance-datagen/internal/domain"
)

// userFromModelOutput converts a decoded profile object into a domain.User.
func userFromModelOutput(obj map[string]interface{}) (domain.User, error) {
	name, err := getStringField(obj, "name", true)
	if err != nil {
		return domain.User{}, fmt.Errorf("userFromModelOutput: %w", err)
	}
	age, err := getIntField(obj, "age", true)
	if err != nil {
		return domain.User{}, fmt.Errorf("userFromModelOutput: %w", err)
	}
	occupation, err := getStringField(obj, "occupation", true)
	if err != nil {
		return domain.User{}, fmt.Errorf("userFromModelOutput: %w", err)
	}
	bracket, err := getStringField(obj, "income_bracket", true)
	if err != nil {
		return domain.User{}, fmt.Errorf("userFromModelOutput: %w", err)
	}

	return domain.User{
		Name:          name,
		Age:           age,
		Occupation:    occupation,
		IncomeBracket: bracket,
	}, nil
}

// accountsFromModelOutput converts a decoded account list into domain.Accounts.
func accountsFromModelOutput(list []interface{}) ([]domain.Account, error) {
	result := make([]domain.Account, 0, len(list))

	for i, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("accountsFromModelOutput: element %d is %T, want object", i, item)
		}

		accountType, err := getStringField(obj, "account_type", true)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}
		institution, err := getStringField(obj, "institution", true)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}
		balance, err := getFloat64Field(obj, "current_balance", true)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}

		result = append(result, domain.Account{
			AccountType:    strings.ToLower(strings.TrimSpace(accountType)),
			Institution:    institution,
			CurrentBalance: balance,
		})
	}

	return result, nil
}

// transactionsFromModelOutput converts a decoded transaction list into
// domain.Transactions.
func transactionsFromModelOutput(list []interface{}) ([]domain.Transaction, error) {
	result := make([]domain.Transaction, 0, len(list))

	for i, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("transactionsFromModelOutput: element %d is %T, want object", i, item)
		}

		dateStr, err := getStringField(obj, "date", true)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		amount, err := getFloat64Field(obj, "amount", true)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		category, err := getStringField(obj, "category", true)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		merchant, err := getStringField(obj, "merchant_name", true)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txnType, err := getStringField(obj, "transaction_type", true)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}

		date, err := parseTransactionDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}

		result = append(result, domain.Transaction{
			Date:            date,
			Amount:          amount,
			Category:        category,
			MerchantName:    merchant,
			TransactionType: strings.ToLower(strings.TrimSpace(txnType)),
		})
	}

	return result, nil
}

// parseTransactionDate accepts the YYYY-MM-DD form the prompt asks for, plus
// RFC 3339 timestamps the model occasionally returns instead.
func parseTransactionDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func getStringField(m map[string]interface{}, key string, required bool) (string, error) {
	v, ok := m[key]
	if !ok {
		if required {
			return "", fmt.Errorf("missing required field %q", key)
		}
		return "", nil
	}
	switch val := v.(type) {
	case string:
		if required && strings.TrimSpace(val) == "" {
			return "", fmt.Errorf("required field %q is empty", key)
		}
		return val, nil
	default:
		return "", fmt.Errorf("field %q has type %T, want string", key, v)
	}
}

func getFloat64Field(m map[string]interface{}, key string, required bool) (float64, error) {
	v, ok := m[key]
	if !ok {
		if required {
			return 0, fmt.Errorf("missing required field %q", key)
		}
		return 0, nil
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case int: // unlikely from encoding/json, but harmless to support
		return float64(val), nil
	default:
		return 0, fmt.Errorf("field %q has type %T, want number", key, v)
	}
}

func getIntField(m map[string]interface{}, key string, required bool) (int, error) {
	f, err := getFloat64Field(m, key, required)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("field %q is %v, want integer", key, f)
	}
	return int(f), nil
}
