package postgres

import (
	"context"
	"fmt"
)

// createTableStatements holds the DDL for every table, in FK dependency order.
// All statements use IF NOT EXISTS so EnsureSchema is safe to call every run.
var createTableStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id SERIAL PRIMARY KEY,
		name VARCHAR(100),
		age INTEGER,
		occupation VARCHAR(100),
		income_bracket VARCHAR(50)
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		account_id SERIAL PRIMARY KEY,
		user_id INTEGER REFERENCES users(user_id),
		account_type VARCHAR(50),
		institution VARCHAR(100),
		current_balance DECIMAL(15,2)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		transaction_id SERIAL PRIMARY KEY,
		account_id INTEGER REFERENCES accounts(account_id),
		date TIMESTAMP,
		amount DECIMAL(15,2),
		category VARCHAR(100),
		merchant_name VARCHAR(200),
		transaction_type VARCHAR(50)
	)`,
	`CREATE TABLE IF NOT EXISTS generation_runs (
		run_id VARCHAR(36) PRIMARY KEY,
		status VARCHAR(20) NOT NULL,
		target_users INTEGER NOT NULL,
		users_generated INTEGER,
		accounts_generated INTEGER,
		transactions_generated INTEGER,
		started_ts TIMESTAMP NOT NULL,
		finished_ts TIMESTAMP,
		error_message TEXT
	)`,
}

// EnsureSchema creates the tables if absent. Idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, ddl := range createTableStatements {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("postgres.EnsureSchema: %w", err)
		}
	}
	return nil
}
