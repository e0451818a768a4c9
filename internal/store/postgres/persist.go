package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/dvloznov/finance-datagen/internal/domain"
)

// InsertAggregate persists one user aggregate in a single SQL transaction:
// insert the user and capture user_id, then per account insert and capture
// account_id, then COPY that account's own transaction batch. Commit happens
// once at the end; any failure rolls the whole user back, so previously
// committed users stay intact and the failed user leaves no partial rows.
func (s *Store) InsertAggregate(ctx context.Context, ag domain.UserAggregate) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("postgres.InsertAggregate: begin: %w", err)
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (name, age, occupation, income_bracket)
		 VALUES ($1, $2, $3, $4) RETURNING user_id`,
		ag.User.Name, ag.User.Age, ag.User.Occupation, ag.User.IncomeBracket,
	).Scan(&userID)
	if err != nil {
		return 0, fmt.Errorf("postgres.InsertAggregate: insert user: %w", err)
	}

	for i, acct := range ag.Accounts {
		var accountID int64
		err = tx.QueryRowContext(ctx,
			`INSERT INTO accounts (user_id, account_type, institution, current_balance)
			 VALUES ($1, $2, $3, $4) RETURNING account_id`,
			userID, acct.Account.AccountType, acct.Account.Institution, acct.Account.CurrentBalance,
		).Scan(&accountID)
		if err != nil {
			return 0, fmt.Errorf("postgres.InsertAggregate: insert account %d: %w", i, err)
		}

		if err := copyTransactions(ctx, tx, accountID, acct.Transactions); err != nil {
			return 0, fmt.Errorf("postgres.InsertAggregate: account %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("postgres.InsertAggregate: commit: %w", err)
	}
	return userID, nil
}

// copyTransactions bulk-inserts one account's transaction batch via COPY.
func copyTransactions(ctx context.Context, tx *sql.Tx, accountID int64, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("transactions",
		"account_id", "date", "amount", "category", "merchant_name", "transaction_type"))
	if err != nil {
		return fmt.Errorf("copy transactions: prepare: %w", err)
	}
	defer stmt.Close()

	for _, txn := range txns {
		_, err = stmt.ExecContext(ctx,
			accountID, txn.Date, txn.Amount, txn.Category, txn.MerchantName, txn.TransactionType)
		if err != nil {
			return fmt.Errorf("copy transactions: buffer row: %w", err)
		}
	}

	// Final empty Exec flushes the COPY buffer.
	if _, err = stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("copy transactions: flush: %w", err)
	}
	return nil
}
