package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/finance-datagen/internal/logger"
)

// Run statuses mirror the lifecycle written by the runner.
const (
	runStatusRunning = "RUNNING"
	runStatusSuccess = "SUCCESS"
	runStatusFailed  = "FAILED"
)

// StartRun records a generation run as RUNNING.
func (s *Store) StartRun(ctx context.Context, runID string, targetUsers int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generation_runs (run_id, status, target_users, started_ts)
		 VALUES ($1, $2, $3, $4)`,
		runID, runStatusRunning, targetUsers, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("postgres.StartRun: %w", err)
	}
	return nil
}

// MarkRunSucceeded finalizes a run record with persisted counts.
func (s *Store) MarkRunSucceeded(ctx context.Context, runID string, users, accounts, transactions int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE generation_runs
		 SET status = $1,
		     users_generated = $2,
		     accounts_generated = $3,
		     transactions_generated = $4,
		     finished_ts = $5,
		     error_message = ''
		 WHERE run_id = $6`,
		runStatusSuccess, users, accounts, transactions, time.Now().UTC(), runID)
	if err != nil {
		return fmt.Errorf("postgres.MarkRunSucceeded: %w", err)
	}
	return nil
}

// MarkRunFailed finalizes a run record with the terminal error. Best effort:
// the original failure is what the caller reports, so problems here are only
// logged.
func (s *Store) MarkRunFailed(ctx context.Context, runID string, runErr error) {
	log := logger.FromContext(ctx)

	errMsg := ""
	if runErr != nil {
		errMsg = runErr.Error()
		const maxLen = 2000
		if len(errMsg) > maxLen {
			errMsg = errMsg[:maxLen]
		}
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE generation_runs
		 SET status = $1,
		     finished_ts = $2,
		     error_message = $3
		 WHERE run_id = $4`,
		runStatusFailed, time.Now().UTC(), errMsg, runID)
	if err != nil {
		log.Error().Err(err).Str("run_id", runID).Msg("Failed to mark generation run as failed")
	}
}
