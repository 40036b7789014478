package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"TickerBrief/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(conn string) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), conn)
	if err != nil {
		return nil, err
	}

	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) CreateRun(ctx context.Context, run *models.Run) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO runs
		 (id, user_id, email, symbols, frequency, scheduled_for, is_test, status, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
		 ON CONFLICT (id) DO NOTHING`,
		run.ID,
		run.UserID,
		run.Email,
		run.Symbols,
		run.Frequency,
		run.ScheduledFor,
		run.IsTest,
		run.Status,
	)

	return err
}

func (s *Store) UpdateRunStatus(
	ctx context.Context,
	id string,
	status models.RunStatus,
) error {

	_, err := s.Pool.Exec(ctx,
		`UPDATE runs
		 SET status=$1,
		     updated_at=NOW()
		 WHERE id=$2`,
		status,
		id,
	)

	return err
}

func (s *Store) UpdateRunFailure(
	ctx context.Context,
	id string,
	errorMsg string,
) error {

	_, err := s.Pool.Exec(ctx,
		`UPDATE runs
		 SET status=$1,
		     error_msg=$2,
		     updated_at=NOW()
		 WHERE id=$3`,
		models.RunFailed,
		errorMsg,
		id,
	)

	return err
}

// StepResult returns the persisted outcome of a step, or nil when the step
// has never been recorded for this run.
func (s *Store) StepResult(
	ctx context.Context,
	runID string,
	name string,
) (*models.StepResult, error) {

	var sr models.StepResult
	err := s.Pool.QueryRow(ctx,
		`SELECT run_id, name, status, result, COALESCE(error_msg, ''), created_at
		 FROM run_steps
		 WHERE run_id=$1 AND name=$2`,
		runID,
		name,
	).Scan(&sr.RunID, &sr.Name, &sr.Status, &sr.Result, &sr.ErrorMsg, &sr.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &sr, nil
}

// SaveStepResult records a step as succeeded. The unique (run_id, name)
// constraint makes the record authoritative: a redelivered run replays this
// result instead of recomputing the step.
func (s *Store) SaveStepResult(
	ctx context.Context,
	runID string,
	name string,
	result []byte,
) error {

	_, err := s.Pool.Exec(ctx,
		`INSERT INTO run_steps (run_id, name, status, result, created_at)
		 VALUES ($1,$2,$3,$4,NOW())
		 ON CONFLICT (run_id, name)
		 DO UPDATE SET status=EXCLUDED.status, result=EXCLUDED.result, error_msg=NULL`,
		runID,
		name,
		models.StepSucceeded,
		result,
	)

	return err
}

func (s *Store) SaveStepFailure(
	ctx context.Context,
	runID string,
	name string,
	errorMsg string,
) error {

	_, err := s.Pool.Exec(ctx,
		`INSERT INTO run_steps (run_id, name, status, error_msg, created_at)
		 VALUES ($1,$2,$3,$4,NOW())
		 ON CONFLICT (run_id, name)
		 DO UPDATE SET status=EXCLUDED.status, error_msg=EXCLUDED.error_msg`,
		runID,
		name,
		models.StepFailed,
		errorMsg,
	)

	return err
}
