package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"payment-recon/internal/domain"
	"payment-recon/pkg/logger"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=reconciliation_repository.go ReconciliationRepository

type ReconciliationRepository interface {
	CreateJob(ctx context.Context, job *domain.ReconciliationJob) error
	UpdateJob(ctx context.Context, job *domain.ReconciliationJob) error
	GetJobByID(ctx context.Context, jobID string) (*domain.ReconciliationJob, error)
	SaveResult(ctx context.Context, jobID string, result *domain.ReconciliationResult) error
	GetResult(ctx context.Context, jobID string) (*domain.ReconciliationResult, error)
}

const schema = `
	CREATE TABLE IF NOT EXISTS reconciliation_jobs (
		id            SERIAL PRIMARY KEY,
		job_id        TEXT NOT NULL UNIQUE,
		status        TEXT NOT NULL,
		switch_files  TEXT[],
		gateway_files TEXT[],
		stats         JSONB,
		error_message TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS reconciliation_results (
		job_id     TEXT PRIMARY KEY REFERENCES reconciliation_jobs (job_id) ON DELETE CASCADE,
		payload    JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

type reconciliationRepository struct {
	db *sql.DB
}

func NewReconciliationRepository(db *sql.DB) ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

// EnsureSchema creates the job and result tables when they do not exist
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		logger.GetLogger().WithError(err).Error("Failed to create schema")
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (r *reconciliationRepository) CreateJob(ctx context.Context, job *domain.ReconciliationJob) error {
	query := `
		INSERT INTO reconciliation_jobs (job_id, status, switch_files, gateway_files)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		job.JobID,
		job.Status,
		pq.Array(job.SwitchFiles),
		pq.Array(job.GatewayFiles),
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)

	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to create reconciliation job")
		return err
	}

	return nil
}

func (r *reconciliationRepository) UpdateJob(ctx context.Context, job *domain.ReconciliationJob) error {
	stats, err := marshalNullable(job.Stats)
	if err != nil {
		return err
	}

	query := `
		UPDATE reconciliation_jobs
		SET status = $1, stats = $2, error_message = $3, updated_at = NOW()
		WHERE job_id = $4
		RETURNING updated_at
	`

	err = r.db.QueryRowContext(ctx, query, job.Status, stats, job.ErrorMessage, job.JobID).Scan(&job.UpdatedAt)
	if err == sql.ErrNoRows {
		return domain.ErrJobNotFound
	}
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to update reconciliation job")
		return err
	}

	return nil
}

func (r *reconciliationRepository) GetJobByID(ctx context.Context, jobID string) (*domain.ReconciliationJob, error) {
	query := `
		SELECT id, job_id, status, switch_files, gateway_files,
			   stats, error_message, created_at, updated_at
		FROM reconciliation_jobs
		WHERE job_id = $1
	`

	var (
		job   domain.ReconciliationJob
		stats []byte
	)
	err := r.db.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID,
		&job.JobID,
		&job.Status,
		pq.Array(&job.SwitchFiles),
		pq.Array(&job.GatewayFiles),
		&stats,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		logger.GetLogger().WithError(err).Error("Failed to get reconciliation job")
		return nil, err
	}

	if stats != nil {
		job.Stats = &domain.Stats{}
		if err := json.Unmarshal(stats, job.Stats); err != nil {
			return nil, fmt.Errorf("failed to decode job stats: %w", err)
		}
	}

	return &job, nil
}

func (r *reconciliationRepository) SaveResult(ctx context.Context, jobID string, result *domain.ReconciliationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	query := `
		INSERT INTO reconciliation_results (job_id, payload)
		VALUES ($1, $2)
		ON CONFLICT (job_id) DO UPDATE SET payload = EXCLUDED.payload
	`

	if _, err := r.db.ExecContext(ctx, query, jobID, string(payload)); err != nil {
		logger.GetLogger().WithError(err).WithField("job_id", jobID).Error("Failed to save reconciliation result")
		return err
	}

	return nil
}

func (r *reconciliationRepository) GetResult(ctx context.Context, jobID string) (*domain.ReconciliationResult, error) {
	query := `SELECT payload FROM reconciliation_results WHERE job_id = $1`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query, jobID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		logger.GetLogger().WithError(err).WithField("job_id", jobID).Error("Failed to get reconciliation result")
		return nil, err
	}

	var result domain.ReconciliationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}

	return &result, nil
}

// marshalNullable returns an untyped nil for a nil value so the driver writes NULL.
// JSON goes out as text: lib/pq would send a []byte as bytea.
func marshalNullable(v *domain.Stats) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stats: %w", err)
	}
	return string(b), nil
}
