package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"payment-recon/internal/domain"
	"payment-recon/internal/engine"
	"payment-recon/internal/export"
	"payment-recon/internal/parser"
	"payment-recon/internal/repository"
	"payment-recon/pkg/logger"
)

// Upload is one ledger file handed over by a caller
type Upload struct {
	Name   string
	Reader io.Reader
}

// JobResult pairs a finished job with its reconciliation result
type JobResult struct {
	Job    *domain.ReconciliationJob    `json:"job"`
	Result *domain.ReconciliationResult `json:"result"`
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportCSV, ExportXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: export format %q", domain.ErrUnsupportedFormat, s)
	}
}

// ExportFile is a rendered download
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ReconciliationService interface {
	Reconcile(ctx context.Context, switchFiles, gatewayFiles []Upload) (*JobResult, error)
	ReconcileRows(ctx context.Context, switchRows, gatewayRows []domain.RawRow) (*JobResult, error)
	GetJob(ctx context.Context, jobID string) (*domain.ReconciliationJob, error)
	GetResult(ctx context.Context, jobID string) (*domain.ReconciliationResult, error)
	Export(ctx context.Context, jobID string, format ExportFormat) (*ExportFile, error)
}

type reconciliationService struct {
	repo   repository.ReconciliationRepository
	engine *engine.ReconciliationEngine
}

func NewReconciliationService(
	repo repository.ReconciliationRepository,
	engine *engine.ReconciliationEngine,
) ReconciliationService {
	return &reconciliationService{
		repo:   repo,
		engine: engine,
	}
}

// Reconcile parses every uploaded file, concatenating files of the same ledger in order,
// and reconciles the two ledgers as one job.
func (s *reconciliationService) Reconcile(ctx context.Context, switchFiles, gatewayFiles []Upload) (*JobResult, error) {
	job, err := s.startJob(ctx, fileNames(switchFiles), fileNames(gatewayFiles))
	if err != nil {
		return nil, err
	}

	switchBatches, err := parseUploads(switchFiles)
	if err != nil {
		s.failJob(ctx, job, err)
		return nil, fmt.Errorf("failed to load switch ledger: %w", err)
	}

	gatewayBatches, err := parseUploads(gatewayFiles)
	if err != nil {
		s.failJob(ctx, job, err)
		return nil, fmt.Errorf("failed to load gateway ledger: %w", err)
	}

	return s.run(ctx, job, engine.ReconciliationInput{
		Switch:  switchBatches,
		Gateway: gatewayBatches,
	})
}

// ReconcileRows reconciles ledgers that were already decoded by the caller
func (s *reconciliationService) ReconcileRows(ctx context.Context, switchRows, gatewayRows []domain.RawRow) (*JobResult, error) {
	job, err := s.startJob(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, job, engine.RowsInput(switchRows, gatewayRows))
}

func (s *reconciliationService) GetJob(ctx context.Context, jobID string) (*domain.ReconciliationJob, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		return nil, domain.ErrJobNotFound
	}
	return s.repo.GetJobByID(ctx, jobID)
}

func (s *reconciliationService) GetResult(ctx context.Context, jobID string) (*domain.ReconciliationResult, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		return nil, domain.ErrJobNotFound
	}
	return s.repo.GetResult(ctx, jobID)
}

func (s *reconciliationService) Export(ctx context.Context, jobID string, format ExportFormat) (*ExportFile, error) {
	result, err := s.GetResult(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	switch format {
	case ExportCSV:
		contentType = "text/csv"
		err = export.WriteCSV(&buf, result)
	case ExportXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = export.WriteXLSX(&buf, result)
	default:
		return nil, fmt.Errorf("%w: export format %q", domain.ErrUnsupportedFormat, format)
	}
	if err != nil {
		logger.GetLogger().WithError(err).WithField("job_id", jobID).Error("Failed to export result")
		return nil, fmt.Errorf("failed to export result: %w", err)
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("reconciliation_%s.%s", jobID, format),
		ContentType: contentType,
		Data:        buf.Bytes(),
	}, nil
}

func (s *reconciliationService) startJob(ctx context.Context, switchFiles, gatewayFiles []string) (*domain.ReconciliationJob, error) {
	job := &domain.ReconciliationJob{
		JobID:        uuid.New().String(),
		Status:       domain.Processing,
		SwitchFiles:  switchFiles,
		GatewayFiles: gatewayFiles,
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"job_id":        job.JobID,
		"switch_files":  switchFiles,
		"gateway_files": gatewayFiles,
	}).Info("Starting reconciliation job")

	return job, nil
}

func (s *reconciliationService) run(ctx context.Context, job *domain.ReconciliationJob, input engine.ReconciliationInput) (*JobResult, error) {
	result, err := s.engine.Reconcile(input)
	if err != nil {
		s.failJob(ctx, job, err)
		return nil, fmt.Errorf("reconciliation failed: %w", err)
	}

	if err := s.repo.SaveResult(ctx, job.JobID, result); err != nil {
		s.failJob(ctx, job, err)
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	job.Status = domain.Completed
	job.Stats = &result.Stats
	if err := s.repo.UpdateJob(ctx, job); err != nil {
		logger.GetLogger().WithError(err).WithField("job_id", job.JobID).Error("Failed to update job")
	}

	logger.GetLogger().WithField("job_id", job.JobID).Info("Reconciliation job completed")

	return &JobResult{Job: job, Result: result}, nil
}

func (s *reconciliationService) failJob(ctx context.Context, job *domain.ReconciliationJob, cause error) {
	msg := cause.Error()
	job.Status = domain.Failed
	job.ErrorMessage = &msg

	logger.GetLogger().WithError(cause).WithField("job_id", job.JobID).Warn("Reconciliation job failed")

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		logger.GetLogger().WithError(err).WithField("job_id", job.JobID).Error("Failed to update job")
	}
}

// parseUploads decodes each file into its own batch so every header is checked later,
// including those of files without data rows.
func parseUploads(uploads []Upload) ([]domain.RawBatch, error) {
	batches := make([]domain.RawBatch, 0, len(uploads))
	for _, u := range uploads {
		batch, err := parser.ParseFile(u.Name, u.Reader)
		if err != nil {
			return nil, fmt.Errorf("file %s: %w", u.Name, err)
		}
		batches = append(batches, *batch)
	}
	return batches, nil
}

func fileNames(uploads []Upload) []string {
	names := make([]string, len(uploads))
	for i, u := range uploads {
		names[i] = u.Name
	}
	return names
}
