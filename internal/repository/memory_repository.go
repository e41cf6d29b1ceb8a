package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"payment-recon/internal/domain"
)

// memoryRepository keeps jobs and results for the lifetime of the process.
// Values are copied on the way in and out so callers never share stored state.
type memoryRepository struct {
	mu      sync.RWMutex
	nextID  int
	jobs    map[string]domain.ReconciliationJob
	results map[string]*domain.ReconciliationResult
}

func NewMemoryRepository() ReconciliationRepository {
	return &memoryRepository{
		jobs:    make(map[string]domain.ReconciliationJob),
		results: make(map[string]*domain.ReconciliationResult),
	}
}

func (r *memoryRepository) CreateJob(_ context.Context, job *domain.ReconciliationJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	job.ID = r.nextID
	job.CreatedAt = now
	job.UpdatedAt = now
	r.jobs[job.JobID] = cloneJob(job)

	return nil
}

func (r *memoryRepository) UpdateJob(_ context.Context, job *domain.ReconciliationJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.JobID]; !ok {
		return domain.ErrJobNotFound
	}
	job.UpdatedAt = time.Now().UTC()
	r.jobs[job.JobID] = cloneJob(job)

	return nil
}

func (r *memoryRepository) GetJobByID(_ context.Context, jobID string) (*domain.ReconciliationJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := cloneJob(&job)
	return &clone, nil
}

func (r *memoryRepository) SaveResult(_ context.Context, jobID string, result *domain.ReconciliationResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[jobID]; !ok {
		return domain.ErrJobNotFound
	}
	r.results[jobID] = cloneResult(result)

	return nil
}

func (r *memoryRepository) GetResult(_ context.Context, jobID string) (*domain.ReconciliationResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, ok := r.results[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneResult(result), nil
}

func cloneJob(job *domain.ReconciliationJob) domain.ReconciliationJob {
	clone := *job
	clone.SwitchFiles = slices.Clone(job.SwitchFiles)
	clone.GatewayFiles = slices.Clone(job.GatewayFiles)
	if job.Stats != nil {
		stats := *job.Stats
		clone.Stats = &stats
	}
	if job.ErrorMessage != nil {
		msg := *job.ErrorMessage
		clone.ErrorMessage = &msg
	}
	return clone
}

func cloneResult(result *domain.ReconciliationResult) *domain.ReconciliationResult {
	clone := *result
	clone.MissingFromSwitch = slices.Clone(result.MissingFromSwitch)
	clone.MissingFromGateway = slices.Clone(result.MissingFromGateway)
	clone.StatusMismatch = slices.Clone(result.StatusMismatch)
	clone.DuplicateReferences = slices.Clone(result.DuplicateReferences)
	return &clone
}
