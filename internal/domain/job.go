package domain

import "time"

// JobStatus represents the status of a reconciliation job
type JobStatus string

const (
	Pending    JobStatus = "PENDING"
	Processing JobStatus = "PROCESSING"
	Completed  JobStatus = "COMPLETED"
	Failed     JobStatus = "FAILED"
)

// ReconciliationJob tracks one reconciliation request so its result can be fetched or
// exported later by JobID.
type ReconciliationJob struct {
	ID           int       `json:"id" db:"id"`
	JobID        string    `json:"job_id" db:"job_id"`
	Status       JobStatus `json:"status" db:"status"`
	SwitchFiles  []string  `json:"switch_files" db:"switch_files"`
	GatewayFiles []string  `json:"gateway_files" db:"gateway_files"`
	Stats        *Stats    `json:"stats,omitempty" db:"stats"`
	ErrorMessage *string   `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
