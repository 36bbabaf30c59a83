package domain

// Export job states as reported by the server.
const (
	ExportPending   = "pending"
	ExportCompleted = "completed"
	ExportFailed    = "failed"
)

// ExportJob tracks a server-side CSV export of the booking history.
type ExportJob struct {
	ID          int      `json:"id"`
	UserID      int      `json:"user_id"`
	Status      string   `json:"status"`
	CreatedAt   *APITime `json:"created_at,omitempty"`
	CompletedAt *APITime `json:"completed_at,omitempty"`
}

// Done reports whether the job has reached a terminal state.
func (j ExportJob) Done() bool {
	return j.Status == ExportCompleted || j.Status == ExportFailed
}
