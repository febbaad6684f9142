package entity

type JobStatus string

const (
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobNoData  JobStatus = "no_data"
)

// Progress is the message broadcast to UI clients after every processed event
// and once more when the job reaches a terminal status.
type Progress struct {
	JobID   string    `json:"jobId"`
	Status  JobStatus `json:"status"`
	Done    int       `json:"done"`
	Total   int       `json:"total"`
	Message string    `json:"message,omitempty"`
}
