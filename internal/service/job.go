package service

import (
	"sync"

	"oddsdesk/prop_fetcher/internal/entity"

	"github.com/google/uuid"
)

type Job struct {
	ID      string              `json:"jobId"`
	Status  entity.JobStatus    `json:"status"`
	Done    int                 `json:"done"`
	Total   int                 `json:"total"`
	Message string              `json:"message,omitempty"`
	Records []entity.OddsRecord `json:"records,omitempty"`
}

// Jobs is an in-memory registry of fetch jobs. Jobs live for the process
// run only, there is no persistence.
type Jobs struct {
	mu   sync.Mutex
	jobs map[string]*Job
}

func NewJobs() *Jobs {
	return &Jobs{
		jobs: make(map[string]*Job),
	}
}

func (j *Jobs) Create(total int) Job {
	job := &Job{
		ID:     uuid.NewString(),
		Status: entity.JobRunning,
		Total:  total,
	}

	j.mu.Lock()
	j.jobs[job.ID] = job
	j.mu.Unlock()

	return *job
}

func (j *Jobs) Progress(id string, done int) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if job, ok := j.jobs[id]; ok {
		job.Done = done
	}
}

func (j *Jobs) Finish(id string, status entity.JobStatus, message string, records []entity.OddsRecord) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if job, ok := j.jobs[id]; ok {
		job.Status = status
		job.Message = message
		job.Records = records
		job.Done = job.Total
	}
}

func (j *Jobs) Get(id string) (Job, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	job, ok := j.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}
