package lookstore

import (
	"sync"
	"time"

	"stylist/internal/domain"
)

// maxTrail caps the per-job log and error lists so a long-running or stuck
// job cannot grow memory without bound. Oldest entries are dropped first.
const maxTrail = 200

// Store is the single source of truth for look job existence and status.
// All mutators are safe under concurrent invocation from multiple in-flight
// workers; one mutex guards the whole map.
type Store struct {
	mu   sync.Mutex
	jobs map[string]*domain.Job
	now  func() time.Time
}

func New() *Store {
	return &Store{jobs: make(map[string]*domain.Job), now: time.Now}
}

// Create registers a fresh queued job owning the plan. Id collisions are the
// caller's responsibility; an existing record with the same id is replaced.
func (s *Store) Create(plan *domain.StylePlan) *domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	job := &domain.Job{
		ID:        plan.LookID,
		Status:    domain.JobStatusQueued,
		Progress:  make(map[string]int, len(plan.Slots)),
		Plan:      plan,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.jobs[job.ID] = job
	return copyJob(job)
}

// Get returns a copy of the job so callers cannot mutate shared state
// outside the lock.
func (s *Store) Get(id string) (*domain.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok || job == nil {
		return nil, false
	}
	return copyJob(job), true
}

// Update applies fn to the job under the lock and refreshes UpdatedAt.
// An absent id is a silent no-op, not an error: fire-and-forget workers may
// race with eviction.
func (s *Store) Update(id string, fn func(j *domain.Job)) (*domain.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok || job == nil {
		return nil, false
	}
	fn(job)
	job.UpdatedAt = s.now()
	return copyJob(job), true
}

// SetProgress records the number of valid candidates found so far for a slot.
func (s *Store) SetProgress(id, slot string, count int) {
	s.Update(id, func(j *domain.Job) {
		if j.Progress == nil {
			j.Progress = make(map[string]int)
		}
		j.Progress[slot] = count
	})
}

// AppendError records an absorbed provider failure, keeping the most recent
// maxTrail entries.
func (s *Store) AppendError(id string, rec domain.JobError) {
	s.Update(id, func(j *domain.Job) {
		j.Errors = append(j.Errors, rec)
		if n := len(j.Errors); n > maxTrail {
			j.Errors = j.Errors[n-maxTrail:]
		}
	})
}

// AppendLog adds a line to the job's rolling log, keeping the most recent
// maxTrail entries.
func (s *Store) AppendLog(id, line string) {
	s.Update(id, func(j *domain.Job) {
		j.Logs = append(j.Logs, line)
		if n := len(j.Logs); n > maxTrail {
			j.Logs = j.Logs[n-maxTrail:]
		}
	})
}

// Evict removes a job. Jobs have no TTL of their own; eviction is explicit.
func (s *Store) Evict(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

// copyJob clones the mutable parts of a job. Plan and Result are treated as
// immutable once attached and are shared.
func copyJob(j *domain.Job) *domain.Job {
	cp := *j
	if j.Progress != nil {
		cp.Progress = make(map[string]int, len(j.Progress))
		for k, v := range j.Progress {
			cp.Progress[k] = v
		}
	}
	cp.Errors = append([]domain.JobError(nil), j.Errors...)
	cp.Logs = append([]string(nil), j.Logs...)
	return &cp
}
