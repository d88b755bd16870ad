package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"reposter/internal/domain"
)

// taskRetention is how long finished tasks stay pollable.
const taskRetention = time.Hour

// Task is the pollable state of one background download.
type Task struct {
	ID       string                 `json:"id"`
	Status   domain.TaskStatus      `json:"status"`
	Progress int                    `json:"progress"`
	Message  string                 `json:"message"`
	Result   *domain.DownloadResult `json:"result,omitempty"`
	Error    string                 `json:"error,omitempty"`

	createdAt  time.Time
	finishedAt time.Time
}

// TaskStore tracks background download tasks in memory.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

// NewTaskStore creates a new task store and starts its janitor.
func NewTaskStore() *TaskStore {
	ts := &TaskStore{tasks: make(map[string]*Task)}
	go ts.cleanup()
	return ts
}

// Create registers a new pending task and returns its id.
func (ts *TaskStore) Create() string {
	id := uuid.NewString()

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.tasks[id] = &Task{
		ID:        id,
		Status:    domain.TaskPending,
		createdAt: time.Now(),
	}
	return id
}

// Progress updates a running task's progress and message.
func (ts *TaskStore) Progress(id string, pct int, message string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if task, ok := ts.tasks[id]; ok {
		task.Status = domain.TaskDownloading
		task.Progress = pct
		task.Message = message
	}
}

// Complete marks a task as finished with its result.
func (ts *TaskStore) Complete(id string, result *domain.DownloadResult) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if task, ok := ts.tasks[id]; ok {
		task.Status = domain.TaskCompleted
		task.Progress = 100
		task.Message = result.Message
		task.Result = result
		task.finishedAt = time.Now()
	}
}

// Fail marks a task as failed with an error description.
func (ts *TaskStore) Fail(id string, message string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if task, ok := ts.tasks[id]; ok {
		task.Status = domain.TaskFailed
		task.Message = message
		task.Error = message
		task.finishedAt = time.Now()
	}
}

// Get returns a snapshot of the task, or false when unknown.
func (ts *TaskStore) Get(id string) (Task, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	task, ok := ts.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// cleanup periodically drops finished tasks past the retention window.
func (ts *TaskStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		cutoff := time.Now().Add(-taskRetention)
		ts.mu.Lock()
		for id, task := range ts.tasks {
			done := task.Status == domain.TaskCompleted || task.Status == domain.TaskFailed
			if done && task.finishedAt.Before(cutoff) {
				delete(ts.tasks, id)
			}
		}
		ts.mu.Unlock()
	}
}
