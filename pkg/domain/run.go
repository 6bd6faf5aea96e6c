package domain

import "time"

// ScrapeResult is the outcome of a single scraper run
type ScrapeResult struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// FailedResult makes an unsuccessful result for the given error
func FailedResult(err error) ScrapeResult {
	return ScrapeResult{Success: false, Message: err.Error(), Error: err.Error()}
}

// RunState is the lifecycle state of a registered scraper
type RunState string

// scraper states, Idle only before the first run
const (
	StateIdle    RunState = "idle"
	StateRunning RunState = "running"
	StateSuccess RunState = "success"
	StateError   RunState = "error"
)

// ScraperStatus describes the last known run of a scraper
type ScraperStatus struct {
	Name    string     `json:"name"`
	LastRun *time.Time `json:"last_run"`
	State   RunState   `json:"state"`
	Count   int        `json:"count"`
	Message string     `json:"message"`
}

// TaskState is the state of an asynchronously submitted run
type TaskState string

// task states
const (
	TaskQueued  TaskState = "queued"
	TaskRunning TaskState = "running"
	TaskDone    TaskState = "done"
)

// Task tracks a run submitted through the async trigger
type Task struct {
	ID          string                  `json:"id"`
	Target      string                  `json:"target"`
	State       TaskState               `json:"state"`
	SubmittedAt time.Time               `json:"submitted_at"`
	FinishedAt  *time.Time              `json:"finished_at,omitempty"`
	Results     map[string]ScrapeResult `json:"results,omitempty"`
}
