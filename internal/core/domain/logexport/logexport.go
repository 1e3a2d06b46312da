// Package logexport describes asynchronous exports of the application log file.
package logexport

import (
	"fmt"
	"time"

	"github.com/bookblog/server/internal/core/domain/domainerr"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Task tracks one export. Values held by the task store are never mutated in place.
type Task struct {
	ID        string    `json:"task_id"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	// FilePath is set once the export is COMPLETED
	FilePath string `json:"-"`
}

// Done reports whether the task reached a terminal status.
func (t *Task) Done() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}

var (
	ErrNotFound = domainerr.NotFound("log export task")
	// ErrNotReady is a NotFound so downloads of unfinished exports answer 404
	ErrNotReady = fmt.Errorf("log export file %w: export is not completed", domainerr.ErrNotFound)
	ErrBusy     = domainerr.Unavailable("log export queue")
)
