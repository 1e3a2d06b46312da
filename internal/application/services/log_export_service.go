package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bookblog/server/internal/core/domain/logexport"
	"github.com/bookblog/server/internal/core/ports"
)

// LogExportConfig holds the export worker pool settings
type LogExportConfig struct {
	SourcePath string
	OutputDir  string
	Workers    int
	QueueSize  int
	// Delay is how long a queued export waits before copying
	Delay time.Duration
}

// LogExportService runs log exports on a fixed pool of workers fed by a bounded queue.
// Task state lives in the task cache; an evicted task is reported as unknown.
type LogExportService struct {
	cfg    LogExportConfig
	tasks  ports.Cache[string, *logexport.Task]
	logger *logrus.Logger
	now    func() time.Time

	mu     sync.Mutex
	closed bool
	queue  chan string
	cancel context.CancelFunc
	group  errgroup.Group
}

func NewLogExportService(cfg LogExportConfig, tasks ports.Cache[string, *logexport.Task], logger *logrus.Logger) *LogExportService {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.TempDir()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &LogExportService{
		cfg:    cfg,
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
		queue:  make(chan string, cfg.QueueSize),
		cancel: cancel,
	}
	s.group.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		s.group.Go(func() error {
			s.work(ctx)
			return nil
		})
	}
	return s
}

func (s *LogExportService) CreateExport(ctx context.Context) (*logexport.Task, error) {
	task := &logexport.Task{
		ID:        uuid.NewString(),
		Status:    logexport.StatusPending,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, logexport.ErrBusy
	}
	s.tasks.Put(task.ID, task)
	select {
	case s.queue <- task.ID:
	default:
		s.tasks.Remove(task.ID)
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"queue_size": s.cfg.QueueSize}).Warn("log export queue full")
		}
		return nil, logexport.ErrBusy
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"task_id": task.ID}).Info("log export queued")
	}
	copied := *task
	return &copied, nil
}

func (s *LogExportService) GetTask(ctx context.Context, id string) (*logexport.Task, error) {
	task, ok := s.tasks.Get(id)
	if !ok {
		return nil, logexport.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *LogExportService) ExportFile(ctx context.Context, id string) (string, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return "", err
	}
	if task.Status != logexport.StatusCompleted {
		return "", logexport.ErrNotReady
	}
	return task.FilePath, nil
}

// Close stops accepting exports, cancels waiting ones and blocks until every worker exits.
func (s *LogExportService) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	s.cancel()
	return s.group.Wait()
}

func (s *LogExportService) work(ctx context.Context) {
	for id := range s.queue {
		s.export(ctx, id)
	}
}

func (s *LogExportService) export(ctx context.Context, id string) {
	if s.cfg.Delay > 0 {
		timer := time.NewTimer(s.cfg.Delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			s.fail(id, "export cancelled")
			return
		}
	}
	if ctx.Err() != nil {
		s.fail(id, "export cancelled")
		return
	}

	s.transition(id, func(t *logexport.Task) { t.Status = logexport.StatusProcessing })

	dst := filepath.Join(s.cfg.OutputDir, "log_"+id+".log")
	if err := copyFile(s.cfg.SourcePath, dst); err != nil {
		reason := "copy failed"
		if errors.Is(err, fs.ErrNotExist) {
			reason = "source log file not found"
		}
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"task_id": id, "source": s.cfg.SourcePath}).WithError(err).Error("log export failed")
		}
		s.fail(id, reason)
		return
	}

	s.transition(id, func(t *logexport.Task) {
		t.Status = logexport.StatusCompleted
		t.FilePath = dst
	})
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"task_id": id, "file": dst}).Info("log export completed")
	}
}

func (s *LogExportService) fail(id, reason string) {
	s.transition(id, func(t *logexport.Task) {
		t.Status = logexport.StatusFailed
		t.Error = reason
	})
}

// transition stores a modified copy; tasks evicted meanwhile stay gone.
func (s *LogExportService) transition(id string, mutate func(*logexport.Task)) {
	current, ok := s.tasks.Get(id)
	if !ok {
		return
	}
	next := *current
	mutate(&next)
	s.tasks.Update(id, &next)
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return nil
}

var _ ports.LogExportService = (*LogExportService)(nil)
