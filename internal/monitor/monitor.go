// Package monitor implements the completion detector: a poller that scans
// per-task agent logs for the completion sentinel and closes matching tasks.
package monitor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/thinktodo/tt/internal/domain"
)

// Monitor polls the task log tree. It is stateless across ticks: every scan
// re-reads every log file in full and re-applies the same unconditional
// close, which makes detection idempotent and restart-safe at the cost of
// O(total log bytes) per tick. Acceptable while logs stay small.
type Monitor struct {
	tasks    domain.TaskRepository
	logger   domain.Logger
	workDir  string
	interval time.Duration
}

// New creates a Monitor. A non-positive interval falls back to 3 seconds.
func New(tasks domain.TaskRepository, logger domain.Logger, workDir string, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Monitor{
		tasks:    tasks,
		logger:   logger,
		workDir:  workDir,
		interval: interval,
	}
}

// Run polls until the context is cancelled. Cancellation between ticks
// returns promptly; context.Canceled is a normal exit, not an error.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Scan()
	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.Canceled {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			m.Scan()
		}
	}
}

// Scan performs one poll tick: walk every task directory under the log
// root, read every agent log, and close any task whose log contains the
// sentinel. Unreadable files and directories are skipped; one bad file
// never stops the rest of the scan.
func (m *Monitor) Scan() {
	logRoot := domain.LogRoot(m.workDir)
	taskDirs, err := os.ReadDir(logRoot)
	if err != nil {
		return
	}

	for _, entry := range taskDirs {
		if !entry.IsDir() {
			continue
		}
		taskID := entry.Name()

		logFiles, err := os.ReadDir(filepath.Join(logRoot, taskID))
		if err != nil {
			continue
		}
		for _, lf := range logFiles {
			if lf.IsDir() {
				continue
			}
			content, err := os.ReadFile(filepath.Join(logRoot, taskID, lf.Name()))
			if err != nil {
				continue
			}
			if !bytes.Contains(content, []byte(domain.CompletionSentinel)) {
				continue
			}

			// Closing an already-closed task is a no-op by construction.
			if err := m.tasks.SetStatus(taskID, domain.StatusClosed); err != nil {
				if m.logger != nil {
					m.logger.Warn(taskID, "monitor", "close failed: "+err.Error())
				}
				continue
			}
			if m.logger != nil {
				m.logger.Info(taskID, "monitor", "completion sentinel observed in "+lf.Name())
			}
		}
	}
}
