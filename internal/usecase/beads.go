package usecase

import (
	"context"
	"fmt"

	"github.com/thinktodo/tt/internal/domain"
)

// BeadsReport is the system pulse: task progress, active workers, recent
// trail, total spend.
type BeadsReport struct {
	ActiveWorkers []*domain.Task
	Trail         []domain.AuditRecord
	Open          int
	InProgress    int
	Closed        int
	Total         int
	Progress      float64 // Closed ratio 0..100
	TotalCostUSD  float64
}

// Beads is the use case for building the cockpit report.
type Beads struct {
	tasks domain.TaskRepository
	audit domain.AuditLog
	costs domain.CostLedger
}

// NewBeads creates a new Beads use case.
func NewBeads(tasks domain.TaskRepository, audit domain.AuditLog, costs domain.CostLedger) *Beads {
	return &Beads{tasks: tasks, audit: audit, costs: costs}
}

// Execute gathers the report.
func (uc *Beads) Execute(_ context.Context) (*BeadsReport, error) {
	tasks, err := uc.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	report := &BeadsReport{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case domain.StatusOpen:
			report.Open++
		case domain.StatusInProgress:
			report.InProgress++
			if t.Assignee != "" {
				report.ActiveWorkers = append(report.ActiveWorkers, t)
			}
		case domain.StatusClosed:
			report.Closed++
		}
	}
	if report.Total > 0 {
		report.Progress = float64(report.Closed) / float64(report.Total) * 100
	}

	trail, err := uc.audit.Recent(3)
	if err != nil {
		return nil, fmt.Errorf("read trail: %w", err)
	}
	report.Trail = trail

	entries, err := uc.costs.List()
	if err != nil {
		return nil, fmt.Errorf("read costs: %w", err)
	}
	for _, e := range entries {
		report.TotalCostUSD += e.CostUSD
	}

	return report, nil
}

// Trail is the use case for listing recent audit activity.
type Trail struct {
	audit domain.AuditLog
}

// NewTrail creates a new Trail use case.
func NewTrail(audit domain.AuditLog) *Trail {
	return &Trail{audit: audit}
}

// Execute returns up to limit records, newest first.
func (uc *Trail) Execute(_ context.Context, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = 15
	}
	return uc.audit.Recent(limit)
}
