package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/thinktodo/tt/internal/domain"
)

// AddCostInput contains the parameters for recording a cost entry.
type AddCostInput struct {
	TaskID       string
	Agent        string
	Model        string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
}

// AddCost is the use case for recording token spend.
type AddCost struct {
	costs domain.CostLedger
	clock domain.Clock
}

// NewAddCost creates a new AddCost use case.
func NewAddCost(costs domain.CostLedger, clock domain.Clock) *AddCost {
	return &AddCost{costs: costs, clock: clock}
}

// Execute appends the entry to the ledger.
func (uc *AddCost) Execute(_ context.Context, in AddCostInput) error {
	if err := uc.costs.Add(domain.CostEntry{
		Time:         uc.clock.Now(),
		TaskID:       in.TaskID,
		Agent:        in.Agent,
		Model:        in.Model,
		InputTokens:  in.InputTokens,
		OutputTokens: in.OutputTokens,
		CostUSD:      in.CostUSD,
	}); err != nil {
		return fmt.Errorf("add cost: %w", err)
	}
	return nil
}

// ListCosts is the use case for listing cost entries.
type ListCosts struct {
	costs domain.CostLedger
}

// NewListCosts creates a new ListCosts use case.
func NewListCosts(costs domain.CostLedger) *ListCosts {
	return &ListCosts{costs: costs}
}

// Execute returns all entries, newest first.
func (uc *ListCosts) Execute(_ context.Context) ([]domain.CostEntry, error) {
	return uc.costs.List()
}

// ModelCostSummary aggregates spend for one model.
type ModelCostSummary struct {
	Model        string
	Entries      int
	InputTokens  int
	OutputTokens int
	CostUSD      float64
}

// CostSummary is the use case for summarizing spend by model.
type CostSummary struct {
	costs domain.CostLedger
}

// NewCostSummary creates a new CostSummary use case.
func NewCostSummary(costs domain.CostLedger) *CostSummary {
	return &CostSummary{costs: costs}
}

// Execute groups entries by model, sorted by model name.
func (uc *CostSummary) Execute(_ context.Context) ([]ModelCostSummary, error) {
	entries, err := uc.costs.List()
	if err != nil {
		return nil, err
	}

	byModel := make(map[string]*ModelCostSummary)
	for _, e := range entries {
		sum, ok := byModel[e.Model]
		if !ok {
			sum = &ModelCostSummary{Model: e.Model}
			byModel[e.Model] = sum
		}
		sum.Entries++
		sum.InputTokens += e.InputTokens
		sum.OutputTokens += e.OutputTokens
		sum.CostUSD += e.CostUSD
	}

	summaries := make([]ModelCostSummary, 0, len(byModel))
	for _, s := range byModel {
		summaries = append(summaries, *s)
	}
	slices.SortFunc(summaries, func(a, b ModelCostSummary) int {
		return strings.Compare(a.Model, b.Model)
	})
	return summaries, nil
}
