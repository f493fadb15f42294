package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/alexanderramin/pilot/internal/llm"
)

// LLM plans the day with a language model.
type LLM struct {
	client llm.LLMClient
	logger *slog.Logger
	// attempts bounds how often an unparseable reply is re-requested.
	attempts int
}

func NewLLM(client llm.LLMClient, logger *slog.Logger) *LLM {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLM{client: client, logger: logger, attempts: 2}
}

func (o *LLM) Plan(ctx context.Context, in domain.PlanInput) (*domain.PlanOutput, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	req := llm.GenerateRequest{
		Task:         llm.TaskPlan,
		SystemPrompt: planSystemPrompt,
		UserPrompt:   buildPlanPrompt(in),
		JSONMode:     true,
	}

	var lastErr error
	for i := 1; i <= o.attempts; i++ {
		resp, err := o.client.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("planning with llm: %w", err)
		}

		doc, err := llm.ExtractJSON(resp.Text, validatePlan)
		if err != nil {
			o.logger.Warn("planner reply rejected", "attempt", i, "error", err)
			lastErr = err
			continue
		}
		out, err := toOutput(doc)
		if err != nil {
			if errors.Is(err, ErrNoTasks) {
				return nil, err
			}
			lastErr = err
			continue
		}
		o.logger.Debug("planner reply accepted", "tasks", len(out.Tasks), "latency_ms", resp.LatencyMs)
		return out, nil
	}
	return nil, fmt.Errorf("planning with llm: %w", lastErr)
}
