package oracle

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/pilot/internal/domain"
	"gopkg.in/yaml.v3"
)

// File reads the plan from a YAML or JSON document with the same schema
// the LLM answers with.
type File struct {
	Path string
}

func (f File) Plan(_ context.Context, in domain.PlanInput) (*domain.PlanOutput, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan decodes and validates a plan document. JSON is valid YAML, so
// one decoder serves both formats.
func ParsePlan(data []byte) (*domain.PlanOutput, error) {
	var doc planDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}
	if err := validatePlan(doc); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return toOutput(doc)
}
