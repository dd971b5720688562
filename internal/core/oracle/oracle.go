// Package oracle wraps the LLM behind the two structured questions the
// pipeline asks of a source file: "what is this" and "which copybooks does
// it reference".
package oracle

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/agenthands/cobalt/internal/config"
	"github.com/agenthands/cobalt/internal/core/common"
	"github.com/agenthands/cobalt/internal/llm"
)

// Result is the structured summary returned for one file.
type Result struct {
	Filename                string   `json:"filename"`
	Summary                 string   `json:"summary"`
	Language                string   `json:"language,omitempty"`
	ConfidenceScore         *float64 `json:"confidence_score,omitempty"`
	SuggestedClassification string   `json:"suggested_classification,omitempty"`
}

type copybookList struct {
	Copybooks []string `json:"copybooks"`
}

type Oracle struct {
	LLM     llm.Client
	Prompts config.PromptsConfig
}

func New(client llm.Client, prompts config.PromptsConfig) *Oracle {
	return &Oracle{
		LLM:     client,
		Prompts: prompts,
	}
}

// Summarize asks the model for a structured summary of the given source
// text. The filename falls back to the path's base name when the model
// leaves it out.
func (o *Oracle) Summarize(ctx context.Context, code, path string) (*Result, error) {
	prompt := fmt.Sprintf(o.Prompts.Summary, path, code)

	response, err := o.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}

	result, err := common.ParseJSON[Result](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse summary result: %w", err)
	}
	if result.Filename == "" {
		result.Filename = filepath.Base(path)
	}
	return &result, nil
}

// ExtractCopybooks asks the model for the external copybooks referenced by
// the given source text.
func (o *Oracle) ExtractCopybooks(ctx context.Context, code string) ([]string, error) {
	prompt := fmt.Sprintf(o.Prompts.Copybooks, code)

	response, err := o.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to extract copybooks: %w", err)
	}

	result, err := common.ParseJSON[copybookList](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse copybook result: %w", err)
	}
	return result.Copybooks, nil
}
