// Package core orchestrates the analysis pipeline: scan files, ask the
// oracle, persist nodes in the graph.
package core

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/agenthands/cobalt/internal/core/model"
	"github.com/agenthands/cobalt/internal/core/oracle"
	"github.com/agenthands/cobalt/internal/graph"
	"github.com/agenthands/cobalt/internal/scan"
)

// DefaultLabel is the node label used when the oracle's suggested
// classification cannot safely become a label itself.
const DefaultLabel = "Program"

// GraphStore is the slice of the graph client the analyzer needs.
type GraphStore interface {
	Upsert(ctx context.Context, name, nodeType string, props map[string]any) (map[string]any, error)
	Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

type Analyzer struct {
	Oracle *oracle.Oracle
	Graph  GraphStore

	// RunID groups every node written by one analysis run.
	RunID string
}

func NewAnalyzer(o *oracle.Oracle, g GraphStore) *Analyzer {
	return &Analyzer{
		Oracle: o,
		Graph:  g,
		RunID:  uuid.New().String(),
	}
}

// nodeLabel picks the label for a file node. A suggested classification that
// passes the label allowlist is used as-is; anything else falls back to
// DefaultLabel rather than reaching the query builder.
func nodeLabel(suggested string) string {
	if suggested != "" && graph.ValidLabel(suggested) {
		return suggested
	}
	return DefaultLabel
}

// AnalyzeFile reads one source file, asks the oracle for its summary and
// copybook references, and upserts the results. The returned error preserves
// scan.ErrNotFound so directory mode can skip missing files.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*model.CodeSummary, error) {
	code, err := scan.ReadTextFile(path)
	if err != nil {
		return nil, err
	}

	res, err := a.Oracle.Summarize(ctx, code, path)
	if err != nil {
		return nil, err
	}

	summary, err := model.NewCodeSummary(res.Filename, path, res.Summary)
	if err != nil {
		return nil, err
	}
	summary.Language = res.Language
	summary.ConfidenceScore = res.ConfidenceScore
	summary.SuggestedClassification = res.SuggestedClassification
	if c, err := model.ParseClassification(res.SuggestedClassification); err == nil {
		summary.Classification = c
	}
	if err := summary.Validate(); err != nil {
		return nil, err
	}

	props := summary.Properties()
	props["run_id"] = a.RunID

	label := nodeLabel(summary.SuggestedClassification)
	if _, err := a.Graph.Upsert(ctx, summary.Filename, label, props); err != nil {
		return nil, fmt.Errorf("failed to upsert node for %s: %w", summary.Filename, err)
	}

	a.linkCopybooks(ctx, summary.Filename, code)

	return summary, nil
}

// linkCopybooks records the file's copybook references as Copybook nodes
// plus REFERENCES edges. Failures here do not fail the file: the summary
// node is already persisted and the references are supplementary.
func (a *Analyzer) linkCopybooks(ctx context.Context, filename, code string) {
	copybooks, err := a.Oracle.ExtractCopybooks(ctx, code)
	if err != nil {
		log.Printf("Copybook extraction failed for %s: %v", filename, err)
		return
	}

	for _, name := range copybooks {
		if name == "" {
			continue
		}
		if _, err := a.Graph.Upsert(ctx, name, "Copybook", map[string]any{"run_id": a.RunID}); err != nil {
			log.Printf("Failed to upsert copybook %s: %v", name, err)
			continue
		}
		_, err := a.Graph.Run(ctx, graph.LinkReferenceQuery, map[string]any{
			"file":     filename,
			"copybook": name,
			"run_id":   a.RunID,
		})
		if err != nil {
			log.Printf("Failed to link %s to copybook %s: %v", filename, name, err)
		}
	}
}

// AnalyzeDirectory walks every file under root (minus ignored extensions)
// and analyzes each in turn. Per-file soft failures (missing file, oracle or
// validation errors) are logged and skipped; a bad root, a walk failure or a
// graph failure halts the run. Returns the number of files analyzed.
func (a *Analyzer) AnalyzeDirectory(ctx context.Context, root string, ignoreExts []string) (int, error) {
	files, err := scan.IterFiles(root, ignoreExts...)
	if err != nil {
		return 0, err
	}

	count := 0
	for path, err := range files {
		if err != nil {
			return count, err
		}
		summary, err := a.AnalyzeFile(ctx, path)
		if err != nil {
			var connErr *graph.ConnectionError
			var queryErr *graph.QueryError
			if errors.As(err, &connErr) || errors.As(err, &queryErr) {
				return count, err
			}
			log.Printf("Skipping %s: %v", path, err)
			continue
		}
		log.Printf("Analyzed %s", summary)
		count++
	}
	return count, nil
}
