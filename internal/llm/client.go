// Package llm provides text-generation clients for the summarization
// oracle's backing providers.
package llm

import (
	"context"
)

// Client generates a completion for a single prompt. The oracle treats it as
// an opaque synchronous call.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
