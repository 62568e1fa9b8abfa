package triage

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/schema"
)

// Chain is one triage conversation: a prompt template, the model, and a
// buffer memory that accumulates every exchange made through Run.
type Chain struct {
	chain  *chains.LLMChain
	memory schema.Memory
	opts   []chains.ChainCallOption
}

// Run renders the template with symptoms and the accumulated history, calls
// the model, and records the exchange in memory on success.
func (c *Chain) Run(ctx context.Context, symptoms string) (string, error) {
	out, err := chains.Call(ctx, c.chain, map[string]any{"symptoms": symptoms}, c.opts...)
	if err != nil {
		return "", &ProviderError{Op: "chain", Err: err}
	}
	text, ok := out[c.chain.OutputKey].(string)
	if !ok {
		return "", &ProviderError{Op: "chain", Err: fmt.Errorf("unexpected output %T", out[c.chain.OutputKey])}
	}
	return strings.TrimSpace(text), nil
}

// Transcript snapshots the memory as a tagged Transcript.
func (c *Chain) Transcript(ctx context.Context) Transcript {
	return transcriptOf(ctx, c.memory)
}
