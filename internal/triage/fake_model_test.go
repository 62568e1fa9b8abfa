package triage

import (
	"context"
	"errors"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// fakeModel is an llms.Model that records prompts and returns a canned reply.
type fakeModel struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range messages {
		for _, p := range m.Parts {
			if tc, ok := p.(llms.TextContent); ok {
				f.prompts = append(f.prompts, tc.Text)
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func (f *fakeModel) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

func factoryFor(m llms.Model) ModelFactory {
	return func(Credentials) (llms.Model, error) { return m, nil }
}

var errQuota = errors.New("quota exceeded")

var testCreds = Credentials{
	Endpoint:   "https://clinic.openai.azure.com",
	APIKey:     "key",
	Deployment: "triage",
}
