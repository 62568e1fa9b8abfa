// Package triage wraps the LLM provider for symptom triage: a direct
// single-prompt completion and a langchaingo chain with buffer memory whose
// transcript can be bridged into persisted conversation turns.
package triage

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/prompts"
)

const (
	defaultTemperature = 0.2
	defaultMaxTokens   = 300
)

// Service builds provider-backed triage calls from explicit credentials.
// It holds no per-conversation state; every NewChain starts empty.
type Service struct {
	creds       Credentials
	newModel    ModelFactory
	temperature float64
	maxTokens   int
}

type Option func(*Service)

// WithModelFactory replaces the Azure OpenAI model constructor.
func WithModelFactory(f ModelFactory) Option {
	return func(s *Service) {
		if f != nil {
			s.newModel = f
		}
	}
}

// WithGeneration sets sampling temperature and the completion token cap.
// Non-positive maxTokens keeps the default.
func WithGeneration(temperature float64, maxTokens int) Option {
	return func(s *Service) {
		s.temperature = temperature
		if maxTokens > 0 {
			s.maxTokens = maxTokens
		}
	}
}

func NewService(creds Credentials, opts ...Option) *Service {
	s := &Service{
		creds:       creds,
		newModel:    NewAzureModel,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether calls will reach a provider.
func (s *Service) Configured() bool {
	return s.creds.Configured()
}

func (s *Service) model() (llms.Model, error) {
	if !s.creds.Configured() {
		return nil, ErrNotConfigured
	}
	m, err := s.newModel(s.creds)
	if err != nil {
		return nil, &ProviderError{Op: "create model", Err: err}
	}
	return m, nil
}

// Complete sends the fixed triage prompt for symptoms alone, without history.
func (s *Service) Complete(ctx context.Context, symptoms string) (string, error) {
	m, err := s.model()
	if err != nil {
		return "", err
	}
	text, err := llms.GenerateFromSinglePrompt(ctx, m, directPrompt(symptoms),
		llms.WithTemperature(s.temperature),
		llms.WithMaxTokens(s.maxTokens),
	)
	if err != nil {
		return "", &ProviderError{Op: "completion", Err: err}
	}
	return strings.TrimSpace(text), nil
}

// NewChain returns a fresh chain with an empty buffer memory, or
// ErrNotConfigured when credentials are incomplete.
func (s *Service) NewChain() (*Chain, error) {
	m, err := s.model()
	if err != nil {
		return nil, err
	}

	buf := memory.NewConversationBuffer(
		memory.WithMemoryKey("history"),
		memory.WithInputKey("symptoms"),
	)
	prompt := prompts.PromptTemplate{
		Template:       chainTemplate,
		InputVariables: []string{"symptoms", "history"},
		TemplateFormat: prompts.TemplateFormatFString,
	}
	llmChain := chains.NewLLMChain(m, prompt)
	llmChain.Memory = buf

	return &Chain{
		chain:  llmChain,
		memory: buf,
		opts: []chains.ChainCallOption{
			chains.WithTemperature(s.temperature),
			chains.WithMaxTokens(s.maxTokens),
		},
	}, nil
}
