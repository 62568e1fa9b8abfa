package triage

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// DefaultAPIVersion is the Azure OpenAI api-version used when none is set.
const DefaultAPIVersion = "2024-10-21"

// Azure api-versions older than this reject max_completion_tokens.
const firstCompletionTokensVersion = "2024-09-01"

// Credentials identify an Azure OpenAI deployment. They are passed in
// explicitly; nothing is read from the environment here.
type Credentials struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
}

// Configured reports whether endpoint, key and deployment are all set.
func (c Credentials) Configured() bool {
	return c.Endpoint != "" && c.APIKey != "" && c.Deployment != ""
}

// ModelFactory builds a language model for a set of credentials.
type ModelFactory func(Credentials) (llms.Model, error)

// NewAzureModel returns a langchaingo chat model bound to the deployment.
// For api-versions that predate max_completion_tokens the token cap is sent
// as max_tokens instead.
func NewAzureModel(c Credentials) (llms.Model, error) {
	version := c.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	m, err := openai.New(
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithBaseURL(c.Endpoint),
		openai.WithToken(c.APIKey),
		openai.WithModel(c.Deployment),
		openai.WithAPIVersion(version),
	)
	if err != nil {
		return nil, err
	}
	if usesLegacyMaxTokens(version) {
		return legacyTokensModel{Model: m}, nil
	}
	return m, nil
}

// usesLegacyMaxTokens compares the YYYY-MM-DD prefix of an api-version.
func usesLegacyMaxTokens(version string) bool {
	if len(version) > len(firstCompletionTokensVersion) {
		version = version[:len(firstCompletionTokensVersion)]
	}
	return version < firstCompletionTokensVersion
}

// legacyTokensModel forces the max_tokens request field on every call,
// including the ones made by chains.
type legacyTokensModel struct {
	llms.Model
}

func (m legacyTokensModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	options = append(options, openai.WithLegacyMaxTokensField())
	return m.Model.GenerateContent(ctx, messages, options...)
}

func (m legacyTokensModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}
