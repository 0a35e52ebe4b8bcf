// Package ai provides factory functions for creating LLM service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/deckforge/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/deckforge/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/deckforge/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/deckforge/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the LLM services of one run. Annotation and outline
// generation use LLM; best-slide selection uses Selection, which is the
// same service unless a separate selection model is configured.
type InitResult struct {
	LLM       driven.LLMService
	Selection driven.LLMService
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.Selection != nil && r.Selection != r.LLM {
		r.Selection.Close()
	}
	if r.LLM != nil {
		r.LLM.Close()
	}
}

// Init creates the LLM services described by settings without pinging them.
// An unconfigured provider yields an empty result, not an error.
func Init(settings *domain.AppSettings) (*InitResult, error) {
	result := &InitResult{}
	if settings == nil || !settings.LLM.IsConfigured() {
		return result, nil
	}

	svc, err := CreateLLMService(&settings.LLM)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'deckforge settings llm' to fix", domain.ErrLLMUnavailable, err)
	}
	result.LLM = svc
	result.Selection = svc

	if model := settings.SelectionModel(); model != settings.LLM.Model {
		selection := settings.LLM
		selection.Model = model
		selection.ContextWindow = settings.Selection.ContextWindow
		sel, err := CreateLLMService(&selection)
		if err != nil {
			result.Close()
			return nil, fmt.Errorf("%w: selection model: %w", domain.ErrLLMUnavailable, err)
		}
		result.Selection = sel
	}

	return result, nil
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'deckforge settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'deckforge settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
// This is intended for use by the settings command to validate credentials on configuration.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaLLM(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAILLM(settings)

	case domain.AIProviderAnthropic:
		return createAnthropicLLM(settings)

	case domain.AIProviderGemini:
		return createGeminiLLM(settings)

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// createOllamaLLM creates an Ollama LLM service.
func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL:       settings.BaseURL,
		Model:         settings.Model,
		ContextWindow: settings.ContextWindow,
	})
}

// createOpenAILLM creates an OpenAI LLM service.
func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createAnthropicLLM creates an Anthropic LLM service.
func createAnthropicLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createGeminiLLM creates a Gemini LLM service.
func createGeminiLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return geminillm.NewLLMService(context.Background(), geminillm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}
