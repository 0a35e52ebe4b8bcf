package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckforge/internal/core/domain"
)

func TestInitResult_Close(t *testing.T) {
	t.Run("close with nil services", func(t *testing.T) {
		result := &InitResult{}
		// Should not panic
		result.Close()
	})
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantNil  bool
		model    string
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.LLMSettings{},
			wantNil:  true,
		},
		{
			name:     "cloud provider without key returns nil",
			settings: &domain.LLMSettings{Provider: domain.AIProviderOpenAI},
			wantNil:  true,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				Model:    "llama3.2",
			},
			model: "llama3.2",
		},
		{
			name: "openai provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "test-key",
				Model:    "gpt-4o-mini",
			},
			model: "gpt-4o-mini",
		},
		{
			name: "anthropic provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "test-key",
			},
			model: "claude-3-5-sonnet-latest",
		},
		{
			name: "gemini provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderGemini,
				APIKey:   "test-key",
				Model:    "gemini-2.0-flash",
			},
			model: "gemini-2.0-flash",
		},
		{
			name: "unknown provider returns nil",
			settings: &domain.LLMSettings{
				Provider: "unknown",
				APIKey:   "test-key",
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)

			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			assert.Equal(t, tt.model, svc.ModelName())
			assert.NoError(t, svc.Close())
		})
	}
}

func TestInit(t *testing.T) {
	t.Run("unconfigured yields empty result", func(t *testing.T) {
		settings := domain.DefaultAppSettings()

		result, err := Init(&settings)

		require.NoError(t, err)
		assert.Nil(t, result.LLM)
		assert.Nil(t, result.Selection)
	})

	t.Run("selection shares the annotation service", func(t *testing.T) {
		settings := domain.DefaultAppSettings()
		settings.LLM = domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"}

		result, err := Init(&settings)

		require.NoError(t, err)
		defer result.Close()
		require.NotNil(t, result.LLM)
		assert.Same(t, result.LLM, result.Selection)
	})

	t.Run("selection model gets its own service", func(t *testing.T) {
		settings := domain.DefaultAppSettings()
		settings.LLM = domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"}
		settings.Selection.Model = "llama3.2:1b"

		result, err := Init(&settings)

		require.NoError(t, err)
		defer result.Close()
		assert.Equal(t, "llama3.2", result.LLM.ModelName())
		assert.Equal(t, "llama3.2:1b", result.Selection.ModelName())
	})
}

func TestValidateLLMConfig(t *testing.T) {
	t.Run("nil settings is valid", func(t *testing.T) {
		assert.NoError(t, ValidateLLMConfig(nil))
	})

	t.Run("reachable server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"models":[]}`))
		}))
		defer server.Close()

		err := ValidateLLMConfig(&domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  server.URL,
			Model:    "llama3.2",
		})

		assert.NoError(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		svc, err := CreateAndValidateLLMService(&domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  server.URL,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
		assert.Nil(t, svc)
	})
}
