package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is the Google Gemini API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama and OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string

	// ContextWindow is the model's hard context limit in tokens.
	ContextWindow int
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// SelectionSettings configures the best-slide selection call, which may
// target a smaller model than annotation.
type SelectionSettings struct {
	// Model overrides the LLM model for selection. Empty uses LLM.Model.
	Model string

	// ContextWindow is the selection model's context limit in tokens.
	ContextWindow int
}

// BudgetSettings holds token budget configuration shared by all call sites.
type BudgetSettings struct {
	// SafeMargin is reserved on top of the static prompt in every budget.
	SafeMargin int
}

// GoogleSettings configures access to Google Slides.
type GoogleSettings struct {
	// CredentialsFile is a service account or authorised user JSON file.
	CredentialsFile string
}

// IsConfigured returns true if a credentials file is set.
func (g GoogleSettings) IsConfigured() bool {
	return g.CredentialsFile != ""
}

// AssemblySettings configures the presentation assembly run.
type AssemblySettings struct {
	// SettleAttempts bounds how often the destination is polled for a new slide.
	SettleAttempts int

	// SettleInterval is the initial wait between settle polls.
	SettleInterval time.Duration
}

// StoreSettings configures the annotation store.
type StoreSettings struct {
	// DataDir holds the SQLite database. Empty uses ~/.deckforge/data.
	DataDir string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Selection holds best-slide selection settings.
	Selection SelectionSettings

	// Budget holds token budget settings.
	Budget BudgetSettings

	// Google holds presentation service settings.
	Google GoogleSettings

	// Assembly holds assembly pipeline settings.
	Assembly AssemblySettings

	// Store holds annotation store settings.
	Store StoreSettings
}

// Default token and timing values.
const (
	DefaultAnnotationContextWindow = 16384
	DefaultSelectionContextWindow  = 4096
	DefaultSafeMargin              = 500
	DefaultSettleAttempts          = 5
	DefaultSettleInterval          = time.Second
)

// DefaultAppSettings returns settings with sensible defaults.
// The LLM provider is left unconfigured by default.
// Users must explicitly configure it via the settings command.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			ContextWindow: DefaultAnnotationContextWindow,
		},
		Selection: SelectionSettings{
			ContextWindow: DefaultSelectionContextWindow,
		},
		Budget: BudgetSettings{
			SafeMargin: DefaultSafeMargin,
		},
		Assembly: AssemblySettings{
			SettleAttempts: DefaultSettleAttempts,
			SettleInterval: DefaultSettleInterval,
		},
	}
}

// SelectionModel returns the model used for slide selection.
func (s AppSettings) SelectionModel() string {
	if s.Selection.Model != "" {
		return s.Selection.Model
	}
	return s.LLM.Model
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderGemini,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGemini:    "gemini-2.0-flash",
	}
}
