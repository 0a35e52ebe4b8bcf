package services

import (
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/deckforge/internal/core/domain"
	"github.com/custodia-labs/deckforge/internal/core/ports/driven"
	"github.com/custodia-labs/deckforge/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider        = "llm.provider"
	keyLLMModel           = "llm.model"
	keyLLMBaseURL         = "llm.base_url"
	keyLLMAPIKey          = "llm.api_key"
	keyLLMContextWindow   = "llm.context_window"
	keySelectionModel     = "selection.model"
	keySelectionWindow    = "selection.context_window"
	keyBudgetSafeMargin   = "budget.safe_margin"
	keyGoogleCredentials  = "google.credentials_file"
	keySettleAttempts     = "assembly.settle_attempts"
	keySettleInterval     = "assembly.settle_interval"
	keyStoreDataDir       = "store.data_dir"
	envLLMAPIKey          = "DECKFORGE_LLM_API_KEY"
	envGoogleCredentials  = "DECKFORGE_GOOGLE_CREDENTIALS"
	defaultOllamaEndpoint = "http://localhost:11434"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
// DECKFORGE_LLM_API_KEY and DECKFORGE_GOOGLE_CREDENTIALS override the stored values.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:      s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:         s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:       s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:        s.configStore.GetString(keyLLMAPIKey),
			ContextWindow: s.getInt(keyLLMContextWindow, defaults.LLM.ContextWindow),
		},
		Selection: domain.SelectionSettings{
			Model:         s.configStore.GetString(keySelectionModel),
			ContextWindow: s.getInt(keySelectionWindow, defaults.Selection.ContextWindow),
		},
		Budget: domain.BudgetSettings{
			SafeMargin: s.getInt(keyBudgetSafeMargin, defaults.Budget.SafeMargin),
		},
		Google: domain.GoogleSettings{
			CredentialsFile: s.configStore.GetString(keyGoogleCredentials),
		},
		Assembly: domain.AssemblySettings{
			SettleAttempts: s.getInt(keySettleAttempts, defaults.Assembly.SettleAttempts),
			SettleInterval: defaults.Assembly.SettleInterval,
		},
		Store: domain.StoreSettings{
			DataDir: s.configStore.GetString(keyStoreDataDir),
		},
	}
	if d := s.configStore.GetDuration(keySettleInterval); d > 0 {
		settings.Assembly.SettleInterval = d
	}

	if key := s.getenv(envLLMAPIKey); key != "" {
		settings.LLM.APIKey = key
	}
	if path := s.getenv(envGoogleCredentials); path != "" {
		settings.Google.CredentialsFile = path
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" && settings.LLM.APIKey != s.getenv(envLLMAPIKey) {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyLLMContextWindow, settings.LLM.ContextWindow); err != nil {
		return fmt.Errorf("save llm context_window: %w", err)
	}

	// Save selection and budget settings
	if err := s.configStore.Set(keySelectionModel, settings.Selection.Model); err != nil {
		return fmt.Errorf("save selection model: %w", err)
	}
	if err := s.configStore.Set(keySelectionWindow, settings.Selection.ContextWindow); err != nil {
		return fmt.Errorf("save selection context_window: %w", err)
	}
	if err := s.configStore.Set(keyBudgetSafeMargin, settings.Budget.SafeMargin); err != nil {
		return fmt.Errorf("save budget safe_margin: %w", err)
	}

	// Save presentation service settings
	if settings.Google.CredentialsFile != s.getenv(envGoogleCredentials) {
		if err := s.configStore.Set(keyGoogleCredentials, settings.Google.CredentialsFile); err != nil {
			return fmt.Errorf("save google credentials_file: %w", err)
		}
	}

	// Save assembly settings
	if err := s.configStore.Set(keySettleAttempts, settings.Assembly.SettleAttempts); err != nil {
		return fmt.Errorf("save settle attempts: %w", err)
	}
	if err := s.configStore.Set(keySettleInterval, settings.Assembly.SettleInterval.String()); err != nil {
		return fmt.Errorf("save settle interval: %w", err)
	}

	if settings.Store.DataDir != "" {
		if err := s.configStore.Set(keyStoreDataDir, settings.Store.DataDir); err != nil {
			return fmt.Errorf("save store data_dir: %w", err)
		}
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		defaults := domain.DefaultLLMModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.LLM.Model = defaultModel
		}
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaEndpoint
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetGoogleCredentials sets the credentials file for the presentation service.
func (s *SettingsService) SetGoogleCredentials(path string) error {
	if path == "" {
		return errors.New("credentials file path is required")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("credentials file: %w", err)
	}
	return s.configStore.Set(keyGoogleCredentials, path)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var errs []error
	if !settings.LLM.IsConfigured() {
		errs = append(errs, errors.New("LLM provider is not configured"))
	}
	if !settings.Google.IsConfigured() {
		errs = append(errs, errors.New("google credentials file is not configured"))
	}
	if settings.Budget.SafeMargin < 0 {
		errs = append(errs, fmt.Errorf("budget safe margin must not be negative: %d", settings.Budget.SafeMargin))
	}
	if settings.LLM.ContextWindow <= settings.Budget.SafeMargin {
		errs = append(errs, fmt.Errorf("llm context window %d leaves no room after safe margin %d",
			settings.LLM.ContextWindow, settings.Budget.SafeMargin))
	}
	if settings.Selection.ContextWindow <= settings.Budget.SafeMargin {
		errs = append(errs, fmt.Errorf("selection context window %d leaves no room after safe margin %d",
			settings.Selection.ContextWindow, settings.Budget.SafeMargin))
	}
	return errors.Join(errs...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
