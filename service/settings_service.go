package services

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "github.com/morichal/MeetingPortal/models"
)

type UpdateSettingsInput struct {
	AIProvider            *string  `json:"ai_provider"`
	AIModel               *string  `json:"ai_model"`
	TranscriptionProvider *string  `json:"transcription_provider"`
	AutoApproveThreshold  *float64 `json:"auto_approve_threshold"`
	AutoApproveTypes      []string `json:"auto_approve_types"`

	NotifyNewSuggestions   *bool `json:"notify_new_suggestions"`
	NotifyPendingQuestions *bool `json:"notify_pending_questions"`
	NotifyActionItemsDue   *bool `json:"notify_action_items_due"`

	CustomQuestionCategories []string `json:"custom_question_categories"`
	CustomRuleCategories     []string `json:"custom_rule_categories"`

	OpenAIAPIKey    *string `json:"openai_api_key"`
	AnthropicAPIKey *string `json:"anthropic_api_key"`
}

// SettingsView is what the API returns: settings with keys masked.
type SettingsView struct {
	model.ClientSettings
	OpenAIKeyMasked    string `json:"openai_api_key_masked"`
	AnthropicKeyMasked string `json:"anthropic_api_key_masked"`
	HasOpenAIKey       bool   `json:"has_openai_key"`
	HasAnthropicKey    bool   `json:"has_anthropic_key"`
}

func settingsView(settings model.ClientSettings) *SettingsView {
	return &SettingsView{
		ClientSettings:     settings,
		OpenAIKeyMasked:    settings.MaskOpenAIKey(),
		AnthropicKeyMasked: settings.MaskAnthropicKey(),
		HasOpenAIKey:       settings.OpenAIAPIKey != "",
		HasAnthropicKey:    settings.AnthropicAPIKey != "",
	}
}

// settingsForClient returns the client's settings row, creating it with
// defaults on first access.
func (s *PortalService) settingsForClient(clientID string) (model.ClientSettings, error) {
	var settings model.ClientSettings
	err := s.db.Where("client_id = ?", clientID).First(&settings).Error
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return settings, err
	}

	settings = model.ClientSettings{
		ClientID:               clientID,
		AIProvider:             "anthropic",
		AIModel:                "claude-sonnet-4-20250514",
		TranscriptionProvider:  "openai",
		AutoApproveThreshold:   1.0,
		NotifyNewSuggestions:   true,
		NotifyPendingQuestions: true,
		NotifyActionItemsDue:   true,
	}
	if err := s.db.Create(&settings).Error; err != nil {
		log.Printf("[settingsForClient] Error creating settings for client %s: %v", clientID, err)
		return settings, err
	}
	log.Printf("[settingsForClient] Created default settings for client %s", clientID)
	return settings, nil
}

func (s *PortalService) GetSettings(clientSlug string) (*SettingsView, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsForClient(client.ID)
	if err != nil {
		return nil, err
	}
	return settingsView(settings), nil
}

func (s *PortalService) UpdateSettings(clientSlug string, input UpdateSettingsInput) (*SettingsView, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsForClient(client.ID)
	if err != nil {
		return nil, err
	}

	if input.AIProvider != nil {
		settings.AIProvider = *input.AIProvider
	}
	if input.AIModel != nil {
		settings.AIModel = *input.AIModel
	}
	if input.TranscriptionProvider != nil {
		settings.TranscriptionProvider = *input.TranscriptionProvider
	}
	if input.AutoApproveThreshold != nil {
		settings.AutoApproveThreshold = *input.AutoApproveThreshold
	}
	if input.AutoApproveTypes != nil {
		raw, err := jsonList(input.AutoApproveTypes)
		if err != nil {
			return nil, err
		}
		settings.AutoApproveTypes = raw
	}
	if input.NotifyNewSuggestions != nil {
		settings.NotifyNewSuggestions = *input.NotifyNewSuggestions
	}
	if input.NotifyPendingQuestions != nil {
		settings.NotifyPendingQuestions = *input.NotifyPendingQuestions
	}
	if input.NotifyActionItemsDue != nil {
		settings.NotifyActionItemsDue = *input.NotifyActionItemsDue
	}
	if input.CustomQuestionCategories != nil {
		raw, err := jsonList(input.CustomQuestionCategories)
		if err != nil {
			return nil, err
		}
		settings.CustomQuestionCategories = raw
	}
	if input.CustomRuleCategories != nil {
		raw, err := jsonList(input.CustomRuleCategories)
		if err != nil {
			return nil, err
		}
		settings.CustomRuleCategories = raw
	}
	if input.OpenAIAPIKey != nil {
		settings.OpenAIAPIKey = *input.OpenAIAPIKey
	}
	if input.AnthropicAPIKey != nil {
		settings.AnthropicAPIKey = *input.AnthropicAPIKey
	}

	if err := s.db.Save(&settings).Error; err != nil {
		log.Printf("[UpdateSettings] Error saving settings for %s: %v", clientSlug, err)
		return nil, err
	}
	return settingsView(settings), nil
}

// ResetUsage zeroes the monthly usage counters and stamps the reset date.
func (s *PortalService) ResetUsage(clientSlug string) (*SettingsView, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsForClient(client.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	settings.APICallsThisMonth = 0
	settings.TokensUsedThisMonth = 0
	settings.EstimatedCostThisMonth = 0
	settings.UsageResetDate = &now

	if err := s.db.Save(&settings).Error; err != nil {
		log.Printf("[ResetUsage] Error resetting usage for %s: %v", clientSlug, err)
		return nil, err
	}
	log.Printf("[ResetUsage] Usage counters reset for %s", clientSlug)
	return settingsView(settings), nil
}

// ProviderStatus reports which AI providers have credentials available,
// either per-client or via server environment.
type ProviderStatus struct {
	Name         string `json:"name"`
	ClientKeySet bool   `json:"client_key_set"`
	ServerKeySet bool   `json:"server_key_set"`
}

func (s *PortalService) ListProviders(clientSlug string) ([]ProviderStatus, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}
	settings, err := s.settingsForClient(client.ID)
	if err != nil {
		return nil, err
	}

	return []ProviderStatus{
		{
			Name:         "openai",
			ClientKeySet: settings.OpenAIAPIKey != "",
			ServerKeySet: os.Getenv("OPENAI_API_KEY") != "",
		},
		{
			Name:         "anthropic",
			ClientKeySet: settings.AnthropicAPIKey != "",
			ServerKeySet: os.Getenv("ANTHROPIC_API_KEY") != "",
		},
	}, nil
}

func jsonList(values []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
