package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClientSettings holds per-client preferences and usage counters. API keys
// are never serialized raw; the controller exposes only the masked forms.
type ClientSettings struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID string `gorm:"type:uuid;uniqueIndex;not null" json:"-"`

	// AI provider selection for the analysis worker.
	AIProvider            string `gorm:"column:ai_provider;default:anthropic" json:"ai_provider"`
	AIModel               string `gorm:"column:ai_model;default:claude-sonnet-4-20250514" json:"ai_model"`
	TranscriptionProvider string `gorm:"default:openai" json:"transcription_provider"`

	// Suggestions at or above the threshold whose type is listed may be
	// approved without review by the analysis worker.
	AutoApproveThreshold float64        `gorm:"default:1.0" json:"auto_approve_threshold"`
	AutoApproveTypes     datatypes.JSON `json:"auto_approve_types"`

	NotifyNewSuggestions   bool `gorm:"default:true" json:"notify_new_suggestions"`
	NotifyPendingQuestions bool `gorm:"default:true" json:"notify_pending_questions"`
	NotifyActionItemsDue   bool `gorm:"default:true" json:"notify_action_items_due"`

	CustomQuestionCategories datatypes.JSON `json:"custom_question_categories"`
	CustomRuleCategories     datatypes.JSON `json:"custom_rule_categories"`

	APICallsThisMonth      int        `gorm:"column:api_calls_this_month;default:0" json:"api_calls_this_month"`
	APICallsTotal          int        `gorm:"column:api_calls_total;default:0" json:"api_calls_total"`
	TokensUsedThisMonth    int        `gorm:"default:0" json:"tokens_used_this_month"`
	EstimatedCostThisMonth float64    `gorm:"default:0" json:"estimated_cost_this_month"`
	UsageResetDate         *time.Time `gorm:"type:date" json:"usage_reset_date"`

	OpenAIAPIKey    string `gorm:"column:openai_api_key" json:"-"`
	AnthropicAPIKey string `gorm:"column:anthropic_api_key" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *ClientSettings) TableName() string { return "client_settings" }

func (s *ClientSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// MaskOpenAIKey returns the OpenAI key in display form, or "" when unset.
func (s *ClientSettings) MaskOpenAIKey() string {
	return maskKey(s.OpenAIAPIKey, 7)
}

// MaskAnthropicKey returns the Anthropic key in display form, or "" when unset.
func (s *ClientSettings) MaskAnthropicKey() string {
	return maskKey(s.AnthropicAPIKey, 10)
}

func maskKey(key string, head int) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	// Keys shorter than the usual prefix still mask, just with less of it shown.
	if head > len(key)-4 {
		head = len(key) - 4
	}
	return key[:head] + "..." + key[len(key)-4:]
}
