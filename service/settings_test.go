package services

import (
	"testing"
	"time"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/morichal/MeetingPortal/models"
)

func TestGetSettings_ProvisionsDefaultsOnFirstAccess(t *testing.T) {
	svc, db := newTestService(t)
	seedClient(t, db, "Acme", "acme")

	settings, err := svc.GetSettings("acme")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", settings.AIProvider)
	assert.False(t, settings.HasOpenAIKey)
	assert.Empty(t, settings.OpenAIKeyMasked)

	// Second call reuses the same row.
	again, err := svc.GetSettings("acme")
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&model.ClientSettings{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateSettings_MasksKeysInResponse(t *testing.T) {
	svc, db := newTestService(t)
	seedClient(t, db, "Acme", "acme")

	openAIKey := "sk-proj-abcdefghijklmnop"
	anthropicKey := "sk-ant-api03-qrstuvwx"
	provider := "openai"

	settings, err := svc.UpdateSettings("acme", UpdateSettingsInput{
		AIProvider:      &provider,
		OpenAIAPIKey:    &openAIKey,
		AnthropicAPIKey: &anthropicKey,
	})
	require.NoError(t, err)

	assert.Equal(t, "openai", settings.AIProvider)
	assert.True(t, settings.HasOpenAIKey)
	assert.True(t, settings.HasAnthropicKey)
	assert.Equal(t, "sk-proj...mnop", settings.OpenAIKeyMasked)
	assert.Equal(t, "sk-ant-api...uvwx", settings.AnthropicKeyMasked)

	// The raw keys stay in the database but out of the JSON contract.
	var raw model.ClientSettings
	require.NoError(t, db.First(&raw, "id = ?", settings.ID).Error)
	assert.Equal(t, openAIKey, raw.OpenAIAPIKey)
}

func TestUpdateSettings_ShortKeyFullyMasked(t *testing.T) {
	svc, db := newTestService(t)
	seedClient(t, db, "Acme", "acme")

	short := "sk-tiny"
	settings, err := svc.UpdateSettings("acme", UpdateSettingsInput{OpenAIAPIKey: &short})
	require.NoError(t, err)
	assert.Equal(t, "****", settings.OpenAIKeyMasked)
}

func TestUpdateSettings_PartialUpdateLeavesOtherFields(t *testing.T) {
	svc, db := newTestService(t)
	seedClient(t, db, "Acme", "acme")

	threshold := 0.9
	_, err := svc.UpdateSettings("acme", UpdateSettingsInput{
		AutoApproveThreshold: &threshold,
		AutoApproveTypes:     []string{"answer"},
	})
	require.NoError(t, err)

	notify := false
	settings, err := svc.UpdateSettings("acme", UpdateSettingsInput{NotifyNewSuggestions: &notify})
	require.NoError(t, err)

	assert.Equal(t, 0.9, settings.AutoApproveThreshold)
	assert.False(t, settings.NotifyNewSuggestions)
	assert.JSONEq(t, `["answer"]`, string(settings.AutoApproveTypes))
}

func TestResetUsage(t *testing.T) {
	patches := gomonkey.ApplyFunc(time.Now, func() time.Time { return FixedTime })
	defer patches.Reset()

	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")

	settings := model.ClientSettings{
		ClientID:               client.ID,
		APICallsThisMonth:      42,
		APICallsTotal:          420,
		TokensUsedThisMonth:    123456,
		EstimatedCostThisMonth: 9.87,
	}
	require.NoError(t, db.Create(&settings).Error)

	view, err := svc.ResetUsage("acme")
	require.NoError(t, err)
	assert.Zero(t, view.APICallsThisMonth)
	assert.Zero(t, view.TokensUsedThisMonth)
	assert.Zero(t, view.EstimatedCostThisMonth)
	assert.Equal(t, 420, view.APICallsTotal) // lifetime total survives
	require.NotNil(t, view.UsageResetDate)
	assert.Equal(t, FixedTime, *view.UsageResetDate)
}

func TestMaskKeyBoundaries(t *testing.T) {
	assert.Equal(t, "", (&model.ClientSettings{}).MaskOpenAIKey())

	s := &model.ClientSettings{OpenAIAPIKey: "12345678"}
	assert.Equal(t, "****", s.MaskOpenAIKey())

	s.OpenAIAPIKey = "123456789"
	assert.Equal(t, "1234567...6789", s.MaskOpenAIKey())

	// 9 chars is longer than the "****" cutoff but shorter than the usual
	// anthropic prefix; the shown prefix shrinks instead of overrunning.
	s.AnthropicAPIKey = "123456789"
	assert.Equal(t, "12345...6789", s.MaskAnthropicKey())

	s.AnthropicAPIKey = "123456789012"
	assert.Equal(t, "12345678...9012", s.MaskAnthropicKey())

	s.AnthropicAPIKey = "sk-ant-api03-qrstuvwx"
	assert.Equal(t, "sk-ant-api...uvwx", s.MaskAnthropicKey())
}
