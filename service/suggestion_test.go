package services

import (
	"testing"
	"time"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "github.com/morichal/MeetingPortal/models"
)

func seedSuggestion(t *testing.T, db *gorm.DB, clientID, meetingID, suggestionType string, target *string, content string) model.AISuggestion {
	t.Helper()
	suggestion := model.AISuggestion{
		ClientID:         clientID,
		MeetingID:        meetingID,
		SuggestionType:   suggestionType,
		TargetQuestionID: target,
		SuggestedContent: datatypes.JSON([]byte(content)),
	}
	require.NoError(t, db.Create(&suggestion).Error)
	return suggestion
}

func TestReviewSuggestion_ApproveAnswerUpdatesQuestion(t *testing.T) {
	patches := gomonkey.ApplyFunc(time.Now, func() time.Time { return FixedTime })
	defer patches.Reset()

	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")
	meeting := seedMeeting(t, db, client.ID, "MTG-100", "Kickoff")

	question := model.Question{
		ClientID:     client.ID,
		QuestionCode: "Q-100",
		Question:     "Which currency do invoices use?",
		Status:       "pending",
	}
	require.NoError(t, db.Create(&question).Error)

	suggestion := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionAnswer,
		&question.ID, `{"answer": "All invoices are in USD."}`)

	reviewed, err := svc.ReviewSuggestion("acme", suggestion.ID, ActionApprove, "marco")
	require.NoError(t, err)
	assert.Equal(t, model.SuggestionApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, FixedTime, *reviewed.ReviewedAt)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, "marco", *reviewed.ReviewedBy)

	var got model.Question
	require.NoError(t, db.First(&got, "id = ?", question.ID).Error)
	assert.Equal(t, "All invoices are in USD.", got.Answer)
	assert.Equal(t, AttributionAI, got.AnsweredBy)
	assert.Equal(t, "answered", got.Status)
	require.NotNil(t, got.AnsweredDate)
}

func TestReviewSuggestion_ApproveActionItemCreatesRecord(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")
	meeting := seedMeeting(t, db, client.ID, "MTG-100", "Kickoff")

	suggestion := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionActionItem, nil,
		`{"title": "Send the contract", "description": "Draft and send", "assignee": "dana"}`)

	_, err := svc.ReviewSuggestion("acme", suggestion.ID, ActionApprove, "marco")
	require.NoError(t, err)

	var item model.ActionItem
	require.NoError(t, db.First(&item, "client_id = ?", client.ID).Error)
	assert.Equal(t, "ACT-100", item.ActionCode)
	assert.Equal(t, "Send the contract", item.Title)
	assert.Equal(t, "dana", item.AssignedTo)
	assert.Equal(t, "medium", item.Priority) // omitted priority defaults
	require.NotNil(t, item.FromMeetingID)
	assert.Equal(t, meeting.ID, *item.FromMeetingID)
}

func TestReviewSuggestion_ApproveBusinessRuleAndDecision(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")
	meeting := seedMeeting(t, db, client.ID, "MTG-100", "Kickoff")

	ruleSuggestion := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionBusinessRule, nil,
		`{"title": "Net 30 payment terms", "category": "billing"}`)
	decisionSuggestion := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionDecision, nil,
		`{"title": "Use Postgres", "description": "Agreed in kickoff"}`)

	_, err := svc.ReviewSuggestion("acme", ruleSuggestion.ID, ActionApprove, "marco")
	require.NoError(t, err)
	_, err = svc.ReviewSuggestion("acme", decisionSuggestion.ID, ActionApprove, "marco")
	require.NoError(t, err)

	var rule model.BusinessRule
	require.NoError(t, db.First(&rule, "client_id = ?", client.ID).Error)
	assert.Equal(t, "BR-100", rule.RuleCode)
	assert.Equal(t, AttributionAI, rule.Source)
	require.NotNil(t, rule.DiscoveredInMeetingID)
	assert.Equal(t, meeting.ID, *rule.DiscoveredInMeetingID)

	var decision model.Decision
	require.NoError(t, db.First(&decision, "client_id = ?", client.ID).Error)
	assert.Equal(t, "DEC-100", decision.DecisionCode)
	assert.Equal(t, AttributionAI, decision.MadeBy)
}

func TestReviewSuggestion_RejectTouchesNothing(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")
	meeting := seedMeeting(t, db, client.ID, "MTG-100", "Kickoff")

	suggestion := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionActionItem, nil,
		`{"title": "Should never exist"}`)

	reviewed, err := svc.ReviewSuggestion("acme", suggestion.ID, ActionReject, "marco")
	require.NoError(t, err)
	assert.Equal(t, model.SuggestionRejected, reviewed.Status)

	var count int64
	require.NoError(t, db.Model(&model.ActionItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReviewSuggestion_ReReviewIsConflict(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")
	meeting := seedMeeting(t, db, client.ID, "MTG-100", "Kickoff")

	suggestion := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionActionItem, nil,
		`{"title": "Do it once"}`)

	_, err := svc.ReviewSuggestion("acme", suggestion.ID, ActionApprove, "marco")
	require.NoError(t, err)

	_, err = svc.ReviewSuggestion("acme", suggestion.ID, ActionApprove, "marco")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// No duplicate action item from the second approval attempt.
	var count int64
	require.NoError(t, db.Model(&model.ActionItem{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReviewSuggestion_AnswerWithoutTargetStaysPending(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")
	meeting := seedMeeting(t, db, client.ID, "MTG-100", "Kickoff")

	suggestion := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionAnswer, nil,
		`{"answer": "orphaned"}`)

	_, err := svc.ReviewSuggestion("acme", suggestion.ID, ActionApprove, "marco")
	assert.ErrorIs(t, err, ErrMissingTarget)

	// The failed apply rolled the status change back.
	var got model.AISuggestion
	require.NoError(t, db.First(&got, "id = ?", suggestion.ID).Error)
	assert.Equal(t, model.SuggestionPending, got.Status)
	assert.Nil(t, got.ReviewedAt)
}

func TestReviewSuggestion_ApplyFailureRollsBackReview(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")
	meeting := seedMeeting(t, db, client.ID, "MTG-100", "Kickoff")

	// Malformed payload makes the apply step fail after the status update.
	suggestion := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionBusinessRule, nil,
		`not json`)

	_, err := svc.ReviewSuggestion("acme", suggestion.ID, ActionApprove, "marco")
	require.Error(t, err)

	var got model.AISuggestion
	require.NoError(t, db.First(&got, "id = ?", suggestion.ID).Error)
	assert.Equal(t, model.SuggestionPending, got.Status)

	var count int64
	require.NoError(t, db.Model(&model.BusinessRule{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReviewSuggestion_UnknownActionAndMissingSuggestion(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")
	_ = client

	_, err := svc.ReviewSuggestion("acme", "some-id", "archive", "marco")
	assert.Error(t, err)

	_, err = svc.ReviewSuggestion("acme", "00000000-0000-0000-0000-000000000000", ActionApprove, "marco")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewSuggestion_WrongClientIsNotFound(t *testing.T) {
	svc, db := newTestService(t)
	acme := seedClient(t, db, "Acme", "acme")
	seedClient(t, db, "Globex", "globex")
	meeting := seedMeeting(t, db, acme.ID, "MTG-100", "Kickoff")

	suggestion := seedSuggestion(t, db, acme.ID, meeting.ID, model.SuggestionActionItem, nil,
		`{"title": "Acme only"}`)

	_, err := svc.ReviewSuggestion("globex", suggestion.ID, ActionApprove, "marco")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBatchApprove_ContinuesPastFailures(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")
	meeting := seedMeeting(t, db, client.ID, "MTG-100", "Kickoff")

	good := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionActionItem, nil,
		`{"title": "First task"}`)
	broken := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionAnswer, nil,
		`{"answer": "no target"}`)
	alsoGood := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionActionItem, nil,
		`{"title": "Second task"}`)

	approved, results, err := svc.BatchApprove("acme",
		[]string{good.ID, broken.ID, alsoGood.ID}, "marco")
	require.NoError(t, err)
	assert.Equal(t, 2, approved)
	require.Len(t, results, 3)

	outcomes := map[string]string{}
	for _, r := range results {
		outcomes[r.ID] = r.Status
	}
	assert.Equal(t, "approved", outcomes[good.ID])
	assert.Equal(t, "failed", outcomes[broken.ID])
	assert.Equal(t, "approved", outcomes[alsoGood.ID])

	// Batch approvals mint consecutive codes.
	var items []model.ActionItem
	require.NoError(t, db.Order("action_code").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, "ACT-100", items[0].ActionCode)
	assert.Equal(t, "ACT-101", items[1].ActionCode)
}

func TestBatchApprove_DropsForeignAndReviewedIDs(t *testing.T) {
	svc, db := newTestService(t)
	acme := seedClient(t, db, "Acme", "acme")
	globex := seedClient(t, db, "Globex", "globex")
	acmeMeeting := seedMeeting(t, db, acme.ID, "MTG-100", "Kickoff")
	globexMeeting := seedMeeting(t, db, globex.ID, "MTG-100", "Other kickoff")

	mine := seedSuggestion(t, db, acme.ID, acmeMeeting.ID, model.SuggestionActionItem, nil,
		`{"title": "Mine"}`)
	theirs := seedSuggestion(t, db, globex.ID, globexMeeting.ID, model.SuggestionActionItem, nil,
		`{"title": "Theirs"}`)

	rejected := seedSuggestion(t, db, acme.ID, acmeMeeting.ID, model.SuggestionActionItem, nil,
		`{"title": "Already rejected"}`)
	_, err := svc.ReviewSuggestion("acme", rejected.ID, ActionReject, "marco")
	require.NoError(t, err)

	approved, results, err := svc.BatchApprove("acme",
		[]string{mine.ID, theirs.ID, rejected.ID}, "marco")
	require.NoError(t, err)
	assert.Equal(t, 1, approved)
	require.Len(t, results, 1)
	assert.Equal(t, mine.ID, results[0].ID)

	// The cross-tenant suggestion is untouched.
	var got model.AISuggestion
	require.NoError(t, db.First(&got, "id = ?", theirs.ID).Error)
	assert.Equal(t, model.SuggestionPending, got.Status)
}

func TestListSuggestions_Filters(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")
	meeting := seedMeeting(t, db, client.ID, "MTG-100", "Kickoff")

	a := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionActionItem, nil, `{"title": "a"}`)
	seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionDecision, nil, `{"title": "b"}`)

	_, err := svc.ReviewSuggestion("acme", a.ID, ActionApprove, "marco")
	require.NoError(t, err)

	all, err := svc.ListSuggestions("acme", "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.ListSuggestions("acme", model.SuggestionPending, "")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, model.SuggestionDecision, pending[0].SuggestionType)

	actions, err := svc.ListSuggestions("acme", "", model.SuggestionActionItem)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, a.ID, actions[0].ID)
}

func TestDeleteSuggestion(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")
	meeting := seedMeeting(t, db, client.ID, "MTG-100", "Kickoff")

	suggestion := seedSuggestion(t, db, client.ID, meeting.ID, model.SuggestionDecision, nil, `{"title": "x"}`)

	require.NoError(t, svc.DeleteSuggestion("acme", suggestion.ID))
	assert.ErrorIs(t, svc.DeleteSuggestion("acme", suggestion.ID), ErrNotFound)
}
