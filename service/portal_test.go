package services

import (
	"testing"
	"time"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/morichal/MeetingPortal/models"
)

func TestClientLifecycle(t *testing.T) {
	svc, db := newTestService(t)

	created, err := svc.CreateClient(CreateClientInput{Name: "Acme", Slug: "acme"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	clients, err := svc.ListClients()
	require.NoError(t, err)
	assert.Len(t, clients, 1)

	renamed, err := svc.UpdateClient("acme", "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", renamed.Name)

	require.NoError(t, svc.DeleteClient("acme"))
	assert.ErrorIs(t, svc.DeleteClient("acme"), ErrNotFound)
	_ = db
}

func TestCreateMeeting_AssignsCodeAndAttendees(t *testing.T) {
	svc, db := newTestService(t)
	seedClient(t, db, "Acme", "acme")

	meeting, err := svc.CreateMeeting("acme", CreateMeetingInput{
		Date:      "2025-03-05",
		Title:     "Kickoff",
		Attendees: []string{"dana", "lee"},
		Agenda:    "scope",
	})
	require.NoError(t, err)
	assert.Equal(t, "MTG-100", meeting.MeetingCode)
	assert.JSONEq(t, `["dana","lee"]`, string(meeting.Attendees))

	_, err = svc.CreateMeeting("acme", CreateMeetingInput{Date: "not-a-date", Title: "Bad"})
	assert.Error(t, err)

	_, err = svc.CreateMeeting("nobody", CreateMeetingInput{Date: "2025-03-05", Title: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnswerQuestion_ManualAttribution(t *testing.T) {
	patches := gomonkey.ApplyFunc(time.Now, func() time.Time { return FixedTime })
	defer patches.Reset()

	svc, db := newTestService(t)
	seedClient(t, db, "Acme", "acme")

	question, err := svc.CreateQuestion("acme", CreateQuestionInput{Question: "Billing cadence?"})
	require.NoError(t, err)
	assert.Equal(t, "Q-100", question.QuestionCode)
	assert.Equal(t, "pending", question.Status)

	answered, err := svc.AnswerQuestion("acme", question.ID, AnswerQuestionInput{
		Answer:     "Monthly, on the 1st.",
		AnsweredBy: "dana",
	})
	require.NoError(t, err)
	assert.Equal(t, "answered", answered.Status)
	assert.Equal(t, "dana", answered.AnsweredBy)
	require.NotNil(t, answered.AnsweredDate)
	assert.Equal(t, FixedTime, *answered.AnsweredDate)
}

func TestResolveBlocker(t *testing.T) {
	patches := gomonkey.ApplyFunc(time.Now, func() time.Time { return FixedTime })
	defer patches.Reset()

	svc, db := newTestService(t)
	seedClient(t, db, "Acme", "acme")

	blocker, err := svc.CreateBlocker("acme", CreateBlockerInput{Title: "Staging is down"})
	require.NoError(t, err)
	assert.Equal(t, "BLK-001", blocker.BlockerCode)
	assert.Equal(t, "open", blocker.Status)
	assert.Equal(t, "medium", blocker.Severity)

	resolved, err := svc.ResolveBlocker("acme", blocker.ID, "Rebuilt the environment")
	require.NoError(t, err)
	assert.Equal(t, "resolved", resolved.Status)
	assert.Equal(t, "Rebuilt the environment", resolved.Resolution)
	require.NotNil(t, resolved.ResolvedAt)
}

func TestSprintProgress(t *testing.T) {
	svc, db := newTestService(t)
	seedClient(t, db, "Acme", "acme")

	sprint, err := svc.CreateSprint("acme", CreateSprintInput{
		Name:      "March delivery",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-14",
	})
	require.NoError(t, err)
	assert.Equal(t, "SPR-001", sprint.SprintCode)

	first, err := svc.CreateSprintItem("acme", sprint.ID, CreateSprintItemInput{Name: "API"})
	require.NoError(t, err)
	assert.Equal(t, "SPI-001", first.ItemCode)
	_, err = svc.CreateSprintItem("acme", sprint.ID, CreateSprintItemInput{Name: "Frontend"})
	require.NoError(t, err)

	done := "completed"
	completed, err := svc.UpdateSprintItem("acme", first.ID, UpdateSprintItemInput{Status: &done})
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)

	summary, err := svc.GetSprint("acme", sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalItems)
	assert.Equal(t, 1, summary.CompletedItems)
	assert.Equal(t, 50, summary.Progress)
}

func TestCompleteActionItem(t *testing.T) {
	patches := gomonkey.ApplyFunc(time.Now, func() time.Time { return FixedTime })
	defer patches.Reset()

	svc, db := newTestService(t)
	seedClient(t, db, "Acme", "acme")

	item, err := svc.CreateActionItem("acme", CreateActionItemInput{Title: "Ship the build"})
	require.NoError(t, err)
	assert.Equal(t, "ACT-100", item.ActionCode)

	completed, err := svc.CompleteActionItem("acme", item.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
	require.NotNil(t, completed.CompletedDate)
}

func TestClientAllData_ScopedToClient(t *testing.T) {
	svc, db := newTestService(t)
	seedClient(t, db, "Acme", "acme")
	seedClient(t, db, "Globex", "globex")

	_, err := svc.CreateMeeting("acme", CreateMeetingInput{Date: "2025-03-05", Title: "Acme kickoff"})
	require.NoError(t, err)
	_, err = svc.CreateQuestion("acme", CreateQuestionInput{Question: "Only Acme's"})
	require.NoError(t, err)
	_, err = svc.CreateMeeting("globex", CreateMeetingInput{Date: "2025-03-06", Title: "Globex sync"})
	require.NoError(t, err)

	data, err := svc.ClientAllData("acme")
	require.NoError(t, err)
	assert.Equal(t, "2.1", data.Version)
	assert.Len(t, data.Meetings, 1)
	assert.Len(t, data.Questions, 1)
	assert.Empty(t, data.ActionItems)

	var meetingCount int64
	require.NoError(t, db.Model(&model.Meeting{}).Count(&meetingCount).Error)
	assert.Equal(t, int64(2), meetingCount)
}
