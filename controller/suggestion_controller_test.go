package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "github.com/morichal/MeetingPortal/models"
	service "github.com/morichal/MeetingPortal/service"
)

type fixture struct {
	router  *gin.Engine
	db      *gorm.DB
	client  model.Client
	meeting model.Meeting
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Client{},
		&model.Meeting{},
		&model.Question{},
		&model.BusinessRule{},
		&model.Decision{},
		&model.ActionItem{},
		&model.AISuggestion{},
		&model.CodeCounter{},
	))

	client := model.Client{Name: "Acme", Slug: "acme"}
	require.NoError(t, db.Create(&client).Error)
	meeting := model.Meeting{ClientID: client.ID, MeetingCode: "MTG-100", Title: "Kickoff", Date: client.CreatedAt}
	require.NoError(t, db.Create(&meeting).Error)

	svc, err := service.NewPortalService(db)
	require.NoError(t, err)
	portal := NewPortalController(svc)

	router := gin.New()
	api := router.Group("/api/:client")
	api.GET("/suggestions", portal.ListSuggestions)
	api.POST("/suggestions/:id/review", portal.ReviewSuggestion)
	api.POST("/suggestions/batch-approve", portal.BatchApprove)
	api.DELETE("/suggestions/:id", portal.DeleteSuggestion)

	return &fixture{router: router, db: db, client: client, meeting: meeting}
}

func (f *fixture) seedSuggestion(t *testing.T, suggestionType string, target *string, content string) model.AISuggestion {
	t.Helper()
	suggestion := model.AISuggestion{
		ClientID:         f.client.ID,
		MeetingID:        f.meeting.ID,
		SuggestionType:   suggestionType,
		TargetQuestionID: target,
		SuggestedContent: datatypes.JSON([]byte(content)),
	}
	require.NoError(t, f.db.Create(&suggestion).Error)
	return suggestion
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestReviewSuggestionEndpoint_Approve(t *testing.T) {
	f := newFixture(t)
	suggestion := f.seedSuggestion(t, model.SuggestionActionItem, nil,
		`{"title": "Ship it", "assignee": "dana"}`)

	w := f.do(t, http.MethodPost, "/api/acme/suggestions/"+suggestion.ID+"/review",
		gin.H{"action": "approve", "reviewed_by": "marco"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestion model.AISuggestion `json:"suggestion"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.SuggestionApproved, resp.Suggestion.Status)

	var item model.ActionItem
	require.NoError(t, f.db.First(&item, "client_id = ?", f.client.ID).Error)
	assert.Equal(t, "ACT-100", item.ActionCode)
}

func TestReviewSuggestionEndpoint_StatusMapping(t *testing.T) {
	f := newFixture(t)
	suggestion := f.seedSuggestion(t, model.SuggestionActionItem, nil, `{"title": "Once"}`)
	orphan := f.seedSuggestion(t, model.SuggestionAnswer, nil, `{"answer": "no target"}`)

	// Invalid action fails binding.
	w := f.do(t, http.MethodPost, "/api/acme/suggestions/"+suggestion.ID+"/review",
		gin.H{"action": "archive"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown suggestion is 404.
	w = f.do(t, http.MethodPost, "/api/acme/suggestions/00000000-0000-0000-0000-000000000000/review",
		gin.H{"action": "approve"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unknown client is 404.
	w = f.do(t, http.MethodPost, "/api/nobody/suggestions/"+suggestion.ID+"/review",
		gin.H{"action": "approve"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Second review of the same suggestion is 409.
	w = f.do(t, http.MethodPost, "/api/acme/suggestions/"+suggestion.ID+"/review",
		gin.H{"action": "approve"})
	require.Equal(t, http.StatusOK, w.Code)
	w = f.do(t, http.MethodPost, "/api/acme/suggestions/"+suggestion.ID+"/review",
		gin.H{"action": "reject"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Answer suggestion without a target question is 400.
	w = f.do(t, http.MethodPost, "/api/acme/suggestions/"+orphan.ID+"/review",
		gin.H{"action": "approve"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchApproveEndpoint(t *testing.T) {
	f := newFixture(t)
	first := f.seedSuggestion(t, model.SuggestionActionItem, nil, `{"title": "One"}`)
	second := f.seedSuggestion(t, model.SuggestionAnswer, nil, `{"answer": "broken"}`)

	w := f.do(t, http.MethodPost, "/api/acme/suggestions/batch-approve",
		gin.H{"ids": []string{first.ID, second.ID}, "reviewed_by": "marco"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ApprovedCount int                   `json:"approved_count"`
		Results       []service.BatchResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.ApprovedCount)
	assert.Len(t, resp.Results, 2)

	// Empty id list fails binding.
	w = f.do(t, http.MethodPost, "/api/acme/suggestions/batch-approve",
		gin.H{"ids": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAndDeleteSuggestionEndpoints(t *testing.T) {
	f := newFixture(t)
	suggestion := f.seedSuggestion(t, model.SuggestionDecision, nil, `{"title": "Keep"}`)

	w := f.do(t, http.MethodGet, "/api/acme/suggestions?type=decision", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Equal(t, 1, listResp.Total)

	w = f.do(t, http.MethodDelete, "/api/acme/suggestions/"+suggestion.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodDelete, "/api/acme/suggestions/"+suggestion.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
