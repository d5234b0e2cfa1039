package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "github.com/morichal/MeetingPortal/models"
)

// AttributionAI marks records materialized from an approved AI suggestion.
const AttributionAI = "AI Suggestion"

// Review actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Typed payloads per suggestion type. The analysis worker writes JSONB; zero
// values stand in for fields it omitted, which keeps the original
// missing-field-defaults-to-empty behavior but as an explicit contract.
type answerPayload struct {
	Answer string `json:"answer"`
}

type businessRulePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type decisionPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type actionItemPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Priority    string `json:"priority"`
}

// ListSuggestions returns a client's suggestions newest first, optionally
// filtered by review status and suggestion type.
func (s *PortalService) ListSuggestions(clientSlug, status, suggestionType string) ([]model.AISuggestion, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("client_id = ?", client.ID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if suggestionType != "" {
		query = query.Where("suggestion_type = ?", suggestionType)
	}

	var suggestions []model.AISuggestion
	if err := query.Order("created_at DESC").Find(&suggestions).Error; err != nil {
		log.Printf("[ListSuggestions] Error fetching suggestions for %s: %v", clientSlug, err)
		return nil, err
	}
	return suggestions, nil
}

// MeetingSuggestions returns all suggestions produced from one meeting.
func (s *PortalService) MeetingSuggestions(clientSlug, meetingID string) ([]model.AISuggestion, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var suggestions []model.AISuggestion
	if err := s.db.Where("client_id = ? AND meeting_id = ?", client.ID, meetingID).
		Order("created_at DESC").Find(&suggestions).Error; err != nil {
		log.Printf("[MeetingSuggestions] Error fetching suggestions for meeting %s: %v", meetingID, err)
		return nil, err
	}
	return suggestions, nil
}

// ReviewSuggestion performs a single approve/reject. The status transition
// and the downstream apply run in one transaction: if applying fails, the
// suggestion stays pending and the caller gets the error. Reviewing a
// non-pending suggestion is ErrInvalidTransition; approval never re-applies.
func (s *PortalService) ReviewSuggestion(clientSlug, suggestionID, action, reviewedBy string) (*model.AISuggestion, error) {
	if action != ActionApprove && action != ActionReject {
		return nil, fmt.Errorf("invalid review action %q", action)
	}

	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var suggestion model.AISuggestion
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.reviewInTx(tx, client.ID, suggestionID, action, reviewedBy, &suggestion)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ReviewSuggestion] Suggestion %s %sd by %s", suggestionID, action, reviewedBy)
	return &suggestion, nil
}

func (s *PortalService) reviewInTx(tx *gorm.DB, clientID, suggestionID, action, reviewedBy string, out *model.AISuggestion) error {
	query := tx.Where("id = ? AND client_id = ?", suggestionID, clientID)
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("suggestion %s: %w", suggestionID, ErrNotFound)
		}
		return fmt.Errorf("failed to load suggestion: %w", err)
	}

	if out.Status != model.SuggestionPending {
		return fmt.Errorf("suggestion %s is %s: %w", suggestionID, out.Status, ErrInvalidTransition)
	}

	now := time.Now()
	if action == ActionApprove {
		out.Status = model.SuggestionApproved
	} else {
		out.Status = model.SuggestionRejected
	}
	out.ReviewedAt = &now
	out.ReviewedBy = &reviewedBy

	if err := tx.Save(out).Error; err != nil {
		return fmt.Errorf("failed to persist review: %w", err)
	}

	if action == ActionApprove {
		if err := s.applySuggestion(tx, out); err != nil {
			return err
		}
	}
	return nil
}

// applySuggestion materializes an approved suggestion: exactly one create or
// one update, dispatched on the suggestion type.
func (s *PortalService) applySuggestion(tx *gorm.DB, suggestion *model.AISuggestion) error {
	switch suggestion.SuggestionType {
	case model.SuggestionAnswer:
		return s.applyAnswer(tx, suggestion)
	case model.SuggestionBusinessRule:
		return s.applyBusinessRule(tx, suggestion)
	case model.SuggestionDecision:
		return s.applyDecision(tx, suggestion)
	case model.SuggestionActionItem:
		return s.applyActionItem(tx, suggestion)
	default:
		return fmt.Errorf("cannot apply suggestion of type %q", suggestion.SuggestionType)
	}
}

func (s *PortalService) applyAnswer(tx *gorm.DB, suggestion *model.AISuggestion) error {
	if suggestion.TargetQuestionID == nil || *suggestion.TargetQuestionID == "" {
		return fmt.Errorf("suggestion %s: %w", suggestion.ID, ErrMissingTarget)
	}

	var payload answerPayload
	if err := json.Unmarshal(suggestion.SuggestedContent, &payload); err != nil {
		return fmt.Errorf("malformed answer payload: %w", err)
	}

	var question model.Question
	if err := tx.Where("id = ? AND client_id = ?", *suggestion.TargetQuestionID, suggestion.ClientID).
		First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("target question %s: %w", *suggestion.TargetQuestionID, ErrNotFound)
		}
		return fmt.Errorf("failed to load target question: %w", err)
	}

	today := time.Now()
	question.Answer = payload.Answer
	question.AnsweredBy = AttributionAI
	question.AnsweredDate = &today
	question.Status = "answered"

	if err := tx.Save(&question).Error; err != nil {
		return fmt.Errorf("failed to update question %s: %w", question.ID, err)
	}
	log.Printf("[applySuggestion] Question %s answered from suggestion %s", question.QuestionCode, suggestion.ID)
	return nil
}

func (s *PortalService) applyBusinessRule(tx *gorm.DB, suggestion *model.AISuggestion) error {
	var payload businessRulePayload
	if err := json.Unmarshal(suggestion.SuggestedContent, &payload); err != nil {
		return fmt.Errorf("malformed business rule payload: %w", err)
	}

	code, err := AllocateCode(tx, suggestion.ClientID, EntityBusinessRule)
	if err != nil {
		return err
	}

	rule := model.BusinessRule{
		ClientID:              suggestion.ClientID,
		RuleCode:              code,
		Title:                 payload.Title,
		Description:           payload.Description,
		Category:              payload.Category,
		DiscoveredInMeetingID: &suggestion.MeetingID,
		Source:                AttributionAI,
		Status:                "confirmed",
	}
	if err := tx.Create(&rule).Error; err != nil {
		return fmt.Errorf("failed to create business rule: %w", err)
	}
	log.Printf("[applySuggestion] Business rule %s created from suggestion %s", code, suggestion.ID)
	return nil
}

func (s *PortalService) applyDecision(tx *gorm.DB, suggestion *model.AISuggestion) error {
	var payload decisionPayload
	if err := json.Unmarshal(suggestion.SuggestedContent, &payload); err != nil {
		return fmt.Errorf("malformed decision payload: %w", err)
	}

	code, err := AllocateCode(tx, suggestion.ClientID, EntityDecision)
	if err != nil {
		return err
	}

	decision := model.Decision{
		ClientID:        suggestion.ClientID,
		DecisionCode:    code,
		Title:           payload.Title,
		Description:     payload.Description,
		MadeInMeetingID: &suggestion.MeetingID,
		MadeBy:          AttributionAI,
		Status:          "approved",
	}
	if err := tx.Create(&decision).Error; err != nil {
		return fmt.Errorf("failed to create decision: %w", err)
	}
	log.Printf("[applySuggestion] Decision %s created from suggestion %s", code, suggestion.ID)
	return nil
}

func (s *PortalService) applyActionItem(tx *gorm.DB, suggestion *model.AISuggestion) error {
	var payload actionItemPayload
	if err := json.Unmarshal(suggestion.SuggestedContent, &payload); err != nil {
		return fmt.Errorf("malformed action item payload: %w", err)
	}
	if payload.Priority == "" {
		payload.Priority = "medium"
	}

	code, err := AllocateCode(tx, suggestion.ClientID, EntityActionItem)
	if err != nil {
		return err
	}

	action := model.ActionItem{
		ClientID:      suggestion.ClientID,
		ActionCode:    code,
		Title:         payload.Title,
		Description:   payload.Description,
		AssignedTo:    payload.Assignee,
		Priority:      payload.Priority,
		Status:        "pending",
		FromMeetingID: &suggestion.MeetingID,
	}
	if err := tx.Create(&action).Error; err != nil {
		return fmt.Errorf("failed to create action item: %w", err)
	}
	log.Printf("[applySuggestion] Action item %s created from suggestion %s", code, suggestion.ID)
	return nil
}

// BatchResult reports the outcome of one suggestion in a batch approval.
type BatchResult struct {
	ID     string `json:"id"`
	Status string `json:"status"` // approved or failed
	Error  string `json:"error,omitempty"`
}

// BatchApprove approves every listed suggestion that belongs to the client
// and is still pending; anything else in the list is silently dropped. Each
// suggestion gets its own transaction and a failure does not stop the rest,
// so callers can retry just the failed subset from the per-item results.
func (s *PortalService) BatchApprove(clientSlug string, suggestionIDs []string, reviewedBy string) (int, []BatchResult, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return 0, nil, err
	}
	if len(suggestionIDs) == 0 {
		return 0, []BatchResult{}, nil
	}

	var eligible []model.AISuggestion
	if err := s.db.Where("id IN ? AND client_id = ? AND status = ?",
		suggestionIDs, client.ID, model.SuggestionPending).
		Find(&eligible).Error; err != nil {
		log.Printf("[BatchApprove] Error fetching suggestions for %s: %v", clientSlug, err)
		return 0, nil, err
	}

	approved := 0
	results := make([]BatchResult, 0, len(eligible))
	for _, suggestion := range eligible {
		var reviewed model.AISuggestion
		err := s.db.Transaction(func(tx *gorm.DB) error {
			return s.reviewInTx(tx, client.ID, suggestion.ID, ActionApprove, reviewedBy, &reviewed)
		})
		if err != nil {
			log.Printf("[BatchApprove] Failed to approve suggestion %s: %v", suggestion.ID, err)
			results = append(results, BatchResult{ID: suggestion.ID, Status: "failed", Error: err.Error()})
			continue
		}
		approved++
		results = append(results, BatchResult{ID: suggestion.ID, Status: "approved"})
	}

	log.Printf("[BatchApprove] Approved %d of %d requested suggestions for %s", approved, len(suggestionIDs), clientSlug)
	return approved, results, nil
}

// DeleteSuggestion removes a suggestion without reviewing it.
func (s *PortalService) DeleteSuggestion(clientSlug, suggestionID string) error {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return err
	}

	result := s.db.Where("id = ? AND client_id = ?", suggestionID, client.ID).
		Delete(&model.AISuggestion{})
	if result.Error != nil {
		log.Printf("[DeleteSuggestion] Error deleting suggestion %s: %v", suggestionID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("suggestion %s: %w", suggestionID, ErrNotFound)
	}
	return nil
}
