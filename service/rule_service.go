package services

import (
	"log"

	"gorm.io/gorm"

	model "github.com/morichal/MeetingPortal/models"
)

type CreateBusinessRuleInput struct {
	Title               string  `json:"title" binding:"required"`
	Description         string  `json:"description"`
	Category            string  `json:"category"`
	DiscoveredInMeeting *string `json:"discovered_in_meeting"`
	Source              string  `json:"source"`
}

type UpdateBusinessRuleInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
}

type CreateDecisionInput struct {
	Title               string  `json:"title" binding:"required"`
	Description         string  `json:"description"`
	MadeInMeeting       *string `json:"made_in_meeting"`
	MadeBy              string  `json:"made_by"`
	ImplementationNotes string  `json:"implementation_notes"`
}

type UpdateDecisionInput struct {
	Title               *string `json:"title"`
	Description         *string `json:"description"`
	MadeBy              *string `json:"made_by"`
	Status              *string `json:"status"`
	ImplementationNotes *string `json:"implementation_notes"`
}

func (s *PortalService) ListBusinessRules(clientSlug, category, status string) ([]model.BusinessRule, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("client_id = ?", client.ID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var rules []model.BusinessRule
	if err := query.Order("created_at DESC").Find(&rules).Error; err != nil {
		log.Printf("[ListBusinessRules] Error fetching rules for %s: %v", clientSlug, err)
		return nil, err
	}
	return rules, nil
}

func (s *PortalService) CreateBusinessRule(clientSlug string, input CreateBusinessRuleInput) (*model.BusinessRule, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var rule model.BusinessRule
	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := AllocateCode(tx, client.ID, EntityBusinessRule)
		if err != nil {
			return err
		}
		rule = model.BusinessRule{
			ClientID:              client.ID,
			RuleCode:              code,
			Title:                 input.Title,
			Description:           input.Description,
			Category:              input.Category,
			DiscoveredInMeetingID: input.DiscoveredInMeeting,
			Source:                input.Source,
		}
		return tx.Create(&rule).Error
	})
	if err != nil {
		log.Printf("[CreateBusinessRule] Error creating rule for %s: %v", clientSlug, err)
		return nil, err
	}

	s.indexForSearch(client.ID, EntityBusinessRule, rule.ID, rule.RuleCode, rule.Title, rule.Description)
	log.Printf("[CreateBusinessRule] Rule %s created for %s", rule.RuleCode, clientSlug)
	return &rule, nil
}

func (s *PortalService) UpdateBusinessRule(clientSlug, ruleID string, input UpdateBusinessRuleInput) (*model.BusinessRule, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var rule model.BusinessRule
	if err := s.db.Where("id = ? AND client_id = ?", ruleID, client.ID).First(&rule).Error; err != nil {
		return nil, notFoundOr(err, "business rule", ruleID)
	}

	if input.Title != nil {
		rule.Title = *input.Title
	}
	if input.Description != nil {
		rule.Description = *input.Description
	}
	if input.Category != nil {
		rule.Category = *input.Category
	}
	if input.Status != nil {
		rule.Status = *input.Status
	}

	if err := s.db.Save(&rule).Error; err != nil {
		log.Printf("[UpdateBusinessRule] Error updating rule %s: %v", ruleID, err)
		return nil, err
	}
	s.indexForSearch(client.ID, EntityBusinessRule, rule.ID, rule.RuleCode, rule.Title, rule.Description)
	return &rule, nil
}

func (s *PortalService) DeleteBusinessRule(clientSlug, ruleID string) error {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return err
	}
	result := s.db.Where("id = ? AND client_id = ?", ruleID, client.ID).Delete(&model.BusinessRule{})
	if result.Error != nil {
		log.Printf("[DeleteBusinessRule] Error deleting rule %s: %v", ruleID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "business rule", ruleID)
	}
	return nil
}

func (s *PortalService) ListDecisions(clientSlug, status string) ([]model.Decision, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("client_id = ?", client.ID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var decisions []model.Decision
	if err := query.Order("created_at DESC").Find(&decisions).Error; err != nil {
		log.Printf("[ListDecisions] Error fetching decisions for %s: %v", clientSlug, err)
		return nil, err
	}
	return decisions, nil
}

func (s *PortalService) CreateDecision(clientSlug string, input CreateDecisionInput) (*model.Decision, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var decision model.Decision
	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := AllocateCode(tx, client.ID, EntityDecision)
		if err != nil {
			return err
		}
		decision = model.Decision{
			ClientID:            client.ID,
			DecisionCode:        code,
			Title:               input.Title,
			Description:         input.Description,
			MadeInMeetingID:     input.MadeInMeeting,
			MadeBy:              input.MadeBy,
			ImplementationNotes: input.ImplementationNotes,
		}
		return tx.Create(&decision).Error
	})
	if err != nil {
		log.Printf("[CreateDecision] Error creating decision for %s: %v", clientSlug, err)
		return nil, err
	}

	log.Printf("[CreateDecision] Decision %s created for %s", decision.DecisionCode, clientSlug)
	return &decision, nil
}

func (s *PortalService) UpdateDecision(clientSlug, decisionID string, input UpdateDecisionInput) (*model.Decision, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var decision model.Decision
	if err := s.db.Where("id = ? AND client_id = ?", decisionID, client.ID).First(&decision).Error; err != nil {
		return nil, notFoundOr(err, "decision", decisionID)
	}

	if input.Title != nil {
		decision.Title = *input.Title
	}
	if input.Description != nil {
		decision.Description = *input.Description
	}
	if input.MadeBy != nil {
		decision.MadeBy = *input.MadeBy
	}
	if input.Status != nil {
		decision.Status = *input.Status
	}
	if input.ImplementationNotes != nil {
		decision.ImplementationNotes = *input.ImplementationNotes
	}

	if err := s.db.Save(&decision).Error; err != nil {
		log.Printf("[UpdateDecision] Error updating decision %s: %v", decisionID, err)
		return nil, err
	}
	return &decision, nil
}

func (s *PortalService) DeleteDecision(clientSlug, decisionID string) error {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return err
	}
	result := s.db.Where("id = ? AND client_id = ?", decisionID, client.ID).Delete(&model.Decision{})
	if result.Error != nil {
		log.Printf("[DeleteDecision] Error deleting decision %s: %v", decisionID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "decision", decisionID)
	}
	return nil
}
