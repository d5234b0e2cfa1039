package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	model "github.com/morichal/MeetingPortal/models"
)

type CreateUpdateInput struct {
	Meeting  *string `json:"meeting"`
	Author   string  `json:"author"`
	Content  string  `json:"content" binding:"required"`
	Category string  `json:"category"`
}

type CreateBlockerInput struct {
	Meeting     *string `json:"meeting"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Severity    string  `json:"severity"`
	Owner       string  `json:"owner"`
}

type UpdateBlockerInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Severity    *string `json:"severity"`
	Status      *string `json:"status"`
	Owner       *string `json:"owner"`
	Resolution  *string `json:"resolution"`
}

func (s *PortalService) ListUpdates(clientSlug, category string) ([]model.Update, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("client_id = ?", client.ID)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var updates []model.Update
	if err := query.Order("created_at DESC").Find(&updates).Error; err != nil {
		log.Printf("[ListUpdates] Error fetching updates for %s: %v", clientSlug, err)
		return nil, err
	}
	return updates, nil
}

func (s *PortalService) CreateUpdate(clientSlug string, input CreateUpdateInput) (*model.Update, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	category := input.Category
	if category == "" {
		category = "general"
	}

	var update model.Update
	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := AllocateCode(tx, client.ID, EntityUpdate)
		if err != nil {
			return err
		}
		update = model.Update{
			ClientID:   client.ID,
			UpdateCode: code,
			MeetingID:  input.Meeting,
			Author:     input.Author,
			Content:    input.Content,
			Category:   category,
		}
		return tx.Create(&update).Error
	})
	if err != nil {
		log.Printf("[CreateUpdate] Error creating update for %s: %v", clientSlug, err)
		return nil, err
	}

	log.Printf("[CreateUpdate] Update %s created for %s", update.UpdateCode, clientSlug)
	return &update, nil
}

func (s *PortalService) DeleteUpdate(clientSlug, updateID string) error {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return err
	}
	result := s.db.Where("id = ? AND client_id = ?", updateID, client.ID).Delete(&model.Update{})
	if result.Error != nil {
		log.Printf("[DeleteUpdate] Error deleting update %s: %v", updateID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "update", updateID)
	}
	return nil
}

func (s *PortalService) ListBlockers(clientSlug, status, severity string) ([]model.Blocker, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("client_id = ?", client.ID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if severity != "" {
		query = query.Where("severity = ?", severity)
	}

	var blockers []model.Blocker
	if err := query.Order("created_at DESC").Find(&blockers).Error; err != nil {
		log.Printf("[ListBlockers] Error fetching blockers for %s: %v", clientSlug, err)
		return nil, err
	}
	return blockers, nil
}

func (s *PortalService) CreateBlocker(clientSlug string, input CreateBlockerInput) (*model.Blocker, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	severity := input.Severity
	if severity == "" {
		severity = "medium"
	}

	var blocker model.Blocker
	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := AllocateCode(tx, client.ID, EntityBlocker)
		if err != nil {
			return err
		}
		blocker = model.Blocker{
			ClientID:    client.ID,
			BlockerCode: code,
			MeetingID:   input.Meeting,
			Title:       input.Title,
			Description: input.Description,
			Severity:    severity,
			Status:      "open",
			Owner:       input.Owner,
		}
		return tx.Create(&blocker).Error
	})
	if err != nil {
		log.Printf("[CreateBlocker] Error creating blocker for %s: %v", clientSlug, err)
		return nil, err
	}

	log.Printf("[CreateBlocker] Blocker %s created for %s", blocker.BlockerCode, clientSlug)
	return &blocker, nil
}

func (s *PortalService) UpdateBlocker(clientSlug, blockerID string, input UpdateBlockerInput) (*model.Blocker, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var blocker model.Blocker
	if err := s.db.Where("id = ? AND client_id = ?", blockerID, client.ID).First(&blocker).Error; err != nil {
		return nil, notFoundOr(err, "blocker", blockerID)
	}

	if input.Title != nil {
		blocker.Title = *input.Title
	}
	if input.Description != nil {
		blocker.Description = *input.Description
	}
	if input.Severity != nil {
		blocker.Severity = *input.Severity
	}
	if input.Status != nil {
		blocker.Status = *input.Status
	}
	if input.Owner != nil {
		blocker.Owner = *input.Owner
	}
	if input.Resolution != nil {
		blocker.Resolution = *input.Resolution
	}

	if err := s.db.Save(&blocker).Error; err != nil {
		log.Printf("[UpdateBlocker] Error updating blocker %s: %v", blockerID, err)
		return nil, err
	}
	return &blocker, nil
}

// ResolveBlocker closes a blocker with an optional resolution note.
func (s *PortalService) ResolveBlocker(clientSlug, blockerID, resolution string) (*model.Blocker, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var blocker model.Blocker
	if err := s.db.Where("id = ? AND client_id = ?", blockerID, client.ID).First(&blocker).Error; err != nil {
		return nil, notFoundOr(err, "blocker", blockerID)
	}

	now := time.Now()
	blocker.Status = "resolved"
	blocker.Resolution = resolution
	blocker.ResolvedAt = &now

	if err := s.db.Save(&blocker).Error; err != nil {
		log.Printf("[ResolveBlocker] Error resolving blocker %s: %v", blockerID, err)
		return nil, err
	}
	log.Printf("[ResolveBlocker] Blocker %s resolved", blocker.BlockerCode)
	return &blocker, nil
}

func (s *PortalService) DeleteBlocker(clientSlug, blockerID string) error {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return err
	}
	result := s.db.Where("id = ? AND client_id = ?", blockerID, client.ID).Delete(&model.Blocker{})
	if result.Error != nil {
		log.Printf("[DeleteBlocker] Error deleting blocker %s: %v", blockerID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "blocker", blockerID)
	}
	return nil
}
