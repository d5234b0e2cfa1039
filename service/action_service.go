package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	model "github.com/morichal/MeetingPortal/models"
)

type CreateActionItemInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	AssignedTo  string  `json:"assigned_to"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	FromMeeting *string `json:"from_meeting"`
	Notes       string  `json:"notes"`
}

type UpdateActionItemInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssignedTo  *string `json:"assigned_to"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}

// ListActionItems returns a client's action items newest first. assignedTo
// is a substring match, status an equality filter.
func (s *PortalService) ListActionItems(clientSlug, status, assignedTo string) ([]model.ActionItem, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("client_id = ?", client.ID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if assignedTo != "" {
		query = query.Where("assigned_to LIKE ?", "%"+assignedTo+"%")
	}

	var items []model.ActionItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		log.Printf("[ListActionItems] Error fetching action items for %s: %v", clientSlug, err)
		return nil, err
	}
	return items, nil
}

func (s *PortalService) GetActionItem(clientSlug, actionID string) (*model.ActionItem, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var item model.ActionItem
	if err := s.db.Where("id = ? AND client_id = ?", actionID, client.ID).First(&item).Error; err != nil {
		return nil, notFoundOr(err, "action item", actionID)
	}
	return &item, nil
}

func (s *PortalService) CreateActionItem(clientSlug string, input CreateActionItemInput) (*model.ActionItem, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	var dueDate *time.Time
	if input.DueDate != nil && *input.DueDate != "" {
		parsed, err := parseDate(*input.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = &parsed
	}

	var item model.ActionItem
	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := AllocateCode(tx, client.ID, EntityActionItem)
		if err != nil {
			return err
		}
		item = model.ActionItem{
			ClientID:      client.ID,
			ActionCode:    code,
			Title:         input.Title,
			Description:   input.Description,
			AssignedTo:    input.AssignedTo,
			DueDate:       dueDate,
			Priority:      priority,
			Status:        "pending",
			FromMeetingID: input.FromMeeting,
			Notes:         input.Notes,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		log.Printf("[CreateActionItem] Error creating action item for %s: %v", clientSlug, err)
		return nil, err
	}

	log.Printf("[CreateActionItem] Action item %s created for %s", item.ActionCode, clientSlug)
	return &item, nil
}

func (s *PortalService) UpdateActionItem(clientSlug, actionID string, input UpdateActionItemInput) (*model.ActionItem, error) {
	item, err := s.GetActionItem(clientSlug, actionID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.AssignedTo != nil {
		item.AssignedTo = *input.AssignedTo
	}
	if input.DueDate != nil {
		if *input.DueDate == "" {
			item.DueDate = nil
		} else {
			parsed, err := parseDate(*input.DueDate)
			if err != nil {
				return nil, err
			}
			item.DueDate = &parsed
		}
	}
	if input.Priority != nil {
		item.Priority = *input.Priority
	}
	if input.Status != nil {
		item.Status = *input.Status
	}
	if input.Notes != nil {
		item.Notes = *input.Notes
	}

	if err := s.db.Save(item).Error; err != nil {
		log.Printf("[UpdateActionItem] Error updating action item %s: %v", actionID, err)
		return nil, err
	}
	return item, nil
}

// CompleteActionItem marks an action item done and stamps the completion date.
func (s *PortalService) CompleteActionItem(clientSlug, actionID string) (*model.ActionItem, error) {
	item, err := s.GetActionItem(clientSlug, actionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item.Status = "completed"
	item.CompletedDate = &now

	if err := s.db.Save(item).Error; err != nil {
		log.Printf("[CompleteActionItem] Error completing action item %s: %v", actionID, err)
		return nil, err
	}
	log.Printf("[CompleteActionItem] Action item %s completed", item.ActionCode)
	return item, nil
}

func (s *PortalService) DeleteActionItem(clientSlug, actionID string) error {
	item, err := s.GetActionItem(clientSlug, actionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(item).Error; err != nil {
		log.Printf("[DeleteActionItem] Error deleting action item %s: %v", actionID, err)
		return err
	}
	return nil
}
