package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	model "github.com/morichal/MeetingPortal/models"
)

type CreateSprintInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Order       int    `json:"order"`
	Color       string `json:"color"`
}

type UpdateSprintInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Status      *string `json:"status"`
	Order       *int    `json:"order"`
	Color       *string `json:"color"`
}

type CreateSprintItemInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ItemType    string `json:"item_type"`
	Priority    string `json:"priority"`
	Order       int    `json:"order"`
	AssignedTo  string `json:"assigned_to"`
	Notes       string `json:"notes"`
}

type UpdateSprintItemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ItemType    *string `json:"item_type"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Order       *int    `json:"order"`
	AssignedTo  *string `json:"assigned_to"`
	Notes       *string `json:"notes"`
}

// SprintSummary is a sprint plus its computed progress.
type SprintSummary struct {
	model.Sprint
	Progress       int `json:"progress"`
	TotalItems     int `json:"total_items"`
	CompletedItems int `json:"completed_items"`
}

func (s *PortalService) summarizeSprint(sprint model.Sprint) (SprintSummary, error) {
	var total, completed int64
	if err := s.db.Model(&model.SprintItem{}).Where("sprint_id = ?", sprint.ID).Count(&total).Error; err != nil {
		return SprintSummary{}, err
	}
	if err := s.db.Model(&model.SprintItem{}).
		Where("sprint_id = ? AND status = ?", sprint.ID, "completed").Count(&completed).Error; err != nil {
		return SprintSummary{}, err
	}

	summary := SprintSummary{Sprint: sprint, TotalItems: int(total), CompletedItems: int(completed)}
	if total > 0 {
		summary.Progress = int(float64(completed)/float64(total)*100 + 0.5)
	}
	return summary, nil
}

func (s *PortalService) ListSprints(clientSlug string) ([]SprintSummary, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var sprints []model.Sprint
	if err := s.db.Where("client_id = ?", client.ID).
		Order("sort_order, start_date").Find(&sprints).Error; err != nil {
		log.Printf("[ListSprints] Error fetching sprints for %s: %v", clientSlug, err)
		return nil, err
	}

	summaries := make([]SprintSummary, 0, len(sprints))
	for _, sprint := range sprints {
		summary, err := s.summarizeSprint(sprint)
		if err != nil {
			log.Printf("[ListSprints] Error summarizing sprint %s: %v", sprint.ID, err)
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *PortalService) GetSprint(clientSlug, sprintID string) (*SprintSummary, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var sprint model.Sprint
	if err := s.db.Where("id = ? AND client_id = ?", sprintID, client.ID).First(&sprint).Error; err != nil {
		return nil, notFoundOr(err, "sprint", sprintID)
	}

	summary, err := s.summarizeSprint(sprint)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *PortalService) CreateSprint(clientSlug string, input CreateSprintInput) (*model.Sprint, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	start, err := parseDate(input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		return nil, err
	}

	color := input.Color
	if color == "" {
		color = "#3B82F6"
	}

	var sprint model.Sprint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := AllocateCode(tx, client.ID, EntitySprint)
		if err != nil {
			return err
		}
		sprint = model.Sprint{
			ClientID:    client.ID,
			SprintCode:  code,
			Name:        input.Name,
			Description: input.Description,
			StartDate:   start,
			EndDate:     end,
			Status:      "planned",
			Order:       input.Order,
			Color:       color,
		}
		return tx.Create(&sprint).Error
	})
	if err != nil {
		log.Printf("[CreateSprint] Error creating sprint for %s: %v", clientSlug, err)
		return nil, err
	}

	log.Printf("[CreateSprint] Sprint %s created for %s", sprint.SprintCode, clientSlug)
	return &sprint, nil
}

func (s *PortalService) UpdateSprint(clientSlug, sprintID string, input UpdateSprintInput) (*model.Sprint, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var sprint model.Sprint
	if err := s.db.Where("id = ? AND client_id = ?", sprintID, client.ID).First(&sprint).Error; err != nil {
		return nil, notFoundOr(err, "sprint", sprintID)
	}

	if input.Name != nil {
		sprint.Name = *input.Name
	}
	if input.Description != nil {
		sprint.Description = *input.Description
	}
	if input.StartDate != nil {
		start, err := parseDate(*input.StartDate)
		if err != nil {
			return nil, err
		}
		sprint.StartDate = start
	}
	if input.EndDate != nil {
		end, err := parseDate(*input.EndDate)
		if err != nil {
			return nil, err
		}
		sprint.EndDate = end
	}
	if input.Status != nil {
		sprint.Status = *input.Status
	}
	if input.Order != nil {
		sprint.Order = *input.Order
	}
	if input.Color != nil {
		sprint.Color = *input.Color
	}

	if err := s.db.Save(&sprint).Error; err != nil {
		log.Printf("[UpdateSprint] Error updating sprint %s: %v", sprintID, err)
		return nil, err
	}
	return &sprint, nil
}

func (s *PortalService) DeleteSprint(clientSlug, sprintID string) error {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return err
	}
	result := s.db.Where("id = ? AND client_id = ?", sprintID, client.ID).Delete(&model.Sprint{})
	if result.Error != nil {
		log.Printf("[DeleteSprint] Error deleting sprint %s: %v", sprintID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "sprint", sprintID)
	}
	return nil
}

func (s *PortalService) ListSprintItems(clientSlug, sprintID string) ([]model.SprintItem, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var items []model.SprintItem
	if err := s.db.Where("client_id = ? AND sprint_id = ?", client.ID, sprintID).
		Order("sort_order, created_at").Find(&items).Error; err != nil {
		log.Printf("[ListSprintItems] Error fetching items for sprint %s: %v", sprintID, err)
		return nil, err
	}
	return items, nil
}

func (s *PortalService) CreateSprintItem(clientSlug, sprintID string, input CreateSprintItemInput) (*model.SprintItem, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var sprint model.Sprint
	if err := s.db.Where("id = ? AND client_id = ?", sprintID, client.ID).First(&sprint).Error; err != nil {
		return nil, notFoundOr(err, "sprint", sprintID)
	}

	itemType := input.ItemType
	if itemType == "" {
		itemType = "feature"
	}
	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	var item model.SprintItem
	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := AllocateCode(tx, client.ID, EntitySprintItem)
		if err != nil {
			return err
		}
		item = model.SprintItem{
			ClientID:    client.ID,
			SprintID:    sprint.ID,
			ItemCode:    code,
			Name:        input.Name,
			Description: input.Description,
			ItemType:    itemType,
			Status:      "planned",
			Priority:    priority,
			Order:       input.Order,
			AssignedTo:  input.AssignedTo,
			Notes:       input.Notes,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		log.Printf("[CreateSprintItem] Error creating item for sprint %s: %v", sprintID, err)
		return nil, err
	}

	log.Printf("[CreateSprintItem] Item %s created in sprint %s", item.ItemCode, sprint.SprintCode)
	return &item, nil
}

func (s *PortalService) UpdateSprintItem(clientSlug, itemID string, input UpdateSprintItemInput) (*model.SprintItem, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var item model.SprintItem
	if err := s.db.Where("id = ? AND client_id = ?", itemID, client.ID).First(&item).Error; err != nil {
		return nil, notFoundOr(err, "sprint item", itemID)
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.ItemType != nil {
		item.ItemType = *input.ItemType
	}
	if input.Status != nil {
		item.Status = *input.Status
		if *input.Status == "completed" && item.CompletedAt == nil {
			now := time.Now()
			item.CompletedAt = &now
		}
	}
	if input.Priority != nil {
		item.Priority = *input.Priority
	}
	if input.Order != nil {
		item.Order = *input.Order
	}
	if input.AssignedTo != nil {
		item.AssignedTo = *input.AssignedTo
	}
	if input.Notes != nil {
		item.Notes = *input.Notes
	}

	if err := s.db.Save(&item).Error; err != nil {
		log.Printf("[UpdateSprintItem] Error updating sprint item %s: %v", itemID, err)
		return nil, err
	}
	return &item, nil
}

func (s *PortalService) DeleteSprintItem(clientSlug, itemID string) error {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return err
	}
	result := s.db.Where("id = ? AND client_id = ?", itemID, client.ID).Delete(&model.SprintItem{})
	if result.Error != nil {
		log.Printf("[DeleteSprintItem] Error deleting sprint item %s: %v", itemID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "sprint item", itemID)
	}
	return nil
}
