package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	model "github.com/morichal/MeetingPortal/models"
)

// CreateClientInput carries the fields a new workspace needs.
type CreateClientInput struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required"`
}

func (s *PortalService) ListClients() ([]model.Client, error) {
	var clients []model.Client
	if err := s.db.Order("name").Find(&clients).Error; err != nil {
		log.Printf("[ListClients] Error fetching clients: %v", err)
		return nil, err
	}
	return clients, nil
}

func (s *PortalService) CreateClient(input CreateClientInput) (*model.Client, error) {
	client := model.Client{Name: input.Name, Slug: input.Slug}
	if err := s.db.Create(&client).Error; err != nil {
		log.Printf("[CreateClient] Error creating client %s: %v", input.Slug, err)
		return nil, err
	}
	log.Printf("[CreateClient] Client %s (%s) created", client.Name, client.Slug)
	return &client, nil
}

func (s *PortalService) UpdateClient(slug string, name string) (*model.Client, error) {
	client, err := s.ClientBySlug(slug)
	if err != nil {
		return nil, err
	}
	client.Name = name
	if err := s.db.Save(client).Error; err != nil {
		log.Printf("[UpdateClient] Error updating client %s: %v", slug, err)
		return nil, err
	}
	return client, nil
}

// DeleteClient removes a workspace. The schema cascades to every owned
// entity, suggestions included.
func (s *PortalService) DeleteClient(slug string) error {
	client, err := s.ClientBySlug(slug)
	if err != nil {
		return err
	}
	if err := s.db.Delete(client).Error; err != nil {
		log.Printf("[DeleteClient] Error deleting client %s: %v", slug, err)
		return err
	}
	return nil
}

// AllData is the one-call export bundle the frontend bootstraps from.
type AllData struct {
	Version     string               `json:"version"`
	LastUpdated interface{}          `json:"lastUpdated"`
	Meetings    []model.Meeting      `json:"meetings"`
	Questions   []model.Question     `json:"questions"`
	Rules       []model.BusinessRule `json:"businessRules"`
	Decisions   []model.Decision     `json:"decisions"`
	ActionItems []model.ActionItem   `json:"actionItems"`
	Updates     []model.Update       `json:"updates"`
	Blockers    []model.Blocker      `json:"blockers"`
	Attachments []model.Attachment   `json:"attachments"`
}

// ClientAllData gathers every entity owned by one client.
func (s *PortalService) ClientAllData(slug string) (*AllData, error) {
	client, err := s.ClientBySlug(slug)
	if err != nil {
		return nil, err
	}

	data := AllData{Version: "2.1", LastUpdated: client.UpdatedAt}
	scoped := func(dest interface{}, order string) error {
		return s.db.Where("client_id = ?", client.ID).Order(order).Find(dest).Error
	}

	steps := []struct {
		name string
		load func() error
	}{
		{"meetings", func() error { return scoped(&data.Meetings, "date DESC") }},
		{"questions", func() error { return scoped(&data.Questions, "created_at DESC") }},
		{"business rules", func() error { return scoped(&data.Rules, "created_at DESC") }},
		{"decisions", func() error { return scoped(&data.Decisions, "created_at DESC") }},
		{"action items", func() error { return scoped(&data.ActionItems, "created_at DESC") }},
		{"updates", func() error { return scoped(&data.Updates, "created_at DESC") }},
		{"blockers", func() error { return scoped(&data.Blockers, "created_at DESC") }},
		{"attachments", func() error { return scoped(&data.Attachments, "created_at DESC") }},
	}
	for _, step := range steps {
		if err := step.load(); err != nil {
			log.Printf("[ClientAllData] Error fetching %s for %s: %v", step.name, slug, err)
			return nil, fmt.Errorf("failed to fetch %s: %w", step.name, err)
		}
	}

	return &data, nil
}

func notFoundOr(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return err
}
