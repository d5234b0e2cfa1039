package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "github.com/morichal/MeetingPortal/models"
)

// CreateMeetingInput mirrors the meeting creation contract. Dates are
// ISO 8601 (2006-01-02).
type CreateMeetingInput struct {
	Date      string   `json:"date" binding:"required"`
	Title     string   `json:"title" binding:"required"`
	Attendees []string `json:"attendees"`
	Agenda    string   `json:"agenda"`
	Notes     string   `json:"notes"`
	Status    string   `json:"status"`
}

// UpdateMeetingInput is a partial update; nil fields are untouched.
type UpdateMeetingInput struct {
	Date      *string   `json:"date"`
	Title     *string   `json:"title"`
	Attendees *[]string `json:"attendees"`
	Agenda    *string   `json:"agenda"`
	Notes     *string   `json:"notes"`
	Status    *string   `json:"status"`
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

func (s *PortalService) ListMeetings(clientSlug string) ([]model.Meeting, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var meetings []model.Meeting
	if err := s.db.Where("client_id = ?", client.ID).Order("date DESC").Find(&meetings).Error; err != nil {
		log.Printf("[ListMeetings] Error fetching meetings for %s: %v", clientSlug, err)
		return nil, err
	}
	return meetings, nil
}

func (s *PortalService) GetMeeting(clientSlug, meetingID string) (*model.Meeting, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var meeting model.Meeting
	if err := s.db.Where("id = ? AND client_id = ?", meetingID, client.ID).First(&meeting).Error; err != nil {
		return nil, notFoundOr(err, "meeting", meetingID)
	}
	return &meeting, nil
}

func (s *PortalService) CreateMeeting(clientSlug string, input CreateMeetingInput) (*model.Meeting, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	attendees, err := json.Marshal(input.Attendees)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attendees: %w", err)
	}

	status := input.Status
	if status == "" {
		status = "scheduled"
	}

	var meeting model.Meeting
	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := AllocateCode(tx, client.ID, EntityMeeting)
		if err != nil {
			return err
		}
		meeting = model.Meeting{
			ClientID:    client.ID,
			MeetingCode: code,
			Date:        date,
			Title:       input.Title,
			Attendees:   datatypes.JSON(attendees),
			Agenda:      input.Agenda,
			Notes:       input.Notes,
			Status:      status,
		}
		return tx.Create(&meeting).Error
	})
	if err != nil {
		log.Printf("[CreateMeeting] Error creating meeting for %s: %v", clientSlug, err)
		return nil, err
	}

	s.indexForSearch(client.ID, EntityMeeting, meeting.ID, meeting.MeetingCode, meeting.Title, meeting.Agenda+" "+meeting.Notes)
	log.Printf("[CreateMeeting] Meeting %s created for %s", meeting.MeetingCode, clientSlug)
	return &meeting, nil
}

func (s *PortalService) UpdateMeeting(clientSlug, meetingID string, input UpdateMeetingInput) (*model.Meeting, error) {
	meeting, err := s.GetMeeting(clientSlug, meetingID)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		date, err := parseDate(*input.Date)
		if err != nil {
			return nil, err
		}
		meeting.Date = date
	}
	if input.Title != nil {
		meeting.Title = *input.Title
	}
	if input.Attendees != nil {
		attendees, err := json.Marshal(*input.Attendees)
		if err != nil {
			return nil, fmt.Errorf("failed to encode attendees: %w", err)
		}
		meeting.Attendees = datatypes.JSON(attendees)
	}
	if input.Agenda != nil {
		meeting.Agenda = *input.Agenda
	}
	if input.Notes != nil {
		meeting.Notes = *input.Notes
	}
	if input.Status != nil {
		meeting.Status = *input.Status
	}

	if err := s.db.Save(meeting).Error; err != nil {
		log.Printf("[UpdateMeeting] Error updating meeting %s: %v", meetingID, err)
		return nil, err
	}
	s.indexForSearch(meeting.ClientID, EntityMeeting, meeting.ID, meeting.MeetingCode, meeting.Title, meeting.Agenda+" "+meeting.Notes)
	return meeting, nil
}

func (s *PortalService) DeleteMeeting(clientSlug, meetingID string) error {
	meeting, err := s.GetMeeting(clientSlug, meetingID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(meeting).Error; err != nil {
		log.Printf("[DeleteMeeting] Error deleting meeting %s: %v", meetingID, err)
		return err
	}
	return nil
}
