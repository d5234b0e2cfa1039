package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	model "github.com/morichal/MeetingPortal/models"
)

type CreateQuestionInput struct {
	Category       string  `json:"category"`
	Question       string  `json:"question" binding:"required"`
	Priority       string  `json:"priority"`
	AskedInMeeting *string `json:"asked_in_meeting"`
	Notes          string  `json:"notes"`
}

type UpdateQuestionInput struct {
	Category *string `json:"category"`
	Question *string `json:"question"`
	Priority *string `json:"priority"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
}

// AnswerQuestionInput answers a question by hand (as opposed to an approved
// answer-type suggestion, which uses the same fields with AI attribution).
type AnswerQuestionInput struct {
	Answer     string `json:"answer" binding:"required"`
	AnsweredBy string `json:"answered_by"`
	Status     string `json:"status"`
}

// ListQuestions returns a client's questions newest first, with optional
// status and priority filters.
func (s *PortalService) ListQuestions(clientSlug, status, priority string) ([]model.Question, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("client_id = ?", client.ID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if priority != "" {
		query = query.Where("priority = ?", priority)
	}

	var questions []model.Question
	if err := query.Order("created_at DESC").Find(&questions).Error; err != nil {
		log.Printf("[ListQuestions] Error fetching questions for %s: %v", clientSlug, err)
		return nil, err
	}
	return questions, nil
}

func (s *PortalService) GetQuestion(clientSlug, questionID string) (*model.Question, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var question model.Question
	if err := s.db.Where("id = ? AND client_id = ?", questionID, client.ID).First(&question).Error; err != nil {
		return nil, notFoundOr(err, "question", questionID)
	}
	return &question, nil
}

func (s *PortalService) CreateQuestion(clientSlug string, input CreateQuestionInput) (*model.Question, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	var question model.Question
	err = s.db.Transaction(func(tx *gorm.DB) error {
		code, err := AllocateCode(tx, client.ID, EntityQuestion)
		if err != nil {
			return err
		}
		question = model.Question{
			ClientID:         client.ID,
			QuestionCode:     code,
			Category:         input.Category,
			Question:         input.Question,
			Priority:         priority,
			Status:           "pending",
			AskedInMeetingID: input.AskedInMeeting,
			Notes:            input.Notes,
		}
		return tx.Create(&question).Error
	})
	if err != nil {
		log.Printf("[CreateQuestion] Error creating question for %s: %v", clientSlug, err)
		return nil, err
	}

	s.indexForSearch(client.ID, EntityQuestion, question.ID, question.QuestionCode, question.Question, question.Notes)
	log.Printf("[CreateQuestion] Question %s created for %s", question.QuestionCode, clientSlug)
	return &question, nil
}

func (s *PortalService) UpdateQuestion(clientSlug, questionID string, input UpdateQuestionInput) (*model.Question, error) {
	question, err := s.GetQuestion(clientSlug, questionID)
	if err != nil {
		return nil, err
	}

	if input.Category != nil {
		question.Category = *input.Category
	}
	if input.Question != nil {
		question.Question = *input.Question
	}
	if input.Priority != nil {
		question.Priority = *input.Priority
	}
	if input.Status != nil {
		question.Status = *input.Status
	}
	if input.Notes != nil {
		question.Notes = *input.Notes
	}

	if err := s.db.Save(question).Error; err != nil {
		log.Printf("[UpdateQuestion] Error updating question %s: %v", questionID, err)
		return nil, err
	}
	s.indexForSearch(question.ClientID, EntityQuestion, question.ID, question.QuestionCode, question.Question, question.Notes)
	return question, nil
}

// AnswerQuestion records a manual answer and flips the status.
func (s *PortalService) AnswerQuestion(clientSlug, questionID string, input AnswerQuestionInput) (*model.Question, error) {
	question, err := s.GetQuestion(clientSlug, questionID)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = "answered"
	}

	now := time.Now()
	question.Answer = input.Answer
	question.AnsweredBy = input.AnsweredBy
	question.AnsweredDate = &now
	question.Status = status

	if err := s.db.Save(question).Error; err != nil {
		log.Printf("[AnswerQuestion] Error answering question %s: %v", questionID, err)
		return nil, err
	}
	return question, nil
}

func (s *PortalService) DeleteQuestion(clientSlug, questionID string) error {
	question, err := s.GetQuestion(clientSlug, questionID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(question).Error; err != nil {
		log.Printf("[DeleteQuestion] Error deleting question %s: %v", questionID, err)
		return err
	}
	return nil
}
