package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "github.com/morichal/MeetingPortal/models"
)

// Entity types that carry a generated code.
const (
	EntityMeeting      = "meeting"
	EntityQuestion     = "question"
	EntityBusinessRule = "business_rule"
	EntityDecision     = "decision"
	EntityActionItem   = "action_item"
	EntityUpdate       = "update"
	EntityBlocker      = "blocker"
	EntitySprint       = "sprint"
	EntitySprintItem   = "sprint_item"
)

type codeFormat struct {
	prefix string
	offset int
	padded bool // zero-padded to 3 digits for the log-like entities
}

var codeFormats = map[string]codeFormat{
	EntityMeeting:      {"MTG", 100, false},
	EntityQuestion:     {"Q", 100, false},
	EntityBusinessRule: {"BR", 100, false},
	EntityDecision:     {"DEC", 100, false},
	EntityActionItem:   {"ACT", 100, false},
	EntityUpdate:       {"UPD", 1, true},
	EntityBlocker:      {"BLK", 1, true},
	EntitySprint:       {"SPR", 1, true},
	EntitySprintItem:   {"SPI", 1, true},
}

// AllocateCode mints the next human-readable code for a client and entity
// type, e.g. ACT-104. It must be called inside the transaction that inserts
// the row: the counter row stays locked until commit, so concurrent creates
// serialize on it and a rollback also rolls the allocation back. Codes are
// never reused, and deletes never decrement the counter.
//
// A missing counter row is seeded from count(existing rows) + offset, which
// continues the sequences of data created before counters existed.
func AllocateCode(tx *gorm.DB, clientID, entityType string) (string, error) {
	format, ok := codeFormats[entityType]
	if !ok {
		return "", fmt.Errorf("unknown entity type %q", entityType)
	}

	q := tx.Where("client_id = ? AND entity_type = ?", clientID, entityType)
	if tx.Dialector.Name() == "postgres" {
		// sqlite (tests) has no row locks; its single-writer model gives the
		// same serialization.
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var counter model.CodeCounter
	err := q.First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seed, err := countExistingRows(tx, clientID, entityType)
		if err != nil {
			return "", fmt.Errorf("failed to seed code counter: %w", err)
		}
		counter = model.CodeCounter{
			ClientID:   clientID,
			EntityType: entityType,
			NextValue:  int(seed) + format.offset,
		}
		if err := tx.Create(&counter).Error; err != nil {
			return "", fmt.Errorf("failed to create code counter: %w", err)
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to load code counter: %w", err)
	}

	n := counter.NextValue
	if err := tx.Model(&model.CodeCounter{}).
		Where("client_id = ? AND entity_type = ?", clientID, entityType).
		Update("next_value", n+1).Error; err != nil {
		return "", fmt.Errorf("failed to advance code counter: %w", err)
	}

	if format.padded {
		return fmt.Sprintf("%s-%03d", format.prefix, n), nil
	}
	return fmt.Sprintf("%s-%d", format.prefix, n), nil
}

func countExistingRows(tx *gorm.DB, clientID, entityType string) (int64, error) {
	var target interface{}
	switch entityType {
	case EntityMeeting:
		target = &model.Meeting{}
	case EntityQuestion:
		target = &model.Question{}
	case EntityBusinessRule:
		target = &model.BusinessRule{}
	case EntityDecision:
		target = &model.Decision{}
	case EntityActionItem:
		target = &model.ActionItem{}
	case EntityUpdate:
		target = &model.Update{}
	case EntityBlocker:
		target = &model.Blocker{}
	case EntitySprint:
		target = &model.Sprint{}
	case EntitySprintItem:
		target = &model.SprintItem{}
	default:
		return 0, fmt.Errorf("unknown entity type %q", entityType)
	}

	var count int64
	if err := tx.Model(target).Where("client_id = ?", clientID).Count(&count).Error; err != nil {
		log.Printf("[AllocateCode] Error counting %s rows for client %s: %v", entityType, clientID, err)
		return 0, err
	}
	return count, nil
}
