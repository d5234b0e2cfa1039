package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	model "github.com/morichal/MeetingPortal/models"
)

func allocate(t *testing.T, db *gorm.DB, clientID, entityType string) string {
	t.Helper()
	var code string
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		code, err = AllocateCode(tx, clientID, entityType)
		return err
	})
	require.NoError(t, err)
	return code
}

func TestAllocateCode_FirstCodesStartAtOffset(t *testing.T) {
	_, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")

	assert.Equal(t, "ACT-100", allocate(t, db, client.ID, EntityActionItem))
	assert.Equal(t, "MTG-100", allocate(t, db, client.ID, EntityMeeting))
	assert.Equal(t, "UPD-001", allocate(t, db, client.ID, EntityUpdate))
}

func TestAllocateCode_ConsecutiveCodes(t *testing.T) {
	_, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")

	for i := 0; i < 5; i++ {
		want := fmt.Sprintf("BR-%d", 100+i)
		assert.Equal(t, want, allocate(t, db, client.ID, EntityBusinessRule))
	}
}

func TestAllocateCode_SeedsFromExistingRows(t *testing.T) {
	_, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")

	// Rows created before the counter existed keep the sequence going.
	for i := 0; i < 3; i++ {
		item := model.ActionItem{
			ClientID:   client.ID,
			ActionCode: fmt.Sprintf("ACT-%d", 100+i),
			Title:      fmt.Sprintf("legacy %d", i),
		}
		require.NoError(t, db.Create(&item).Error)
	}

	assert.Equal(t, "ACT-103", allocate(t, db, client.ID, EntityActionItem))
	assert.Equal(t, "ACT-104", allocate(t, db, client.ID, EntityActionItem))
}

func TestAllocateCode_PerClientSequences(t *testing.T) {
	_, db := newTestService(t)
	acme := seedClient(t, db, "Acme", "acme")
	globex := seedClient(t, db, "Globex", "globex")

	assert.Equal(t, "Q-100", allocate(t, db, acme.ID, EntityQuestion))
	assert.Equal(t, "Q-101", allocate(t, db, acme.ID, EntityQuestion))
	assert.Equal(t, "Q-100", allocate(t, db, globex.ID, EntityQuestion))
}

func TestAllocateCode_RollbackDoesNotBurnTheCounter(t *testing.T) {
	_, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")

	assert.Equal(t, "DEC-100", allocate(t, db, client.ID, EntityDecision))

	err := db.Transaction(func(tx *gorm.DB) error {
		code, err := AllocateCode(tx, client.ID, EntityDecision)
		require.NoError(t, err)
		assert.Equal(t, "DEC-101", code)
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	// The rolled-back allocation is reissued.
	assert.Equal(t, "DEC-101", allocate(t, db, client.ID, EntityDecision))
}

func TestAllocateCode_UnknownEntityType(t *testing.T) {
	_, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := AllocateCode(tx, client.ID, "nonsense")
		return err
	})
	assert.Error(t, err)
}

func TestAllocateCode_DeletesDoNotReuseCodes(t *testing.T) {
	svc, db := newTestService(t)
	client := seedClient(t, db, "Acme", "acme")

	first, err := svc.CreateBusinessRule("acme", CreateBusinessRuleInput{Title: "rule one"})
	require.NoError(t, err)
	assert.Equal(t, "BR-100", first.RuleCode)

	require.NoError(t, svc.DeleteBusinessRule("acme", first.ID))

	second, err := svc.CreateBusinessRule("acme", CreateBusinessRuleInput{Title: "rule two"})
	require.NoError(t, err)
	assert.Equal(t, "BR-101", second.RuleCode)
	_ = client
}
