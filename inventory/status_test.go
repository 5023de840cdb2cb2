package inventory

import (
	"testing"
	"time"

	"school_booking_tool/models"

	"github.com/stretchr/testify/assert"
)

func TestDeriveUnitStatusPrecedence(t *testing.T) {
	maint := map[int]bool{3: true, 4: true}
	defects := map[int]models.DefectRecord{
		3: {Reason: "tela quebrada", Reporter: "Ana", Date: time.Now()},
	}
	loans := []models.Loan{
		{ID: "l1", TeacherName: "Bruno", Units: models.UnitList{3, 5}},
	}

	// defective wins even when the unit is also maintenanced and loaned
	assert.Equal(t, StatusDefective, DeriveUnitStatus(3, maint, defects, loans))
	assert.Equal(t, StatusMaintenance, DeriveUnitStatus(4, maint, defects, loans))
	assert.Equal(t, StatusLoaned, DeriveUnitStatus(5, maint, defects, loans))
	assert.Equal(t, StatusAvailable, DeriveUnitStatus(6, maint, defects, loans))
}

func TestStatusBoard(t *testing.T) {
	defects := map[int]models.DefectRecord{2: {Reason: "sem bateria", Reporter: "Ana"}}
	loans := []models.Loan{{ID: "l1", TeacherName: "Bruno", Units: models.UnitList{1}}}

	board := StatusBoard(3, map[int]bool{}, defects, loans)
	assert.Len(t, board, 3)

	assert.Equal(t, StatusLoaned, board[0].Status)
	assert.Equal(t, "Bruno", board[0].LoanedTo)

	assert.Equal(t, StatusDefective, board[1].Status)
	if assert.NotNil(t, board[1].Defect) {
		assert.Equal(t, "sem bateria", board[1].Defect.Reason)
	}

	assert.Equal(t, StatusAvailable, board[2].Status)
	assert.Empty(t, board[2].LoanedTo)
}
