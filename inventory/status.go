// Package inventory derives per-unit fleet status from the three stores that
// contribute to it: the defect map, the maintenance set and the active loans.
package inventory

import (
	"school_booking_tool/models"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusLoaned      Status = "loaned"
	StatusMaintenance Status = "maintenance"
	StatusDefective   Status = "defective"
)

// DeriveUnitStatus applies the precedence
// defective > maintenance > loaned > available.
func DeriveUnitStatus(unitID int, maintenance map[int]bool, defects map[int]models.DefectRecord, activeLoans []models.Loan) Status {
	if _, ok := defects[unitID]; ok {
		return StatusDefective
	}
	if maintenance[unitID] {
		return StatusMaintenance
	}
	for _, l := range activeLoans {
		if l.Units.Contains(unitID) {
			return StatusLoaned
		}
	}
	return StatusAvailable
}

// UnitInfo is one cell of the fleet grid.
type UnitInfo struct {
	ID       int                  `json:"id"`
	Status   Status               `json:"status"`
	Defect   *models.DefectRecord `json:"defect,omitempty"`
	LoanedTo string               `json:"loanedTo,omitempty"`
}

// StatusBoard resolves every unit 1..fleetSize. Unit ids exist implicitly,
// only their status-contributing facts are stored.
func StatusBoard(fleetSize int, maintenance map[int]bool, defects map[int]models.DefectRecord, activeLoans []models.Loan) []UnitInfo {
	holder := make(map[int]string, fleetSize)
	for _, l := range activeLoans {
		for _, u := range l.Units {
			holder[u] = l.TeacherName
		}
	}

	board := make([]UnitInfo, 0, fleetSize)
	for id := 1; id <= fleetSize; id++ {
		info := UnitInfo{ID: id, Status: DeriveUnitStatus(id, maintenance, defects, activeLoans)}
		if d, ok := defects[id]; ok {
			dc := d
			info.Defect = &dc
		}
		if info.Status == StatusLoaned {
			info.LoanedTo = holder[id]
		}
		board = append(board, info)
	}
	return board
}
