package models

import "time"

const HistoryTable = "history_log"

// History statuses, kept in the wording the school's reports use.
const (
	StatusReturned          = "Devolvido"
	StatusPartiallyReturned = "Devolvido Parcialmente"
	StatusTransferred       = "Transferido"
)

// HistoryEntry is an append-only snapshot written when a loan ends, shrinks
// or changes hands. Never updated or deleted afterwards.
type HistoryEntry struct {
	ID          string   `gorm:"type:uuid;primaryKey" json:"id"`
	LoanID      string   `gorm:"type:uuid;index" json:"loanId"`
	UserID      string   `gorm:"type:uuid;not null" json:"userId"`
	TeacherName string   `gorm:"size:255;not null" json:"teacherName"`
	Units       UnitList `gorm:"type:text;not null" json:"chromebooks"`
	Day         string   `gorm:"size:10;index;not null" json:"day"`
	StartTime   string   `gorm:"size:11" json:"time"`
	Status      string   `gorm:"size:30;not null" json:"status"`

	ReturnedAt      *time.Time `json:"returnedAt,omitempty"`
	TransferredAt   *time.Time `json:"transferredAt,omitempty"`
	TransferredTo   *string    `gorm:"size:255" json:"transferredTo,omitempty"`
	TransferredFrom *string    `gorm:"size:255" json:"transferredFrom,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (HistoryEntry) TableName() string { return HistoryTable }
