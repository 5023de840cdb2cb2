package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"
	"time"
)

const LoanTable = "device_loans"

// UnitList holds a set of fleet unit ids, stored as a JSON array column so a
// whole loan group lives in a single row.
type UnitList []int

func (l UnitList) Value() (driver.Value, error) {
	if l == nil {
		l = UnitList{}
	}
	b, err := json.Marshal([]int(l))
	return string(b), err
}

func (l *UnitList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, (*[]int)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]int)(l))
	}
	return errors.New("unitlist: unsupported column type")
}

func (l UnitList) Contains(id int) bool {
	for _, u := range l {
		if u == id {
			return true
		}
	}
	return false
}

// Minus returns the ids of l not present in other, sorted.
func (l UnitList) Minus(other UnitList) UnitList {
	out := UnitList{}
	for _, u := range l {
		if !other.Contains(u) {
			out = append(out, u)
		}
	}
	sort.Ints(out)
	return out
}

// Loan is a group checkout: one borrower, a set of units, open until
// returned. Units stay busy fleet-wide regardless of Day/StartTime.
type Loan struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"userId"`
	TeacherName string    `gorm:"size:255;not null" json:"teacherName"`
	Units       UnitList  `gorm:"type:text;not null" json:"chromebooks"`
	Day         string    `gorm:"size:10;index;not null" json:"day"`
	StartTime   string    `gorm:"size:11;not null" json:"time"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Display name of the previous holder after a transfer.
	TransferredFrom *string `gorm:"size:255" json:"transferredFrom,omitempty"`
}

func (Loan) TableName() string { return LoanTable }
