package models

import "time"

const RoomBookingTable = "rooms_bookings"

// RoomBooking reserves the shared Lex room for one [StartTime, EndTime)
// interval on a day. Day is "2006-01-02", times are "15:04"; lexicographic
// order matches chronological order for both.
type RoomBooking struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Day         string    `gorm:"size:10;index;not null" json:"day"`
	StartTime   string    `gorm:"size:5;not null" json:"start"`
	EndTime     string    `gorm:"size:5;not null" json:"end"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"userId"`
	TeacherName string    `gorm:"size:255;not null" json:"teacherName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (RoomBooking) TableName() string { return RoomBookingTable }
