package models

import "time"

const SystemConfigTable = "system_config"

// SystemConfig rows are singleton documents keyed by name ("maintenance",
// "defects"), each holding a JSON value replaced whole on every write.
type SystemConfig struct {
	Key       string    `gorm:"primaryKey;size:40" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SystemConfig) TableName() string { return SystemConfigTable }

// DefectRecord is one entry of the defects map, keyed by unit id.
type DefectRecord struct {
	Reason   string    `json:"reason"`
	Reporter string    `json:"reporter"`
	Date     time.Time `json:"date"`
}
