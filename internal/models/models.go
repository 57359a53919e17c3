package models

import (
	"time"
)

// DefaultLastCityKey names the preference slot holding the last successful city
const DefaultLastCityKey = "last_city"

// Preference is one named string slot in the preferences table
type Preference struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"` // Always UTC
}

func (Preference) TableName() string {
	return "preferences"
}
