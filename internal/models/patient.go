package models

import "gorm.io/datatypes"

// Patient defines the structure for patient records.
type Patient struct {
	ID       uint              `json:"id" gorm:"primaryKey"`
	Name     string            `json:"name" gorm:"size:200;not null"`
	Phone    *string           `json:"phone" gorm:"size:50"` // Optional field
	Metadata datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
}
