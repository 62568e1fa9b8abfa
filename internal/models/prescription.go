package models

import "time"

// Prescription is read-only over HTTP; rows come from the ingestion command.
type Prescription struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PatientID    uint      `json:"patient_id" gorm:"not null;index"`
	Medication   string    `json:"medication" gorm:"size:300"`
	Instructions string    `json:"instructions" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"type:timestamp;autoCreateTime;index"`
}
