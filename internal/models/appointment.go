package models

import "time"

// Appointment is a scheduled visit. PatientID is not backed by a foreign key.
type Appointment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PatientID   uint      `json:"patient_id" gorm:"not null;index"`
	ScheduledAt time.Time `json:"scheduled_at" gorm:"type:timestamp;not null"`
	Notes       string    `json:"notes" gorm:"type:text;default:''"`
	CreatedAt   time.Time `json:"created_at" gorm:"type:timestamp;autoCreateTime"`
}
