package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ConversationTurn is one entry of the append-only triage log.
// Role is free text; the Role* constants are the values this service writes.
type ConversationTurn struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PatientID uint      `json:"patient_id" gorm:"not null;index"`
	Role      string    `json:"role" gorm:"size:50"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"type:timestamp;autoCreateTime"`
}

// TableName keeps the table name used by earlier deployments.
func (ConversationTurn) TableName() string {
	return "message_memory"
}

// All lists every persisted model, in migration order.
func All() []any {
	return []any{&Patient{}, &Appointment{}, &Prescription{}, &ConversationTurn{}}
}
