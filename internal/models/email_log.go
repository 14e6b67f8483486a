package models

import (
	"time"

	"gorm.io/datatypes"
)

// Email delivery outcomes recorded in the log.
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLog is an audit entry for every send attempt, successful or not.
type EmailLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"size:255;not null;index" json:"email"`
	Kind      ReminderKind   `gorm:"size:20;not null" json:"kind"`
	Subject   string         `gorm:"size:255" json:"subject"`
	Status    string         `gorm:"size:10;not null" json:"status"` // sent or failed
	Error     string         `gorm:"type:text" json:"error,omitempty"`
	Candidate datatypes.JSON `gorm:"type:jsonb" json:"candidate"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
}

// TableName specifies the table name for the EmailLog model
func (EmailLog) TableName() string {
	return "email_log"
}
