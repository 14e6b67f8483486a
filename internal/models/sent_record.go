package models

import "time"

// ReminderKind identifies which email was sent to a candidate.
type ReminderKind string

const (
	KindConfirmation    ReminderKind = "confirmation"
	KindOneHourReminder ReminderKind = "one_hour_reminder"
	KindStartingNow     ReminderKind = "starting_now"
)

// SentRecord tracks which emails have been sent to avoid duplicates.
// At most one row may exist per (email, kind) pair.
type SentRecord struct {
	ID     uint         `gorm:"primaryKey" json:"id"`
	Email  string       `gorm:"size:255;not null;uniqueIndex:idx_sent_email_kind" json:"email"`
	Kind   ReminderKind `gorm:"size:20;not null;uniqueIndex:idx_sent_email_kind" json:"kind"`
	SentAt time.Time    `gorm:"not null" json:"sent_at"`
}

// TableName specifies the table name for the SentRecord model
func (SentRecord) TableName() string {
	return "sent_record"
}
