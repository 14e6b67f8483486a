package services

import (
	"time"

	"workshopmailer/internal/models"

	"gorm.io/gorm"
)

// SentStore persists which (email, kind) pairs were already delivered, plus
// the per-attempt audit log.
type SentStore interface {
	AlreadySent(email string, kind models.ReminderKind) (bool, error)
	Record(email string, kind models.ReminderKind, at time.Time) error
	LogAttempt(entry *models.EmailLog) error
}

// GormSentStore is the database-backed SentStore.
type GormSentStore struct {
	db *gorm.DB
}

func NewGormSentStore(db *gorm.DB) *GormSentStore {
	return &GormSentStore{db: db}
}

func (s *GormSentStore) AlreadySent(email string, kind models.ReminderKind) (bool, error) {
	var count int64
	err := s.db.Model(&models.SentRecord{}).
		Where("email = ? AND kind = ?", email, kind).
		Count(&count).Error
	return count > 0, err
}

func (s *GormSentStore) Record(email string, kind models.ReminderKind, at time.Time) error {
	record := models.SentRecord{
		Email:  email,
		Kind:   kind,
		SentAt: at,
	}
	return s.db.Create(&record).Error
}

func (s *GormSentStore) LogAttempt(entry *models.EmailLog) error {
	return s.db.Create(entry).Error
}
