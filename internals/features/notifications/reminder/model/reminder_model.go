package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderModel merepresentasikan tabel event_reminders.
// Maksimal satu reminder per event (unique event_id). Reschedule = upsert
// yang sekaligus mereset is_sent=false, jadi jadwal baru menggantikan, bukan menumpuk.
type ReminderModel struct {
	ID           uuid.UUID `gorm:"column:reminder_id;type:uuid;primaryKey" json:"id"`
	EventID      uuid.UUID `gorm:"column:reminder_event_id;type:uuid;not null;uniqueIndex" json:"event_id"`
	ReminderTime time.Time `gorm:"column:reminder_time;not null;index" json:"reminder_time"`
	IsSent       bool      `gorm:"column:reminder_is_sent;not null;default:false" json:"is_sent"`
	CreatedAt    time.Time `gorm:"column:reminder_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:reminder_updated_at;autoUpdateTime" json:"updated_at"`
}

func (ReminderModel) TableName() string {
	return "event_reminders"
}

func (m *ReminderModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
