package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status lifecycle event: pending (awal) → approved | rejected.
// Tidak ada transisi balik ke pending; admin boleh menimpa approved/rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// EventModel merepresentasikan tabel events di database
type EventModel struct {
	ID          uuid.UUID  `gorm:"column:event_id;type:uuid;primaryKey" json:"id"`
	EventName   string     `gorm:"column:event_name;size:150;not null" json:"event_name"`
	Description string     `gorm:"column:event_description;not null" json:"description"`
	EventDate   time.Time  `gorm:"column:event_date;type:date;not null" json:"event_date"`
	EventTime   string     `gorm:"column:event_time;size:10;not null" json:"event_time"`
	VenueID     *uuid.UUID `gorm:"column:event_venue_id;type:uuid" json:"venue_id"`
	CategoryID  *uuid.UUID `gorm:"column:event_category_id;type:uuid" json:"category_id"`
	CourseID    *uuid.UUID `gorm:"column:event_course_id;type:uuid" json:"course_id"`
	OrganizerID uuid.UUID  `gorm:"column:event_organizer_id;type:uuid;not null;index" json:"organizer_id"`
	Status      string     `gorm:"column:event_status;type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time  `gorm:"column:event_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:event_updated_at;autoUpdateTime" json:"updated_at"`
}

func (EventModel) TableName() string {
	return "events"
}

func (m *EventModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = StatusPending
	}
	return nil
}
