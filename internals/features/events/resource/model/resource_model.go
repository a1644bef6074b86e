package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventResourceModel merepresentasikan tabel event_resources
// (dokumen pendukung event, diserve statis lewat prefix /files).
type EventResourceModel struct {
	ID           uuid.UUID `gorm:"column:resource_id;type:uuid;primaryKey" json:"id"`
	EventID      uuid.UUID `gorm:"column:resource_event_id;type:uuid;not null;index" json:"event_id"`
	ResourceName string    `gorm:"column:resource_name;size:255;not null" json:"resource_name"`
	ResourceURL  string    `gorm:"column:resource_url;size:255;not null" json:"resource_url"`
	UploadedAt   time.Time `gorm:"column:resource_uploaded_at;autoCreateTime" json:"uploaded_at"`
}

func (EventResourceModel) TableName() string {
	return "event_resources"
}

func (m *EventResourceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
