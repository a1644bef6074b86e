package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TypeGeneral     = "general"
	TypeEventUpdate = "event_update"
)

// NotificationModel merepresentasikan tabel notifications (outbox per user).
// Frontend mem-poll outbox ini; kolom data menyimpan payload tambahan
// (mis. event_id sumber broadcast) sebagai JSONB.
type NotificationModel struct {
	ID        uuid.UUID      `gorm:"column:notification_id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"column:notification_user_id;type:uuid;not null;index" json:"user_id"`
	Message   string         `gorm:"column:notification_message;not null" json:"message"`
	Type      string         `gorm:"column:notification_type;type:varchar(30);not null;default:'general'" json:"notification_type"`
	IsRead    bool           `gorm:"column:notification_is_read;not null;default:false" json:"is_read"`
	Data      datatypes.JSON `gorm:"column:notification_data" json:"data,omitempty"`
	CreatedAt time.Time      `gorm:"column:notification_created_at;autoCreateTime" json:"created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Type == "" {
		m.Type = TypeGeneral
	}
	return nil
}
