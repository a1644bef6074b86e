package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusRegistered = "registered"
	StatusCancelled  = "cancelled"
)

// RegistrationModel merepresentasikan tabel registrations (RSVP).
// Soft delete: cancel hanya membalik status, history tetap tersimpan.
// Invariant "maksimal satu baris registered per (event,user)" dijaga dua lapis:
// duplicate check di controller + partial unique index (lihat databases.Migrate).
type RegistrationModel struct {
	ID        uuid.UUID `gorm:"column:registration_id;type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"column:registration_event_id;type:uuid;not null;index" json:"event_id"`
	UserID    uuid.UUID `gorm:"column:registration_user_id;type:uuid;not null;index" json:"user_id"`
	Status    string    `gorm:"column:registration_status;type:varchar(20);not null;default:'registered'" json:"status"`
	CreatedAt time.Time `gorm:"column:registration_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:registration_updated_at;autoUpdateTime" json:"updated_at"`
}

func (RegistrationModel) TableName() string {
	return "registrations"
}

func (m *RegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = StatusRegistered
	}
	return nil
}

// HasActive cek apakah ada registrasi aktif untuk (event,user).
func HasActive(db *gorm.DB, eventID, userID uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&RegistrationModel{}).
		Where("registration_event_id = ? AND registration_user_id = ? AND registration_status = ?",
			eventID, userID, StatusRegistered).
		Count(&n).Error
	return n > 0, err
}
