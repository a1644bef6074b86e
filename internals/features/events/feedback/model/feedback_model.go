package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackModel merepresentasikan tabel feedback — append only,
// user boleh submit lebih dari sekali untuk event yang sama.
type FeedbackModel struct {
	ID        uuid.UUID `gorm:"column:feedback_id;type:uuid;primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"column:feedback_event_id;type:uuid;not null;index" json:"event_id"`
	UserID    uuid.UUID `gorm:"column:feedback_user_id;type:uuid;not null" json:"user_id"`
	Rating    int       `gorm:"column:feedback_rating;not null" json:"rating"`
	Comments  string    `gorm:"column:feedback_comments;not null;default:''" json:"comments"`
	CreatedAt time.Time `gorm:"column:feedback_created_at;autoCreateTime" json:"created_at"`
}

func (FeedbackModel) TableName() string {
	return "feedback"
}

func (m *FeedbackModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
