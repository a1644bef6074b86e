package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseModel minimal — CEMS tidak punya CRUD course, tabel ini hanya
// menopang event ber-scope course dan resolusi penerima notifikasi.
type CourseModel struct {
	ID         uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"id"`
	CourseName string    `gorm:"column:course_name;size:100;not null" json:"course_name"`
	CreatedAt  time.Time `gorm:"column:course_created_at;autoCreateTime" json:"created_at"`
}

func (CourseModel) TableName() string {
	return "courses"
}

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// CourseEnrollmentModel merepresentasikan tabel course_enrollments
type CourseEnrollmentModel struct {
	ID        uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"id"`
	CourseID  uuid.UUID `gorm:"column:enrollment_course_id;type:uuid;not null;uniqueIndex:uq_enrollment_course_user" json:"course_id"`
	UserID    uuid.UUID `gorm:"column:enrollment_user_id;type:uuid;not null;uniqueIndex:uq_enrollment_course_user" json:"user_id"`
	CreatedAt time.Time `gorm:"column:enrollment_created_at;autoCreateTime" json:"created_at"`
}

func (CourseEnrollmentModel) TableName() string {
	return "course_enrollments"
}

func (m *CourseEnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsEnrolled cek keanggotaan user pada course.
func IsEnrolled(db *gorm.DB, courseID, userID uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&CourseEnrollmentModel{}).
		Where("enrollment_course_id = ? AND enrollment_user_id = ?", courseID, userID).
		Count(&n).Error
	return n > 0, err
}
