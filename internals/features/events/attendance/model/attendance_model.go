package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceModel merepresentasikan tabel event_attendance.
// Satu baris per (event,user); check-in ulang meng-overwrite check_in_time
// (upsert idempoten lewat clause.OnConflict di controller).
type AttendanceModel struct {
	ID           uuid.UUID  `gorm:"column:attendance_id;type:uuid;primaryKey" json:"id"`
	EventID      uuid.UUID  `gorm:"column:attendance_event_id;type:uuid;not null;uniqueIndex:uq_attendance_event_user" json:"event_id"`
	UserID       uuid.UUID  `gorm:"column:attendance_user_id;type:uuid;not null;uniqueIndex:uq_attendance_event_user" json:"user_id"`
	CheckInTime  time.Time  `gorm:"column:attendance_check_in_time;not null" json:"check_in_time"`
	CheckOutTime *time.Time `gorm:"column:attendance_check_out_time" json:"check_out_time"`
	Attended     bool       `gorm:"column:attendance_attended;not null;default:false" json:"attended"`
}

func (AttendanceModel) TableName() string {
	return "event_attendance"
}

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// AttendanceReportRow gabungan attendance + identitas user untuk laporan organizer/admin.
type AttendanceReportRow struct {
	FullName     string     `gorm:"column:user_full_name" json:"full_name"`
	Email        string     `gorm:"column:user_email" json:"email"`
	CheckInTime  time.Time  `gorm:"column:attendance_check_in_time" json:"check_in_time"`
	CheckOutTime *time.Time `gorm:"column:attendance_check_out_time" json:"check_out_time"`
	Attended     bool       `gorm:"column:attendance_attended" json:"attended"`
}
