package database

import (
	"log"

	"gorm.io/gorm"

	courseModel "cems_backend/internals/features/courses/model"
	attendanceModel "cems_backend/internals/features/events/attendance/model"
	eventModel "cems_backend/internals/features/events/event/model"
	feedbackModel "cems_backend/internals/features/events/feedback/model"
	registrationModel "cems_backend/internals/features/events/registration/model"
	resourceModel "cems_backend/internals/features/events/resource/model"
	notificationModel "cems_backend/internals/features/notifications/notification/model"
	reminderModel "cems_backend/internals/features/notifications/reminder/model"
	userModel "cems_backend/internals/features/users/user/model"
)

// Migrate membuat semua tabel CEMS + index unik yang menjaga invariant registrasi.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&courseModel.CourseModel{},
		&courseModel.CourseEnrollmentModel{},
		&eventModel.EventModel{},
		&registrationModel.RegistrationModel{},
		&attendanceModel.AttendanceModel{},
		&feedbackModel.FeedbackModel{},
		&resourceModel.EventResourceModel{},
		&notificationModel.NotificationModel{},
		&reminderModel.ReminderModel{},
	); err != nil {
		return err
	}

	// Bagian khusus Postgres — DDL di bawah tidak valid di sqlite (test),
	// di sana cukup hook BeforeCreate + duplicate check berbasis query.
	if db.Dialector.Name() == "postgres" {
		// Default UUID di sisi DB; insert lewat GORM tetap diisi BeforeCreate.
		for table, column := range map[string]string{
			"users":              "user_id",
			"courses":            "course_id",
			"course_enrollments": "enrollment_id",
			"events":             "event_id",
			"registrations":      "registration_id",
			"event_attendance":   "attendance_id",
			"feedback":           "feedback_id",
			"event_resources":    "resource_id",
			"notifications":      "notification_id",
			"event_reminders":    "reminder_id",
		} {
			if err := db.Exec(
				"ALTER TABLE " + table + " ALTER COLUMN " + column + " SET DEFAULT gen_random_uuid()",
			).Error; err != nil {
				return err
			}
		}

		// Partial unique index: maksimal satu registrasi aktif per (event,user).
		// Pelanggaran balapan di-map controller ke "Already registered." (23505).
		if err := db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_registrations_active
			 ON registrations (registration_event_id, registration_user_id)
			 WHERE registration_status = 'registered'`,
		).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Migrasi schema selesai.")
	return nil
}
