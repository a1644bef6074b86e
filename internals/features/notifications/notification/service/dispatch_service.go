package service

import (
	"log"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cems_backend/internals/constants"
	eventModel "cems_backend/internals/features/events/event/model"
	notificationModel "cems_backend/internals/features/notifications/notification/model"
	userModel "cems_backend/internals/features/users/user/model"
	"cems_backend/internals/helpers/mailer"
	"cems_backend/internals/metrics"
)

// DispatchEventNotification menulis satu baris outbox per penerima lalu
// (kalau SMTP dikonfigurasi) mengirim satu email batch ber-BCC.
// Penerima: semua student bila event tanpa course, kalau tidak hanya student
// yang terdaftar di course event tersebut.
//
// Outbox adalah side effect otoritatif — kegagalan email hanya dicatat,
// tidak pernah dipropagasi ke caller.
func DispatchEventNotification(db *gorm.DB, m mailer.Mailer, eventID uuid.UUID, subject, body string) error {
	var event eventModel.EventModel
	if err := db.First(&event, "event_id = ?", eventID).Error; err != nil {
		return err
	}

	recipients, err := resolveRecipients(db, event.CourseID)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	payload, _ := sonic.Marshal(map[string]string{"event_id": eventID.String()})

	rows := make([]notificationModel.NotificationModel, 0, len(recipients))
	emails := make([]string, 0, len(recipients))
	for _, r := range recipients {
		rows = append(rows, notificationModel.NotificationModel{
			UserID:  r.ID,
			Message: body,
			Type:    notificationModel.TypeEventUpdate,
			Data:    datatypes.JSON(payload),
		})
		emails = append(emails, r.Email)
	}

	if err := db.Create(&rows).Error; err != nil {
		return err
	}
	metrics.NotificationsWritten.Add(float64(len(rows)))

	if m != nil && m.Configured() {
		if err := m.Send(emails, subject, body); err != nil {
			log.Printf("[ERROR] email notifikasi gagal: %v", err)
			metrics.MailsFailed.Inc()
		} else {
			metrics.MailsSent.Inc()
		}
	}
	return nil
}

func resolveRecipients(db *gorm.DB, courseID *uuid.UUID) ([]userModel.UserModel, error) {
	q := db.Model(&userModel.UserModel{}).
		Where("user_role = ?", constants.RoleStudent.String())
	if courseID != nil {
		q = q.Where(
			"user_id IN (SELECT enrollment_user_id FROM course_enrollments WHERE enrollment_course_id = ?)",
			*courseID,
		)
	}

	var users []userModel.UserModel
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
