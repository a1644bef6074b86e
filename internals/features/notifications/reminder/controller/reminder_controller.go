package controller

import (
	"log"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cems_backend/internals/constants"
	eventModel "cems_backend/internals/features/events/event/model"
	reminderModel "cems_backend/internals/features/notifications/reminder/model"
	helper "cems_backend/internals/helpers"
)

var localTimeRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}) (\d{2}:\d{2})$`)

type ReminderController struct {
	DB *gorm.DB

	// Now bisa diganti di test untuk cek "waktu lampau" deterministik.
	Now func() time.Time
}

func NewReminderController(db *gorm.DB) *ReminderController {
	return &ReminderController{DB: db, Now: time.Now}
}

// Schedule upsert reminder satu event (organizer pemilik / admin).
// Reschedule menggantikan jadwal lama dan mereset is_sent=false.
func (rc *ReminderController) Schedule(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var event eventModel.EventModel
	if err := rc.DB.First(&event, "event_id = ?", eventID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}
	if event.Status != eventModel.StatusApproved {
		return helper.Error(c, fiber.StatusBadRequest, "Event must be approved first.")
	}
	if helper.GetUserRole(c) != constants.RoleAdmin.String() && event.OrganizerID != userID {
		return helper.Error(c, fiber.StatusForbidden, "Not authorized.")
	}

	var req struct {
		Local string `json:"local"`
	}
	if err := c.BodyParser(&req); err != nil || req.Local == "" {
		return helper.Error(c, fiber.StatusBadRequest, `Provide "local": "YYYY-MM-DD HH:mm".`)
	}
	if !localTimeRe.MatchString(req.Local) {
		return helper.Error(c, fiber.StatusBadRequest, "local time format invalid.")
	}

	when, err := time.ParseInLocation("2006-01-02 15:04", req.Local, time.Local)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "local time invalid.")
	}
	if when.Before(rc.Now()) {
		return helper.Error(c, fiber.StatusBadRequest, "local time is in the past.")
	}

	row := reminderModel.ReminderModel{
		EventID:      eventID,
		ReminderTime: when,
		IsSent:       false,
	}
	if err := rc.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "reminder_event_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"reminder_time":    when,
			"reminder_is_sent": false,
		}),
	}).Create(&row).Error; err != nil {
		log.Printf("[ERROR] upsert reminder: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error scheduling reminder.")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, fiber.Map{
		"message":       "Reminder scheduled.",
		"reminder_time": when.Format("2006-01-02 15:04:05"),
	})
}
