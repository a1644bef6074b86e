package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cems_backend/internals/constants"
	attendanceModel "cems_backend/internals/features/events/attendance/model"
	eventModel "cems_backend/internals/features/events/event/model"
	registrationModel "cems_backend/internals/features/events/registration/model"
	helper "cems_backend/internals/helpers"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

// CheckIn upsert kehadiran: butuh event approved + registrasi aktif.
// Check-in ulang idempoten — baris yang sama, check_in_time di-refresh.
func (ac *AttendanceController) CheckIn(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var event eventModel.EventModel
	if err := ac.DB.First(&event, "event_id = ?", eventID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}
	if event.Status != eventModel.StatusApproved {
		return helper.Error(c, fiber.StatusBadRequest, "Event not approved.")
	}

	active, err := registrationModel.HasActive(ac.DB, eventID, userID)
	if err != nil {
		log.Printf("[ERROR] cek registrasi: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error during check-in.")
	}
	if !active {
		return helper.Error(c, fiber.StatusForbidden, "You did not RSVP for this event.")
	}

	row := attendanceModel.AttendanceModel{
		EventID:     eventID,
		UserID:      userID,
		CheckInTime: time.Now(),
		Attended:    true,
	}
	if err := ac.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "attendance_event_id"},
			{Name: "attendance_user_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"attendance_check_in_time": row.CheckInTime,
			"attendance_attended":      true,
		}),
	}).Create(&row).Error; err != nil {
		log.Printf("[ERROR] upsert attendance: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error during check-in.")
	}

	return helper.Message(c, fiber.StatusCreated, "Checked-in successfully.")
}

// CheckOut mengisi check_out_time pada baris kehadiran yang sudah ada.
func (ac *AttendanceController) CheckOut(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	res := ac.DB.Model(&attendanceModel.AttendanceModel{}).
		Where("attendance_event_id = ? AND attendance_user_id = ?", eventID, userID).
		Update("attendance_check_out_time", time.Now())
	if res.Error != nil {
		log.Printf("[ERROR] checkout: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error during check-out.")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "No check-in record found.")
	}

	return helper.Message(c, fiber.StatusOK, "Checked-out successfully.")
}

// Report laporan kehadiran per event untuk organizer pemilik atau admin,
// join identitas user, urut check-in ascending.
func (ac *AttendanceController) Report(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var event eventModel.EventModel
	if err := ac.DB.First(&event, "event_id = ?", eventID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}

	isOwner := event.OrganizerID == userID
	if helper.GetUserRole(c) != constants.RoleAdmin.String() && !isOwner {
		return helper.Error(c, fiber.StatusForbidden, "Not authorized.")
	}

	var rows []attendanceModel.AttendanceReportRow
	if err := ac.DB.Table("event_attendance").
		Select("users.user_full_name, users.user_email, event_attendance.attendance_check_in_time, event_attendance.attendance_check_out_time, event_attendance.attendance_attended").
		Joins("JOIN users ON users.user_id = event_attendance.attendance_user_id").
		Where("event_attendance.attendance_event_id = ?", eventID).
		Order("event_attendance.attendance_check_in_time ASC").
		Scan(&rows).Error; err != nil {
		log.Printf("[ERROR] attendance report: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error generating report.")
	}

	return helper.Success(c, rows)
}
