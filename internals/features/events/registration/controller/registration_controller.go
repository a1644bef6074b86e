package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "cems_backend/internals/features/courses/model"
	eventModel "cems_backend/internals/features/events/event/model"
	registrationModel "cems_backend/internals/features/events/registration/model"
	helper "cems_backend/internals/helpers"
)

type RegistrationController struct {
	DB *gorm.DB
}

func NewRegistrationController(db *gorm.DB) *RegistrationController {
	return &RegistrationController{DB: db}
}

// Register RSVP student ke event approved.
// Urutan guard: 404 event → 400 belum approved → 403 bukan anggota course →
// 400 duplikat. Duplicate check query-first; partial unique index menangkap
// balapan yang lolos dan tetap di-map ke "Already registered.".
func (rc *RegistrationController) Register(c *fiber.Ctx) error {
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
		return helper.Error(c, fiber.StatusBadRequest, "Event not approved yet.")
	}

	if event.CourseID != nil {
		enrolled, err := courseModel.IsEnrolled(rc.DB, *event.CourseID, userID)
		if err != nil {
			log.Printf("[ERROR] cek enrollment: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Server error registering.")
		}
		if !enrolled {
			return helper.Error(c, fiber.StatusForbidden, "Not enrolled in course")
		}
	}

	active, err := registrationModel.HasActive(rc.DB, eventID, userID)
	if err != nil {
		log.Printf("[ERROR] cek registrasi aktif: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error registering.")
	}
	if active {
		return helper.Error(c, fiber.StatusBadRequest, "Already registered.")
	}

	row := registrationModel.RegistrationModel{
		EventID: eventID,
		UserID:  userID,
		Status:  registrationModel.StatusRegistered,
	}
	if err := rc.DB.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusBadRequest, "Already registered.")
		}
		log.Printf("[ERROR] insert registrasi: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error registering.")
	}

	return helper.Message(c, fiber.StatusCreated, "Registration successful.")
}

// Cancel membalik status registrasi aktif jadi cancelled (soft delete).
func (rc *RegistrationController) Cancel(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	res := rc.DB.Model(&registrationModel.RegistrationModel{}).
		Where("registration_event_id = ? AND registration_user_id = ? AND registration_status = ?",
			eventID, userID, registrationModel.StatusRegistered).
		Update("registration_status", registrationModel.StatusCancelled)
	if res.Error != nil {
		log.Printf("[ERROR] cancel registrasi: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error canceling registration.")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Not registered.")
	}

	return helper.Message(c, fiber.StatusOK, "Registration canceled.")
}

// Count endpoint publik: jumlah RSVP aktif sebuah event.
func (rc *RegistrationController) Count(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}

	var n int64
	if err := rc.DB.Model(&registrationModel.RegistrationModel{}).
		Where("registration_event_id = ? AND registration_status = ?",
			eventID, registrationModel.StatusRegistered).
		Count(&n).Error; err != nil {
		log.Printf("[ERROR] hitung registrasi: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error counting registrations.")
	}

	return helper.Success(c, fiber.Map{"count": n})
}
