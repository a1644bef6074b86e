package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notificationModel "cems_backend/internals/features/notifications/notification/model"
	helper "cems_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// List mengembalikan outbox milik caller, terbaru dulu.
func (nc *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var rows []notificationModel.NotificationModel
	if err := nc.DB.
		Where("notification_user_id = ?", userID).
		Order("notification_created_at DESC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list notifikasi: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error listing notifications.")
	}
	return helper.Success(c, rows)
}

// Create menambah notifikasi untuk caller sendiri (dipakai frontend untuk self note).
func (nc *NotificationController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil || req.Message == "" {
		return helper.Error(c, fiber.StatusBadRequest, "message required.")
	}

	row := notificationModel.NotificationModel{
		UserID:  userID,
		Message: req.Message,
	}
	if err := nc.DB.Create(&row).Error; err != nil {
		log.Printf("[ERROR] insert notifikasi: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error creating notification.")
	}
	return helper.Message(c, fiber.StatusCreated, "Notification created.")
}

// MarkRead menandai satu notifikasi caller sebagai sudah dibaca.
// Scoped ke pemilik — id milik user lain tidak tersentuh.
func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid notification id.")
	}

	if err := nc.DB.Model(&notificationModel.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ?", notifID, userID).
		Update("notification_is_read", true).Error; err != nil {
		log.Printf("[ERROR] update notifikasi: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error updating notification.")
	}
	return helper.Message(c, fiber.StatusOK, "Notification marked as read.")
}
