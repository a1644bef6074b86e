package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationController "cems_backend/internals/features/notifications/notification/controller"
	authMiddleware "cems_backend/internals/middlewares/auth"
)

func NotificationRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := notificationController.NewNotificationController(db)
	auth := authMiddleware.AuthMiddleware()

	app.Get("/api/notifications", auth, ctrl.List)
	app.Post("/api/notifications", auth, ctrl.Create)
	app.Patch("/api/notifications/:id/read", auth, ctrl.MarkRead)
}
