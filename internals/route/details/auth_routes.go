package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "cems_backend/internals/features/users/auth/controller"
	"cems_backend/internals/middlewares"
	authMiddleware "cems_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	app.Post("/api/users", middlewares.RegisterRateLimiter(), ctrl.Register)
	app.Post("/api/auth/login", middlewares.LoginRateLimiter(), ctrl.Login)
	app.Get("/api/auth/me", authMiddleware.AuthMiddleware(), ctrl.Me)
}
