// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	routeDetails "cems_backend/internals/route/details"

	"cems_backend/internals/helpers/mailer"
)

// SetupRoutes memasang seluruh route CEMS. Mail transport diinject dari main
// supaya handler bisa dites pakai fake mailer.
func SetupRoutes(app *fiber.App, db *gorm.DB, m mailer.Mailer) {
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	log.Println("[INFO] Setting up EventRoutes...")
	routeDetails.EventRoutes(app, db, m)

	log.Println("[INFO] Setting up NotificationRoutes...")
	routeDetails.NotificationRoutes(app, db)
}
