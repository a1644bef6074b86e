package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cems_backend/internals/constants"
	attendanceController "cems_backend/internals/features/events/attendance/controller"
	eventController "cems_backend/internals/features/events/event/controller"
	feedbackController "cems_backend/internals/features/events/feedback/controller"
	registrationController "cems_backend/internals/features/events/registration/controller"
	resourceController "cems_backend/internals/features/events/resource/controller"
	reminderController "cems_backend/internals/features/notifications/reminder/controller"
	"cems_backend/internals/helpers/mailer"
	authMiddleware "cems_backend/internals/middlewares/auth"
)

func EventRoutes(app *fiber.App, db *gorm.DB, m mailer.Mailer) {
	events := eventController.NewEventController(db, m)
	registrations := registrationController.NewRegistrationController(db)
	attendance := attendanceController.NewAttendanceController(db)
	feedback := feedbackController.NewFeedbackController(db)
	resources := resourceController.NewResourceController(db)
	reminders := reminderController.NewReminderController(db)

	auth := authMiddleware.AuthMiddleware()
	adminOnly := authMiddleware.OnlyRoles(constants.ErrAdminRequired, constants.RoleAdmin)
	studentOnly := authMiddleware.OnlyRoles(constants.ErrStudentRequired, constants.RoleStudent)
	organizerOrAdmin := authMiddleware.OnlyRoles(
		constants.ErrOrganizerOrAdminRequired,
		constants.OrganizerAndAdmin...,
	)

	// --- publik ---
	app.Get("/api/events", events.List)
	app.Get("/api/events/search", events.Search)
	app.Get("/api/events/:id/registrations/count", registrations.Count)
	app.Get("/api/events/:id/feedback", feedback.List)

	// --- organizer / admin ---
	app.Post("/api/events", auth, organizerOrAdmin, events.Create)
	app.Patch("/api/events/:id/approve", auth, adminOnly, events.Approve)
	app.Patch("/api/events/:id/reject", auth, adminOnly, events.Reject)
	app.Patch("/api/events/:id", auth, organizerOrAdmin, events.Update)
	app.Post("/api/events/:id/resources", auth, organizerOrAdmin, resources.Upload)
	app.Get("/api/events/:id/resources", auth, resources.List)
	app.Get("/api/events/:id/attendance", auth, organizerOrAdmin, attendance.Report)
	app.Post("/api/events/:id/reminder", auth, organizerOrAdmin, reminders.Schedule)

	// --- student ---
	app.Post("/api/events/:id/registrations", auth, studentOnly, registrations.Register)
	app.Delete("/api/events/:id/registrations", auth, studentOnly, registrations.Cancel)
	app.Post("/api/events/:id/feedback", auth, studentOnly, feedback.Create)
	app.Post("/api/events/:id/checkin", auth, studentOnly, attendance.CheckIn)
	app.Post("/api/events/:id/checkout", auth, studentOnly, attendance.CheckOut)
}
