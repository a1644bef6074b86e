package controller

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cems_backend/internals/constants"
	"cems_backend/internals/features/events/event/dto"
	eventModel "cems_backend/internals/features/events/event/model"
	notifService "cems_backend/internals/features/notifications/notification/service"
	helper "cems_backend/internals/helpers"
	"cems_backend/internals/helpers/mailer"
)

type EventController struct {
	DB     *gorm.DB
	Mailer mailer.Mailer
}

func NewEventController(db *gorm.DB, m mailer.Mailer) *EventController {
	return &EventController{DB: db, Mailer: m}
}

// Create membuat event baru berstatus pending, dimiliki caller.
func (ec *EventController) Create(c *fiber.Ctx) error {
	organizerID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if req.EventName == "" || req.Description == "" || req.EventDate == "" || req.EventTime == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Missing required fields.")
	}

	date, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "event_date must be YYYY-MM-DD.")
	}

	event := eventModel.EventModel{
		EventName:   req.EventName,
		Description: req.Description,
		EventDate:   date,
		EventTime:   req.EventTime,
		OrganizerID: organizerID,
		Status:      eventModel.StatusPending,
	}
	if event.VenueID, err = parseOptionalUUID(req.VenueID, "venue_id"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if event.CategoryID, err = parseOptionalUUID(req.CategoryID, "category_id"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if event.CourseID, err = parseOptionalUUID(req.CourseID, "course_id"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ec.DB.Create(&event).Error; err != nil {
		log.Printf("[ERROR] insert event: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error creating event.")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, fiber.Map{
		"message": "Event created.",
		"event":   event,
	})
}

// List endpoint publik — hanya event approved yang keluar.
func (ec *EventController) List(c *fiber.Ctx) error {
	var events []eventModel.EventModel
	if err := ec.DB.
		Where("event_status = ?", eventModel.StatusApproved).
		Order("event_date, event_time").
		Find(&events).Error; err != nil {
		log.Printf("[ERROR] list events: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error fetching events.")
	}
	return helper.Success(c, events)
}

// Search filter bebas — tanpa filter status implisit, kecuali caller minta.
func (ec *EventController) Search(c *fiber.Ctx) error {
	q := ec.DB.Model(&eventModel.EventModel{})

	if keyword := strings.ToLower(strings.TrimSpace(c.Query("keyword"))); keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where("LOWER(event_name) LIKE ? OR LOWER(event_description) LIKE ?", pattern, pattern)
	}
	if status := strings.ToLower(strings.TrimSpace(c.Query("status"))); status != "" {
		q = q.Where("LOWER(event_status) = ?", status)
	}
	if start := c.Query("start"); start != "" {
		q = q.Where("event_date >= ?", start)
	}
	if end := c.Query("end"); end != "" {
		q = q.Where("event_date <= ?", end)
	}
	if venue := c.Query("venue"); venue != "" {
		q = q.Where("event_venue_id = ?", venue)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("event_category_id = ?", category)
	}
	if organizer := c.Query("organizer"); organizer != "" {
		q = q.Where("event_organizer_id = ?", organizer)
	}

	var events []eventModel.EventModel
	if err := q.Order("event_date, event_time").Find(&events).Error; err != nil {
		log.Printf("[ERROR] search events: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error searching events.")
	}
	return helper.Success(c, events)
}

// Approve transisi admin-only ke approved. Idempotent overwrite: approve atas
// event rejected tetap diterima, tidak ada jalan balik ke pending.
func (ec *EventController) Approve(c *fiber.Ctx) error {
	event, err := ec.findEvent(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ec.DB.Model(event).Update("event_status", eventModel.StatusApproved).Error; err != nil {
		log.Printf("[ERROR] approve event: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error approving event.")
	}

	if err := notifService.DispatchEventNotification(
		ec.DB, ec.Mailer, event.ID,
		"New Event Approved",
		fmt.Sprintf("Event %q approved.", event.EventName),
	); err != nil {
		log.Printf("[ERROR] dispatch approve notif: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error approving event.")
	}

	return helper.Message(c, fiber.StatusOK, "Event approved.")
}

// Reject transisi admin-only ke rejected — tanpa broadcast.
func (ec *EventController) Reject(c *fiber.Ctx) error {
	event, err := ec.findEvent(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := ec.DB.Model(event).Update("event_status", eventModel.StatusRejected).Error; err != nil {
		log.Printf("[ERROR] reject event: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error rejecting event.")
	}
	return helper.Message(c, fiber.StatusOK, "Event rejected.")
}

// Update edit field non-status, hanya organizer pemilik atau admin.
func (ec *EventController) Update(c *fiber.Ctx) error {
	event, err := ec.findEvent(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	if helper.GetUserRole(c) != constants.RoleAdmin.String() && event.OrganizerID != userID {
		return helper.Error(c, fiber.StatusForbidden, "Not authorized.")
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}

	updates := map[string]interface{}{}
	if req.EventName != nil {
		updates["event_name"] = *req.EventName
	}
	if req.Description != nil {
		updates["event_description"] = *req.Description
	}
	if req.EventDate != nil {
		date, err := time.Parse("2006-01-02", *req.EventDate)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "event_date must be YYYY-MM-DD.")
		}
		updates["event_date"] = date
	}
	if req.EventTime != nil {
		updates["event_time"] = *req.EventTime
	}
	if req.VenueID != nil {
		id, err := parseOptionalUUID(req.VenueID, "venue_id")
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		updates["event_venue_id"] = id
	}
	if req.CategoryID != nil {
		id, err := parseOptionalUUID(req.CategoryID, "category_id")
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		updates["event_category_id"] = id
	}

	if len(updates) > 0 {
		if err := ec.DB.Model(event).Updates(updates).Error; err != nil {
			log.Printf("[ERROR] update event: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Server error updating event.")
		}
	}

	if err := notifService.DispatchEventNotification(
		ec.DB, ec.Mailer, event.ID,
		"Event Updated",
		fmt.Sprintf("Event %q has updates.", event.EventName),
	); err != nil {
		log.Printf("[ERROR] dispatch update notif: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error updating event.")
	}

	return helper.Message(c, fiber.StatusOK, "Event updated.")
}

func (ec *EventController) findEvent(c *fiber.Ctx) (*eventModel.EventModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Event not found.")
	}
	var event eventModel.EventModel
	if err := ec.DB.First(&event, "event_id = ?", id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Event not found.")
	}
	return &event, nil
}

func parseOptionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a valid UUID", field)
	}
	return &id, nil
}
