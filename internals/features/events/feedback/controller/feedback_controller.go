package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	feedbackModel "cems_backend/internals/features/events/feedback/model"
	helper "cems_backend/internals/helpers"
)

var validate = validator.New()

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// List publik — feedback sebuah event, terbaru dulu.
func (fc *FeedbackController) List(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}

	var rows []feedbackModel.FeedbackModel
	if err := fc.DB.
		Where("feedback_event_id = ?", eventID).
		Order("feedback_created_at DESC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list feedback: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error listing feedback.")
	}
	return helper.Success(c, rows)
}

// Create menambah feedback student — append only, boleh berkali-kali.
func (fc *FeedbackController) Create(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req struct {
		Rating   int    `json:"rating" validate:"required,min=1,max=5"`
		Comments string `json:"comments"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if req.Rating == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "rating required.")
	}
	if err := validate.Struct(req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "rating must be between 1 and 5.")
	}

	row := feedbackModel.FeedbackModel{
		EventID:  eventID,
		UserID:   userID,
		Rating:   req.Rating,
		Comments: req.Comments,
	}
	if err := fc.DB.Create(&row).Error; err != nil {
		log.Printf("[ERROR] insert feedback: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error creating feedback.")
	}

	return helper.Message(c, fiber.StatusCreated, "Feedback submitted.")
}
