package controller

import (
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cems_backend/internals/configs"
	eventModel "cems_backend/internals/features/events/event/model"
	resourceModel "cems_backend/internals/features/events/resource/model"
	helper "cems_backend/internals/helpers"
)

const maxResourceSize = 15 << 20 // 15MB

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".ppt":  {},
	".pptx": {},
	".doc":  {},
	".docx": {},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

type ResourceController struct {
	DB *gorm.DB
}

func NewResourceController(db *gorm.DB) *ResourceController {
	return &ResourceController{DB: db}
}

// Upload menyimpan dokumen event ke UPLOAD_DIR dan mencatat URL /files-nya.
func (rc *ResourceController) Upload(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}

	var event eventModel.EventModel
	if err := rc.DB.First(&event, "event_id = ?", eventID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "File required.")
	}
	if fh.Size > maxResourceSize {
		return helper.Error(c, fiber.StatusBadRequest, "File exceeds 15MB limit.")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return helper.Error(c, fiber.StatusBadRequest, "Only document files allowed.")
	}

	safe := whitespaceRe.ReplaceAllString(filepath.Base(fh.Filename), "_")
	stored := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), safe)
	if err := c.SaveFile(fh, filepath.Join(configs.UploadDir(), stored)); err != nil {
		log.Printf("[ERROR] simpan file resource: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error uploading resource.")
	}

	row := resourceModel.EventResourceModel{
		EventID:      eventID,
		ResourceName: fh.Filename,
		ResourceURL:  "/files/" + stored,
	}
	if err := rc.DB.Create(&row).Error; err != nil {
		log.Printf("[ERROR] insert resource: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error uploading resource.")
	}

	return helper.Message(c, fiber.StatusCreated, "Resource uploaded.")
}

// List dokumen sebuah event (butuh login, role bebas).
func (rc *ResourceController) List(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Event not found.")
	}

	var rows []resourceModel.EventResourceModel
	if err := rc.DB.
		Where("resource_event_id = ?", eventID).
		Order("resource_uploaded_at DESC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list resource: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Server error fetching resources.")
	}
	return helper.Success(c, rows)
}
