package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "cems_backend/internals/databases"
	eventModel "cems_backend/internals/features/events/event/model"
	feedbackModel "cems_backend/internals/features/events/feedback/model"
	userModel "cems_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func asUser(u *userModel.UserModel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", u.ID.String())
		c.Locals("userRole", u.Role)
		return c.Next()
	}
}

func feedbackApp(db *gorm.DB, caller *userModel.UserModel) *fiber.App {
	ctrl := NewFeedbackController(db)
	app := fiber.New()
	app.Get("/api/events/:id/feedback", ctrl.List)
	app.Post("/api/events/:id/feedback", asUser(caller), ctrl.Create)
	return app
}

func fixtures(t *testing.T, db *gorm.DB) (*userModel.UserModel, *eventModel.EventModel) {
	t.Helper()
	student := &userModel.UserModel{FullName: "student", Email: "s@x.com", Password: "x", Role: "student"}
	if err := db.Create(student).Error; err != nil {
		t.Fatal(err)
	}
	event := &eventModel.EventModel{
		EventName: "Expo", Description: "d", EventTime: "10:00",
		OrganizerID: student.ID, Status: eventModel.StatusApproved,
	}
	if err := db.Create(event).Error; err != nil {
		t.Fatal(err)
	}
	return student, event
}

func postFeedback(t *testing.T, app *fiber.App, eventID string, payload interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/events/"+eventID+"/feedback", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	var decoded map[string]interface{}
	_ = json.Unmarshal(body, &decoded)
	return resp, decoded
}

func TestFeedbackRatingValidation(t *testing.T) {
	db := newTestDB(t)
	student, event := fixtures(t, db)
	app := feedbackApp(db, student)

	resp, body := postFeedback(t, app, event.ID.String(), map[string]interface{}{"comments": "no rating"})
	if resp.StatusCode != http.StatusBadRequest || body["error"] != "rating required." {
		t.Fatalf("missing rating: %d %v", resp.StatusCode, body)
	}

	for _, bad := range []int{-1, 6, 42} {
		resp, _ = postFeedback(t, app, event.ID.String(), map[string]interface{}{"rating": bad})
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("rating %d accepted", bad)
		}
	}

	resp, body = postFeedback(t, app, event.ID.String(), map[string]interface{}{"rating": 5, "comments": "great"})
	if resp.StatusCode != http.StatusCreated || body["message"] != "Feedback submitted." {
		t.Fatalf("valid rating: %d %v", resp.StatusCode, body)
	}
}

func TestFeedbackAppendOnly(t *testing.T) {
	db := newTestDB(t)
	student, event := fixtures(t, db)
	app := feedbackApp(db, student)

	// user yang sama boleh submit dua kali
	for _, rating := range []int{3, 4} {
		resp, _ := postFeedback(t, app, event.ID.String(), map[string]interface{}{"rating": rating})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("rating %d refused", rating)
		}
	}

	var n int64
	db.Model(&feedbackModel.FeedbackModel{}).Where("feedback_event_id = ?", event.ID).Count(&n)
	if n != 2 {
		t.Fatalf("feedback rows = %d, want 2", n)
	}
}

func TestFeedbackListPublicNewestFirst(t *testing.T) {
	db := newTestDB(t)
	student, event := fixtures(t, db)
	app := feedbackApp(db, student)

	for _, rating := range []int{1, 2} {
		if resp, _ := postFeedback(t, app, event.ID.String(), map[string]interface{}{"rating": rating}); resp.StatusCode != http.StatusCreated {
			t.Fatal("seed feedback failed")
		}
	}

	// List tanpa auth — endpoint publik
	req := httptest.NewRequest(http.MethodGet, "/api/events/"+event.ID.String()+"/feedback", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	var rows []feedbackModel.FeedbackModel
	if err := json.Unmarshal(raw, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
}
