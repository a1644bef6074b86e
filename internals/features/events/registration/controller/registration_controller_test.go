package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "cems_backend/internals/databases"
	courseModel "cems_backend/internals/features/courses/model"
	eventModel "cems_backend/internals/features/events/event/model"
	registrationModel "cems_backend/internals/features/events/registration/model"
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

// asUser meniru AuthMiddleware: identitas langsung ke Locals.
func asUser(u *userModel.UserModel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", u.ID.String())
		c.Locals("userRole", u.Role)
		return c.Next()
	}
}

func newApp(db *gorm.DB, caller *userModel.UserModel) *fiber.App {
	ctrl := NewRegistrationController(db)
	app := fiber.New()
	app.Post("/api/events/:id/registrations", asUser(caller), ctrl.Register)
	app.Delete("/api/events/:id/registrations", asUser(caller), ctrl.Cancel)
	app.Get("/api/events/:id/registrations/count", ctrl.Count)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	body := map[string]interface{}{}
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

func seedStudent(t *testing.T, db *gorm.DB, email string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{FullName: "S", Email: email, Password: "x", Role: "student"}
	if err := db.Create(u).Error; err != nil {
		t.Fatal(err)
	}
	return u
}

func seedEvent(t *testing.T, db *gorm.DB, status string, courseID *uuid.UUID) *eventModel.EventModel {
	t.Helper()
	e := &eventModel.EventModel{
		EventName: "E", Description: "d", EventTime: "10:00",
		OrganizerID: uuid.New(), Status: status, CourseID: courseID,
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatal(err)
	}
	return e
}

func TestRegisterOnPendingEventRejected(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db, "a@x.com")
	e := seedEvent(t, db, eventModel.StatusPending, nil)
	app := newApp(db, s)

	code, body := do(t, app, http.MethodPost, "/api/events/"+e.ID.String()+"/registrations")
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if body["error"] != "Event not approved yet." {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestRegisterUnknownEvent(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db, "a@x.com")
	app := newApp(db, s)

	code, _ := do(t, app, http.MethodPost, "/api/events/"+uuid.NewString()+"/registrations")
	if code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
}

func TestRegisterCancelReRegisterKeepsOneActiveRow(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db, "a@x.com")
	e := seedEvent(t, db, eventModel.StatusApproved, nil)
	app := newApp(db, s)
	path := "/api/events/" + e.ID.String() + "/registrations"

	if code, _ := do(t, app, http.MethodPost, path); code != http.StatusCreated {
		t.Fatalf("first register = %d, want 201", code)
	}

	// duplikat ditolak
	code, body := do(t, app, http.MethodPost, path)
	if code != http.StatusBadRequest || body["error"] != "Already registered." {
		t.Fatalf("duplicate register = %d %v", code, body)
	}

	if code, _ := do(t, app, http.MethodDelete, path); code != http.StatusOK {
		t.Fatalf("cancel = %d, want 200", code)
	}

	// cancel kedua: tidak ada registrasi aktif
	code, body = do(t, app, http.MethodDelete, path)
	if code != http.StatusBadRequest || body["error"] != "Not registered." {
		t.Fatalf("second cancel = %d %v", code, body)
	}

	// boleh daftar lagi setelah cancel — history cancelled tetap tersimpan
	if code, _ := do(t, app, http.MethodPost, path); code != http.StatusCreated {
		t.Fatalf("re-register = %d, want 201", code)
	}

	var active, total int64
	db.Model(&registrationModel.RegistrationModel{}).
		Where("registration_event_id = ? AND registration_user_id = ? AND registration_status = ?",
			e.ID, s.ID, registrationModel.StatusRegistered).
		Count(&active)
	db.Model(&registrationModel.RegistrationModel{}).Count(&total)
	if active != 1 {
		t.Fatalf("active rows = %d, want exactly 1", active)
	}
	if total != 2 {
		t.Fatalf("total rows = %d, want 2 (cancelled history retained)", total)
	}
}

func TestRegisterCourseScopedEventRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	s := seedStudent(t, db, "a@x.com")

	course := &courseModel.CourseModel{CourseName: "CS101"}
	if err := db.Create(course).Error; err != nil {
		t.Fatal(err)
	}
	e := seedEvent(t, db, eventModel.StatusApproved, &course.ID)
	app := newApp(db, s)
	path := "/api/events/" + e.ID.String() + "/registrations"

	code, body := do(t, app, http.MethodPost, path)
	if code != http.StatusForbidden {
		t.Fatalf("unenrolled register = %d, want 403 (%v)", code, body)
	}

	if err := db.Create(&courseModel.CourseEnrollmentModel{CourseID: course.ID, UserID: s.ID}).Error; err != nil {
		t.Fatal(err)
	}
	if code, _ := do(t, app, http.MethodPost, path); code != http.StatusCreated {
		t.Fatalf("enrolled register = %d, want 201", code)
	}
}

func TestCountReturnsActiveRegistrationsOnly(t *testing.T) {
	db := newTestDB(t)
	e := seedEvent(t, db, eventModel.StatusApproved, nil)

	s1 := seedStudent(t, db, "a@x.com")
	s2 := seedStudent(t, db, "b@x.com")

	if code, _ := do(t, newApp(db, s1), http.MethodPost, "/api/events/"+e.ID.String()+"/registrations"); code != http.StatusCreated {
		t.Fatal("seed register s1")
	}
	app2 := newApp(db, s2)
	if code, _ := do(t, app2, http.MethodPost, "/api/events/"+e.ID.String()+"/registrations"); code != http.StatusCreated {
		t.Fatal("seed register s2")
	}
	if code, _ := do(t, app2, http.MethodDelete, "/api/events/"+e.ID.String()+"/registrations"); code != http.StatusOK {
		t.Fatal("cancel s2")
	}

	code, body := do(t, app2, http.MethodGet, "/api/events/"+e.ID.String()+"/registrations/count")
	if code != http.StatusOK {
		t.Fatalf("count status = %d", code)
	}
	if n, _ := body["count"].(float64); n != 1 {
		t.Fatalf("count = %v, want 1", body["count"])
	}
}
