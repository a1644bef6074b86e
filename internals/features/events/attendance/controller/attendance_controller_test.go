package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "cems_backend/internals/databases"
	attendanceModel "cems_backend/internals/features/events/attendance/model"
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

func asUser(u *userModel.UserModel) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", u.ID.String())
		c.Locals("userRole", u.Role)
		return c.Next()
	}
}

func newApp(db *gorm.DB, caller *userModel.UserModel) *fiber.App {
	ctrl := NewAttendanceController(db)
	app := fiber.New()
	app.Post("/api/events/:id/checkin", asUser(caller), ctrl.CheckIn)
	app.Post("/api/events/:id/checkout", asUser(caller), ctrl.CheckOut)
	app.Get("/api/events/:id/attendance", asUser(caller), ctrl.Report)
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

type fixture struct {
	db      *gorm.DB
	student *userModel.UserModel
	event   *eventModel.EventModel
}

func setup(t *testing.T, eventStatus string, withRSVP bool) fixture {
	t.Helper()
	db := newTestDB(t)

	s := &userModel.UserModel{FullName: "S", Email: "s@x.com", Password: "x", Role: "student"}
	if err := db.Create(s).Error; err != nil {
		t.Fatal(err)
	}
	e := &eventModel.EventModel{
		EventName: "E", Description: "d", EventTime: "10:00",
		OrganizerID: uuid.New(), Status: eventStatus,
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatal(err)
	}
	if withRSVP {
		reg := &registrationModel.RegistrationModel{EventID: e.ID, UserID: s.ID, Status: registrationModel.StatusRegistered}
		if err := db.Create(reg).Error; err != nil {
			t.Fatal(err)
		}
	}
	return fixture{db: db, student: s, event: e}
}

func TestCheckInRequiresActiveRegistration(t *testing.T) {
	f := setup(t, eventModel.StatusApproved, false)
	app := newApp(f.db, f.student)

	code, body := do(t, app, http.MethodPost, "/api/events/"+f.event.ID.String()+"/checkin")
	if code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", code)
	}
	if body["error"] != "You did not RSVP for this event." {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestCheckInRequiresApprovedEvent(t *testing.T) {
	f := setup(t, eventModel.StatusPending, true)
	app := newApp(f.db, f.student)

	code, body := do(t, app, http.MethodPost, "/api/events/"+f.event.ID.String()+"/checkin")
	if code != http.StatusBadRequest || body["error"] != "Event not approved." {
		t.Fatalf("got %d %v", code, body)
	}
}

func TestCheckInIsIdempotentUpsert(t *testing.T) {
	f := setup(t, eventModel.StatusApproved, true)
	app := newApp(f.db, f.student)
	path := "/api/events/" + f.event.ID.String() + "/checkin"

	if code, _ := do(t, app, http.MethodPost, path); code != http.StatusCreated {
		t.Fatalf("first check-in failed")
	}

	var first attendanceModel.AttendanceModel
	if err := f.db.First(&first).Error; err != nil {
		t.Fatal(err)
	}

	time.Sleep(10 * time.Millisecond)
	if code, _ := do(t, app, http.MethodPost, path); code != http.StatusCreated {
		t.Fatalf("second check-in failed")
	}

	var rows []attendanceModel.AttendanceModel
	if err := f.db.Find(&rows).Error; err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("attendance rows = %d, want 1 (upsert)", len(rows))
	}
	if !rows[0].CheckInTime.After(first.CheckInTime) {
		t.Fatal("re-check-in did not refresh check_in_time")
	}
	if !rows[0].Attended {
		t.Fatal("attended flag not set")
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	f := setup(t, eventModel.StatusApproved, true)
	app := newApp(f.db, f.student)

	code, body := do(t, app, http.MethodPost, "/api/events/"+f.event.ID.String()+"/checkout")
	if code != http.StatusNotFound || body["error"] != "No check-in record found." {
		t.Fatalf("got %d %v", code, body)
	}
}

func TestCheckOutSetsCheckoutTime(t *testing.T) {
	f := setup(t, eventModel.StatusApproved, true)
	app := newApp(f.db, f.student)
	base := "/api/events/" + f.event.ID.String()

	if code, _ := do(t, app, http.MethodPost, base+"/checkin"); code != http.StatusCreated {
		t.Fatal("check-in failed")
	}
	if code, _ := do(t, app, http.MethodPost, base+"/checkout"); code != http.StatusOK {
		t.Fatal("check-out failed")
	}

	var row attendanceModel.AttendanceModel
	if err := f.db.First(&row).Error; err != nil {
		t.Fatal(err)
	}
	if row.CheckOutTime == nil {
		t.Fatal("check_out_time not set")
	}
}

func TestReportOnlyForOwnerOrAdmin(t *testing.T) {
	f := setup(t, eventModel.StatusApproved, true)
	base := "/api/events/" + f.event.ID.String()

	if code, _ := do(t, newApp(f.db, f.student), http.MethodPost, base+"/checkin"); code != http.StatusCreated {
		t.Fatal("check-in failed")
	}

	// organizer lain: bukan pemilik → 403
	other := &userModel.UserModel{FullName: "O", Email: "o@x.com", Password: "x", Role: "organizer"}
	if err := f.db.Create(other).Error; err != nil {
		t.Fatal(err)
	}
	if code, _ := do(t, newApp(f.db, other), http.MethodGet, base+"/attendance"); code != http.StatusForbidden {
		t.Fatalf("non-owner organizer got %d, want 403", code)
	}

	// admin boleh
	admin := &userModel.UserModel{FullName: "A", Email: "ad@x.com", Password: "x", Role: "admin"}
	if err := f.db.Create(admin).Error; err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, base+"/attendance", nil)
	resp, err := newApp(f.db, admin).Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin report status = %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	var rows []map[string]interface{}
	if err := json.Unmarshal(raw, &rows); err != nil {
		t.Fatalf("report body: %v", err)
	}
	if len(rows) != 1 || rows[0]["email"] != "s@x.com" {
		t.Fatalf("report rows = %v", rows)
	}
}
