package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	eventModel "cems_backend/internals/features/events/event/model"
	notifService "cems_backend/internals/features/notifications/notification/service"
	reminderModel "cems_backend/internals/features/notifications/reminder/model"
	"cems_backend/internals/helpers/mailer"
	"cems_backend/internals/metrics"
)

// Scheduler mem-poll reminder yang jatuh tempo dan mendispatch notifikasi
// "upcoming event". Satu instance per proses; delivery at-least-once —
// is_sent baru di-set setelah dispatch sukses, jadi tick yang gagal
// mengulang set due yang sama pada tick berikutnya.
type Scheduler struct {
	DB       *gorm.DB
	Mailer   mailer.Mailer
	Interval time.Duration

	// Now injectable supaya test bisa memajukan waktu virtual tanpa menunggu 60 detik.
	Now func() time.Time
}

func NewScheduler(db *gorm.DB, m mailer.Mailer) *Scheduler {
	return &Scheduler{
		DB:       db,
		Mailer:   m,
		Interval: 60 * time.Second,
		Now:      time.Now,
	}
}

// Start menjalankan loop sampai ctx dibatalkan. Error per-tick hanya dicatat;
// loop tidak pernah mematikan proses.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		log.Printf("[REMINDER] scheduler aktif (interval %s)", s.Interval)
		for {
			select {
			case <-ctx.Done():
				log.Println("[REMINDER] scheduler berhenti")
				return
			case <-ticker.C:
				if n, err := s.RunTick(); err != nil {
					metrics.ReminderTickErrors.Inc()
					log.Printf("[REMINDER ERROR] tick gagal: %v", err)
				} else if n > 0 {
					log.Printf("[REMINDER] %d reminder terkirim", n)
				}
			}
		}
	}()
}

// RunTick memproses semua reminder dengan is_sent=false dan due <= now:
// dispatch notifikasi lalu tandai sent. Dipanggil langsung oleh test.
func (s *Scheduler) RunTick() (int, error) {
	var due []reminderModel.ReminderModel
	if err := s.DB.
		Where("reminder_is_sent = ? AND reminder_time <= ?", false, s.Now()).
		Find(&due).Error; err != nil {
		return 0, err
	}

	sent := 0
	for _, r := range due {
		var event eventModel.EventModel
		if err := s.DB.First(&event, "event_id = ?", r.EventID).Error; err != nil {
			log.Printf("[REMINDER ERROR] event %s tidak ditemukan: %v", r.EventID, err)
			continue
		}

		msg := fmt.Sprintf("Reminder: %q is coming up soon.", event.EventName)
		if err := notifService.DispatchEventNotification(s.DB, s.Mailer, event.ID, "Event Reminder", msg); err != nil {
			// biarkan is_sent=false — dicoba lagi tick berikutnya
			log.Printf("[REMINDER ERROR] dispatch %s: %v", event.ID, err)
			continue
		}

		if err := s.DB.Model(&reminderModel.ReminderModel{}).
			Where("reminder_id = ?", r.ID).
			Update("reminder_is_sent", true).Error; err != nil {
			log.Printf("[REMINDER ERROR] tandai sent %s: %v", r.ID, err)
			continue
		}

		metrics.RemindersDispatched.Inc()
		sent++
	}
	return sent, nil
}
