package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"cems_backend/internals/configs"
	database "cems_backend/internals/databases"
	reminderScheduler "cems_backend/internals/features/notifications/reminder/scheduler"
	helper "cems_backend/internals/helpers"
	"cems_backend/internals/helpers/mailer"
	"cems_backend/internals/metrics"
	middlewares "cems_backend/internals/middlewares"
	routes "cems_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	metrics.Register()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             16 << 20, // sedikit di atas limit upload 15MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// seluruh error boundary dipetakan ke {"error": message}
			return helper.FromFiberError(c, err)
		},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s",
			id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + migrasi
	database.ConnectDB()
	database.TunePool()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("❌ Migrasi gagal: %v", err)
	}

	// ✉️ mail transport (opsional — SMTP_HOST kosong = outbox only)
	mail := mailer.NewSMTPMailer(
		configs.SMTPHost, configs.SMTPPort,
		configs.SMTPUser, configs.SMTPPass, configs.SMTPFrom,
	)

	// ⏱ reminder scheduler setelah DB siap
	schedCtx, stopSched := context.WithCancel(context.Background())
	sched := reminderScheduler.NewScheduler(database.DB, mail)
	sched.Start(schedCtx)

	// 📂 resource event diserve statis
	uploadDir := configs.UploadDir()
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("❌ Gagal membuat upload dir: %v", err)
	}
	app.Static("/files", uploadDir)

	// ✅ Routes
	routes.BaseRoutes(app, database.DB)
	routes.SetupRoutes(app, database.DB, mail)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stopSched()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
