package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "Backend-Attendance/docs"
	"Backend-Attendance/src/config"
	"Backend-Attendance/src/controllers"
	"Backend-Attendance/src/database"
	"Backend-Attendance/src/jobs"
	"Backend-Attendance/src/routes"
	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/services/events"
	"Backend-Attendance/src/services/students"
	"Backend-Attendance/src/services/summary_reports"
	"Backend-Attendance/src/services/sweeper"
	"Backend-Attendance/src/utils"
)

// @title           Attendance API
// @version         1.0
// @description     Event attendance marking, absence sweeping and attendance reports.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// เชื่อมต่อ storage ตาม STORAGE_DRIVER
	store, err := database.OpenStore(ctx, *cfg)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(closeCtx)
	}()

	// Redis / Asynq เป็น optional; ไม่มีก็ใช้ lock และ ticker ใน process
	if err := database.InitRedis(cfg.RedisURI); err != nil {
		log.Printf("⚠️ Warning: %v. Continuing without Redis.", err)
	}
	database.InitAsynq()
	defer database.CloseAsynq()
	defer database.CloseRedis()

	classifier := attendance.NewClassifier(cfg.Location, cfg.LateThreshold)
	ledger := attendance.NewLedger(store, classifier)
	reports := summary_reports.NewService(store, classifier)
	ledger.Subscribe(reports.OnLedgerChange)

	sweeps := sweeper.NewService(store, ledger,
		sweeper.WithWorkers(cfg.SweepWorkers),
		sweeper.WithLocker(utils.SweepLocker(), cfg.SweepLockTTL),
	)

	var scheduler events.SweepScheduler
	if database.AsynqClient != nil {
		scheduler = jobs.NewAsynqScheduler(database.AsynqClient)
	}
	eventService := events.NewService(store, classifier, scheduler, ledger)
	studentService := students.NewService(store, ledger)

	handlers := jobs.NewHandlers(sweeps, time.Now)
	if database.AsynqClient != nil && cfg.RunWorker {
		worker, err := jobs.NewWorker(database.RedisConnOpt(), cfg.SweepInterval, handlers)
		if err != nil {
			log.Fatalf("❌ Failed to set up asynq worker: %v", err)
		}
		if err := worker.Start(); err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer worker.Shutdown()
	} else if database.AsynqClient == nil {
		interval, err := jobs.ParseEvery(cfg.SweepInterval)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Printf("⚠️ Asynq not available. Sweeping closed events every %s in process.", interval)
		go jobs.RunTicker(ctx, interval, func(ctx context.Context) {
			if _, err := sweeps.SweepClosedEvents(ctx, time.Now()); err != nil {
				log.Println("❌ Periodic sweep failed:", err)
			}
		})
	}

	// สร้าง app instance
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	// ✅ เปิดใช้งาน CORS Middleware
	origins := cfg.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// รวม routes จากแต่ละ module
	routes.InitRoutes(app, routes.Handlers{
		Attendance: controllers.NewAttendanceController(ledger, time.Now),
		Events:     controllers.NewEventController(eventService, reports, time.Now),
		Students:   controllers.NewStudentController(studentService),
		Reports:    controllers.NewSummaryReportController(reports, time.Now),
		AdminJobs:  controllers.NewAdminJobsController(sweeps, time.Now),
		JWTSecret:  cfg.JWTSecret,
	})

	go func() {
		<-ctx.Done()
		log.Println("⏩ Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("⚠️ Warning: shutdown: %v", err)
		}
	}()

	// เริ่มเซิร์ฟเวอร์
	log.Println("Server is running on port " + cfg.AppURI)
	if err := app.Listen(fmt.Sprintf(":%s", url.PathEscape(cfg.AppURI))); err != nil {
		log.Fatal(err)
	}
}
