package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Attendance/src/controllers"
	"Backend-Attendance/src/middleware"
)

// Handlers every controller the API mounts
type Handlers struct {
	Attendance *controllers.AttendanceController
	Events     *controllers.EventController
	Students   *controllers.StudentController
	Reports    *controllers.SummaryReportController
	AdminJobs  *controllers.AdminJobsController
	JWTSecret  string
}

func InitRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api")
	auth := middleware.AuthJWT(h.JWTSecret)

	eventRoutes(api, h.Events, auth)
	studentRoutes(api, h.Students, auth)
	attendanceRoutes(api, h.Attendance, auth)
	summaryReportsRoutes(api, h.Reports, h.Events)
	adminRoutes(api, h.AdminJobs, auth)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
