package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Attendance/src/controllers"
)

// adminRoutes manual sweep triggers
func adminRoutes(router fiber.Router, ac *controllers.AdminJobsController, auth fiber.Handler) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(auth)
	adminGroup.Post("/sweep", ac.RunSweepNow)
	adminGroup.Post("/events/:id/sweep", ac.RunEventSweepNow)
}
