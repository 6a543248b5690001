package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Attendance/src/controllers"
)

// eventRoutes กำหนดเส้นทางสำหรับ Event (attendance sheet) API
func eventRoutes(router fiber.Router, ec *controllers.EventController, auth fiber.Handler) {
	eventGroup := router.Group("/events")
	eventGroup.Get("/", ec.GetEvents)                // ?period=today|week|month&course=&yearLevel=&search=
	eventGroup.Get("/today", ec.GetTodayEvents)      // events ที่จัดวันนี้
	eventGroup.Get("/:id", ec.GetEventByID)          // ดึง event ตาม ID
	eventGroup.Get("/:id/roster", ec.GetEventRoster) // นักศึกษาที่มีสิทธิ์ + สถานะ

	eventGroup.Post("/", auth, ec.CreateEvent)
	eventGroup.Put("/:id", auth, ec.UpdateEvent)
	eventGroup.Delete("/:id", auth, ec.DeleteEvent) // ลบ event และข้อมูลการเช็คชื่อ
}
