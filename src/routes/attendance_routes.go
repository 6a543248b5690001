package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Attendance/src/controllers"
)

func attendanceRoutes(router fiber.Router, ac *controllers.AttendanceController, auth fiber.Handler) {
	attendanceGroup := router.Group("/attendance")
	attendanceGroup.Get("/:eventId", ac.GetEventAttendance)

	// POST /api/attendance/:eventId/:studentId/toggle - เช็คชื่อ / ยกเลิกการเช็คชื่อ
	attendanceGroup.Post("/:eventId/:studentId/toggle", auth, ac.ToggleAttendance)
}
