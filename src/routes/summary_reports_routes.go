package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Attendance/src/controllers"
)

// summaryReportsRoutes ตั้งค่า routes สำหรับ summary reports
func summaryReportsRoutes(router fiber.Router, rc *controllers.SummaryReportController, ec *controllers.EventController) {
	summaryReportsGroup := router.Group("/summary-report")

	// GET /api/summary-report/dashboard - กราฟ course / year level / tracker + ตารางวันนี้
	summaryReportsGroup.Get("/dashboard", rc.GetDashboard)

	// GET /api/summary-report/summary - on time / late / absent / not marked (วันนี้ + ทั้งหมด)
	summaryReportsGroup.Get("/summary", rc.GetAttendanceSummary)

	summaryReportsGroup.Get("/courses", rc.GetCourseSummary)
	summaryReportsGroup.Get("/year-levels", rc.GetYearLevelSummary)

	// GET /api/reports/events/:id/export - ดาวน์โหลด roster เป็น xlsx
	router.Get("/reports/events/:id/export", ec.ExportEventRoster)
}
