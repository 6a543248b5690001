package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"Backend-Attendance/src/services/summary_reports"
	"Backend-Attendance/src/utils"
)

type SummaryReportController struct {
	reports *summary_reports.Service
	now     func() time.Time
}

func NewSummaryReportController(reports *summary_reports.Service, now func() time.Time) *SummaryReportController {
	return &SummaryReportController{reports: reports, now: now}
}

// GetDashboard godoc
// @Summary      Dashboard charts and today's attendance table
// @Tags         reports
// @Produce      json
// @Success      200  {object}  models.Dashboard
// @Failure      503  {object}  models.ErrorResponse
// @Router       /summary-report/dashboard [get]
func (rc *SummaryReportController) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := rc.reports.Dashboard(c.UserContext(), rc.now())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dashboard)
}

// GetAttendanceSummary godoc
// @Summary      On time / late / absent / not marked counters
// @Tags         reports
// @Produce      json
// @Success      200  {object}  models.AttendanceSummary
// @Failure      422  {object}  models.ErrorResponse
// @Router       /summary-report/summary [get]
func (rc *SummaryReportController) GetAttendanceSummary(c *fiber.Ctx) error {
	summary, err := rc.reports.Summary(c.UserContext(), rc.now())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(summary)
}

// GetCourseSummary godoc
// @Summary      Attendance percentage per course
// @Tags         reports
// @Produce      json
// @Success      200  {object}  models.SuccessResponse
// @Router       /summary-report/courses [get]
func (rc *SummaryReportController) GetCourseSummary(c *fiber.Ctx) error {
	courses, err := rc.reports.Courses(c.UserContext())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Course summary retrieved successfully",
		"data":    courses,
	})
}

// GetYearLevelSummary godoc
// @Summary      Attendance percentage per year level
// @Tags         reports
// @Produce      json
// @Success      200  {object}  models.SuccessResponse
// @Router       /summary-report/year-levels [get]
func (rc *SummaryReportController) GetYearLevelSummary(c *fiber.Ctx) error {
	levels, err := rc.reports.YearLevels(c.UserContext())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Year level summary retrieved successfully",
		"data":    levels,
	})
}
