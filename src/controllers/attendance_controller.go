package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/utils"
)

type AttendanceController struct {
	ledger *attendance.Ledger
	now    func() time.Time
}

func NewAttendanceController(ledger *attendance.Ledger, now func() time.Time) *AttendanceController {
	return &AttendanceController{ledger: ledger, now: now}
}

// GetEventAttendance godoc
// @Summary      Attendance records of an event
// @Tags         attendance
// @Produce      json
// @Param        eventId  path  string  true  "Event ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /attendance/{eventId} [get]
func (ac *AttendanceController) GetEventAttendance(c *fiber.Ctx) error {
	records, err := ac.ledger.Get(c.UserContext(), c.Params("eventId"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Attendance retrieved successfully",
		"data":    records,
	})
}

// ToggleAttendance godoc
// @Summary      Mark or unmark a student
// @Description  Removes the student's record if one exists, otherwise marks them on time, late or absent depending on the event window. The body is optional; the server clock is used when "at" is omitted.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        eventId    path  string                 true   "Event ID"
// @Param        studentId  path  string                 true   "Student ID"
// @Param        body       body  models.ToggleRequest   false  "Mark time"
// @Success      200  {object}  models.ToggleResult
// @Failure      400  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      503  {object}  models.ErrorResponse
// @Router       /attendance/{eventId}/{studentId}/toggle [post]
func (ac *AttendanceController) ToggleAttendance(c *fiber.Ctx) error {
	at := ac.now()
	if len(c.Body()) > 0 {
		var req models.ToggleRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body")
		}
		if req.At != nil {
			at = *req.At
		}
	}

	result, err := ac.ledger.Toggle(c.UserContext(), c.Params("eventId"), c.Params("studentId"), at)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
