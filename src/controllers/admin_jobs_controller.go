package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"Backend-Attendance/src/services/sweeper"
	"Backend-Attendance/src/utils"
)

type AdminJobsController struct {
	sweeper *sweeper.Service
	now     func() time.Time
}

func NewAdminJobsController(s *sweeper.Service, now func() time.Time) *AdminJobsController {
	return &AdminJobsController{sweeper: s, now: now}
}

// RunSweepNow godoc
// @Summary      Sweep every closed event now (in-process)
// @Description  Marks every eligible student without a record as absent in each closed event. Failures are reported per event; the other events are still swept.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  models.SweepReport
// @Failure      207  {object}  models.SweepReport
// @Failure      503  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/sweep [post]
func (ac *AdminJobsController) RunSweepNow(c *fiber.Ctx) error {
	result, err := ac.sweeper.SweepClosedEvents(c.UserContext(), ac.now())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	status := fiber.StatusOK
	if len(result.Errors) > 0 {
		status = fiber.StatusMultiStatus
	}
	return c.Status(status).JSON(result.Report())
}

// RunEventSweepNow godoc
// @Summary      Sweep one closed event now (in-process)
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "Event ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/events/{id}/sweep [post]
func (ac *AdminJobsController) RunEventSweepNow(c *fiber.Ctx) error {
	id := c.Params("id")
	swept, err := ac.sweeper.SweepEvent(c.UserContext(), id, ac.now())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "executed", "eventId": id, "swept": swept})
}
