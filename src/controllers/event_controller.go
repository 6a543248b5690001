package controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/services/events"
	"Backend-Attendance/src/services/summary_reports"
	"Backend-Attendance/src/utils"
)

type EventController struct {
	events  *events.Service
	reports *summary_reports.Service
	now     func() time.Time
}

func NewEventController(es *events.Service, reports *summary_reports.Service, now func() time.Time) *EventController {
	return &EventController{events: es, reports: reports, now: now}
}

// GetEvents godoc
// @Summary      List events
// @Tags         events
// @Produce      json
// @Param        period     query  string  false  "all | today | week | month"
// @Param        course     query  string  false  "Course"
// @Param        yearLevel  query  string  false  "Year level"
// @Param        search     query  string  false  "Title search"
// @Success      200  {object}  models.SuccessResponse
// @Failure      422  {object}  models.ErrorResponse
// @Router       /events [get]
func (ec *EventController) GetEvents(c *fiber.Ctx) error {
	var filter models.EventFilter
	if err := c.QueryParser(&filter); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	list, err := ec.events.List(c.UserContext(), filter, ec.now())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Events retrieved successfully",
		"data":    list,
	})
}

// GetTodayEvents godoc
// @Summary      Events happening today
// @Tags         events
// @Produce      json
// @Success      200  {object}  models.SuccessResponse
// @Router       /events/today [get]
func (ec *EventController) GetTodayEvents(c *fiber.Ctx) error {
	list, err := ec.events.Today(c.UserContext(), ec.now())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Today's events retrieved successfully",
		"data":    list,
	})
}

// GetEventByID godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id  path  string  true  "Event ID"
// @Success      200  {object}  models.Event
// @Failure      404  {object}  models.ErrorResponse
// @Router       /events/{id} [get]
func (ec *EventController) GetEventByID(c *fiber.Ctx) error {
	event, err := ec.events.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(event)
}

// CreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body  models.EventRequest  true  "Event"
// @Success      201  {object}  models.Event
// @Failure      400  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /events [post]
func (ec *EventController) CreateEvent(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	event, err := ec.events.Create(c.UserContext(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// UpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "Event ID"
// @Param        body  body  models.EventRequest  true  "Event"
// @Success      200  {object}  models.Event
// @Failure      404  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /events/{id} [put]
func (ec *EventController) UpdateEvent(c *fiber.Ctx) error {
	var req models.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	event, err := ec.events.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(event)
}

// DeleteEvent godoc
// @Summary      Delete an event and its attendance
// @Tags         events
// @Param        id  path  string  true  "Event ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /events/{id} [delete]
func (ec *EventController) DeleteEvent(c *fiber.Ctx) error {
	if err := ec.events.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Event deleted successfully"})
}

// GetEventRoster godoc
// @Summary      Eligible students of an event with their status
// @Tags         events
// @Produce      json
// @Param        id  path  string  true  "Event ID"
// @Success      200  {object}  models.EventRoster
// @Failure      404  {object}  models.ErrorResponse
// @Router       /events/{id}/roster [get]
func (ec *EventController) GetEventRoster(c *fiber.Ctx) error {
	roster, err := ec.reports.EventRoster(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(roster)
}

// ExportEventRoster godoc
// @Summary      Download an event roster as xlsx
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "Event ID"
// @Success      200  {file}  file
// @Failure      404  {object}  models.ErrorResponse
// @Router       /reports/events/{id}/export [get]
func (ec *EventController) ExportEventRoster(c *fiber.Ctx) error {
	var buf bytes.Buffer
	name, err := ec.reports.ExportEventRoster(c.UserContext(), c.Params("id"), &buf)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
