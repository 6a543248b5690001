// error_utils.go
package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/storage"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// StatusFor maps engine and storage errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, attendance.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, attendance.ErrInvalidInput):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, attendance.ErrInvalidState):
		return fiber.StatusBadRequest
	case errors.Is(err, storage.ErrTransientIO):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// HandleServiceError writes err with the status StatusFor picks.
func HandleServiceError(c *fiber.Ctx, err error) error {
	return HandleError(c, StatusFor(err), err.Error())
}
