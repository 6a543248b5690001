package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/services/students"
	"Backend-Attendance/src/utils"
)

type StudentController struct {
	students *students.Service
}

func NewStudentController(s *students.Service) *StudentController {
	return &StudentController{students: s}
}

// splitList "BSIT,BSCS" -> ["BSIT", "BSCS"]
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	out := make([]string, 0)
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// GetStudents godoc
// @Summary      List students
// @Tags         students
// @Produce      json
// @Param        course     query  string  false  "Comma separated courses"
// @Param        yearLevel  query  string  false  "Comma separated year levels"
// @Param        search     query  string  false  "Name or student number"
// @Success      200  {object}  models.SuccessResponse
// @Router       /students [get]
func (sc *StudentController) GetStudents(c *fiber.Ctx) error {
	filter := models.StudentFilter{
		Courses:    splitList(c.Query("course")),
		YearLevels: splitList(c.Query("yearLevel")),
		Search:     c.Query("search"),
	}
	list, err := sc.students.List(c.UserContext(), filter)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Students retrieved successfully",
		"data":    list,
	})
}

// GetStudentByID godoc
// @Summary      Get a student
// @Tags         students
// @Produce      json
// @Param        id  path  string  true  "Student ID"
// @Success      200  {object}  models.Student
// @Failure      404  {object}  models.ErrorResponse
// @Router       /students/{id} [get]
func (sc *StudentController) GetStudentByID(c *fiber.Ctx) error {
	student, err := sc.students.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(student)
}

// CreateStudent godoc
// @Summary      Add a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        body  body  models.StudentRequest  true  "Student"
// @Success      201  {object}  models.Student
// @Failure      422  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /students [post]
func (sc *StudentController) CreateStudent(c *fiber.Ctx) error {
	var req models.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	student, err := sc.students.Create(c.UserContext(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(student)
}

// UpdateStudent godoc
// @Summary      Update a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Student ID"
// @Param        body  body  models.StudentRequest  true  "Student"
// @Success      200  {object}  models.Student
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /students/{id} [put]
func (sc *StudentController) UpdateStudent(c *fiber.Ctx) error {
	var req models.StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	student, err := sc.students.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(student)
}

// DeleteStudent godoc
// @Summary      Remove a student
// @Tags         students
// @Param        id  path  string  true  "Student ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /students/{id} [delete]
func (sc *StudentController) DeleteStudent(c *fiber.Ctx) error {
	if err := sc.students.Delete(c.UserContext(), c.Params("id")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Student deleted successfully"})
}
