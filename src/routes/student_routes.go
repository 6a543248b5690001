package routes

import (
	"github.com/gofiber/fiber/v2"

	"Backend-Attendance/src/controllers"
)

// studentRoutes กำหนดเส้นทางสำหรับ Student API
func studentRoutes(router fiber.Router, sc *controllers.StudentController, auth fiber.Handler) {
	studentGroup := router.Group("/students")
	studentGroup.Get("/", sc.GetStudents)       // ?course=BSIT,BSCS&yearLevel=1st Year&search=
	studentGroup.Get("/:id", sc.GetStudentByID) // ดึงข้อมูลนักศึกษาตาม ID

	studentGroup.Post("/", auth, sc.CreateStudent)      // เพิ่มนักศึกษา
	studentGroup.Put("/:id", auth, sc.UpdateStudent)    // อัปเดตข้อมูลนักศึกษา
	studentGroup.Delete("/:id", auth, sc.DeleteStudent) // ลบนักศึกษา
}
