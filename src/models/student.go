package models

// Standard year levels, in dashboard order
var YearLevels = []string{"1st Year", "2nd Year", "3rd Year", "4th Year"}

// Student นักศึกษา
type Student struct {
	ID            string `json:"id" example:"665f1b2c9d1e8a0012ab34ce"`
	StudentNumber string `json:"studentNumber" example:"2021-00123"`
	Name          string `json:"name" example:"Juan Dela Cruz"`
	Course        string `json:"course" example:"BSIT"`
	YearLevel     string `json:"yrlvl" example:"1st Year"`
	Profile       string `json:"profile" example:"https://cdn.example.com/students/juan.jpg"`
}

type StudentRequest struct {
	StudentNumber string `json:"studentNumber" validate:"required,max=32"`
	Name          string `json:"name" validate:"required,max=200"`
	Course        string `json:"course" validate:"required"`
	YearLevel     string `json:"yrlvl" validate:"required"`
	Profile       string `json:"profile" validate:"omitempty,url"`
}

func (r StudentRequest) ToStudent() Student {
	return Student{
		StudentNumber: r.StudentNumber,
		Name:          r.Name,
		Course:        r.Course,
		YearLevel:     r.YearLevel,
		Profile:       r.Profile,
	}
}

// StudentFilter empty sets mean "any"
type StudentFilter struct {
	Courses    []string
	YearLevels []string
	Search     string
}
