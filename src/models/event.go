package models

// Event an attendance sheet: one scheduled session that students check in to
type Event struct {
	ID          string   `json:"id" example:"665f1b2c9d1e8a0012ab34cd"`
	Title       string   `json:"title" example:"General Assembly"`
	Description string   `json:"description" example:"First semester assembly"`
	Image       string   `json:"image" example:"https://cdn.example.com/events/assembly.jpg"`
	StartDate   string   `json:"startDate" example:"2024-09-02"`
	EndDate     string   `json:"endDate" example:"2024-09-02"`
	StartTime   string   `json:"startTime" example:"09:00"`
	EndTime     string   `json:"endTime" example:"10:00"`
	Courses     []string `json:"course" example:"BSIT,BSCS"`
	YearLevels  []string `json:"yearLevel" example:"1st Year,2nd Year"`
	Tracker     float64  `json:"tracker" example:"66.67"`
}

// Admits reports whether the student's course and year level both match the event filters.
func (e Event) Admits(s Student) bool {
	return contains(e.Courses, s.Course) && contains(e.YearLevels, s.YearLevel)
}

// EligibleStudents filters students down to the ones the event admits.
func (e Event) EligibleStudents(students []Student) []Student {
	eligible := make([]Student, 0, len(students))
	for _, s := range students {
		if e.Admits(s) {
			eligible = append(eligible, s)
		}
	}
	return eligible
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// EventRequest payload สำหรับสร้าง/แก้ไข event
type EventRequest struct {
	Title       string   `json:"title" validate:"required,max=200" example:"General Assembly"`
	Description string   `json:"description" validate:"max=2000"`
	Image       string   `json:"image" validate:"omitempty,url"`
	StartDate   string   `json:"startDate" validate:"required,datetime=2006-01-02" example:"2024-09-02"`
	EndDate     string   `json:"endDate" validate:"required,datetime=2006-01-02" example:"2024-09-02"`
	StartTime   string   `json:"startTime" validate:"required,datetime=15:04" example:"09:00"`
	EndTime     string   `json:"endTime" validate:"required,datetime=15:04" example:"10:00"`
	Courses     []string `json:"course" validate:"required,min=1,dive,required"`
	YearLevels  []string `json:"yearLevel" validate:"required,min=1,dive,required"`
}

// ToEvent copies the request onto a fresh event; tracker starts at 0.
func (r EventRequest) ToEvent() Event {
	return Event{
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Courses:     r.Courses,
		YearLevels:  r.YearLevels,
	}
}

// Event list periods
const (
	PeriodAll   = "all"
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// EventFilter query ของหน้า reports / manage sheets
type EventFilter struct {
	Period    string `query:"period" example:"today"`
	Course    string `query:"course" example:"BSIT"`
	YearLevel string `query:"yearLevel" example:"1st Year"`
	Search    string `query:"search" example:"assembly"`
}
