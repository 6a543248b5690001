package sqlstore

import (
	"time"

	"Backend-Attendance/src/models"
)

type eventRow struct {
	ID          string   `gorm:"primaryKey;size:36"`
	Title       string   `gorm:"size:200;not null"`
	Description string   `gorm:"type:text"`
	Image       string   `gorm:"size:500"`
	StartDate   string   `gorm:"size:10;index:idx_events_start"`
	EndDate     string   `gorm:"size:10"`
	StartTime   string   `gorm:"size:5;index:idx_events_start"`
	EndTime     string   `gorm:"size:5"`
	Courses     []string `gorm:"type:text;serializer:json"`
	YearLevels  []string `gorm:"type:text;serializer:json"`
	Tracker     float64  `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (eventRow) TableName() string { return "events" }

func (r eventRow) model() models.Event {
	return models.Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Courses:     r.Courses,
		YearLevels:  r.YearLevels,
		Tracker:     r.Tracker,
	}
}

func toEventRow(e models.Event) eventRow {
	return eventRow{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Image:       e.Image,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Courses:     e.Courses,
		YearLevels:  e.YearLevels,
		Tracker:     e.Tracker,
	}
}

type studentRow struct {
	ID            string `gorm:"primaryKey;size:36"`
	StudentNumber string `gorm:"size:32;index"`
	Name          string `gorm:"size:200;not null"`
	Course        string `gorm:"size:64;index:idx_students_course_level"`
	YearLevel     string `gorm:"size:32;index:idx_students_course_level"`
	Profile       string `gorm:"size:500"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (studentRow) TableName() string { return "students" }

func (r studentRow) model() models.Student {
	return models.Student{
		ID:            r.ID,
		StudentNumber: r.StudentNumber,
		Name:          r.Name,
		Course:        r.Course,
		YearLevel:     r.YearLevel,
		Profile:       r.Profile,
	}
}

func toStudentRow(s models.Student) studentRow {
	return studentRow{
		ID:            s.ID,
		StudentNumber: s.StudentNumber,
		Name:          s.Name,
		Course:        s.Course,
		YearLevel:     s.YearLevel,
		Profile:       s.Profile,
	}
}

// attendanceRow the composite primary key is the ledger's uniqueness guarantee
type attendanceRow struct {
	EventID   string                  `gorm:"primaryKey;size:36"`
	StudentID string                  `gorm:"primaryKey;size:36"`
	Status    models.AttendanceStatus `gorm:"size:16;not null"`
	Timestamp time.Time               `gorm:"not null"`
}

func (attendanceRow) TableName() string { return "attendance_records" }

func (r attendanceRow) model() models.AttendanceRecord {
	return models.AttendanceRecord{
		EventID:   r.EventID,
		StudentID: r.StudentID,
		Status:    r.Status,
		Timestamp: r.Timestamp,
	}
}
