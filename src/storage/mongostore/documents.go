package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-Attendance/src/models"
)

type eventDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Image       string             `bson:"image"`
	StartDate   string             `bson:"startDate"`
	EndDate     string             `bson:"endDate"`
	StartTime   string             `bson:"startTime"`
	EndTime     string             `bson:"endTime"`
	Courses     []string           `bson:"course"`
	YearLevels  []string           `bson:"yearLevel"`
	Tracker     float64            `bson:"tracker"`
}

func (d eventDoc) model() models.Event {
	return models.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Image:       d.Image,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Courses:     d.Courses,
		YearLevels:  d.YearLevels,
		Tracker:     d.Tracker,
	}
}

func toEventDoc(id primitive.ObjectID, e models.Event) eventDoc {
	return eventDoc{
		ID:          id,
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

type studentDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	StudentNumber string             `bson:"studentNumber"`
	Name          string             `bson:"name"`
	Course        string             `bson:"course"`
	YearLevel     string             `bson:"yrlvl"`
	Profile       string             `bson:"profile"`
}

func (d studentDoc) model() models.Student {
	return models.Student{
		ID:            d.ID.Hex(),
		StudentNumber: d.StudentNumber,
		Name:          d.Name,
		Course:        d.Course,
		YearLevel:     d.YearLevel,
		Profile:       d.Profile,
	}
}

func toStudentDoc(id primitive.ObjectID, s models.Student) studentDoc {
	return studentDoc{
		ID:            id,
		StudentNumber: s.StudentNumber,
		Name:          s.Name,
		Course:        s.Course,
		YearLevel:     s.YearLevel,
		Profile:       s.Profile,
	}
}

// attendanceDoc is unique on (eventId, studentId)
type attendanceDoc struct {
	EventID   string                  `bson:"eventId"`
	StudentID string                  `bson:"studentId"`
	Status    models.AttendanceStatus `bson:"status"`
	Timestamp time.Time               `bson:"timestamp"`
}

func (d attendanceDoc) model() models.AttendanceRecord {
	return models.AttendanceRecord{
		EventID:   d.EventID,
		StudentID: d.StudentID,
		Status:    d.Status,
		Timestamp: d.Timestamp,
	}
}
