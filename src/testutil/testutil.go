// Package testutil holds fixtures and timing helpers shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/storage"
)

// TestTimer is a utility for measuring test execution time
type TestTimer struct {
	start time.Time
	name  string
}

func NewTestTimer(name string) *TestTimer {
	return &TestTimer{start: time.Now(), name: name}
}

// Stop stops the timer and prints the duration
func (t *TestTimer) Stop() time.Duration {
	duration := time.Since(t.start)
	fmt.Printf("⏱️  %s took %v\n", t.name, duration)
	return duration
}

// PerformanceAssertion checks if a test meets performance requirements
func PerformanceAssertion(t *testing.T, testName string, duration, maxDuration time.Duration) {
	t.Helper()
	if duration > maxDuration {
		t.Errorf("❌ %s performance test failed: took %v, expected less than %v", testName, duration, maxDuration)
	} else {
		t.Logf("✅ %s performance test passed: took %v (under %v limit)", testName, duration, maxDuration)
	}
}

// Manila every fixture time is expressed in this zone
var Manila = mustLoad("Asia/Manila")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, 8*60*60)
	}
	return loc
}

// At returns date+clock in Manila, e.g. At("2024-09-02", "09:05").
func At(date, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, Manila)
	if err != nil {
		panic(err)
	}
	return t
}

// Event builds a same-day event open to BSIT/BSCS 1st and 2nd years.
func Event(id, date, start, end string) models.Event {
	return models.Event{
		ID:         id,
		Title:      "Event " + id,
		StartDate:  date,
		EndDate:    date,
		StartTime:  start,
		EndTime:    end,
		Courses:    []string{"BSIT", "BSCS"},
		YearLevels: []string{"1st Year", "2nd Year"},
	}
}

func Student(id, course, yearLevel string) models.Student {
	return models.Student{
		ID:            id,
		StudentNumber: "2024-" + id,
		Name:          "Student " + id,
		Course:        course,
		YearLevel:     yearLevel,
	}
}

func Record(eventID, studentID string, status models.AttendanceStatus, at time.Time) models.AttendanceRecord {
	return models.AttendanceRecord{EventID: eventID, StudentID: studentID, Status: status, Timestamp: at}
}

// Seed writes events and students into s.
func Seed(t *testing.T, s storage.Store, events []models.Event, students []models.Student) {
	t.Helper()
	ctx := context.Background()
	for _, e := range events {
		_, err := s.CreateEvent(ctx, e)
		require.NoError(t, err)
	}
	for _, st := range students {
		_, err := s.CreateStudent(ctx, st)
		require.NoError(t, err)
	}
}
