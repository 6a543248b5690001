// Package storage defines the persistence collaborator the attendance engine runs on.
package storage

import (
	"context"
	"errors"
	"sort"
	"strings"

	"Backend-Attendance/src/models"
)

var (
	// ErrNotFound the requested event or student does not exist
	ErrNotFound = errors.New("not found")
	// ErrTransientIO network or storage unavailability; callers retry with backoff
	ErrTransientIO = errors.New("storage unavailable")
)

// Store is implemented by the mongo, sql and in-memory backends.
type Store interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, e models.Event) (models.Event, error)
	UpdateEvent(ctx context.Context, e models.Event) (models.Event, error)
	// DeleteEvent also removes the event's attendance records.
	DeleteEvent(ctx context.Context, id string) error
	UpdateEventTracker(ctx context.Context, eventID string, value float64) error

	ListStudents(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	CreateStudent(ctx context.Context, s models.Student) (models.Student, error)
	UpdateStudent(ctx context.Context, s models.Student) (models.Student, error)
	DeleteStudent(ctx context.Context, id string) error

	// ListAttendance returns at most one record per student.
	ListAttendance(ctx context.Context, eventID string) ([]models.AttendanceRecord, error)
	ListAllAttendance(ctx context.Context) (map[string][]models.AttendanceRecord, error)
	// InsertAttendanceIfAbsent is a single conditional write: it creates the record only
	// when no record exists for (EventID, StudentID) and reports whether it did.
	InsertAttendanceIfAbsent(ctx context.Context, rec models.AttendanceRecord) (bool, error)
	// DeleteAttendance reports whether a record existed.
	DeleteAttendance(ctx context.Context, eventID, studentID string) (bool, error)

	Close(ctx context.Context) error
}

// WriteAttendance is the collaborator's plain write; it never overwrites an existing record.
func WriteAttendance(ctx context.Context, s Store, rec models.AttendanceRecord) error {
	_, err := s.InsertAttendanceIfAbsent(ctx, rec)
	return err
}

// Dedupe keeps one record per student, the earliest mark wins. Backends that cannot
// enforce the composite key atomically rely on it at read time.
func Dedupe(records []models.AttendanceRecord) []models.AttendanceRecord {
	byStudent := make(map[string]models.AttendanceRecord, len(records))
	for _, r := range records {
		prev, ok := byStudent[r.StudentID]
		if !ok || r.Timestamp.Before(prev.Timestamp) {
			byStudent[r.StudentID] = r
		}
	}
	out := make([]models.AttendanceRecord, 0, len(byStudent))
	for _, r := range byStudent {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// MatchesStudent applies a StudentFilter in memory.
func MatchesStudent(f models.StudentFilter, s models.Student) bool {
	if len(f.Courses) > 0 && !in(f.Courses, s.Course) {
		return false
	}
	if len(f.YearLevels) > 0 && !in(f.YearLevels, s.YearLevel) {
		return false
	}
	if f.Search != "" && !containsFold(s.Name, f.Search) && !containsFold(s.StudentNumber, f.Search) {
		return false
	}
	return true
}

func in(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
