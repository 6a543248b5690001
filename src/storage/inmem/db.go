// Package inmem keeps events, students and attendance in process memory.
package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/storage"
)

type attendanceKey struct {
	eventID   string
	studentID string
}

type DB struct {
	mutex      sync.RWMutex
	events     map[string]models.Event
	students   map[string]models.Student
	attendance map[attendanceKey]models.AttendanceRecord
}

var _ storage.Store = (*DB)(nil)

func Open() *DB {
	return &DB{
		events:     make(map[string]models.Event),
		students:   make(map[string]models.Student),
		attendance: make(map[attendanceKey]models.AttendanceRecord),
	}
}

func (db *DB) Close(context.Context) error { return nil }

func (db *DB) ListEvents(context.Context) ([]models.Event, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	events := make([]models.Event, 0, len(db.events))
	for _, e := range db.events {
		events = append(events, cloneEvent(e))
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].StartDate == events[j].StartDate {
			return events[i].StartTime < events[j].StartTime
		}
		return events[i].StartDate < events[j].StartDate
	})
	return events, nil
}

func (db *DB) GetEvent(_ context.Context, id string) (*models.Event, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	e, ok := db.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, storage.ErrNotFound)
	}
	e = cloneEvent(e)
	return &e, nil
}

func (db *DB) CreateEvent(_ context.Context, e models.Event) (models.Event, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	db.events[e.ID] = cloneEvent(e)
	return e, nil
}

func (db *DB) UpdateEvent(_ context.Context, e models.Event) (models.Event, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	prev, ok := db.events[e.ID]
	if !ok {
		return models.Event{}, fmt.Errorf("event %s: %w", e.ID, storage.ErrNotFound)
	}
	e.Tracker = prev.Tracker
	db.events[e.ID] = cloneEvent(e)
	return e, nil
}

func (db *DB) DeleteEvent(_ context.Context, id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.events[id]; !ok {
		return fmt.Errorf("event %s: %w", id, storage.ErrNotFound)
	}
	delete(db.events, id)
	for k := range db.attendance {
		if k.eventID == id {
			delete(db.attendance, k)
		}
	}
	return nil
}

func (db *DB) UpdateEventTracker(_ context.Context, eventID string, value float64) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	e, ok := db.events[eventID]
	if !ok {
		return fmt.Errorf("event %s: %w", eventID, storage.ErrNotFound)
	}
	e.Tracker = value
	db.events[eventID] = e
	return nil
}

func (db *DB) ListStudents(_ context.Context, filter models.StudentFilter) ([]models.Student, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	students := make([]models.Student, 0, len(db.students))
	for _, s := range db.students {
		if storage.MatchesStudent(filter, s) {
			students = append(students, s)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].Name < students[j].Name })
	return students, nil
}

func (db *DB) GetStudent(_ context.Context, id string) (*models.Student, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	s, ok := db.students[id]
	if !ok {
		return nil, fmt.Errorf("student %s: %w", id, storage.ErrNotFound)
	}
	return &s, nil
}

func (db *DB) CreateStudent(_ context.Context, s models.Student) (models.Student, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	db.students[s.ID] = s
	return s, nil
}

func (db *DB) UpdateStudent(_ context.Context, s models.Student) (models.Student, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.students[s.ID]; !ok {
		return models.Student{}, fmt.Errorf("student %s: %w", s.ID, storage.ErrNotFound)
	}
	db.students[s.ID] = s
	return s, nil
}

func (db *DB) DeleteStudent(_ context.Context, id string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, ok := db.students[id]; !ok {
		return fmt.Errorf("student %s: %w", id, storage.ErrNotFound)
	}
	delete(db.students, id)
	return nil
}

func (db *DB) ListAttendance(_ context.Context, eventID string) ([]models.AttendanceRecord, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	records := make([]models.AttendanceRecord, 0)
	for k, r := range db.attendance {
		if k.eventID == eventID {
			records = append(records, r)
		}
	}
	return storage.Dedupe(records), nil
}

func (db *DB) ListAllAttendance(context.Context) (map[string][]models.AttendanceRecord, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	byEvent := make(map[string][]models.AttendanceRecord)
	for k, r := range db.attendance {
		byEvent[k.eventID] = append(byEvent[k.eventID], r)
	}
	for id, records := range byEvent {
		byEvent[id] = storage.Dedupe(records)
	}
	return byEvent, nil
}

func (db *DB) InsertAttendanceIfAbsent(_ context.Context, rec models.AttendanceRecord) (bool, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	k := attendanceKey{eventID: rec.EventID, studentID: rec.StudentID}
	if _, exists := db.attendance[k]; exists {
		return false, nil
	}
	db.attendance[k] = rec
	return true, nil
}

func (db *DB) DeleteAttendance(_ context.Context, eventID, studentID string) (bool, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	k := attendanceKey{eventID: eventID, studentID: studentID}
	if _, exists := db.attendance[k]; !exists {
		return false, nil
	}
	delete(db.attendance, k)
	return true, nil
}

func cloneEvent(e models.Event) models.Event {
	e.Courses = append([]string(nil), e.Courses...)
	e.YearLevels = append([]string(nil), e.YearLevels...)
	return e
}
