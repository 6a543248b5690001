// Package storagetest runs the same behaviour checks against every storage backend.
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/storage"
)

// Run exercises a fresh store from open for each subtest.
func Run(t *testing.T, open func(t *testing.T) storage.Store) {
	t.Run("events", func(t *testing.T) { testEvents(t, open(t)) })
	t.Run("students", func(t *testing.T) { testStudents(t, open(t)) })
	t.Run("attendance", func(t *testing.T) { testAttendance(t, open(t)) })
	t.Run("concurrent inserts", func(t *testing.T) { testConcurrentInserts(t, open(t)) })
}

var base = time.Date(2024, 9, 2, 1, 0, 0, 0, time.UTC)

func event(title, date string) models.Event {
	return models.Event{
		Title:      title,
		StartDate:  date,
		EndDate:    date,
		StartTime:  "09:00",
		EndTime:    "10:00",
		Courses:    []string{"BSIT", "BSCS"},
		YearLevels: []string{"1st Year"},
	}
}

func testEvents(t *testing.T, s storage.Store) {
	ctx := context.Background()

	later, err := s.CreateEvent(ctx, event("Later", "2024-09-05"))
	require.NoError(t, err)
	require.NotEmpty(t, later.ID)
	sooner, err := s.CreateEvent(ctx, event("Sooner", "2024-09-01"))
	require.NoError(t, err)

	events, err := s.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, sooner.ID, events[0].ID)
	assert.Equal(t, []string{"BSIT", "BSCS"}, events[0].Courses)

	require.NoError(t, s.UpdateEventTracker(ctx, later.ID, 42.5))
	later.Title = "Renamed"
	later.Tracker = 0
	updated, err := s.UpdateEvent(ctx, later)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	got, err := s.GetEvent(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, 42.5, got.Tracker, "UpdateEvent keeps the tracker")

	_, err = s.InsertAttendanceIfAbsent(ctx, models.AttendanceRecord{EventID: later.ID, StudentID: "s1", Status: models.StatusLate, Timestamp: base})
	require.NoError(t, err)
	require.NoError(t, s.DeleteEvent(ctx, later.ID))
	_, err = s.GetEvent(ctx, later.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	records, err := s.ListAttendance(ctx, later.ID)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.ErrorIs(t, s.DeleteEvent(ctx, later.ID), storage.ErrNotFound)
	assert.ErrorIs(t, s.UpdateEventTracker(ctx, later.ID, 1), storage.ErrNotFound)
}

func testStudents(t *testing.T, s storage.Store) {
	ctx := context.Background()
	for _, st := range []models.Student{
		{StudentNumber: "2021-001", Name: "Ana Reyes", Course: "BSIT", YearLevel: "1st Year"},
		{StudentNumber: "2021-002", Name: "Ben Cruz", Course: "BSCS", YearLevel: "1st Year"},
		{StudentNumber: "2022-003", Name: "Carla Santos", Course: "BSIT", YearLevel: "2nd Year"},
	} {
		_, err := s.CreateStudent(ctx, st)
		require.NoError(t, err)
	}

	all, err := s.ListStudents(ctx, models.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ana Reyes", all[0].Name)

	bsit, err := s.ListStudents(ctx, models.StudentFilter{Courses: []string{"BSIT"}, YearLevels: []string{"2nd Year"}})
	require.NoError(t, err)
	require.Len(t, bsit, 1)
	assert.Equal(t, "Carla Santos", bsit[0].Name)

	found, err := s.ListStudents(ctx, models.StudentFilter{Search: "cruz"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	byNumber, err := s.ListStudents(ctx, models.StudentFilter{Search: "2022"})
	require.NoError(t, err)
	require.Len(t, byNumber, 1)

	ben := found[0]
	ben.YearLevel = "2nd Year"
	_, err = s.UpdateStudent(ctx, ben)
	require.NoError(t, err)
	got, err := s.GetStudent(ctx, ben.ID)
	require.NoError(t, err)
	assert.Equal(t, "2nd Year", got.YearLevel)

	require.NoError(t, s.DeleteStudent(ctx, ben.ID))
	_, err = s.GetStudent(ctx, ben.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testAttendance(t *testing.T, s storage.Store) {
	ctx := context.Background()
	rec := models.AttendanceRecord{EventID: "e1", StudentID: "s1", Status: models.StatusOnTime, Timestamp: base}

	created, err := s.InsertAttendanceIfAbsent(ctx, rec)
	require.NoError(t, err)
	assert.True(t, created)

	late := rec
	late.Status = models.StatusLate
	late.Timestamp = base.Add(time.Hour)
	created, err = s.InsertAttendanceIfAbsent(ctx, late)
	require.NoError(t, err)
	assert.False(t, created, "existing records are never overwritten")

	require.NoError(t, storage.WriteAttendance(ctx, s, models.AttendanceRecord{EventID: "e2", StudentID: "s1", Status: models.StatusAbsent, Timestamp: base}))

	records, err := s.ListAttendance(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.StatusOnTime, records[0].Status)
	assert.True(t, records[0].Timestamp.Equal(base))

	all, err := s.ListAllAttendance(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Len(t, all["e2"], 1)

	deleted, err := s.DeleteAttendance(ctx, "e1", "s1")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = s.DeleteAttendance(ctx, "e1", "s1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func testConcurrentInserts(t *testing.T, s storage.Store) {
	ctx := context.Background()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := s.InsertAttendanceIfAbsent(ctx, models.AttendanceRecord{
				EventID: "e1", StudentID: "s1", Status: models.StatusOnTime, Timestamp: base.Add(time.Duration(i) * time.Second),
			})
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	records, err := s.ListAttendance(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
