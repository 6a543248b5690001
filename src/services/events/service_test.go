package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/services/events"
	"Backend-Attendance/src/services/summary_reports"
	"Backend-Attendance/src/storage"
	"Backend-Attendance/src/storage/inmem"
	"Backend-Attendance/src/testutil"
)

type scheduled struct {
	eventID string
	at      time.Time
}

type recordingScheduler struct {
	calls []scheduled
}

func (r *recordingScheduler) ScheduleSweep(_ context.Context, eventID string, at time.Time) error {
	r.calls = append(r.calls, scheduled{eventID: eventID, at: at})
	return nil
}

func newService(t *testing.T) (*events.Service, *recordingScheduler) {
	t.Helper()
	db := inmem.Open()
	cs := testutil.Event("cs", "2024-09-04", "13:00", "14:00")
	cs.Title = "CS Orientation"
	cs.Courses = []string{"BSCS"}
	testutil.Seed(t, db, []models.Event{
		testutil.Event("mon", "2024-09-02", "09:00", "10:00"),
		cs,
		testutil.Event("next-week", "2024-09-10", "09:00", "10:00"),
		testutil.Event("late-sept", "2024-09-28", "09:00", "10:00"),
		testutil.Event("oct", "2024-10-01", "09:00", "10:00"),
	}, nil)
	sched := &recordingScheduler{}
	return events.NewService(db, attendance.NewClassifier(testutil.Manila, attendance.DefaultLateThreshold), sched, nil), sched
}

func ids(es []models.Event) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

func TestListFilters(t *testing.T) {
	svc, _ := newService(t)
	now := testutil.At("2024-09-04", "08:00") // Wednesday

	tests := []struct {
		name   string
		filter models.EventFilter
		want   []string
	}{
		{name: "all", filter: models.EventFilter{}, want: []string{"mon", "cs", "next-week", "late-sept", "oct"}},
		{name: "today", filter: models.EventFilter{Period: models.PeriodToday}, want: []string{"cs"}},
		{name: "week", filter: models.EventFilter{Period: models.PeriodWeek}, want: []string{"mon", "cs"}},
		{name: "month", filter: models.EventFilter{Period: models.PeriodMonth}, want: []string{"mon", "cs", "next-week", "late-sept"}},
		{name: "course", filter: models.EventFilter{Course: "bscs"}, want: []string{"mon", "cs", "next-week", "late-sept", "oct"}},
		{name: "course excludes", filter: models.EventFilter{Course: "BSIT", Period: models.PeriodToday}, want: []string{}},
		{name: "year level", filter: models.EventFilter{YearLevel: "3rd Year"}, want: []string{}},
		{name: "search", filter: models.EventFilter{Search: "orient"}, want: []string{"cs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.List(context.Background(), tt.filter, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestListRejectsUnknownPeriod(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.List(context.Background(), models.EventFilter{Period: "year"}, time.Now())
	assert.ErrorIs(t, err, attendance.ErrInvalidInput)
}

func TestToday(t *testing.T) {
	svc, _ := newService(t)
	got, err := svc.Today(context.Background(), testutil.At("2024-09-02", "23:59"))
	require.NoError(t, err)
	assert.Equal(t, []string{"mon"}, ids(got))
}

func validRequest() models.EventRequest {
	return models.EventRequest{
		Title:      "General Assembly",
		StartDate:  "2024-09-05",
		EndDate:    "2024-09-05",
		StartTime:  "09:00",
		EndTime:    "11:00",
		Courses:    []string{"BSIT"},
		YearLevels: []string{"1st Year"},
	}
}

func TestCreateSchedulesSweep(t *testing.T) {
	svc, sched := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 0.0, created.Tracker)

	require.Len(t, sched.calls, 1)
	assert.Equal(t, created.ID, sched.calls[0].eventID)
	assert.True(t, sched.calls[0].at.After(testutil.At("2024-09-05", "11:00")))

	req := validRequest()
	req.EndTime = "12:00"
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "12:00", updated.EndTime)
	require.Len(t, sched.calls, 2)
	assert.True(t, sched.calls[1].at.After(testutil.At("2024-09-05", "12:00")))
}

func TestCreateRejectsBadPayloads(t *testing.T) {
	svc, sched := newService(t)
	ctx := context.Background()

	noCourses := validRequest()
	noCourses.Courses = nil
	badTime := validRequest()
	badTime.StartTime = "9am"
	backwards := validRequest()
	backwards.StartTime = "12:00"

	for name, req := range map[string]models.EventRequest{"no courses": noCourses, "bad time": badTime, "ends before start": backwards} {
		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, attendance.ErrInvalidInput, name)
	}
	assert.Empty(t, sched.calls)
}

func TestUpdateRecomputesTracker(t *testing.T) {
	db := inmem.Open()
	testutil.Seed(t, db,
		[]models.Event{testutil.Event("e1", "2024-09-05", "09:00", "11:00")},
		[]models.Student{
			testutil.Student("s1", "BSIT", "1st Year"),
			testutil.Student("s2", "BSCS", "2nd Year"),
		},
	)
	classifier := attendance.NewClassifier(testutil.Manila, attendance.DefaultLateThreshold)
	ledger := attendance.NewLedger(db, classifier)
	ledger.Subscribe(summary_reports.NewService(db, classifier).OnLedgerChange)
	svc := events.NewService(db, classifier, nil, ledger)
	ctx := context.Background()

	_, err := ledger.Toggle(ctx, "e1", "s1", testutil.At("2024-09-05", "09:05"))
	require.NoError(t, err)
	e1, err := svc.Get(ctx, "e1")
	require.NoError(t, err)
	require.Equal(t, 50.0, e1.Tracker)

	// narrowing to BSIT 1st Year leaves s1 as the only eligible student
	_, err = svc.Update(ctx, "e1", validRequest())
	require.NoError(t, err)
	e1, err = svc.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, e1.Tracker)
}

func TestUpdateAndDeleteUnknown(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, "missing", validRequest())
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), storage.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "oct"))
	_, err = svc.Get(ctx, "oct")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
