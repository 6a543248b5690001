package students_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/services/students"
	"Backend-Attendance/src/services/summary_reports"
	"Backend-Attendance/src/storage"
	"Backend-Attendance/src/storage/inmem"
	"Backend-Attendance/src/testutil"
)

func TestStudentLifecycle(t *testing.T) {
	svc := students.NewService(inmem.Open(), nil)
	ctx := context.Background()

	req := models.StudentRequest{StudentNumber: "2021-00123", Name: "Juan Dela Cruz", Course: "BSIT", YearLevel: "1st Year"}
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	_, err = svc.Create(ctx, models.StudentRequest{StudentNumber: "2021-00200", Name: "Ana Reyes", Course: "BSCS", YearLevel: "2nd Year"})
	require.NoError(t, err)

	list, err := svc.List(ctx, models.StudentFilter{Courses: []string{"BSIT"}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Juan Dela Cruz", list[0].Name)

	req.YearLevel = "2nd Year"
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "2nd Year", updated.YearLevel)

	list, err = svc.List(ctx, models.StudentFilter{YearLevels: []string{"2nd Year"}})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStudentValidation(t *testing.T) {
	svc := students.NewService(inmem.Open(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, models.StudentRequest{Name: "No Number", Course: "BSIT", YearLevel: "1st Year"})
	assert.ErrorIs(t, err, attendance.ErrInvalidInput)

	_, err = svc.Create(ctx, models.StudentRequest{StudentNumber: "1", Name: "Bad Profile", Course: "BSIT", YearLevel: "1st Year", Profile: "not a url"})
	assert.ErrorIs(t, err, attendance.ErrInvalidInput)

	_, err = svc.Update(ctx, "missing", models.StudentRequest{StudentNumber: "1", Name: "X", Course: "BSIT", YearLevel: "1st Year"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

type recordingRefresher struct {
	ledger *attendance.Ledger
	ids    []string
}

func (r *recordingRefresher) Refresh(ctx context.Context, eventID string) {
	r.ids = append(r.ids, eventID)
	r.ledger.Refresh(ctx, eventID)
}

func TestStudentWritesRecomputeTrackers(t *testing.T) {
	it := testutil.Event("it", "2024-09-02", "09:00", "10:00")
	it.Courses, it.YearLevels = []string{"BSIT"}, []string{"1st Year"}
	cs := testutil.Event("cs", "2024-09-02", "13:00", "14:00")
	cs.Courses, cs.YearLevels = []string{"BSCS"}, []string{"2nd Year"}
	db := inmem.Open()
	testutil.Seed(t, db, []models.Event{it, cs}, []models.Student{testutil.Student("s1", "BSIT", "1st Year")})

	classifier := attendance.NewClassifier(testutil.Manila, attendance.DefaultLateThreshold)
	ledger := attendance.NewLedger(db, classifier)
	ledger.Subscribe(summary_reports.NewService(db, classifier).OnLedgerChange)
	refresher := &recordingRefresher{ledger: ledger}
	svc := students.NewService(db, refresher)
	ctx := context.Background()

	tracker := func(id string) float64 {
		t.Helper()
		e, err := db.GetEvent(ctx, id)
		require.NoError(t, err)
		return e.Tracker
	}

	_, err := ledger.Toggle(ctx, "it", "s1", testutil.At("2024-09-02", "09:05"))
	require.NoError(t, err)
	require.Equal(t, 100.0, tracker("it"))

	req := models.StudentRequest{StudentNumber: "2024-0002", Name: "Ana Reyes", Course: "BSIT", YearLevel: "1st Year"}
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"it"}, refresher.ids)
	assert.Equal(t, 50.0, tracker("it"))

	// moving to BSCS touches both the event left and the one joined
	refresher.ids = nil
	req.Course, req.YearLevel = "BSCS", "2nd Year"
	_, err = svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"it", "cs"}, refresher.ids)
	assert.Equal(t, 100.0, tracker("it"))

	refresher.ids = nil
	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, []string{"cs"}, refresher.ids)

	refresher.ids = nil
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), storage.ErrNotFound)
	assert.Empty(t, refresher.ids)
}
