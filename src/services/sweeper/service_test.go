package sweeper_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/services/summary_reports"
	"Backend-Attendance/src/services/sweeper"
	"Backend-Attendance/src/storage"
	"Backend-Attendance/src/storage/inmem"
	"Backend-Attendance/src/testutil"
)

func classifier() attendance.Classifier {
	return attendance.NewClassifier(testutil.Manila, attendance.DefaultLateThreshold)
}

func students() []models.Student {
	return []models.Student{
		testutil.Student("s1", "BSIT", "1st Year"),
		testutil.Student("s2", "BSIT", "1st Year"),
		testutil.Student("s3", "BSCS", "2nd Year"),
		testutil.Student("x", "BSCPE", "4th Year"),
	}
}

type fixture struct {
	db      *inmem.DB
	ledger  *attendance.Ledger
	sweeper *sweeper.Service
}

func setup(t *testing.T, store attendance.Store, db *inmem.DB) fixture {
	t.Helper()
	ledger := attendance.NewLedger(store, classifier())
	ledger.Subscribe(summary_reports.NewService(db, classifier()).OnLedgerChange)
	return fixture{db: db, ledger: ledger, sweeper: sweeper.NewService(db, ledger, sweeper.WithWorkers(2))}
}

func seeded(t *testing.T, events ...models.Event) *inmem.DB {
	t.Helper()
	db := inmem.Open()
	testutil.Seed(t, db, events, students())
	return db
}

func TestSweepFillsUnmarkedStudents(t *testing.T) {
	db := seeded(t, testutil.Event("e1", "2024-09-02", "09:00", "10:00"))
	f := setup(t, db, db)
	ctx := context.Background()

	for _, sid := range []string{"s1", "s2"} {
		res, err := f.ledger.Toggle(ctx, "e1", sid, testutil.At("2024-09-02", "09:05"))
		require.NoError(t, err)
		require.Equal(t, models.StatusOnTime, res.Status)
	}

	result, err := f.sweeper.SweepClosedEvents(ctx, testutil.At("2024-09-02", "10:30"))
	require.NoError(t, err)
	require.NoError(t, result.Err())
	assert.Equal(t, []string{"e1"}, result.SweptEventIDs)

	records, err := f.ledger.Get(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, models.StatusOnTime, records["s1"].Status)
	assert.Equal(t, models.StatusOnTime, records["s2"].Status)
	assert.Equal(t, models.StatusAbsent, records["s3"].Status)
	assert.NotContains(t, records, "x")

	e1, err := db.GetEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 66.67, e1.Tracker)
}

func TestSweepIsIdempotent(t *testing.T) {
	db := seeded(t, testutil.Event("e1", "2024-09-02", "09:00", "10:00"))
	f := setup(t, db, db)
	ctx := context.Background()

	_, err := f.ledger.Toggle(ctx, "e1", "s1", testutil.At("2024-09-02", "09:30"))
	require.NoError(t, err)

	_, err = f.sweeper.SweepClosedEvents(ctx, testutil.At("2024-09-02", "11:00"))
	require.NoError(t, err)
	once, err := db.ListAttendance(ctx, "e1")
	require.NoError(t, err)

	_, err = f.sweeper.SweepClosedEvents(ctx, testutil.At("2024-09-02", "12:00"))
	require.NoError(t, err)
	twice, err := db.ListAttendance(ctx, "e1")
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestSweepSkipsOpenEvents(t *testing.T) {
	db := seeded(t,
		testutil.Event("past", "2024-09-02", "07:00", "08:00"),
		testutil.Event("open", "2024-09-02", "09:00", "10:00"),
	)
	f := setup(t, db, db)
	ctx := context.Background()

	result, err := f.sweeper.SweepClosedEvents(ctx, testutil.At("2024-09-02", "09:30"))
	require.NoError(t, err)
	assert.Equal(t, []string{"past"}, result.SweptEventIDs)

	records, err := db.ListAttendance(ctx, "open")
	require.NoError(t, err)
	assert.Empty(t, records)
}

// flakyStore fails attendance reads for one event.
type flakyStore struct {
	*inmem.DB
	broken string
}

func (s flakyStore) ListAttendance(ctx context.Context, eventID string) ([]models.AttendanceRecord, error) {
	if eventID == s.broken {
		return nil, fmt.Errorf("list attendance: %w", storage.ErrTransientIO)
	}
	return s.DB.ListAttendance(ctx, eventID)
}

func TestSweepIsolatesEventFailures(t *testing.T) {
	db := seeded(t,
		testutil.Event("a", "2024-09-01", "09:00", "10:00"),
		testutil.Event("b", "2024-09-01", "11:00", "12:00"),
		testutil.Event("c", "2024-09-01", "13:00", "14:00"),
	)
	f := setup(t, flakyStore{DB: db, broken: "b"}, db)
	ctx := context.Background()

	result, err := f.sweeper.SweepClosedEvents(ctx, testutil.At("2024-09-02", "08:00"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, result.SweptEventIDs)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "b", result.Errors[0].EventID)
	assert.ErrorIs(t, result.Err(), storage.ErrTransientIO)
	assert.Contains(t, result.Report().Errors, "b")

	for _, id := range []string{"a", "c"} {
		records, err := db.ListAttendance(ctx, id)
		require.NoError(t, err)
		assert.Len(t, records, 3, id)
	}
}

func TestSweepEventRefreshesTrackerWithoutGaps(t *testing.T) {
	db := seeded(t, testutil.Event("e1", "2024-09-02", "09:00", "10:00"))
	f := setup(t, db, db)
	ctx := context.Background()

	// written straight to the store, so no tracker update has happened yet
	for _, sid := range []string{"s1", "s2", "s3"} {
		_, err := db.InsertAttendanceIfAbsent(ctx, testutil.Record("e1", sid, models.StatusLate, testutil.At("2024-09-02", "09:30")))
		require.NoError(t, err)
	}

	swept, err := f.sweeper.SweepEvent(ctx, "e1", testutil.At("2024-09-02", "11:00"))
	require.NoError(t, err)
	assert.True(t, swept)

	e1, err := db.GetEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, e1.Tracker)
}

func TestPeriodicSweepStaysQuietWithoutGaps(t *testing.T) {
	db := seeded(t, testutil.Event("e1", "2024-09-02", "09:00", "10:00"))
	f := setup(t, db, db)
	ctx := context.Background()
	var changes []attendance.Change
	f.ledger.Subscribe(func(_ context.Context, ch attendance.Change) {
		changes = append(changes, ch)
	})

	_, err := f.sweeper.SweepClosedEvents(ctx, testutil.At("2024-09-02", "11:00"))
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, attendance.ChangeSwept, changes[0].Kind)

	for _, clock := range []string{"11:05", "11:10", "11:15"} {
		result, err := f.sweeper.SweepClosedEvents(ctx, testutil.At("2024-09-02", clock))
		require.NoError(t, err)
		assert.Equal(t, []string{"e1"}, result.SweptEventIDs)
	}
	assert.Len(t, changes, 1)
}

func TestSweepReportsMalformedEvents(t *testing.T) {
	db := seeded(t,
		testutil.Event("ok", "2024-09-01", "09:00", "10:00"),
		testutil.Event("broken", "2024-09-01", "", "10:00"),
	)
	f := setup(t, db, db)

	result, err := f.sweeper.SweepClosedEvents(context.Background(), testutil.At("2024-09-02", "08:00"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, result.SweptEventIDs)
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, result.Errors[0], attendance.ErrInvalidInput)
}

func TestSweepEvent(t *testing.T) {
	db := seeded(t, testutil.Event("e1", "2024-09-02", "09:00", "10:00"))
	f := setup(t, db, db)
	ctx := context.Background()

	_, err := f.sweeper.SweepEvent(ctx, "e1", testutil.At("2024-09-02", "09:30"))
	assert.ErrorIs(t, err, attendance.ErrInvalidState)

	_, err = f.sweeper.SweepEvent(ctx, "missing", testutil.At("2024-09-02", "11:00"))
	assert.ErrorIs(t, err, attendance.ErrInvalidState)

	swept, err := f.sweeper.SweepEvent(ctx, "e1", testutil.At("2024-09-02", "11:00"))
	require.NoError(t, err)
	assert.True(t, swept)

	records, err := db.ListAttendance(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestSweepSkipsLockedEvents(t *testing.T) {
	db := seeded(t, testutil.Event("e1", "2024-09-02", "09:00", "10:00"))
	ledger := attendance.NewLedger(db, classifier())
	locker := sweeper.NewKeyedLocker()
	svc := sweeper.NewService(db, ledger, sweeper.WithLocker(locker, time.Minute))
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "sweep:e1", time.Minute)
	require.NoError(t, err)

	swept, err := svc.SweepEvent(ctx, "e1", testutil.At("2024-09-02", "11:00"))
	require.NoError(t, err)
	assert.False(t, swept)
	records, err := db.ListAttendance(ctx, "e1")
	require.NoError(t, err)
	assert.Empty(t, records)

	unlock()
	swept, err = svc.SweepEvent(ctx, "e1", testutil.At("2024-09-02", "11:00"))
	require.NoError(t, err)
	assert.True(t, swept)
}

func TestUnmarkingSweptAbsenceIsAllowed(t *testing.T) {
	db := seeded(t, testutil.Event("e1", "2024-09-02", "09:00", "10:00"))
	f := setup(t, db, db)
	ctx := context.Background()

	_, err := f.sweeper.SweepClosedEvents(ctx, testutil.At("2024-09-02", "11:00"))
	require.NoError(t, err)

	res, err := f.ledger.Toggle(ctx, "e1", "s1", testutil.At("2024-09-02", "11:05"))
	require.NoError(t, err)
	assert.True(t, res.Removed)

	_, err = f.sweeper.SweepClosedEvents(ctx, testutil.At("2024-09-02", "11:10"))
	require.NoError(t, err)
	records, err := f.ledger.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAbsent, records["s1"].Status)
}

func TestKeyedLocker(t *testing.T) {
	l := sweeper.NewKeyedLocker()
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "k", time.Second)
	require.NoError(t, err)
	_, err = l.Lock(ctx, "k", time.Second)
	assert.ErrorIs(t, err, sweeper.ErrLockHeld)

	other, err := l.Lock(ctx, "other", time.Second)
	require.NoError(t, err)
	other()

	unlock()
	unlock()
	again, err := l.Lock(ctx, "k", time.Second)
	require.NoError(t, err)
	again()
}
