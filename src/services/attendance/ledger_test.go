package attendance_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/storage"
	"Backend-Attendance/src/storage/inmem"
	"Backend-Attendance/src/testutil"
)

func newLedger(t *testing.T) (*attendance.Ledger, *inmem.DB) {
	t.Helper()
	db := inmem.Open()
	testutil.Seed(t, db,
		[]models.Event{testutil.Event("e1", "2024-09-02", "09:00", "10:00")},
		[]models.Student{
			testutil.Student("s1", "BSIT", "1st Year"),
			testutil.Student("s2", "BSCS", "2nd Year"),
			testutil.Student("s3", "BSCPE", "1st Year"),
		},
	)
	return attendance.NewLedger(db, newClassifier()), db
}

func TestToggleMarksByWindow(t *testing.T) {
	tests := []struct {
		name  string
		clock string
		want  models.AttendanceStatus
	}{
		{name: "on time", clock: "09:05", want: models.StatusOnTime},
		{name: "late", clock: "09:12", want: models.StatusLate},
		{name: "after end is absent", clock: "10:30", want: models.StatusAbsent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, _ := newLedger(t)
			ctx := context.Background()

			res, err := ledger.Toggle(ctx, "e1", "s1", testutil.At("2024-09-02", tt.clock))
			require.NoError(t, err)
			assert.False(t, res.Removed)
			assert.Equal(t, tt.want, res.Status)

			records, err := ledger.Get(ctx, "e1")
			require.NoError(t, err)
			require.Contains(t, records, "s1")
			assert.Equal(t, tt.want, records["s1"].Status)
			assert.True(t, records["s1"].Timestamp.Equal(testutil.At("2024-09-02", tt.clock)))
		})
	}
}

func TestToggleBeforeStartIsInvalidState(t *testing.T) {
	ledger, db := newLedger(t)
	ctx := context.Background()

	_, err := ledger.Toggle(ctx, "e1", "s1", testutil.At("2024-09-02", "08:30"))
	assert.ErrorIs(t, err, attendance.ErrInvalidState)

	records, err := db.ListAttendance(ctx, "e1")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestToggleUnknownOrIneligible(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()
	now := testutil.At("2024-09-02", "09:05")

	_, err := ledger.Toggle(ctx, "missing", "s1", now)
	assert.ErrorIs(t, err, attendance.ErrInvalidState)

	_, err = ledger.Toggle(ctx, "e1", "missing", now)
	assert.ErrorIs(t, err, attendance.ErrInvalidState)

	_, err = ledger.Toggle(ctx, "e1", "s3", now)
	assert.ErrorIs(t, err, attendance.ErrInvalidState)
}

func TestGetUnknownEventIsInvalidState(t *testing.T) {
	ledger, _ := newLedger(t)

	_, err := ledger.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, attendance.ErrInvalidState)

	records, err := ledger.Get(context.Background(), "e1")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestToggleRoundTrip(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()
	now := testutil.At("2024-09-02", "09:05")

	_, err := ledger.Toggle(ctx, "e1", "s1", now)
	require.NoError(t, err)

	res, err := ledger.Toggle(ctx, "e1", "s1", now)
	require.NoError(t, err)
	assert.True(t, res.Removed)
	assert.Empty(t, res.Status)

	records, err := ledger.Get(ctx, "e1")
	require.NoError(t, err)
	assert.NotContains(t, records, "s1")
}

func TestToggleRemarkUsesFreshStatus(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	res, err := ledger.Toggle(ctx, "e1", "s1", testutil.At("2024-09-02", "09:05"))
	require.NoError(t, err)
	require.Equal(t, models.StatusOnTime, res.Status)

	res, err = ledger.Toggle(ctx, "e1", "s1", testutil.At("2024-09-02", "09:20"))
	require.NoError(t, err)
	require.True(t, res.Removed)

	res, err = ledger.Toggle(ctx, "e1", "s1", testutil.At("2024-09-02", "09:25"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusLate, res.Status)

	records, err := ledger.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusLate, records["s1"].Status)
	assert.True(t, records["s1"].Timestamp.Equal(testutil.At("2024-09-02", "09:25")))
}

// gatedStore holds every toggler after its delete until all of them got there,
// so they all see "no record" before anyone inserts.
type gatedStore struct {
	*inmem.DB
	arrived sync.WaitGroup
}

func (g *gatedStore) DeleteAttendance(ctx context.Context, eventID, studentID string) (bool, error) {
	deleted, err := g.DB.DeleteAttendance(ctx, eventID, studentID)
	g.arrived.Done()
	g.arrived.Wait()
	return deleted, err
}

func TestConcurrentTogglesLeaveOneRecord(t *testing.T) {
	_, db := newLedger(t)
	store := &gatedStore{DB: db}
	store.arrived.Add(2)
	ledger := attendance.NewLedger(store, newClassifier())
	ctx := context.Background()
	now := testutil.At("2024-09-02", "09:05")

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Toggle(ctx, "e1", "s1", now)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, attendance.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)

	records, err := db.ListAttendance(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestManyConcurrentTogglesNeverDuplicate(t *testing.T) {
	ledger, db := newLedger(t)
	ctx := context.Background()
	now := testutil.At("2024-09-02", "09:05")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = ledger.Toggle(ctx, "e1", "s1", now)
		}()
	}
	wg.Wait()

	records, err := db.ListAttendance(ctx, "e1")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(records), 1)
}

func TestSubscribersSeeEveryChange(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()
	var changes []attendance.Change
	ledger.Subscribe(func(_ context.Context, ch attendance.Change) {
		changes = append(changes, ch)
	})

	_, err := ledger.Toggle(ctx, "e1", "s1", testutil.At("2024-09-02", "09:05"))
	require.NoError(t, err)
	_, err = ledger.Toggle(ctx, "e1", "s1", testutil.At("2024-09-02", "09:06"))
	require.NoError(t, err)
	_, err = ledger.Toggle(ctx, "e1", "s1", testutil.At("2024-09-02", "08:00"))
	require.Error(t, err)

	require.Len(t, changes, 2)
	assert.Equal(t, attendance.ChangeMarked, changes[0].Kind)
	assert.Equal(t, attendance.ChangeUnmarked, changes[1].Kind)
	assert.Equal(t, []string{"s1"}, changes[1].StudentIDs)
}

func TestFillAbsentOnlyFillsGaps(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	_, err := ledger.Toggle(ctx, "e1", "s1", testutil.At("2024-09-02", "09:05"))
	require.NoError(t, err)

	var changes []attendance.Change
	ledger.Subscribe(func(_ context.Context, ch attendance.Change) {
		changes = append(changes, ch)
	})

	sweptAt := testutil.At("2024-09-02", "11:00")
	written, err := ledger.FillAbsent(ctx, "e1", []string{"s1", "s2"}, sweptAt)
	require.NoError(t, err)
	assert.Equal(t, []string{"s2"}, written)

	written, err = ledger.FillAbsent(ctx, "e1", []string{"s1", "s2"}, sweptAt)
	require.NoError(t, err)
	assert.Empty(t, written)

	// the second fill wrote nothing and stays silent
	require.Len(t, changes, 1)
	assert.Equal(t, attendance.ChangeSwept, changes[0].Kind)
	assert.Equal(t, []string{"s2"}, changes[0].StudentIDs)

	ledger.Refresh(ctx, "e1")
	require.Len(t, changes, 2)
	assert.Equal(t, attendance.ChangeRefresh, changes[1].Kind)
	assert.Empty(t, changes[1].StudentIDs)

	records, err := ledger.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnTime, records["s1"].Status)
	assert.Equal(t, models.StatusAbsent, records["s2"].Status)
}

type failingStore struct {
	*inmem.DB
}

func (f failingStore) GetEvent(context.Context, string) (*models.Event, error) {
	return nil, storage.ErrTransientIO
}

func TestToggleSurfacesStorageErrors(t *testing.T) {
	_, db := newLedger(t)
	ledger := attendance.NewLedger(failingStore{DB: db}, newClassifier())

	_, err := ledger.Toggle(context.Background(), "e1", "s1", testutil.At("2024-09-02", "09:05"))
	assert.ErrorIs(t, err, storage.ErrTransientIO)
	assert.NotErrorIs(t, err, attendance.ErrInvalidState)
}
