package attendance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/storage"
)

// Store the part of storage.Store the ledger writes through
type Store interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	ListAttendance(ctx context.Context, eventID string) ([]models.AttendanceRecord, error)
	InsertAttendanceIfAbsent(ctx context.Context, rec models.AttendanceRecord) (bool, error)
	DeleteAttendance(ctx context.Context, eventID, studentID string) (bool, error)
}

type ChangeKind string

const (
	ChangeMarked   ChangeKind = "marked"
	ChangeUnmarked ChangeKind = "unmarked"
	ChangeSwept    ChangeKind = "swept"
	ChangeRefresh  ChangeKind = "refresh" // nothing written, recompute anyway
)

// Change is published after every successful ledger mutation.
type Change struct {
	EventID    string
	StudentIDs []string
	Kind       ChangeKind
}

type ChangeFunc func(ctx context.Context, ch Change)

// Ledger holds at most one record per (event, student) and toggles it.
type Ledger struct {
	store      Store
	classifier Classifier

	mu          sync.RWMutex
	subscribers []ChangeFunc
}

func NewLedger(store Store, classifier Classifier) *Ledger {
	return &Ledger{store: store, classifier: classifier}
}

func (l *Ledger) Classifier() Classifier {
	return l.classifier
}

// Subscribe registers fn; subscribers run synchronously, in order, after each change.
func (l *Ledger) Subscribe(fn ChangeFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers = append(l.subscribers, fn)
}

func (l *Ledger) publish(ctx context.Context, ch Change) {
	l.mu.RLock()
	subs := make([]ChangeFunc, len(l.subscribers))
	copy(subs, l.subscribers)
	l.mu.RUnlock()

	for _, fn := range subs {
		fn(ctx, ch)
	}
}

// Toggle unmarks the student if a record exists, otherwise marks them with the status
// the event window gives `now`. The delete and the create are each a single
// conditional write, so two concurrent togglers never leave two records.
func (l *Ledger) Toggle(ctx context.Context, eventID, studentID string, now time.Time) (models.ToggleResult, error) {
	event, err := l.store.GetEvent(ctx, eventID)
	if err != nil {
		return models.ToggleResult{}, notFoundAsInvalidState(err, "event", eventID)
	}
	student, err := l.store.GetStudent(ctx, studentID)
	if err != nil {
		return models.ToggleResult{}, notFoundAsInvalidState(err, "student", studentID)
	}

	removed, err := l.store.DeleteAttendance(ctx, eventID, studentID)
	if err != nil {
		return models.ToggleResult{}, err
	}
	if removed {
		l.publish(ctx, Change{EventID: eventID, StudentIDs: []string{studentID}, Kind: ChangeUnmarked})
		return models.ToggleResult{Removed: true}, nil
	}

	if !event.Admits(*student) {
		return models.ToggleResult{}, fmt.Errorf("%w: student %s is not eligible for event %s", ErrInvalidState, studentID, eventID)
	}

	phase, err := l.classifier.Classify(*event, now)
	if err != nil {
		return models.ToggleResult{}, err
	}
	status, ok := phase.Status()
	if !ok {
		return models.ToggleResult{}, fmt.Errorf("%w: event %s has not started yet", ErrInvalidState, eventID)
	}

	created, err := l.store.InsertAttendanceIfAbsent(ctx, models.AttendanceRecord{
		EventID:   eventID,
		StudentID: studentID,
		Status:    status,
		Timestamp: now,
	})
	if err != nil {
		return models.ToggleResult{}, err
	}
	if !created {
		return models.ToggleResult{}, fmt.Errorf("%w: event %s student %s", ErrConflict, eventID, studentID)
	}

	l.publish(ctx, Change{EventID: eventID, StudentIDs: []string{studentID}, Kind: ChangeMarked})
	return models.ToggleResult{Status: status}, nil
}

// Get returns the event's records keyed by student id. An unknown event is ErrInvalidState.
func (l *Ledger) Get(ctx context.Context, eventID string) (map[string]models.AttendanceRecord, error) {
	if _, err := l.store.GetEvent(ctx, eventID); err != nil {
		return nil, notFoundAsInvalidState(err, "event", eventID)
	}
	records, err := l.store.ListAttendance(ctx, eventID)
	if err != nil {
		return nil, err
	}
	byStudent := make(map[string]models.AttendanceRecord, len(records))
	for _, r := range storage.Dedupe(records) {
		byStudent[r.StudentID] = r
	}
	return byStudent, nil
}

// FillAbsent writes an absent record for every student without one and returns the ids
// it actually wrote. Existing records are never touched. Subscribers are only notified
// when something was written.
func (l *Ledger) FillAbsent(ctx context.Context, eventID string, studentIDs []string, now time.Time) ([]string, error) {
	written := make([]string, 0)
	var fillErr error
	for _, sid := range studentIDs {
		created, err := l.store.InsertAttendanceIfAbsent(ctx, models.AttendanceRecord{
			EventID:   eventID,
			StudentID: sid,
			Status:    models.StatusAbsent,
			Timestamp: now,
		})
		if err != nil {
			fillErr = fmt.Errorf("fill absent for student %s: %w", sid, err)
			break
		}
		if created {
			written = append(written, sid)
		}
	}
	if len(written) > 0 {
		l.publish(ctx, Change{EventID: eventID, StudentIDs: written, Kind: ChangeSwept})
	}
	return written, fillErr
}

// Refresh tells subscribers to recompute the event without changing any record.
func (l *Ledger) Refresh(ctx context.Context, eventID string) {
	l.publish(ctx, Change{EventID: eventID, Kind: ChangeRefresh})
}

func notFoundAsInvalidState(err error, kind, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s %s not found", ErrInvalidState, kind, id)
	}
	return err
}
