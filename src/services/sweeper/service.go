// Package sweeper resolves unmarked eligible students to absent once an event closes.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/storage"
)

const (
	DefaultWorkers = 4
	DefaultLockTTL = 2 * time.Minute
)

// Store the reads a sweep needs.
type Store interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListStudents(ctx context.Context, filter models.StudentFilter) ([]models.Student, error)
}

// EventError a sweep failure tied to one event.
type EventError struct {
	EventID string
	Err     error
}

func (e *EventError) Error() string {
	return fmt.Sprintf("sweep event %s: %v", e.EventID, e.Err)
}

func (e *EventError) Unwrap() error { return e.Err }

type Result struct {
	SweptEventIDs []string
	Errors        []*EventError
}

// Err joins every per-event failure, nil when there were none.
func (r Result) Err() error {
	var merr *multierror.Error
	for _, e := range r.Errors {
		merr = multierror.Append(merr, e)
	}
	return merr.ErrorOrNil()
}

// Report the HTTP view of the result.
func (r Result) Report() models.SweepReport {
	report := models.SweepReport{SweptEventIDs: r.SweptEventIDs}
	if len(r.Errors) > 0 {
		report.Errors = make(map[string]string, len(r.Errors))
		for _, e := range r.Errors {
			report.Errors[e.EventID] = e.Err.Error()
		}
	}
	return report
}

type Option func(*Service)

// WithWorkers bounds how many events are swept in parallel.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithLocker(l Locker, ttl time.Duration) Option {
	return func(s *Service) {
		if l != nil {
			s.locker = l
		}
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

type Service struct {
	store   Store
	ledger  *attendance.Ledger
	locker  Locker
	workers int
	lockTTL time.Duration
}

func NewService(store Store, ledger *attendance.Ledger, opts ...Option) *Service {
	s := &Service{
		store:   store,
		ledger:  ledger,
		locker:  NewKeyedLocker(),
		workers: DefaultWorkers,
		lockTTL: DefaultLockTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SweepClosedEvents fills absences for every event closed at `now`. One event failing
// does not stop the others; failures are collected in the result. The returned error is
// only set when the event or student lists could not be read at all.
func (s *Service) SweepClosedEvents(ctx context.Context, now time.Time) (Result, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list events: %w", err)
	}
	students, err := s.store.ListStudents(ctx, models.StudentFilter{})
	if err != nil {
		return Result{}, fmt.Errorf("failed to list students: %w", err)
	}

	var (
		mu     sync.Mutex
		result = Result{SweptEventIDs: make([]string, 0)}
	)
	fail := func(eventID string, err error) {
		mu.Lock()
		result.Errors = append(result.Errors, &EventError{EventID: eventID, Err: err})
		mu.Unlock()
	}

	classifier := s.ledger.Classifier()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, event := range events {
		closed, err := classifier.IsClosed(event, now)
		if err != nil {
			fail(event.ID, err)
			continue
		}
		if !closed {
			continue
		}

		g.Go(func() error {
			swept, _, err := s.sweep(gctx, event, students, now)
			if err != nil {
				fail(event.ID, err)
				return nil
			}
			if swept {
				mu.Lock()
				result.SweptEventIDs = append(result.SweptEventIDs, event.ID)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(result.SweptEventIDs)
	sort.Slice(result.Errors, func(i, j int) bool { return result.Errors[i].EventID < result.Errors[j].EventID })
	if len(result.Errors) > 0 {
		log.Printf("⚠️ Sweep finished with %d failed event(s): %v", len(result.Errors), result.Err())
	}
	return result, nil
}

// SweepEvent sweeps a single event. Sweeping an event that has not closed yet is
// ErrInvalidState. It reports false when another sweep holds the event.
func (s *Service) SweepEvent(ctx context.Context, eventID string, now time.Time) (bool, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, fmt.Errorf("%w: event %s not found", attendance.ErrInvalidState, eventID)
		}
		return false, err
	}
	closed, err := s.ledger.Classifier().IsClosed(*event, now)
	if err != nil {
		return false, err
	}
	if !closed {
		return false, fmt.Errorf("%w: event %s has not ended yet", attendance.ErrInvalidState, eventID)
	}

	students, err := s.store.ListStudents(ctx, models.StudentFilter{Courses: event.Courses, YearLevels: event.YearLevels})
	if err != nil {
		return false, fmt.Errorf("failed to list students: %w", err)
	}
	swept, written, err := s.sweep(ctx, *event, students, now)
	if err != nil {
		return false, err
	}
	if swept && written == 0 {
		// first sweep after the event closed; the tracker was last computed while it was open
		s.ledger.Refresh(ctx, eventID)
	}
	return swept, nil
}

// sweep fills the gaps of one closed event while holding its lock. It reports whether
// the event was swept and how many absences were written.
func (s *Service) sweep(ctx context.Context, event models.Event, students []models.Student, now time.Time) (bool, int, error) {
	unlock, err := s.locker.Lock(ctx, "sweep:"+event.ID, s.lockTTL)
	if errors.Is(err, ErrLockHeld) {
		log.Printf("⚠️ Event %s is being swept elsewhere, skipping", event.ID)
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	defer unlock()

	records, err := s.ledger.Get(ctx, event.ID)
	if err != nil {
		return false, 0, err
	}
	missing := make([]string, 0)
	for _, st := range event.EligibleStudents(students) {
		if _, ok := records[st.ID]; !ok {
			missing = append(missing, st.ID)
		}
	}
	if len(missing) == 0 {
		return true, 0, nil
	}

	written, err := s.ledger.FillAbsent(ctx, event.ID, missing, now)
	if err != nil {
		return false, 0, err
	}
	if len(written) > 0 {
		log.Printf("✅ Marked %d student(s) absent for event %s", len(written), event.ID)
	}
	return true, len(written), nil
}
