package summary_reports

import (
	"context"
	"fmt"
	"log"
	"time"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/storage"
)

const queryTimeout = 5 * time.Second

// Service loads snapshots from the store and runs the aggregation engine over them.
type Service struct {
	store      storage.Store
	classifier attendance.Classifier
}

func NewService(store storage.Store, classifier attendance.Classifier) *Service {
	return &Service{store: store, classifier: classifier}
}

// Snapshot reads events, students and records. The three reads are not isolated from
// concurrent marks; the next read catches up.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list events: %w", err)
	}
	students, err := s.store.ListStudents(ctx, models.StudentFilter{})
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list students: %w", err)
	}
	records, err := s.store.ListAllAttendance(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	return Snapshot{Events: events, Students: students, Records: records}, nil
}

func (s *Service) Dashboard(ctx context.Context, now time.Time) (models.Dashboard, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}
	return BuildDashboard(snap, now, s.classifier)
}

func (s *Service) Summary(ctx context.Context, now time.Time) (models.AttendanceSummary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.AttendanceSummary{}, err
	}
	return ComputeAttendanceSummary(snap, now, s.classifier)
}

func (s *Service) Courses(ctx context.Context) ([]models.CoursePercentage, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return CourseSummary(eventCourses(snap.Events), snap.Students, flatten(snap.Records)), nil
}

func (s *Service) YearLevels(ctx context.Context) ([]models.YearLevelPercentage, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return YearLevelSummary(snap.Students, flatten(snap.Records)), nil
}

// eventData loads one event with its eligible students and records.
func (s *Service) eventData(ctx context.Context, eventID string) (models.Event, []models.Student, []models.AttendanceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return models.Event{}, nil, nil, err
	}
	students, err := s.store.ListStudents(ctx, models.StudentFilter{Courses: event.Courses, YearLevels: event.YearLevels})
	if err != nil {
		return models.Event{}, nil, nil, fmt.Errorf("failed to list students: %w", err)
	}
	records, err := s.store.ListAttendance(ctx, eventID)
	if err != nil {
		return models.Event{}, nil, nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return *event, students, records, nil
}

func (s *Service) EventRoster(ctx context.Context, eventID string) (models.EventRoster, error) {
	event, students, records, err := s.eventData(ctx, eventID)
	if err != nil {
		return models.EventRoster{}, err
	}
	return BuildEventRoster(event, students, records), nil
}

// RefreshTracker recomputes one event's tracker and stores it.
func (s *Service) RefreshTracker(ctx context.Context, eventID string) (float64, error) {
	event, students, records, err := s.eventData(ctx, eventID)
	if err != nil {
		return 0, err
	}
	tracker := ComputeEventTracker(event, students, records)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if err := s.store.UpdateEventTracker(ctx, eventID, tracker); err != nil {
		return 0, fmt.Errorf("failed to update tracker: %w", err)
	}
	return tracker, nil
}

// OnLedgerChange is subscribed to the ledger: it refreshes only the changed event's
// tracker. A failed refresh is logged; the mark itself already succeeded.
func (s *Service) OnLedgerChange(ctx context.Context, ch attendance.Change) {
	tracker, err := s.RefreshTracker(ctx, ch.EventID)
	if err != nil {
		log.Printf("⚠️ Warning: failed to refresh tracker for event %s after %s: %v", ch.EventID, ch.Kind, err)
		return
	}
	log.Printf("✅ Tracker for event %s is now %.2f%% (%s)", ch.EventID, tracker, ch.Kind)
}
