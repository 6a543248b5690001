package events

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/storage"
	"Backend-Attendance/src/utils"
)

// SweepScheduler arranges a sweep of the event once its window has closed.
type SweepScheduler interface {
	ScheduleSweep(ctx context.Context, eventID string, at time.Time) error
}

// TrackerRefresher recomputes an event's cached tracker; *attendance.Ledger is one.
type TrackerRefresher interface {
	Refresh(ctx context.Context, eventID string)
}

type Service struct {
	store      storage.Store
	classifier attendance.Classifier
	scheduler  SweepScheduler
	refresher  TrackerRefresher
}

// NewService scheduler may be nil; closed events are then only picked up by the
// periodic sweep. refresher may be nil too.
func NewService(store storage.Store, classifier attendance.Classifier, scheduler SweepScheduler, refresher TrackerRefresher) *Service {
	return &Service{store: store, classifier: classifier, scheduler: scheduler, refresher: refresher}
}

// List events in start order matching every set field of the filter.
func (s *Service) List(ctx context.Context, filter models.EventFilter, now time.Time) ([]models.Event, error) {
	from, to, err := periodRange(filter.Period, now.In(s.classifier.Location()))
	if err != nil {
		return nil, err
	}

	all, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]models.Event, 0, len(all))
	for _, e := range all {
		if filter.Course != "" && !contains(e.Courses, filter.Course) {
			continue
		}
		if filter.YearLevel != "" && !contains(e.YearLevels, filter.YearLevel) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if !from.IsZero() {
			w, err := s.classifier.Window(e)
			if err != nil {
				log.Printf("⚠️ Skipping event %s with a bad window: %v", e.ID, err)
				continue
			}
			if !w.Start.Before(to) || w.End.Before(from) {
				continue
			}
		}
		events = append(events, e)
	}
	return events, nil
}

// Today events whose window touches now's calendar day.
func (s *Service) Today(ctx context.Context, now time.Time) ([]models.Event, error) {
	return s.List(ctx, models.EventFilter{Period: models.PeriodToday}, now)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.store.GetEvent(ctx, id)
}

func (s *Service) Create(ctx context.Context, req models.EventRequest) (models.Event, error) {
	event := req.ToEvent()
	end, err := s.check(req, event)
	if err != nil {
		return models.Event{}, err
	}

	created, err := s.store.CreateEvent(ctx, event)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	s.scheduleSweep(ctx, created.ID, end)
	log.Printf("✅ Event %s created (%s %s-%s)", created.ID, created.StartDate, created.StartTime, created.EndTime)
	return created, nil
}

// Update replaces the event's details and recomputes its tracker, since the course and
// year level sets decide who counts.
func (s *Service) Update(ctx context.Context, id string, req models.EventRequest) (models.Event, error) {
	event := req.ToEvent()
	event.ID = id
	end, err := s.check(req, event)
	if err != nil {
		return models.Event{}, err
	}

	updated, err := s.store.UpdateEvent(ctx, event)
	if err != nil {
		return models.Event{}, err
	}
	s.scheduleSweep(ctx, updated.ID, end)
	if s.refresher != nil {
		s.refresher.Refresh(ctx, updated.ID)
	}
	return updated, nil
}

// Delete removes the event and its attendance. A sweep already scheduled for it becomes a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteEvent(ctx, id)
}

// check validates the payload and returns the end of the event window.
func (s *Service) check(req models.EventRequest, event models.Event) (time.Time, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return time.Time{}, err
	}
	w, err := s.classifier.Window(event)
	if err != nil {
		return time.Time{}, err
	}
	return w.End, nil
}

func (s *Service) scheduleSweep(ctx context.Context, eventID string, end time.Time) {
	if s.scheduler == nil {
		return
	}
	// the window is closed strictly after End
	if err := s.scheduler.ScheduleSweep(ctx, eventID, end.Add(time.Second)); err != nil {
		log.Printf("⚠️ Warning: failed to schedule sweep for event %s: %v", eventID, err)
	}
}

// periodRange returns [from, to) for a period; zero times mean "no restriction".
func periodRange(period string, now time.Time) (time.Time, time.Time, error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "", models.PeriodAll:
		return time.Time{}, time.Time{}, nil
	case models.PeriodToday:
		return day, day.AddDate(0, 0, 1), nil
	case models.PeriodWeek:
		// weeks start on Monday
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), nil
	case models.PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown period %q", attendance.ErrInvalidInput, period)
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if strings.EqualFold(x, v) {
			return true
		}
	}
	return false
}
