package students

import (
	"context"
	"fmt"
	"log"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/storage"
	"Backend-Attendance/src/utils"
)

// TrackerRefresher recomputes an event's cached tracker; *attendance.Ledger is one.
type TrackerRefresher interface {
	Refresh(ctx context.Context, eventID string)
}

type Service struct {
	store     storage.Store
	refresher TrackerRefresher
}

// NewService refresher may be nil, trackers then only move on the next attendance change.
func NewService(store storage.Store, refresher TrackerRefresher) *Service {
	return &Service{store: store, refresher: refresher}
}

// List students sorted by name; empty filter fields match everyone.
func (s *Service) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	students, err := s.store.ListStudents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Student, error) {
	return s.store.GetStudent(ctx, id)
}

func (s *Service) Create(ctx context.Context, req models.StudentRequest) (models.Student, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return models.Student{}, err
	}
	student, err := s.store.CreateStudent(ctx, req.ToStudent())
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to create student: %w", err)
	}
	log.Printf("✅ Student %s (%s) added", student.StudentNumber, student.ID)
	s.refreshTrackers(ctx, student)
	return student, nil
}

// Update replaces the student's details. Existing attendance records stay; trackers of
// events the student was or now is eligible for are recomputed.
func (s *Service) Update(ctx context.Context, id string, req models.StudentRequest) (models.Student, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return models.Student{}, err
	}
	before, err := s.store.GetStudent(ctx, id)
	if err != nil {
		return models.Student{}, err
	}
	student := req.ToStudent()
	student.ID = id
	updated, err := s.store.UpdateStudent(ctx, student)
	if err != nil {
		return models.Student{}, err
	}
	s.refreshTrackers(ctx, *before, updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	before, err := s.store.GetStudent(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteStudent(ctx, id); err != nil {
		return err
	}
	s.refreshTrackers(ctx, *before)
	return nil
}

// refreshTrackers recomputes every event admitting any of the given students. The write
// already happened, so failures are only logged.
func (s *Service) refreshTrackers(ctx context.Context, students ...models.Student) {
	if s.refresher == nil {
		return
	}
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		log.Printf("⚠️ Warning: failed to list events for tracker refresh: %v", err)
		return
	}
	for _, e := range events {
		for _, st := range students {
			if e.Admits(st) {
				s.refresher.Refresh(ctx, e.ID)
				break
			}
		}
	}
}
