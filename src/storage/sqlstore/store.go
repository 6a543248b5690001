// Package sqlstore is the gorm backend, used with postgres or sqlite.
package sqlstore

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/storage"
)

type Store struct {
	db *gorm.DB
}

var _ storage.Store = (*Store)(nil)

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
}

func OpenPostgres(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}
	log.Println("✅ PostgreSQL connected")
	return New(db)
}

// OpenSQLite opens (or creates) the database file at path with a single connection.
func OpenSQLite(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=on"), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	log.Printf("✅ SQLite opened at %s", path)
	return New(db)
}

// New migrates the schema on db.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&eventRow{}, &studentRow{}, &attendanceRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", storage.ErrTransientIO, err)
	}
	return err
}

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	var rows []eventRow
	if err := s.db.WithContext(ctx).Order("start_date ASC, start_time ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", mapErr(err))
	}
	events := make([]models.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.model())
	}
	return events, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var row eventRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("event %s: %w", id, mapErr(err))
	}
	e := row.model()
	return &e, nil
}

func (s *Store) CreateEvent(ctx context.Context, e models.Event) (models.Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	row := toEventRow(e)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Event{}, fmt.Errorf("failed to create event: %w", mapErr(err))
	}
	return row.model(), nil
}

// UpdateEvent writes every field but the tracker.
func (s *Store) UpdateEvent(ctx context.Context, e models.Event) (models.Event, error) {
	row := toEventRow(e)
	res := s.db.WithContext(ctx).Model(&eventRow{ID: e.ID}).
		Select("title", "description", "image", "start_date", "end_date", "start_time", "end_time", "courses", "year_levels").
		Updates(&row)
	if res.Error != nil {
		return models.Event{}, fmt.Errorf("failed to update event: %w", mapErr(res.Error))
	}
	if res.RowsAffected == 0 {
		return models.Event{}, fmt.Errorf("event %s: %w", e.ID, storage.ErrNotFound)
	}
	updated, err := s.GetEvent(ctx, e.ID)
	if err != nil {
		return models.Event{}, err
	}
	return *updated, nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&eventRow{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete event: %w", mapErr(res.Error))
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("event %s: %w", id, storage.ErrNotFound)
		}
		if err := tx.Delete(&attendanceRow{}, "event_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete attendance of event %s: %w", id, mapErr(err))
		}
		return nil
	})
}

func (s *Store) UpdateEventTracker(ctx context.Context, eventID string, value float64) error {
	res := s.db.WithContext(ctx).Model(&eventRow{}).Where("id = ?", eventID).Update("tracker", value)
	if res.Error != nil {
		return fmt.Errorf("failed to update tracker: %w", mapErr(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("event %s: %w", eventID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) ListStudents(ctx context.Context, f models.StudentFilter) ([]models.Student, error) {
	q := s.db.WithContext(ctx).Model(&studentRow{})
	if len(f.Courses) > 0 {
		q = q.Where("course IN ?", f.Courses)
	}
	if len(f.YearLevels) > 0 {
		q = q.Where("year_level IN ?", f.YearLevels)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(student_number) LIKE ?", like, like)
	}

	var rows []studentRow
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", mapErr(err))
	}
	students := make([]models.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, r.model())
	}
	return students, nil
}

func (s *Store) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	var row studentRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("student %s: %w", id, mapErr(err))
	}
	st := row.model()
	return &st, nil
}

func (s *Store) CreateStudent(ctx context.Context, st models.Student) (models.Student, error) {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	row := toStudentRow(st)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Student{}, fmt.Errorf("failed to create student: %w", mapErr(err))
	}
	return row.model(), nil
}

func (s *Store) UpdateStudent(ctx context.Context, st models.Student) (models.Student, error) {
	row := toStudentRow(st)
	res := s.db.WithContext(ctx).Model(&studentRow{ID: st.ID}).
		Select("student_number", "name", "course", "year_level", "profile").
		Updates(&row)
	if res.Error != nil {
		return models.Student{}, fmt.Errorf("failed to update student: %w", mapErr(res.Error))
	}
	if res.RowsAffected == 0 {
		return models.Student{}, fmt.Errorf("student %s: %w", st.ID, storage.ErrNotFound)
	}
	return st, nil
}

func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&studentRow{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete student: %w", mapErr(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("student %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) ListAttendance(ctx context.Context, eventID string) ([]models.AttendanceRecord, error) {
	var rows []attendanceRow
	if err := s.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", mapErr(err))
	}
	records := make([]models.AttendanceRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.model())
	}
	return storage.Dedupe(records), nil
}

func (s *Store) ListAllAttendance(ctx context.Context) (map[string][]models.AttendanceRecord, error) {
	var rows []attendanceRow
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", mapErr(err))
	}
	byEvent := make(map[string][]models.AttendanceRecord)
	for _, r := range rows {
		byEvent[r.EventID] = append(byEvent[r.EventID], r.model())
	}
	for id, records := range byEvent {
		byEvent[id] = storage.Dedupe(records)
	}
	return byEvent, nil
}

// InsertAttendanceIfAbsent is INSERT ... ON CONFLICT DO NOTHING on the composite key.
func (s *Store) InsertAttendanceIfAbsent(ctx context.Context, rec models.AttendanceRecord) (bool, error) {
	row := attendanceRow{
		EventID:   rec.EventID,
		StudentID: rec.StudentID,
		Status:    rec.Status,
		Timestamp: rec.Timestamp,
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("failed to write attendance: %w", mapErr(res.Error))
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) DeleteAttendance(ctx context.Context, eventID, studentID string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&attendanceRow{}, "event_id = ? AND student_id = ?", eventID, studentID)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete attendance: %w", mapErr(res.Error))
	}
	return res.RowsAffected > 0, nil
}
