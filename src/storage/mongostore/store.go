// Package mongostore is the MongoDB storage backend.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/storage"
)

const (
	EventsCollection     = "events"
	StudentsCollection   = "students"
	AttendanceCollection = "attendance"
)

type Store struct {
	client     *mongo.Client
	events     *mongo.Collection
	students   *mongo.Collection
	attendance *mongo.Collection
}

var _ storage.Store = (*Store)(nil)

// Open binds the collections of db and makes sure the attendance key is unique.
func Open(ctx context.Context, db *mongo.Database) (*Store, error) {
	s := &Store{
		client:     db.Client(),
		events:     db.Collection(EventsCollection),
		students:   db.Collection(StudentsCollection),
		attendance: db.Collection(AttendanceCollection),
	}

	_, err := s.attendance.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "eventId", Value: 1}, {Key: "studentId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("event_student_unique"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create attendance index: %w", mapErr(err))
	}
	_, err = s.students.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "course", Value: 1}, {Key: "yrlvl", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create students index: %w", mapErr(err))
	}

	log.Println("✅ Mongo attendance store ready")
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// mapErr translates driver errors into storage sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return storage.ErrNotFound
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", storage.ErrTransientIO, err)
	}
	return err
}

func objectID(kind, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return oid, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := s.events.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %w", mapErr(err))
	}
	defer cursor.Close(ctx)

	var docs []eventDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", mapErr(err))
	}
	events := make([]models.Event, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.model())
	}
	return events, nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	oid, err := objectID("event", id)
	if err != nil {
		return nil, err
	}
	var doc eventDoc
	if err := s.events.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("event %s: %w", id, mapErr(err))
	}
	e := doc.model()
	return &e, nil
}

func (s *Store) CreateEvent(ctx context.Context, e models.Event) (models.Event, error) {
	oid := primitive.NewObjectID()
	if e.ID != "" {
		var err error
		if oid, err = primitive.ObjectIDFromHex(e.ID); err != nil {
			return models.Event{}, fmt.Errorf("invalid event id %q: %w", e.ID, err)
		}
	}
	if _, err := s.events.InsertOne(ctx, toEventDoc(oid, e)); err != nil {
		return models.Event{}, fmt.Errorf("failed to insert event: %w", mapErr(err))
	}
	e.ID = oid.Hex()
	return e, nil
}

// UpdateEvent replaces everything but the tracker, which only UpdateEventTracker writes.
func (s *Store) UpdateEvent(ctx context.Context, e models.Event) (models.Event, error) {
	oid, err := objectID("event", e.ID)
	if err != nil {
		return models.Event{}, err
	}
	update := bson.M{"$set": bson.M{
		"title":       e.Title,
		"description": e.Description,
		"image":       e.Image,
		"startDate":   e.StartDate,
		"endDate":     e.EndDate,
		"startTime":   e.StartTime,
		"endTime":     e.EndTime,
		"course":      e.Courses,
		"yearLevel":   e.YearLevels,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc eventDoc
	if err := s.events.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return models.Event{}, fmt.Errorf("event %s: %w", e.ID, mapErr(err))
	}
	return doc.model(), nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	oid, err := objectID("event", id)
	if err != nil {
		return err
	}
	res, err := s.events.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", mapErr(err))
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("event %s: %w", id, storage.ErrNotFound)
	}
	if _, err := s.attendance.DeleteMany(ctx, bson.M{"eventId": id}); err != nil {
		return fmt.Errorf("failed to delete attendance of event %s: %w", id, mapErr(err))
	}
	return nil
}

func (s *Store) UpdateEventTracker(ctx context.Context, eventID string, value float64) error {
	oid, err := objectID("event", eventID)
	if err != nil {
		return err
	}
	res, err := s.events.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"tracker": value}})
	if err != nil {
		return fmt.Errorf("failed to update tracker: %w", mapErr(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("event %s: %w", eventID, storage.ErrNotFound)
	}
	return nil
}

func studentQuery(f models.StudentFilter) bson.M {
	query := bson.M{}
	if len(f.Courses) > 0 {
		query["course"] = bson.M{"$in": f.Courses}
	}
	if len(f.YearLevels) > 0 {
		query["yrlvl"] = bson.M{"$in": f.YearLevels}
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"studentNumber": pattern},
		}
	}
	return query
}

func (s *Store) ListStudents(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.students.Find(ctx, studentQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find students: %w", mapErr(err))
	}
	defer cursor.Close(ctx)

	var docs []studentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode students: %w", mapErr(err))
	}
	students := make([]models.Student, 0, len(docs))
	for _, d := range docs {
		students = append(students, d.model())
	}
	return students, nil
}

func (s *Store) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	oid, err := objectID("student", id)
	if err != nil {
		return nil, err
	}
	var doc studentDoc
	if err := s.students.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, fmt.Errorf("student %s: %w", id, mapErr(err))
	}
	st := doc.model()
	return &st, nil
}

func (s *Store) CreateStudent(ctx context.Context, st models.Student) (models.Student, error) {
	oid := primitive.NewObjectID()
	if st.ID != "" {
		var err error
		if oid, err = primitive.ObjectIDFromHex(st.ID); err != nil {
			return models.Student{}, fmt.Errorf("invalid student id %q: %w", st.ID, err)
		}
	}
	if _, err := s.students.InsertOne(ctx, toStudentDoc(oid, st)); err != nil {
		return models.Student{}, fmt.Errorf("failed to insert student: %w", mapErr(err))
	}
	st.ID = oid.Hex()
	return st, nil
}

func (s *Store) UpdateStudent(ctx context.Context, st models.Student) (models.Student, error) {
	oid, err := objectID("student", st.ID)
	if err != nil {
		return models.Student{}, err
	}
	res, err := s.students.ReplaceOne(ctx, bson.M{"_id": oid}, toStudentDoc(oid, st))
	if err != nil {
		return models.Student{}, fmt.Errorf("failed to update student: %w", mapErr(err))
	}
	if res.MatchedCount == 0 {
		return models.Student{}, fmt.Errorf("student %s: %w", st.ID, storage.ErrNotFound)
	}
	return st, nil
}

func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	oid, err := objectID("student", id)
	if err != nil {
		return err
	}
	res, err := s.students.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", mapErr(err))
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("student %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) findAttendance(ctx context.Context, query bson.M) ([]attendanceDoc, error) {
	cursor, err := s.attendance.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance: %w", mapErr(err))
	}
	defer cursor.Close(ctx)

	var docs []attendanceDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode attendance: %w", mapErr(err))
	}
	return docs, nil
}

func (s *Store) ListAttendance(ctx context.Context, eventID string) ([]models.AttendanceRecord, error) {
	docs, err := s.findAttendance(ctx, bson.M{"eventId": eventID})
	if err != nil {
		return nil, err
	}
	records := make([]models.AttendanceRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.model())
	}
	return storage.Dedupe(records), nil
}

func (s *Store) ListAllAttendance(ctx context.Context) (map[string][]models.AttendanceRecord, error) {
	docs, err := s.findAttendance(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	byEvent := make(map[string][]models.AttendanceRecord)
	for _, d := range docs {
		byEvent[d.EventID] = append(byEvent[d.EventID], d.model())
	}
	for id, records := range byEvent {
		byEvent[id] = storage.Dedupe(records)
	}
	return byEvent, nil
}

// InsertAttendanceIfAbsent upserts with $setOnInsert, so an existing record is left
// untouched. A racing upsert that loses on the unique index reports false.
func (s *Store) InsertAttendanceIfAbsent(ctx context.Context, rec models.AttendanceRecord) (bool, error) {
	filter := bson.M{"eventId": rec.EventID, "studentId": rec.StudentID}
	update := bson.M{"$setOnInsert": attendanceDoc{
		EventID:   rec.EventID,
		StudentID: rec.StudentID,
		Status:    rec.Status,
		Timestamp: rec.Timestamp,
	}}
	res, err := s.attendance.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to write attendance: %w", mapErr(err))
	}
	return res.UpsertedCount == 1, nil
}

func (s *Store) DeleteAttendance(ctx context.Context, eventID, studentID string) (bool, error) {
	res, err := s.attendance.DeleteOne(ctx, bson.M{"eventId": eventID, "studentId": studentID})
	if err != nil {
		return false, fmt.Errorf("failed to delete attendance: %w", mapErr(err))
	}
	return res.DeletedCount > 0, nil
}
