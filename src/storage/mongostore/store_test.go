package mongostore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"Backend-Attendance/src/models"
	"Backend-Attendance/src/storage"
)

func TestStudentQuery(t *testing.T) {
	assert.Equal(t, bson.M{}, studentQuery(models.StudentFilter{}))

	q := studentQuery(models.StudentFilter{
		Courses:    []string{"BSIT"},
		YearLevels: []string{"1st Year", "2nd Year"},
		Search:     "dela.cruz",
	})
	assert.Equal(t, bson.M{"$in": []string{"BSIT"}}, q["course"])
	assert.Equal(t, bson.M{"$in": []string{"1st Year", "2nd Year"}}, q["yrlvl"])

	pattern := primitive.Regex{Pattern: `dela\.cruz`, Options: "i"}
	assert.Equal(t, bson.A{bson.M{"name": pattern}, bson.M{"studentNumber": pattern}}, q["$or"])
}

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(mongo.ErrNoDocuments), storage.ErrNotFound)
	assert.ErrorIs(t, mapErr(context.DeadlineExceeded), storage.ErrTransientIO)

	other := errors.New("boom")
	assert.Equal(t, other, mapErr(other))
}

func TestObjectIDRejectsGarbage(t *testing.T) {
	_, err := objectID("event", "not-hex")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	id := primitive.NewObjectID()
	got, err := objectID("event", id.Hex())
	assert.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestDocumentsRoundTripIDs(t *testing.T) {
	id := primitive.NewObjectID()
	e := models.Event{ID: id.Hex(), Title: "Assembly", Courses: []string{"BSIT"}, Tracker: 12.5}
	assert.Equal(t, e, toEventDoc(id, e).model())

	s := models.Student{ID: id.Hex(), Name: "Ana", Course: "BSIT", YearLevel: "1st Year"}
	assert.Equal(t, s, toStudentDoc(id, s).model())
}
