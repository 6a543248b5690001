package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeSweepEvent  = "attendance:sweep-event"
	TypeSweepClosed = "attendance:sweep-closed"
)

type SweepEventPayload struct {
	EventID string `json:"event_id"`
}

func NewSweepEventTask(eventID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SweepEventPayload{EventID: eventID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSweepEvent, payload), nil
}

func NewSweepClosedTask() *asynq.Task {
	return asynq.NewTask(TypeSweepClosed, nil)
}

// SweepTaskID one task per event end, so rescheduling an unchanged event is a no-op.
func SweepTaskID(eventID string, at time.Time) string {
	return fmt.Sprintf("sweep-%s-%d", eventID, at.Unix())
}
