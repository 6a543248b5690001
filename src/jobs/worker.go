package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"Backend-Attendance/src/services/attendance"
	"Backend-Attendance/src/services/sweeper"
)

// Handlers runs sweep tasks against the sweeper service.
type Handlers struct {
	sweeper *sweeper.Service
	now     func() time.Time
}

func NewHandlers(s *sweeper.Service, now func() time.Time) *Handlers {
	if now == nil {
		now = time.Now
	}
	return &Handlers{sweeper: s, now: now}
}

// RegisterHandlers ผูก handler กับ type ที่ใช้ใน task
func RegisterHandlers(mux *asynq.ServeMux, h *Handlers) {
	mux.HandleFunc(TypeSweepEvent, h.HandleSweepEventTask)
	mux.HandleFunc(TypeSweepClosed, h.HandleSweepClosedTask)
}

func (h *Handlers) HandleSweepEventTask(ctx context.Context, t *asynq.Task) error {
	var payload SweepEventPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}

	swept, err := h.sweeper.SweepEvent(ctx, payload.EventID, h.now())
	if errors.Is(err, attendance.ErrInvalidState) {
		// deleted, or moved later and rescheduled
		log.Printf("⚠️ Skipping sweep of event %s: %v", payload.EventID, err)
		return nil
	}
	if err != nil {
		log.Printf("❌ Failed to sweep event %s: %v", payload.EventID, err)
		return err
	}
	if swept {
		log.Println("✅ Event swept:", payload.EventID)
	}
	return nil
}

// HandleSweepClosedTask per-event failures are logged by the sweeper and retried on the
// next run; only a failure to read events or students fails the task.
func (h *Handlers) HandleSweepClosedTask(ctx context.Context, _ *asynq.Task) error {
	result, err := h.sweeper.SweepClosedEvents(ctx, h.now())
	if err != nil {
		log.Println("❌ Sweep of closed events failed:", err)
		return err
	}
	log.Printf("✅ Swept %d closed event(s)", len(result.SweptEventIDs))
	return nil
}
