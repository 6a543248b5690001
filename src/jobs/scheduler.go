package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// AsynqScheduler enqueues a sweep of an event to run when its window closes.
type AsynqScheduler struct {
	client *asynq.Client
}

func NewAsynqScheduler(client *asynq.Client) *AsynqScheduler {
	return &AsynqScheduler{client: client}
}

func (s *AsynqScheduler) ScheduleSweep(_ context.Context, eventID string, at time.Time) error {
	if s.client == nil {
		return errors.New("asynq client is not initialized")
	}
	task, err := NewSweepEventTask(eventID)
	if err != nil {
		return err
	}

	taskID := SweepTaskID(eventID, at)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(at), asynq.TaskID(taskID), asynq.MaxRetry(5))
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		log.Println("⏩ Sweep task already scheduled:", taskID)
		return nil
	}
	if err != nil {
		log.Printf("❌ Failed to enqueue task %s: %v", taskID, err)
		return err
	}
	log.Printf("✅ Task scheduled: %s | RunAt=%s", taskID, at.Format(time.RFC3339))
	return nil
}

// ParseEvery reads the "@every <duration>" form of a cron spec.
func ParseEvery(spec string) (time.Duration, error) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(spec), "@every ")
	if !ok {
		return 0, fmt.Errorf("sweep interval %q is not an @every spec", spec)
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("sweep interval %q: %w", spec, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("sweep interval %q must be positive", spec)
	}
	return d, nil
}

// RunTicker calls fn every interval until ctx is done. It is the no-redis stand-in for
// the asynq periodic sweep.
func RunTicker(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}
