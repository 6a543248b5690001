package jobs

import (
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

// Worker the asynq server running sweep tasks plus the scheduler enqueuing the
// periodic sweep.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

func NewWorker(redis asynq.RedisClientOpt, sweepInterval string, h *Handlers) (*Worker, error) {
	mux := asynq.NewServeMux()
	RegisterHandlers(mux, h)

	server := asynq.NewServer(redis, asynq.Config{
		Concurrency: 4,
		Queues:      map[string]int{"default": 1},
	})
	scheduler := asynq.NewScheduler(redis, nil)
	if _, err := scheduler.Register(sweepInterval, NewSweepClosedTask(), asynq.TaskID(TypeSweepClosed)); err != nil {
		return nil, fmt.Errorf("failed to register periodic sweep %q: %w", sweepInterval, err)
	}
	return &Worker{server: server, scheduler: scheduler, mux: mux}, nil
}

func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("failed to start asynq server: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return fmt.Errorf("failed to start asynq scheduler: %w", err)
	}
	log.Println("✅ Asynq worker and scheduler started")
	return nil
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}
