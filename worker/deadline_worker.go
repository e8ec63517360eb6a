package worker

import (
	"context"
	"log"
	"time"

	"webgestor/models"
	"webgestor/store"
)

type DeadlineWorker struct {
	Store     *store.Store
	Lookahead time.Duration
	Interval  time.Duration
	Logger    *log.Logger
}

func NewDeadlineWorker(s *store.Store, lookahead time.Duration, logger *log.Logger) *DeadlineWorker {
	return &DeadlineWorker{
		Store:     s,
		Lookahead: lookahead,
		Interval:  5 * time.Minute,
		Logger:    logger,
	}
}

func (dw *DeadlineWorker) Start(ctx context.Context) {
	dw.Logger.Println("Deadline worker started")

	ticker := time.NewTicker(dw.Interval)
	defer ticker.Stop()

	// Run once at startup so a restart does not delay warnings
	dw.ScanOnce()

	for {
		select {
		case <-ctx.Done():
			dw.Logger.Println("Deadline worker shutting down...")
			return
		case <-ticker.C:
			dw.ScanOnce()
		}
	}
}

// ScanOnce warns the assignee of every open task whose due date falls
// inside the lookahead window. Duplicate warnings are suppressed by the
// notification layer.
func (dw *DeadlineWorker) ScanOnce() {
	now := time.Now().UTC()
	horizon := now.Add(dw.Lookahead)

	for _, task := range dw.Store.Tasks() {
		if task.Status == models.TaskDone {
			continue
		}
		if task.AssigneeID == "" || task.DueDate == nil {
			continue
		}
		if task.DueDate.Before(now) || task.DueDate.After(horizon) {
			continue
		}

		if err := dw.Store.NotifyDeadlineApproaching(task); err != nil {
			dw.Logger.Printf("Error notifying deadline for task %s: %v", task.ID, err)
		}
	}
}
