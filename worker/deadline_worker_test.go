package worker

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webgestor/models"
	"webgestor/store"
)

func newTestWorker(t *testing.T) (*DeadlineWorker, *store.Store) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	s, err := store.New(store.NewMemoryStorage(), logger)
	require.NoError(t, err)
	return NewDeadlineWorker(s, 24*time.Hour, logger), s
}

func deadlineCount(s *store.Store, userID string) int {
	count := 0
	for _, n := range s.Notifications(userID) {
		if n.Type == models.NotifyDeadlineApproaching {
			count++
		}
	}
	return count
}

func makeTask(t *testing.T, s *store.Store, assignee string, due *time.Time) models.Task {
	t.Helper()
	task, err := s.CreateTask("actor-1", models.Task{
		Title:      "Ship it",
		ProjectID:  "p1",
		AssigneeID: assignee,
	})
	require.NoError(t, err)
	if due != nil {
		require.NoError(t, s.UpdateTask("actor-1", task.ID, store.TaskUpdate{DueDate: due}))
	}
	task, _ = s.TaskByID(task.ID)
	return task
}

func TestScanOnceWarnsInsideWindow(t *testing.T) {
	dw, s := newTestWorker(t)

	due := time.Now().UTC().Add(2 * time.Hour)
	makeTask(t, s, "user-2", &due)

	dw.ScanOnce()
	assert.Equal(t, 1, deadlineCount(s, "user-2"))
}

func TestScanOnceIgnoresTasksOutsideWindow(t *testing.T) {
	dw, s := newTestWorker(t)

	farOut := time.Now().UTC().Add(72 * time.Hour)
	makeTask(t, s, "user-2", &farOut)

	overdue := time.Now().UTC().Add(-2 * time.Hour)
	makeTask(t, s, "user-3", &overdue)

	makeTask(t, s, "user-4", nil)

	dw.ScanOnce()
	assert.Zero(t, deadlineCount(s, "user-2"))
	assert.Zero(t, deadlineCount(s, "user-3"))
	assert.Zero(t, deadlineCount(s, "user-4"))
}

func TestScanOnceSkipsDoneAndUnassigned(t *testing.T) {
	dw, s := newTestWorker(t)

	due := time.Now().UTC().Add(2 * time.Hour)
	doneTask := makeTask(t, s, "user-2", &due)
	done := models.TaskDone
	require.NoError(t, s.UpdateTask("actor-1", doneTask.ID, store.TaskUpdate{Status: &done}))

	makeTask(t, s, "", &due)

	dw.ScanOnce()
	assert.Zero(t, deadlineCount(s, "user-2"))
}

func TestScanOnceDoesNotDuplicateWarnings(t *testing.T) {
	dw, s := newTestWorker(t)

	due := time.Now().UTC().Add(2 * time.Hour)
	makeTask(t, s, "user-2", &due)

	dw.ScanOnce()
	dw.ScanOnce()
	dw.ScanOnce()
	assert.Equal(t, 1, deadlineCount(s, "user-2"))
}
