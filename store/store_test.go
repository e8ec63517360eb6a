package store

import (
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webgestor/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(NewMemoryStorage(), log.New(io.Discard, "", 0))
	require.NoError(t, err)
	return s
}

func TestCreateTeamAssignsIDAndLogs(t *testing.T) {
	s := newTestStore(t)

	team, err := s.CreateTeam("actor-1", models.Team{Name: "Engineering"})
	require.NoError(t, err)
	assert.NotEmpty(t, team.ID)
	assert.False(t, team.CreatedAt.IsZero())

	other, err := s.CreateTeam("actor-1", models.Team{Name: "Design"})
	require.NoError(t, err)
	assert.NotEqual(t, team.ID, other.ID)

	activity := s.Activity()
	require.Len(t, activity, 2)
	// Most recent first
	assert.Equal(t, "Team created", activity[0].Action)
	assert.Equal(t, other.ID, activity[0].EntityID)
	assert.Equal(t, models.EntityTeam, activity[0].EntityType)
}

func TestUpdateTeamMergesFields(t *testing.T) {
	s := newTestStore(t)
	team, err := s.CreateTeam("actor-1", models.Team{Name: "Engineering", Description: "builds things"})
	require.NoError(t, err)

	name := "Platform"
	require.NoError(t, s.UpdateTeam("actor-1", team.ID, TeamUpdate{Name: &name}))

	got, ok := s.TeamByID(team.ID)
	require.True(t, ok)
	assert.Equal(t, "Platform", got.Name)
	assert.Equal(t, "builds things", got.Description)
}

func TestUpdateUnknownTeamIsNoOp(t *testing.T) {
	s := newTestStore(t)
	name := "Ghost"
	require.NoError(t, s.UpdateTeam("actor-1", "missing", TeamUpdate{Name: &name}))
	assert.Empty(t, s.Activity())
}

func TestDeleteTeamBlockedWhileProjectsExist(t *testing.T) {
	s := newTestStore(t)
	team, err := s.CreateTeam("actor-1", models.Team{Name: "Engineering"})
	require.NoError(t, err)
	project, err := s.CreateProject("actor-1", models.Project{Name: "Launch", TeamID: team.ID})
	require.NoError(t, err)

	err = s.DeleteTeam("actor-1", team.ID)
	assert.ErrorIs(t, err, ErrTeamReferenced)
	_, ok := s.TeamByID(team.ID)
	assert.True(t, ok)

	require.NoError(t, s.DeleteProject("actor-1", project.ID))
	require.NoError(t, s.DeleteTeam("actor-1", team.ID))
	_, ok = s.TeamByID(team.ID)
	assert.False(t, ok)
}

func TestDeleteTeamPrunesMemberships(t *testing.T) {
	s := newTestStore(t)
	team, err := s.CreateTeam("actor-1", models.Team{Name: "Engineering"})
	require.NoError(t, err)
	require.NoError(t, s.AddTeamMember("actor-1", team.ID, "user-7"))

	require.NoError(t, s.DeleteTeam("actor-1", team.ID))
	_, ok := s.UserTeam("user-7")
	assert.False(t, ok)
}

func TestAddTeamMemberIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	team, err := s.CreateTeam("actor-1", models.Team{Name: "Engineering"})
	require.NoError(t, err)

	require.NoError(t, s.AddTeamMember("actor-1", team.ID, "user-7"))
	require.NoError(t, s.AddTeamMember("actor-1", team.ID, "user-7"))

	s.RefreshUsers([]models.Profile{{ID: "user-7", Name: "Sete"}})
	assert.Len(t, s.TeamMembers(team.ID), 1)
}

func TestRemoveAbsentMemberIsNoOp(t *testing.T) {
	s := newTestStore(t)
	team, err := s.CreateTeam("actor-1", models.Team{Name: "Engineering"})
	require.NoError(t, err)

	before := len(s.Activity())
	require.NoError(t, s.RemoveTeamMember("actor-1", team.ID, "nobody"))
	assert.Len(t, s.Activity(), before)
}

func TestCreateProjectDefaultsToActive(t *testing.T) {
	s := newTestStore(t)
	team, err := s.CreateTeam("actor-1", models.Team{Name: "Engineering"})
	require.NoError(t, err)

	project, err := s.CreateProject("actor-1", models.Project{Name: "Launch", TeamID: team.ID})
	require.NoError(t, err)
	assert.Equal(t, models.ProjectActive, project.Status)
}

func TestDeleteProjectBlockedWhileTasksExist(t *testing.T) {
	s := newTestStore(t)
	team, err := s.CreateTeam("actor-1", models.Team{Name: "Engineering"})
	require.NoError(t, err)
	project, err := s.CreateProject("actor-1", models.Project{Name: "Launch", TeamID: team.ID})
	require.NoError(t, err)
	task, err := s.CreateTask("actor-1", models.Task{Title: "Ship it", ProjectID: project.ID})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteProject("actor-1", project.ID), ErrProjectReferenced)

	require.NoError(t, s.DeleteTask("actor-1", task.ID))
	require.NoError(t, s.DeleteProject("actor-1", project.ID))
}

func TestCreateTaskStartsInTodo(t *testing.T) {
	s := newTestStore(t)

	task, err := s.CreateTask("actor-1", models.Task{
		Title:     "Ship it",
		ProjectID: "p1",
		Status:    models.TaskDone,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskTodo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestCreateTaskNotifiesAssignee(t *testing.T) {
	s := newTestStore(t)

	task, err := s.CreateTask("actor-1", models.Task{
		Title:      "Ship it",
		ProjectID:  "p1",
		AssigneeID: "user-2",
	})
	require.NoError(t, err)

	notifications := s.Notifications("user-2")
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotifyTaskAssigned, notifications[0].Type)
	assert.Equal(t, task.ID, notifications[0].RelatedID)
	assert.False(t, notifications[0].Read)
}

func TestCreateTaskSelfAssignmentDoesNotNotify(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateTask("user-2", models.Task{
		Title:      "Ship it",
		ProjectID:  "p1",
		AssigneeID: "user-2",
	})
	require.NoError(t, err)
	assert.Empty(t, s.Notifications("user-2"))
}

func TestUpdateTaskStatusLogsTransitionAndNotifies(t *testing.T) {
	s := newTestStore(t)
	task, err := s.CreateTask("actor-1", models.Task{
		Title:      "Ship it",
		ProjectID:  "p1",
		AssigneeID: "user-2",
	})
	require.NoError(t, err)

	done := models.TaskDone
	require.NoError(t, s.UpdateTask("actor-1", task.ID, TaskUpdate{Status: &done}))

	activity := s.Activity()
	assert.Equal(t, "Status changed to done", activity[0].Action)

	notifications := s.Notifications("user-2")
	require.Len(t, notifications, 2)
	assert.Equal(t, models.NotifyStatusChanged, notifications[0].Type)
}

func TestUpdateTaskSameStatusIsPlainUpdate(t *testing.T) {
	s := newTestStore(t)
	task, err := s.CreateTask("actor-1", models.Task{Title: "Ship it", ProjectID: "p1"})
	require.NoError(t, err)

	todo := models.TaskTodo
	require.NoError(t, s.UpdateTask("actor-1", task.ID, TaskUpdate{Status: &todo}))
	assert.Equal(t, "Task updated", s.Activity()[0].Action)
}

func TestUpdateTaskActorAssigneeNotNotifiedOnStatusChange(t *testing.T) {
	s := newTestStore(t)
	task, err := s.CreateTask("user-2", models.Task{
		Title:      "Ship it",
		ProjectID:  "p1",
		AssigneeID: "user-2",
	})
	require.NoError(t, err)

	inProgress := models.TaskInProgress
	require.NoError(t, s.UpdateTask("user-2", task.ID, TaskUpdate{Status: &inProgress}))
	assert.Empty(t, s.Notifications("user-2"))
}

func TestUpdateTaskReassignmentNotifiesNewAssignee(t *testing.T) {
	s := newTestStore(t)
	task, err := s.CreateTask("actor-1", models.Task{
		Title:      "Ship it",
		ProjectID:  "p1",
		AssigneeID: "user-2",
	})
	require.NoError(t, err)

	assignee := "user-3"
	require.NoError(t, s.UpdateTask("actor-1", task.ID, TaskUpdate{AssigneeID: &assignee}))

	require.Len(t, s.Notifications("user-3"), 1)
	assert.Equal(t, models.NotifyTaskAssigned, s.Notifications("user-3")[0].Type)
	// The old assignee only has the original assignment notification
	assert.Len(t, s.Notifications("user-2"), 1)
}

func TestTwoStepStatusTransition(t *testing.T) {
	s := newTestStore(t)
	task, err := s.CreateTask("actor-1", models.Task{
		Title:      "Ship it",
		ProjectID:  "p1",
		AssigneeID: "user-2",
	})
	require.NoError(t, err)

	inProgress := models.TaskInProgress
	done := models.TaskDone
	require.NoError(t, s.UpdateTask("actor-1", task.ID, TaskUpdate{Status: &inProgress}))
	require.NoError(t, s.UpdateTask("actor-1", task.ID, TaskUpdate{Status: &done}))

	got, ok := s.TaskByID(task.ID)
	require.True(t, ok)
	assert.Equal(t, models.TaskDone, got.Status)

	activity := s.Activity()
	assert.Equal(t, "Status changed to done", activity[0].Action)
	assert.Equal(t, "Status changed to in_progress", activity[1].Action)

	// One status notification per transition plus the assignment
	assert.Len(t, s.Notifications("user-2"), 3)
}

func TestDeleteTaskKeepsComments(t *testing.T) {
	s := newTestStore(t)
	task, err := s.CreateTask("actor-1", models.Task{Title: "Ship it", ProjectID: "p1"})
	require.NoError(t, err)
	_, err = s.AddComment("actor-1", task.ID, "looks good")
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask("actor-1", task.ID))
	assert.Len(t, s.TaskComments(task.ID), 1)
}

func TestAddCommentRequiresActor(t *testing.T) {
	s := newTestStore(t)
	task, err := s.CreateTask("actor-1", models.Task{Title: "Ship it", ProjectID: "p1"})
	require.NoError(t, err)

	_, err = s.AddComment("", task.ID, "anonymous")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAddCommentNotifiesAssigneeButNotAuthor(t *testing.T) {
	s := newTestStore(t)
	task, err := s.CreateTask("actor-1", models.Task{
		Title:      "Ship it",
		ProjectID:  "p1",
		AssigneeID: "user-2",
	})
	require.NoError(t, err)

	before := len(s.Activity())

	_, err = s.AddComment("user-3", task.ID, "needs a test")
	require.NoError(t, err)
	notifications := s.Notifications("user-2")
	require.Len(t, notifications, 2)
	assert.Equal(t, models.NotifyNewComment, notifications[0].Type)

	// Assignee commenting on their own task stays quiet
	_, err = s.AddComment("user-2", task.ID, "on it")
	require.NoError(t, err)
	assert.Len(t, s.Notifications("user-2"), 2)

	// Comments never touch the activity log
	assert.Len(t, s.Activity(), before)
}

func TestMarkNotificationRead(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateTask("actor-1", models.Task{
		Title:      "Ship it",
		ProjectID:  "p1",
		AssigneeID: "user-2",
	})
	require.NoError(t, err)

	n := s.Notifications("user-2")[0]
	assert.Equal(t, 1, s.UnreadNotificationCount("user-2"))

	require.NoError(t, s.MarkNotificationRead(n.ID))
	assert.Equal(t, 0, s.UnreadNotificationCount("user-2"))

	// Re-marking and unknown ids are no-ops
	require.NoError(t, s.MarkNotificationRead(n.ID))
	require.NoError(t, s.MarkNotificationRead("missing"))
}

func TestMarkAllNotificationsReadIsScoped(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.CreateTask("actor-1", models.Task{
			Title:      fmt.Sprintf("Task %d", i),
			ProjectID:  "p1",
			AssigneeID: "user-2",
		})
		require.NoError(t, err)
	}
	_, err := s.CreateTask("actor-1", models.Task{
		Title:      "Other",
		ProjectID:  "p1",
		AssigneeID: "user-3",
	})
	require.NoError(t, err)

	require.NoError(t, s.MarkAllNotificationsRead("user-2"))
	assert.Equal(t, 0, s.UnreadNotificationCount("user-2"))
	assert.Equal(t, 1, s.UnreadNotificationCount("user-3"))

	assert.ErrorIs(t, s.MarkAllNotificationsRead(""), ErrUnauthenticated)
}

func TestDeadlineNotificationDeduplicates(t *testing.T) {
	s := newTestStore(t)
	task, err := s.CreateTask("actor-1", models.Task{
		Title:      "Ship it",
		ProjectID:  "p1",
		AssigneeID: "user-2",
	})
	require.NoError(t, err)

	due := time.Now().UTC().Add(2 * time.Hour)
	task.DueDate = &due

	require.NoError(t, s.NotifyDeadlineApproaching(task))
	require.NoError(t, s.NotifyDeadlineApproaching(task))

	var deadlineCount int
	for _, n := range s.Notifications("user-2") {
		if n.Type == models.NotifyDeadlineApproaching {
			deadlineCount++
		}
	}
	assert.Equal(t, 1, deadlineCount)
}

func TestActivityLogIsCapped(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 110; i++ {
		_, err := s.CreateTask("actor-1", models.Task{
			Title:     fmt.Sprintf("Task %d", i),
			ProjectID: "p1",
		})
		require.NoError(t, err)
	}

	activity := s.Activity()
	assert.Len(t, activity, 100)
	// Most recent first
	assert.Equal(t, "Task 109", activity[0].Details)
	assert.Equal(t, "Task 10", activity[99].Details)
}

func TestEmptyActorSkipsActivity(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateTask("", models.Task{Title: "Ship it", ProjectID: "p1"})
	require.NoError(t, err)
	assert.Empty(t, s.Activity())
}

func TestStoreHydratesFromStorage(t *testing.T) {
	storage := NewMemoryStorage()
	logger := log.New(io.Discard, "", 0)

	s, err := New(storage, logger)
	require.NoError(t, err)
	team, err := s.CreateTeam("actor-1", models.Team{Name: "Engineering"})
	require.NoError(t, err)
	_, err = s.CreateProject("actor-1", models.Project{Name: "Launch", TeamID: team.ID})
	require.NoError(t, err)

	// A second store over the same storage sees the same state
	reloaded, err := New(storage, logger)
	require.NoError(t, err)
	got, ok := reloaded.TeamByID(team.ID)
	require.True(t, ok)
	assert.Equal(t, "Engineering", got.Name)
	assert.Len(t, reloaded.TeamProjects(team.ID), 1)
	assert.Len(t, reloaded.Activity(), 2)
}

func TestUpdateUserRole(t *testing.T) {
	s := newTestStore(t)
	s.RefreshUsers([]models.Profile{
		{ID: "user-2", Name: "Dois", Role: models.RoleCollaborator},
	})

	require.NoError(t, s.UpdateUserRole("admin-1", "user-2", models.RoleLeader))
	got, ok := s.UserByID("user-2")
	require.True(t, ok)
	assert.Equal(t, models.RoleLeader, got.Role)
	assert.Equal(t, "Role changed to leader", s.Activity()[0].Action)

	assert.ErrorIs(t, s.UpdateUserRole("admin-1", "ghost", models.RoleAdmin), ErrUserNotFound)
}

func TestRefreshUsersMerges(t *testing.T) {
	s := newTestStore(t)
	s.RefreshUsers([]models.Profile{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob"},
	})
	s.RefreshUsers([]models.Profile{
		{ID: "b", Name: "Bobby"},
		{ID: "c", Name: "Carol"},
	})

	users := s.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "Bobby", users[0].Name)
	assert.Equal(t, "Carol", users[1].Name)
}

func TestHubReceivesPublishedNotifications(t *testing.T) {
	s := newTestStore(t)
	id, events := s.Hub().Subscribe()
	defer s.Hub().Unsubscribe(id)

	_, err := s.CreateTask("actor-1", models.Task{
		Title:      "Ship it",
		ProjectID:  "p1",
		AssigneeID: "user-2",
	})
	require.NoError(t, err)

	select {
	case n := <-events:
		assert.Equal(t, "user-2", n.UserID)
		assert.Equal(t, models.NotifyTaskAssigned, n.Type)
	default:
		t.Fatal("expected a notification on the hub")
	}
}
