package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webgestor/models"
)

// seedWorkspace builds two teams with one project and one task each, plus
// one unassigned floater task in the first project.
func seedWorkspace(t *testing.T, s *Store) (teamA, teamB models.Team, taskA, taskB models.Task) {
	t.Helper()

	var err error
	teamA, err = s.CreateTeam("admin-1", models.Team{Name: "Alpha"})
	require.NoError(t, err)
	teamB, err = s.CreateTeam("admin-1", models.Team{Name: "Beta"})
	require.NoError(t, err)

	projectA, err := s.CreateProject("admin-1", models.Project{Name: "Apollo", TeamID: teamA.ID})
	require.NoError(t, err)
	projectB, err := s.CreateProject("admin-1", models.Project{Name: "Borealis", TeamID: teamB.ID})
	require.NoError(t, err)

	taskA, err = s.CreateTask("admin-1", models.Task{
		Title: "Alpha work", ProjectID: projectA.ID, AssigneeID: "member-a",
	})
	require.NoError(t, err)
	taskB, err = s.CreateTask("admin-1", models.Task{
		Title: "Beta work", ProjectID: projectB.ID, AssigneeID: "member-b",
	})
	require.NoError(t, err)
	_, err = s.CreateTask("admin-1", models.Task{Title: "Floater", ProjectID: projectA.ID})
	require.NoError(t, err)

	require.NoError(t, s.AddTeamMember("admin-1", teamA.ID, "leader-a"))
	require.NoError(t, s.AddTeamMember("admin-1", teamA.ID, "member-a"))
	require.NoError(t, s.AddTeamMember("admin-1", teamB.ID, "member-b"))

	s.RefreshUsers([]models.Profile{
		{ID: "admin-1", Name: "Root", Role: models.RoleAdmin},
		{ID: "leader-a", Name: "Lead", Role: models.RoleLeader},
		{ID: "member-a", Name: "Ana", Role: models.RoleCollaborator},
		{ID: "member-b", Name: "Bea", Role: models.RoleCollaborator},
	})
	return teamA, teamB, taskA, taskB
}

func TestVisibleProjectsByRole(t *testing.T) {
	s := newTestStore(t)
	seedWorkspace(t, s)

	admin, _ := s.UserByID("admin-1")
	leader, _ := s.UserByID("leader-a")
	memberB, _ := s.UserByID("member-b")

	assert.Len(t, s.VisibleProjects(admin), 2)

	leaderProjects := s.VisibleProjects(leader)
	require.Len(t, leaderProjects, 1)
	assert.Equal(t, "Apollo", leaderProjects[0].Name)

	memberProjects := s.VisibleProjects(memberB)
	require.Len(t, memberProjects, 1)
	assert.Equal(t, "Borealis", memberProjects[0].Name)
}

func TestVisibleTasksByRole(t *testing.T) {
	s := newTestStore(t)
	_, _, taskA, taskB := seedWorkspace(t, s)

	admin, _ := s.UserByID("admin-1")
	leader, _ := s.UserByID("leader-a")
	memberA, _ := s.UserByID("member-a")

	assert.Len(t, s.VisibleTasks(admin), 3)

	// Leaders see every task in their team's projects, assigned or not
	leaderTasks := s.VisibleTasks(leader)
	require.Len(t, leaderTasks, 2)
	for _, task := range leaderTasks {
		assert.NotEqual(t, taskB.ID, task.ID)
	}

	// Collaborators only see their own assignments
	memberTasks := s.VisibleTasks(memberA)
	require.Len(t, memberTasks, 1)
	assert.Equal(t, taskA.ID, memberTasks[0].ID)
}

func TestVisibleTasksWithoutTeam(t *testing.T) {
	s := newTestStore(t)
	seedWorkspace(t, s)

	s.RefreshUsers([]models.Profile{
		{ID: "drifter", Name: "Solo", Role: models.RoleLeader},
	})
	drifter, _ := s.UserByID("drifter")

	assert.Empty(t, s.VisibleTasks(drifter))
	assert.Empty(t, s.VisibleProjects(drifter))
}

func TestTeamMembersResolvesProfiles(t *testing.T) {
	s := newTestStore(t)
	teamA, _, _, _ := seedWorkspace(t, s)

	members := s.TeamMembers(teamA.ID)
	require.Len(t, members, 2)
	names := []string{members[0].Name, members[1].Name}
	assert.Contains(t, names, "Lead")
	assert.Contains(t, names, "Ana")
}

func TestUserTeam(t *testing.T) {
	s := newTestStore(t)
	teamA, _, _, _ := seedWorkspace(t, s)

	team, ok := s.UserTeam("member-a")
	require.True(t, ok)
	assert.Equal(t, teamA.ID, team.ID)

	_, ok = s.UserTeam("nobody")
	assert.False(t, ok)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := newTestStore(t)
	seedWorkspace(t, s)

	teams := s.Teams()
	teams[0].Name = "mutated"

	fresh := s.Teams()
	assert.NotEqual(t, "mutated", fresh[0].Name)
}
