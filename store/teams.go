package store

import (
	"webgestor/models"
)

// TeamUpdate carries the mergeable fields of a team. Nil means unchanged.
type TeamUpdate struct {
	Name        *string
	Description *string
	LeaderID    *string
}

// CreateTeam assigns a fresh id and creation timestamp, persists and logs.
func (s *Store) CreateTeam(actorID string, team models.Team) (models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team.ID = newID()
	team.CreatedAt = now()

	next := append(cloneSlice(s.teams), team)
	if err := persist(s, KeyTeams, next); err != nil {
		return models.Team{}, err
	}
	s.teams = next
	s.logActivity(actorID, "Team created", models.EntityTeam, team.ID, team.Name)
	return team, nil
}

// UpdateTeam merges the given fields into the team. Unknown ids are a silent
// no-op.
func (s *Store) UpdateTeam(actorID, id string, updates TeamUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.teams, id, func(t models.Team) string { return t.ID })
	if idx < 0 {
		return nil
	}

	next := cloneSlice(s.teams)
	t := &next[idx]
	if updates.Name != nil {
		t.Name = *updates.Name
	}
	if updates.Description != nil {
		t.Description = *updates.Description
	}
	if updates.LeaderID != nil {
		t.LeaderID = *updates.LeaderID
	}

	if err := persist(s, KeyTeams, next); err != nil {
		return err
	}
	s.teams = next
	s.logActivity(actorID, "Team updated", models.EntityTeam, id, "")
	return nil
}

// DeleteTeam removes a team and its membership rows. Deletion is blocked
// while projects still reference the team. Unknown ids are a no-op.
func (s *Store) DeleteTeam(actorID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.teams, id, func(t models.Team) string { return t.ID })
	if idx < 0 {
		return nil
	}
	for _, p := range s.projects {
		if p.TeamID == id {
			return ErrTeamReferenced
		}
	}

	next := removeAt(s.teams, idx)
	if err := persist(s, KeyTeams, next); err != nil {
		return err
	}
	s.teams = next

	remaining := make([]models.TeamMember, 0, len(s.members))
	for _, m := range s.members {
		if m.TeamID != id {
			remaining = append(remaining, m)
		}
	}
	if len(remaining) != len(s.members) {
		if err := persist(s, KeyTeamMembers, remaining); err != nil {
			s.logger.Printf("failed to prune memberships of deleted team %s: %v", id, err)
		} else {
			s.members = remaining
		}
	}

	s.logActivity(actorID, "Team deleted", models.EntityTeam, id, "")
	return nil
}

// AddTeamMember creates a membership row. Adding an existing pair is a
// no-op, which makes the call idempotent.
func (s *Store) AddTeamMember(actorID, teamID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.members {
		if m.TeamID == teamID && m.UserID == userID {
			return nil
		}
	}

	member := models.TeamMember{
		ID:       newID(),
		TeamID:   teamID,
		UserID:   userID,
		JoinedAt: now(),
	}
	next := append(cloneSlice(s.members), member)
	if err := persist(s, KeyTeamMembers, next); err != nil {
		return err
	}
	s.members = next
	s.logActivity(actorID, "Member added", models.EntityTeam, teamID, userID)
	return nil
}

// RemoveTeamMember deletes the membership pair when present.
func (s *Store) RemoveTeamMember(actorID, teamID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.TeamMember, 0, len(s.members))
	for _, m := range s.members {
		if !(m.TeamID == teamID && m.UserID == userID) {
			next = append(next, m)
		}
	}
	if len(next) == len(s.members) {
		return nil
	}
	if err := persist(s, KeyTeamMembers, next); err != nil {
		return err
	}
	s.members = next
	s.logActivity(actorID, "Member removed", models.EntityTeam, teamID, userID)
	return nil
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func indexByID[T any](in []T, id string, idOf func(T) string) int {
	for i, v := range in {
		if idOf(v) == id {
			return i
		}
	}
	return -1
}

func removeAt[T any](in []T, idx int) []T {
	out := make([]T, 0, len(in)-1)
	out = append(out, in[:idx]...)
	out = append(out, in[idx+1:]...)
	return out
}
