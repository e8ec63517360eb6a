package store

import (
	"webgestor/models"
)

// UserDirectory abstracts the external user-provisioning backend. The store
// only consumes its stable identifiers and role field; account lifecycle
// belongs to the auth layer.
type UserDirectory interface {
	ListProfiles() ([]models.Profile, error)
	UpdateProfileRole(userID, role string) error
}

// RefreshUsers merges the latest provisioning records into the local mirror:
// known ids are replaced, new ids appended, absent ids dropped. It is called
// on demand instead of on a polling timer, so a role change committed here a
// moment ago cannot be clobbered by a stale snapshot read before it.
func (s *Store) RefreshUsers(profiles []models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]models.Profile, len(profiles))
	order := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if _, seen := byID[p.ID]; !seen {
			order = append(order, p.ID)
		}
		byID[p.ID] = p
	}

	next := make([]models.Profile, 0, len(order))
	// Keep the mirror's existing order for ids that survive the refresh.
	for _, u := range s.users {
		if p, ok := byID[u.ID]; ok {
			next = append(next, p)
			delete(byID, u.ID)
		}
	}
	for _, id := range order {
		if p, ok := byID[id]; ok {
			next = append(next, p)
		}
	}
	s.users = next
}

// UpdateUserRole changes the role on the external provisioning record, then
// updates the mirror and logs the change. The domain layer performs no
// permission check here; the transport layer guards the route.
func (s *Store) UpdateUserRole(actorID, userID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.users, userID, func(p models.Profile) string { return p.ID })
	if idx < 0 {
		return ErrUserNotFound
	}

	if s.directory != nil {
		if err := s.directory.UpdateProfileRole(userID, role); err != nil {
			return err
		}
	}
	next := cloneSlice(s.users)
	next[idx].Role = role
	s.users = next
	s.logActivity(actorID, "Role changed to "+role, models.EntityUser, userID, "")
	return nil
}

// Users returns the current profile mirror.
func (s *Store) Users() []models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Profile, len(s.users))
	copy(out, s.users)
	return out
}
