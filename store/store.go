package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"webgestor/models"
)

// activityCap bounds the audit trail to the most recent entries.
const activityCap = 100

// Store is the single source of truth for the domain collections during a
// session. Collections are hydrated from the storage adapter at construction
// and every mutation is persisted before it is committed in memory, so a
// failed write leaves state untouched.
//
// The browser client this replaces ran single-threaded; under a concurrent
// HTTP server the same single-writer discipline is enforced with a mutex.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	hub     *Hub
	logger  *log.Logger

	teams         []models.Team
	projects      []models.Project
	tasks         []models.Task
	comments      []models.Comment
	notifications []models.Notification
	activity      []models.ActivityLog
	members       []models.TeamMember

	// users mirrors the auth provider's profile records. It is not owned by
	// the storage adapter; see RefreshUsers.
	users []models.Profile

	directory UserDirectory
}

// New hydrates a Store from the given storage adapter.
func New(storage Storage, logger *log.Logger) (*Store, error) {
	s := &Store{
		storage: storage,
		hub:     NewHub(),
		logger:  logger,
	}
	if err := hydrate(storage, KeyTeams, &s.teams); err != nil {
		return nil, err
	}
	if err := hydrate(storage, KeyProjects, &s.projects); err != nil {
		return nil, err
	}
	if err := hydrate(storage, KeyTasks, &s.tasks); err != nil {
		return nil, err
	}
	if err := hydrate(storage, KeyComments, &s.comments); err != nil {
		return nil, err
	}
	if err := hydrate(storage, KeyNotifications, &s.notifications); err != nil {
		return nil, err
	}
	if err := hydrate(storage, KeyActivity, &s.activity); err != nil {
		return nil, err
	}
	if err := hydrate(storage, KeyTeamMembers, &s.members); err != nil {
		return nil, err
	}
	return s, nil
}

// SetDirectory attaches the external user-provisioning backend. Role changes
// are confirmed against it before the local mirror is touched.
func (s *Store) SetDirectory(d UserDirectory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.directory = d
}

// Hub exposes the notification event hub for subscribers.
func (s *Store) Hub() *Hub { return s.hub }

func hydrate[T any](storage Storage, key string, dst *[]T) error {
	data, err := storage.Load(key)
	if err != nil {
		return fmt.Errorf("failed to hydrate %s: %w", key, err)
	}
	if data == nil {
		*dst = []T{}
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// persist serializes a collection to its key. Called with the write lock
// held, before the in-memory swap.
func persist[T any](s *Store, key string, collection []T) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.storage.Save(key, data)
}

func newID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }

// logActivity appends an audit entry, evicting the oldest past the cap.
// Activity is a side channel: a persistence failure here is logged and does
// not fail the operation that triggered it. Caller holds the write lock.
func (s *Store) logActivity(actorID, action string, entityType models.ActivityEntity, entityID, details string) {
	if actorID == "" {
		return
	}
	entry := models.ActivityLog{
		ID:         newID(),
		UserID:     actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  now(),
	}
	next := make([]models.ActivityLog, 0, len(s.activity)+1)
	next = append(next, entry)
	next = append(next, s.activity...)
	if len(next) > activityCap {
		next = next[:activityCap]
	}
	if err := persist(s, KeyActivity, next); err != nil {
		s.logger.Printf("failed to persist activity log: %v", err)
		return
	}
	s.activity = next
}

// Activity returns the audit trail, most recent first.
func (s *Store) Activity() []models.ActivityLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ActivityLog, len(s.activity))
	copy(out, s.activity)
	return out
}
