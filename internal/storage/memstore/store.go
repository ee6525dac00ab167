// Package memstore is an in-process implementation of the repository
// interfaces. It backs the "memory" database driver and the service tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/clubsphere/internal/app/models"
	"github.com/yigit/clubsphere/internal/app/repositories"
)

type memberKey struct {
	clubID uuid.UUID
	userID uuid.UUID
}

type tables struct {
	users         map[uuid.UUID]models.AuthUser
	sessions      map[uuid.UUID]models.Session
	profiles      map[uuid.UUID]models.Profile
	clubs         map[uuid.UUID]models.Club
	members       map[memberKey]models.ClubMembership
	events        map[uuid.UUID]models.Event
	notifications map[uuid.UUID]models.Notification
}

func newTables() tables {
	return tables{
		users:         map[uuid.UUID]models.AuthUser{},
		sessions:      map[uuid.UUID]models.Session{},
		profiles:      map[uuid.UUID]models.Profile{},
		clubs:         map[uuid.UUID]models.Club{},
		members:       map[memberKey]models.ClubMembership{},
		events:        map[uuid.UUID]models.Event{},
		notifications: map[uuid.UUID]models.Notification{},
	}
}

func (t tables) clone() tables {
	c := newTables()
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.sessions {
		c.sessions[k] = v
	}
	for k, v := range t.profiles {
		c.profiles[k] = v
	}
	for k, v := range t.clubs {
		c.clubs[k] = v
	}
	for k, v := range t.members {
		c.members[k] = v
	}
	for k, v := range t.events {
		c.events[k] = v
	}
	for k, v := range t.notifications {
		c.notifications[k] = v
	}
	return c
}

// Store holds every table behind one lock. Transactions are serialized and
// roll back by restoring a snapshot taken when they began. Writes outside a
// transaction wait for the running one, so a rollback never discards them.
type Store struct {
	mu   sync.RWMutex
	data tables
	last time.Time

	txMu sync.Mutex
}

// New returns an empty store
func New() *Store {
	return &Store{data: newTables()}
}

// NewRepositories returns the repository set backed by a fresh store
func NewRepositories() (*repositories.Repositories, *Store) {
	s := New()
	return s.Repositories(), s
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Transactor:    s,
		AuthUsers:     &authUsers{s},
		Sessions:      &sessions{s},
		Profiles:      &profiles{s},
		Clubs:         &clubs{s},
		Members:       &members{s},
		Events:        &events{s},
		Notifications: &notifications{s},
	}
}

// now returns a strictly increasing timestamp so creation order is total.
// Callers hold s.mu.
func (s *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

// autocommit holds txMu for a write made outside any transaction. The
// returned func releases it.
func (s *Store) autocommit(ctx context.Context) func() {
	if repositories.InTransaction(ctx) {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

// WithTransaction implements repositories.Transactor. Commit hooks run after
// txMu is released so they may write.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if repositories.InTransaction(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	locked := true
	unlock := func() {
		if locked {
			locked = false
			s.txMu.Unlock()
		}
	}
	defer unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	restore := func() {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
	}

	txCtx, scope := repositories.BeginScope(ctx, nil)
	defer func() {
		if r := recover(); r != nil {
			restore()
			panic(r)
		}
	}()

	if err := fn(txCtx); err != nil {
		restore()
		return err
	}

	unlock()
	scope.Committed()
	return nil
}
