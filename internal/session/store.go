package session

import (
	"ChatbotFunil/internal/entity"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Store interface {
	// Get returns a snapshot of the session, creating it on first reference.
	Get(userID string) entity.UserSession
	// Update runs fn on a private copy of the session while holding the
	// session's lock. The copy replaces the stored session only when fn
	// returns nil; an error or a panic leaves the stored session untouched.
	Update(userID string, fn func(s *entity.UserSession) error) (entity.UserSession, error)
	// Apply writes a partial update and returns the new snapshot.
	Apply(userID string, u entity.SessionUpdate) entity.UserSession
}

type entry struct {
	mu      sync.Mutex
	session entity.UserSession
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	log     *logrus.Logger
	now     func() time.Time
}

func New(log *logrus.Logger) Store {
	return &memoryStore{
		entries: make(map[string]*entry),
		log:     log,
		now:     time.Now,
	}
}

func (m *memoryStore) entry(userID string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[userID]
	if !ok {
		e = &entry{session: entity.NewUserSession(userID)}
		m.entries[userID] = e
		m.log.WithFields(logrus.Fields{
			"user_id": userID,
		}).Debug("Created new session")
	}
	return e
}

func (m *memoryStore) Get(userID string) entity.UserSession {
	e := m.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.session.Clone()
}

func (m *memoryStore) Update(userID string, fn func(s *entity.UserSession) error) (snapshot entity.UserSession, err error) {
	e := m.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.session.Clone()

	defer func() {
		if r := recover(); r != nil {
			m.log.WithFields(logrus.Fields{
				"user_id": userID,
				"panic":   r,
			}).Error("Session update panicked, changes discarded")
			snapshot = e.session.Clone()
			err = fmt.Errorf("session update panicked: %v", r)
		}
	}()

	if err := fn(&working); err != nil {
		return e.session.Clone(), err
	}

	e.session = working
	return working.Clone(), nil
}

func (m *memoryStore) Apply(userID string, u entity.SessionUpdate) entity.UserSession {
	snapshot, _ := m.Update(userID, func(s *entity.UserSession) error {
		s.Apply(u, m.now())
		return nil
	})
	return snapshot
}
