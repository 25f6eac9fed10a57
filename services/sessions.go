package services

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/panyam/designboard/editor"
)

var (
	ErrNoSuchSession   = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

// SessionManager owns the editor sessions of a host serving several clients.
// Sessions are not thread safe so every use goes through With, which holds the
// session's own lock.
type SessionManager struct {
	Options     editor.Options
	MaxSessions int // 0 means unlimited
	Logger      *slog.Logger

	ids      IDGen
	mu       sync.RWMutex
	sessions map[string]*managedSession
}

type managedSession struct {
	mu       sync.Mutex
	session  *editor.Session
	created  time.Time
	lastUsed time.Time
}

// SessionInfo describes a live session.
type SessionInfo struct {
	ID       string    `json:"id"`
	Created  time.Time `json:"created"`
	LastUsed time.Time `json:"lastUsed"`
}

func NewSessionManager(opts editor.Options, maxSessions int, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &SessionManager{
		Options:     opts,
		MaxSessions: maxSessions,
		Logger:      logger,
		sessions:    map[string]*managedSession{},
	}
	m.ids = IDGen{Exists: func(id string) bool {
		_, ok := m.sessions[id]
		return ok
	}}
	return m
}

// Create starts a new session and returns its id.
func (m *SessionManager) Create() (string, error) {
	return m.CreateWith(nil)
}

// CreateWith starts a new session and runs fn on it before any other caller
// can reach it, eg to read its initial state. When fn fails the session is
// dropped again.
func (m *SessionManager) CreateWith(fn func(id string, s *editor.Session) error) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MaxSessions > 0 && len(m.sessions) >= m.MaxSessions {
		return "", ErrTooManySessions
	}
	id, err := m.ids.NextID()
	if err != nil {
		return "", err
	}
	opts := m.Options
	opts.Logger = m.Logger.With("session", id)
	now := time.Now()
	ms := &managedSession{session: editor.NewSession(opts), created: now, lastUsed: now}
	if fn != nil {
		if err := fn(id, ms.session); err != nil {
			return "", err
		}
	}
	m.sessions[id] = ms
	m.Logger.Info("session created", "session", id, "count", len(m.sessions))
	return id, nil
}

// With runs fn on a session while holding its lock.
func (m *SessionManager) With(id string, fn func(s *editor.Session) error) error {
	m.mu.RLock()
	ms, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNoSuchSession
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.lastUsed = time.Now()
	return fn(ms.session)
}

func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNoSuchSession
	}
	delete(m.sessions, id)
	m.Logger.Info("session deleted", "session", id, "count", len(m.sessions))
	return nil
}

func (m *SessionManager) List() []SessionInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SessionInfo, 0, len(m.sessions))
	for id, ms := range m.sessions {
		ms.mu.Lock()
		out = append(out, SessionInfo{ID: id, Created: ms.created, LastUsed: ms.lastUsed})
		ms.mu.Unlock()
	}
	return out
}

// Expire drops sessions idle for longer than maxIdle and returns how many
// were dropped.
func (m *SessionManager) Expire(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	dropped := 0
	for id, ms := range m.sessions {
		ms.mu.Lock()
		idle := ms.lastUsed.Before(cutoff)
		ms.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			dropped++
		}
	}
	if dropped > 0 {
		m.Logger.Info("expired idle sessions", "dropped", dropped, "count", len(m.sessions))
	}
	return dropped
}
