package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/junolabs/juno/internal/dialogue"
)

type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

var ErrNotFound = errors.New("session not found")

// Session is one user's ongoing conversation. Dialogue holds the phase
// machine state; turns live in the memory store keyed by ID.
type Session struct {
	ID              string           `json:"session_id"`
	UserID          string           `json:"user_id"`
	Language        string           `json:"language"`
	Style           dialogue.Style   `json:"style"`
	VoicePreference string           `json:"voice_preference,omitempty"`
	Dialogue        dialogue.Machine `json:"dialogue"`
	Status          Status           `json:"status"`
	StartedAt       time.Time        `json:"started_at"`
	LastActivityAt  time.Time        `json:"last_activity_at"`
}

// Phase returns the session's active dialogue phase.
func (s *Session) Phase() dialogue.Phase {
	return s.Dialogue.Current()
}

// Manager owns all session state. Reads return clones; mutation goes
// through Manager methods under the lock. Exchange serialization is a
// separate per-session mutex so a slow completion call never blocks
// unrelated sessions.
type Manager struct {
	mu                sync.RWMutex
	sessions          map[string]*Session
	exchangeLocks     map[string]*sync.Mutex
	inactivityTimeout time.Duration
	onExpire          func(*Session)
}

func NewManager(inactivityTimeout time.Duration) *Manager {
	if inactivityTimeout <= 0 {
		inactivityTimeout = 30 * time.Minute
	}
	return &Manager{
		sessions:          make(map[string]*Session),
		exchangeLocks:     make(map[string]*sync.Mutex),
		inactivityTimeout: inactivityTimeout,
	}
}

func (m *Manager) SetExpireHook(hook func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpire = hook
}

func (m *Manager) Create(userID, language string, style dialogue.Style, voicePreference string) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:              uuid.NewString(),
		UserID:          userID,
		Language:        language,
		Style:           style,
		VoicePreference: voicePreference,
		Dialogue:        dialogue.NewMachine(style),
		Status:          StatusActive,
		StartedAt:       now,
		LastActivityAt:  now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	m.exchangeLocks[s.ID] = &sync.Mutex{}
	return clone(s)
}

func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(s), nil
}

// LockExchange serializes turn handling for one session: utterances
// must be processed strictly in arrival order because phase and memory
// mutate sequentially. Cross-session calls proceed in parallel. The
// returned func releases the lock; err means the session is unknown.
func (m *Manager) LockExchange(sessionID string) (func(), error) {
	m.mu.RLock()
	lock, ok := m.exchangeLocks[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	lock.Lock()
	return lock.Unlock, nil
}

func (m *Manager) Touch(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	s.LastActivityAt = time.Now().UTC()
	return nil
}

// SetDialogue commits a new phase-machine state for a session. The
// caller computes the successor state (advance, crisis, reset) outside
// the lock; this keeps the machine a pure value.
func (m *Manager) SetDialogue(sessionID string, machine dialogue.Machine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	s.Dialogue = machine
	s.LastActivityAt = time.Now().UTC()
	return nil
}

// Reset returns the session to its initial phase. Used on explicit
// clear only; the turn log is wiped separately by the memory store.
func (m *Manager) Reset(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	s.Dialogue = s.Dialogue.Reset()
	s.LastActivityAt = time.Now().UTC()
	return clone(s), nil
}

func (m *Manager) End(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	s.Status = StatusEnded
	s.LastActivityAt = time.Now().UTC()
	delete(m.exchangeLocks, sessionID)
	return clone(s), nil
}

func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.expireInactive()
			}
		}
	}()
}

// InactivityTimeout exposes the idle TTL so clients can be told how
// long a quiet session survives.
func (m *Manager) InactivityTimeout() time.Duration {
	return m.inactivityTimeout
}

func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, s := range m.sessions {
		if s.Status == StatusActive {
			count++
		}
	}
	return count
}

func (m *Manager) expireInactive() {
	now := time.Now().UTC()
	var expired []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		if s.Status != StatusActive {
			continue
		}
		if now.Sub(s.LastActivityAt) < m.inactivityTimeout {
			continue
		}
		s.Status = StatusEnded
		s.LastActivityAt = now
		expired = append(expired, clone(s))
		delete(m.exchangeLocks, id)
	}
	hook := m.onExpire
	m.mu.Unlock()

	if hook != nil {
		for _, s := range expired {
			hook(s)
		}
	}
}

func clone(s *Session) *Session {
	c := *s
	return &c
}
