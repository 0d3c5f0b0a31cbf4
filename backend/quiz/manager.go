package quiz

import (
	"sync"

	"mathlearn/backend/models"
)

// Manager tracks at most one live session per (user, lecture) pair. Starting
// a new session replaces a finished one; a session still in progress refuses
// to be restarted.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func sessionKey(userID, lectureID string) string {
	return userID + "|" + lectureID
}

func (m *Manager) Start(q *models.Quiz, userID, lectureID string, onSubmit func(models.QuizAttempt, *models.QuizResult)) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionKey(userID, lectureID)
	if existing, ok := m.sessions[key]; ok && existing.State() == StateInProgress {
		return nil, &models.InvalidStateError{Op: "start", State: string(StateInProgress)}
	}

	s := NewSession(q, userID, lectureID)
	s.OnSubmit(onSubmit)
	if err := s.Start(); err != nil {
		return nil, err
	}
	m.sessions[key] = s
	return s, nil
}

func (m *Manager) Get(userID, lectureID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionKey(userID, lectureID)]
	return s, ok
}
