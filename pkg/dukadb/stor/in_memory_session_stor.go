package stor

import (
	"sync"
	"time"

	"github.com/dukahub/dukaweb/pkg/dukadb/dukamodel"
	"github.com/hashicorp/go-uuid"
)

type InMemorySessionStor struct {
	mu       sync.Mutex
	nextID   int
	sessions map[string]*dukamodel.Session
}

func NewInMemorySessionStor() *InMemorySessionStor {
	return &InMemorySessionStor{sessions: make(map[string]*dukamodel.Session)}
}

func (s *InMemorySessionStor) CreateSession(userID, username, language string) (*dukamodel.Session, error) {
	token, err := uuid.GenerateUUID()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()
	session := &dukamodel.Session{
		ID:        s.nextID,
		Token:     token,
		UserID:    userID,
		Username:  username,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[token] = session

	sessionCopy := *session
	return &sessionCopy, nil
}

func (s *InMemorySessionStor) GetSessionByToken(token string) (*dukamodel.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}

	sessionCopy := *session
	return &sessionCopy, nil
}

func (s *InMemorySessionStor) DeleteSession(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *InMemorySessionStor) SetLanguageForUser(userID, language string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range s.sessions {
		if session.UserID == userID {
			session.Language = language
			session.UpdatedAt = time.Now()
		}
	}

	return nil
}
