package session

import (
	"sync"

	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/dukahub/dukaweb/pkg/clog"
	"github.com/dukahub/dukaweb/pkg/dukadb/dukamodel"
	"github.com/dukahub/dukaweb/pkg/dukadb/stor"
	"github.com/dukahub/dukaweb/pkg/lock"
	"github.com/dukahub/dukaweb/pkg/translate"
)

// Manager is a read-through cache of sessions keyed by token.
type Manager struct {
	mu              sync.RWMutex
	cache           map[string]*Session
	stors           *stor.Stors
	defaultLanguage translate.Language
	userLocker      *lock.IDLocker[string]
}

func NewManager(stors *stor.Stors, defaultLanguage translate.Language) *Manager {
	return &Manager{
		cache:           make(map[string]*Session),
		stors:           stors,
		defaultLanguage: defaultLanguage,
		userLocker:      lock.NewIDLocker[string](),
	}
}

// Login opens a session for a user the upstream identity provider already authenticated.
func (m *Manager) Login(userID, username string) (*Session, error) {
	lang, err := m.stors.PreferenceStor.GetLanguage(userID)
	if err != nil {
		return nil, err
	}

	if lang == "" {
		lang = string(m.defaultLanguage)
	}

	model, err := m.stors.SessionStor.CreateSession(userID, username, lang)
	if err != nil {
		return nil, err
	}

	s, err := m.load(model)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[s.Token] = s
	m.mu.Unlock()

	clog.UsingCtx("session").WithField("user_id", userID).Infof("session opened for %s", username)

	return s, nil
}

func (m *Manager) GetSessionByToken(token string) (*Session, error) {
	m.mu.RLock()
	if s, ok := m.cache[token]; ok {
		m.mu.RUnlock()
		return s, nil
	}

	m.mu.RUnlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have loaded it between the two locks.
	if s, ok := m.cache[token]; ok {
		return s, nil
	}

	model, err := m.stors.SessionStor.GetSessionByToken(token)
	if err != nil {
		return nil, err
	}

	s, err := m.load(model)
	if err != nil {
		return nil, err
	}

	m.cache[token] = s
	return s, nil
}

func (m *Manager) Logout(token string) error {
	m.mu.Lock()
	delete(m.cache, token)
	m.mu.Unlock()

	return m.stors.SessionStor.DeleteSession(token)
}

// SetLanguage stores the preference and applies it to every open session of the user.
func (m *Manager) SetLanguage(userID string, lang translate.Language) error {
	err := m.userLocker.WithLock(userID, func() error {
		if err := m.stors.PreferenceStor.SetLanguage(userID, string(lang)); err != nil {
			return err
		}

		return m.stors.SessionStor.SetLanguageForUser(userID, string(lang))
	})

	if err != nil {
		return err
	}

	m.InvalidateUser(userID)
	return nil
}

// InvalidateUser drops cached sessions so the next request reloads language and capabilities.
func (m *Manager) InvalidateUser(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for token, s := range m.cache {
		if s.UserID == userID {
			delete(m.cache, token)
		}
	}
}

// InvalidateAll is used after role permissions change, since any number of users may hold the role.
func (m *Manager) InvalidateAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache = make(map[string]*Session)
}

func (m *Manager) load(model *dukamodel.Session) (*Session, error) {
	perms, err := m.stors.RoleStor.GetPermissionsForUser(model.UserID)
	if err != nil {
		return nil, err
	}

	caps, unknown := capability.ParseSet(perms)
	if len(unknown) != 0 {
		clog.UsingCtx("session").WithField("user_id", model.UserID).Warnf("ignoring unknown permissions %v", unknown)
	}

	return &Session{
		Token:        model.Token,
		UserID:       model.UserID,
		Username:     model.Username,
		Language:     translate.ParseLanguage(model.Language),
		Capabilities: caps,
	}, nil
}
