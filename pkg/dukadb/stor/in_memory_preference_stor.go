package stor

import "sync"

type InMemoryPreferenceStor struct {
	languages sync.Map
}

func NewInMemoryPreferenceStor() *InMemoryPreferenceStor {
	return &InMemoryPreferenceStor{}
}

func (s *InMemoryPreferenceStor) GetLanguage(userID string) (string, error) {
	lang, ok := s.languages.Load(userID)
	if !ok {
		return "", nil
	}

	return lang.(string), nil
}

func (s *InMemoryPreferenceStor) SetLanguage(userID, language string) error {
	s.languages.Store(userID, language)
	return nil
}
