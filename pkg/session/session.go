// Package session tracks signed-in users: their language preference and the capabilities granted
// by their role.
package session

import (
	"github.com/dukahub/dukaweb/pkg/capability"
	"github.com/dukahub/dukaweb/pkg/translate"
)

type Session struct {
	Token        string             `json:"-"`
	UserID       string             `json:"user_id"`
	Username     string             `json:"username"`
	Language     translate.Language `json:"language"`
	Capabilities capability.Set     `json:"-"`
}

func (s *Session) Can(c capability.Capability) bool {
	if s == nil {
		return false
	}

	return s.Capabilities.Can(c)
}

// PreferredLanguage makes a session usable with translate.Translator.For.
func (s *Session) PreferredLanguage() translate.Language {
	if s == nil || s.Language == "" {
		return translate.English
	}

	return s.Language
}
