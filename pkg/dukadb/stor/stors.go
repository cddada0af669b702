package stor

import (
	"errors"

	"github.com/dukahub/dukaweb/pkg/dukadb/dukamodel"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

type SessionStor interface {
	CreateSession(userID, username, language string) (*dukamodel.Session, error)
	GetSessionByToken(token string) (*dukamodel.Session, error)
	DeleteSession(token string) error
	SetLanguageForUser(userID, language string) error
}

type PreferenceStor interface {
	// GetLanguage returns "" when the user never chose a language.
	GetLanguage(userID string) (string, error)
	SetLanguage(userID, language string) error
}

type RoleStor interface {
	CreateRole(name string, permissions []string) (*dukamodel.Role, error)
	GetRoleByID(roleID int) (*dukamodel.Role, error)
	ListRoles() ([]dukamodel.Role, error)
	SetRolePermissions(roleID int, permissions []string) error
	AssignRoleToUser(userID string, roleID int) error
	GetPermissionsForUser(userID string) ([]string, error)
}

type Stors struct {
	SessionStor    SessionStor
	PreferenceStor PreferenceStor
	RoleStor       RoleStor
}

func NewGormStors(db *gorm.DB) *Stors {
	return &Stors{
		SessionStor:    NewGormSessionStor(db),
		PreferenceStor: NewGormPreferenceStor(db),
		RoleStor:       NewGormRoleStor(db),
	}
}

func NewInMemoryStors() *Stors {
	return &Stors{
		SessionStor:    NewInMemorySessionStor(),
		PreferenceStor: NewInMemoryPreferenceStor(),
		RoleStor:       NewInMemoryRoleStor(),
	}
}
