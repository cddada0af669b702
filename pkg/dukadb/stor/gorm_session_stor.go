package stor

import (
	"errors"

	"github.com/dukahub/dukaweb/pkg/dukadb/dukamodel"
	"github.com/hashicorp/go-uuid"
	"gorm.io/gorm"
)

type GormSessionStor struct {
	db *gorm.DB
}

func NewGormSessionStor(db *gorm.DB) *GormSessionStor {
	return &GormSessionStor{db: db}
}

// CreateSession issues a new random token for userID.
func (s *GormSessionStor) CreateSession(userID, username, language string) (*dukamodel.Session, error) {
	token, err := uuid.GenerateUUID()
	if err != nil {
		return nil, err
	}

	session := &dukamodel.Session{
		Token:    token,
		UserID:   userID,
		Username: username,
		Language: language,
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(session).Error
	})

	if err != nil {
		return nil, err
	}

	return session, nil
}

func (s *GormSessionStor) GetSessionByToken(token string) (*dukamodel.Session, error) {
	var session dukamodel.Session
	err := s.db.Where("token = ?", token).First(&session).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}

	return &session, nil
}

func (s *GormSessionStor) DeleteSession(token string) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Where("token = ?", token).Delete(&dukamodel.Session{}).Error
	})
}

func (s *GormSessionStor) SetLanguageForUser(userID, language string) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(&dukamodel.Session{}).
			Where("user_id = ?", userID).
			Update("language", language).Error
	})
}
