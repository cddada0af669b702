package stor

import (
	"errors"

	"github.com/dukahub/dukaweb/pkg/dukadb/dukamodel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormPreferenceStor struct {
	db *gorm.DB
}

func NewGormPreferenceStor(db *gorm.DB) *GormPreferenceStor {
	return &GormPreferenceStor{db: db}
}

func (s *GormPreferenceStor) GetLanguage(userID string) (string, error) {
	var pref dukamodel.UserPreference
	err := s.db.Where("user_id = ?", userID).First(&pref).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", nil
	case err != nil:
		return "", err
	}

	return pref.Language, nil
}

func (s *GormPreferenceStor) SetLanguage(userID, language string) error {
	pref := &dukamodel.UserPreference{UserID: userID, Language: language}

	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"language", "updated_at"}),
		}).Create(pref).Error
	})
}
