package stor

import (
	"errors"

	"github.com/dukahub/dukaweb/pkg/config"
	"gorm.io/gorm"
)

const minTxRetry = 3

func WithTxRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error

	retryCount := config.GetIntKeyWithDefault(config.TxRetryKey, minTxRetry)
	if retryCount < minTxRetry {
		retryCount = minTxRetry
	}

	for i := 0; i < retryCount; i++ {
		// ErrNotFound won't go away on retry.
		if err = db.Transaction(fn); err == nil || errors.Is(err, ErrNotFound) {
			break
		}
	}

	return err
}
