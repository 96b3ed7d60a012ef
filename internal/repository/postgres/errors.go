package postgres

import (
	"errors"
	"fmt"

	"shiftHire/domain"

	"gorm.io/gorm"
)

// defaultLimit bounds every listing.
const defaultLimit = 100

// translateError maps store errors onto domain sentinels, e.g. "job not found".
func translateError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %w", entity, domain.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s %w", entity, domain.ErrDuplicateResource)
	}

	return err
}
