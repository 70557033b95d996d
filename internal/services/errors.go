package services

import (
	"errors"

	"github.com/skserveur/storefront/internal/repository"
)

// errSkipped aborts a per-row transaction when the row already left the
// pending state. The rollback is a no-op, nothing was written yet.
var errSkipped = errors.New("row skipped")

func errorsIsSkipped(err error) bool {
	return errors.Is(err, errSkipped)
}

func isRepoNotFound(err error) bool {
	return errors.Is(err, repository.ErrProductNotFound) ||
		errors.Is(err, repository.ErrCategoryNotFound) ||
		errors.Is(err, repository.ErrCustomFieldNotFound) ||
		errors.Is(err, repository.ErrPaymentConfigNotFound) ||
		errors.Is(err, repository.ErrOrderNotFound) ||
		errors.Is(err, repository.ErrTransactionNotFound) ||
		errors.Is(err, repository.ErrUserNotFound)
}
