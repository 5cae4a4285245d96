package services

import (
	"errors"

	"github.com/anonto42/medium-clone/backend/internal/errs"
	"github.com/anonto42/medium-clone/backend/internal/repositories"
)

func internal(err error) error {
	return errs.Wrap(errs.Internal, errs.InternalServerError, err)
}

// storeError classifies a repository error. Empty messages leave that case Internal.
func storeError(err error, notFound, conflict string) error {
	switch {
	case notFound != "" && errors.Is(err, repositories.ErrNotFound):
		return errs.Wrap(errs.NotFound, notFound, err)
	case conflict != "" && errors.Is(err, repositories.ErrConflict):
		return errs.Wrap(errs.Conflict, conflict, err)
	default:
		return internal(err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, repositories.ErrNotFound)
}
