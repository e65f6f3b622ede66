package repository

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ice-routes/internal/domain"
	"github.com/BruksfildServices01/ice-routes/internal/httperr"
)

// wrap traduz "registro não encontrado" para domain.ErrNotFound
// e anota os demais erros com a operação.
func wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(domain.ErrNotFound, op)
	}
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("concurrent_update")
	}
	return pkgerrors.Wrap(err, op)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
