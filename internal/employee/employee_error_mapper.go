package employee

import (
	"errors"

	employeeerrors "hrms/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// undefined_table or similar schema drift should not leak raw
		// postgres messages to clients
		if pgErr.Code == "42P01" {
			return employeeerrors.ErrEmployeeNotFound
		}
	}

	return err
}
