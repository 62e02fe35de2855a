package employeeerrors

import (
	"net/http"

	"hrms/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidHrmsID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid hrms id",
		http.StatusBadRequest,
	)
)
