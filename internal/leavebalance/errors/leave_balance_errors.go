package leavebalanceerrors

import (
	"net/http"

	"hrms/internal/shared/apperror"
)

var (
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"leave amount is not a valid number",
		http.StatusBadRequest,
	)
	ErrMissingOperation = apperror.New(
		apperror.CodeInvalidInput,
		"leave operation is required",
		http.StatusBadRequest,
	)
	ErrUnknownOperation = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave operation",
		http.StatusBadRequest,
	)
)
