package bulkchangeerrors

import (
	"fmt"
	"net/http"

	"hrms/internal/shared/apperror"
)

var (
	ErrNoTargetIDs = apperror.New(
		apperror.CodeInvalidInput,
		"hrms_ids must not be empty",
		http.StatusBadRequest,
	)
	ErrRoleNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"role is not permitted to bulk update employee fields",
		http.StatusForbidden,
	)
)

// PartialUpdateError reports a bulk set-update that modified fewer records
// than it targeted. The operation aborts; already-applied sub-updates are
// not rolled back.
type PartialUpdateError struct {
	Expected int64
	Modified int64
}

func (e *PartialUpdateError) Error() string {
	return fmt.Sprintf("bulk update modified %d of %d records", e.Modified, e.Expected)
}

// CompanySwitchError aggregates the employees whose company switch was
// refused because they already hold a company employee code. It is raised
// after every other sub-update committed.
type CompanySwitchError struct {
	FailedIDs []string
}

func (e *CompanySwitchError) Error() string {
	return fmt.Sprintf("company switch refused for %d employees", len(e.FailedIDs))
}
