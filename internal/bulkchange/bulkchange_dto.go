package bulkchange

// GeneralFieldInput is the sparse set of employee fields a caller wants
// changed. Nil means "leave untouched".
type GeneralFieldInput struct {
	Designation   *string `json:"designation"`
	Grade         *string `json:"grade"`
	EmployeeType  *string `json:"employee_type"`
	ShiftType     *string `json:"shift_type"`
	BusinessGroup *string `json:"business_group"`
	DirectManager *string `json:"direct_manager"`
	Saral         *string `json:"saral"`
}

type LeaveFieldInput struct {
	Operation string `json:"operation"`
	Value     string `json:"value"`
}

type BulkChangeRequest struct {
	HrmsIDs           []string           `json:"hrms_ids"`
	GeneralFieldInput *GeneralFieldInput `json:"general_field_input"`
	LeaveFieldInput   *LeaveFieldInput   `json:"leave_field_input"`
}

type BulkChangeResponse struct {
	Ok        bool     `json:"ok"`
	Skipped   []string `json:"skipped_sub_updates,omitempty"`
	FailedIDs []string `json:"failed_hrms_ids,omitempty"`
}
