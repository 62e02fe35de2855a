package employee

// EmployeeOption is the trimmed projection the bulk-change UI uses to
// populate manager pickers.
type EmployeeOption struct {
	HrmsID    string `json:"hrms_id"`
	EmpCode   string `json:"emp_code"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
}

func mapToOptions(records []Employee) []EmployeeOption {
	res := make([]EmployeeOption, len(records))
	for i, e := range records {
		res[i] = EmployeeOption{
			HrmsID:    e.HrmsID,
			EmpCode:   e.EmpCode,
			FirstName: e.FirstName,
			Email:     e.Email,
		}
	}
	return res
}
