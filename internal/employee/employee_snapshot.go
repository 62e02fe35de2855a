package employee

// Snapshot is an immutable projection of an employee's pre-change fields,
// captured once per bulk operation before any mutation. Notification
// payloads and designation/grade history rows read from it, never from
// the live record.
type Snapshot struct {
	HrmsID          string `json:"hrms_id"`
	EmpCode         string `json:"emp_code"`
	FirstName       string `json:"first_name"`
	Email           string `json:"email"`
	PrevManager     string `json:"prev_dm"`
	OldDesignation  string `json:"old_designation"`
	OldGrade        string `json:"old_grade"`
	OldEmployeeType string `json:"old_emp_type"`
	Saral           string `json:"saral"`
	CdsCode         string `json:"-"`
}

func SnapshotOf(e Employee) Snapshot {
	prevManager := ""
	if e.DirectManager != nil {
		prevManager = *e.DirectManager
	}
	return Snapshot{
		HrmsID:          e.HrmsID,
		EmpCode:         e.EmpCode,
		FirstName:       e.FirstName,
		Email:           e.Email,
		PrevManager:     prevManager,
		OldDesignation:  e.Designation,
		OldGrade:        e.Grade,
		OldEmployeeType: e.EmployeeType,
		Saral:           e.Saral,
		CdsCode:         e.CdsCode,
	}
}

func SnapshotAll(records []Employee) []Snapshot {
	snaps := make([]Snapshot, len(records))
	for i, e := range records {
		snaps[i] = SnapshotOf(e)
	}
	return snaps
}
