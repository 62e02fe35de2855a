package events

import (
	"time"

	"hrms/internal/employee"
)

// NotificationsTopic carries every per-field change event produced by a
// bulk change. Messages are keyed by event type so consumers see each
// field's notifications in order.
const NotificationsTopic = "hr.employee.notifications.v1"

const (
	TypeEmployeeTypeChanged  = "employee_type_changed"
	TypeDesignationChanged   = "designation_changed"
	TypeGradeChanged         = "grade_changed"
	TypeShiftChanged         = "shift_changed"
	TypeBusinessGroupChanged = "business_group_changed"
	TypeDirectManagerChanged = "direct_manager_changed"
)

type EmployeeTypeChanged struct {
	Employees    []employee.Snapshot `json:"employees"`
	EmployeeType string              `json:"employee_type"`
	OccurredAt   time.Time           `json:"occurred_at"`
}

type DesignationChanged struct {
	Employees   []employee.Snapshot `json:"employees"`
	Designation string              `json:"designation"`
	OccurredAt  time.Time           `json:"occurred_at"`
}

type GradeChanged struct {
	Employees   []employee.Snapshot `json:"employees"`
	Designation string              `json:"designation"`
	Grade       string              `json:"grade"`
	OccurredAt  time.Time           `json:"occurred_at"`
}

type ShiftChanged struct {
	HrmsIDs    []string  `json:"hrms_ids"`
	ShiftType  string    `json:"shift_type"`
	OccurredAt time.Time `json:"occurred_at"`
}

type BusinessGroupChanged struct {
	HrmsIDs       []string  `json:"hrms_ids"`
	BusinessGroup string    `json:"business_group"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type DirectManagerChanged struct {
	Employees     []employee.Snapshot `json:"employees"`
	DirectManager string              `json:"direct_manager"`
	OccurredAt    time.Time           `json:"occurred_at"`
}
