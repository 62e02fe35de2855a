package employee

import (
	"time"
)

// Employee is keyed by the HRMS identifier handed out at onboarding.
// CdsCode is empty until the company sub-update assigns one.
type Employee struct {
	HrmsID    string `gorm:"primaryKey;type:varchar(40);column:hrms_id"`
	EmpCode   string `gorm:"type:varchar(40);index"`
	FirstName string `gorm:"type:varchar(120)"`
	Email     string `gorm:"type:varchar(200);uniqueIndex"`

	Designation   string  `gorm:"type:varchar(60)"`
	Grade         string  `gorm:"type:varchar(60)"`
	EmployeeType  string  `gorm:"type:varchar(60)"`
	ShiftType     string  `gorm:"type:varchar(60)"`
	BusinessGroup string  `gorm:"type:varchar(60)"`
	DirectManager *string `gorm:"type:varchar(40)"`
	Saral         string  `gorm:"type:varchar(60);index"`
	CdsCode       string  `gorm:"type:varchar(60);default:''"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
