package employee

import (
	"time"

	"github.com/google/uuid"
)

// DesignationGradeHistory records a designation/grade pair change. Rows
// are inserted before the set-update is issued because they carry the
// pre-change values.
type DesignationGradeHistory struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	HrmsID         string    `gorm:"type:varchar(40);not null;index"`
	OldDesignation string    `gorm:"type:varchar(60)"`
	NewDesignation string    `gorm:"type:varchar(60)"`
	OldGrade       string    `gorm:"type:varchar(60)"`
	NewGrade       string    `gorm:"type:varchar(60)"`
	ChangedAt      time.Time `gorm:"not null"`
}

func (DesignationGradeHistory) TableName() string {
	return "designation_grade_histories"
}

// BuildDesignationGradeHistories derives one history row per snapshot for
// an upcoming designation/grade change.
func BuildDesignationGradeHistories(snaps []Snapshot, newDesignation, newGrade string) []DesignationGradeHistory {
	now := time.Now().UTC()
	rows := make([]DesignationGradeHistory, len(snaps))
	for i, s := range snaps {
		rows[i] = DesignationGradeHistory{
			ID:             uuid.New(),
			HrmsID:         s.HrmsID,
			OldDesignation: s.OldDesignation,
			NewDesignation: newDesignation,
			OldGrade:       s.OldGrade,
			NewGrade:       newGrade,
			ChangedAt:      now,
		}
	}
	return rows
}
