package coc

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryDesignation = "DESIGNATION"
	CategoryGrade       = "GRADE"
)

// COC is a hierarchical lookup code. A designation's Parent names the
// grade group it belongs to; grade codes reference that group via their
// own Parent.
type COC struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_coc_category_code"`
	Code     string    `gorm:"type:varchar(60);not null;uniqueIndex:uq_coc_category_code"`
	Parent   string    `gorm:"type:varchar(60);index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (COC) TableName() string {
	return "coc_codes"
}
