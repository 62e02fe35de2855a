package leavebalance

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Only annual leave is bulk-adjustable today. The schema supports more
// leave types per employee.
const LeaveTypeAnnual = "ANNUAL_LEAVE"

type HistoryEntry struct {
	Date   string  `json:"date"`
	Credit float64 `json:"credit"`
}

// History is an append-only JSONB array of credit deltas. Balance and
// history always change in the same statement.
type History []HistoryEntry

func (h History) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (h *History) Scan(v any) error {
	switch data := v.(type) {
	case []byte:
		return json.Unmarshal(data, h)
	case string:
		return json.Unmarshal([]byte(data), h)
	case nil:
		*h = nil
		return nil
	default:
		return fmt.Errorf("unsupported history column type %T", v)
	}
}

type LeaveBalance struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HrmsID    string    `gorm:"type:varchar(40);not null;uniqueIndex:uq_leave_balances_hrms_type"`
	LeaveType string    `gorm:"type:varchar(40);not null;uniqueIndex:uq_leave_balances_hrms_type"`
	Balance   float64   `gorm:"not null;default:0"`
	Taken     float64   `gorm:"not null;default:0"`
	History   History   `gorm:"type:jsonb;not null;default:'[]'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
