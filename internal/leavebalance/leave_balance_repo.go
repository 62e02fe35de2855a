package leavebalance

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_balance_repo.go -destination=mock/leave_balance_repo_mock.go -package=mock
type Repository interface {
	FindByIDs(ctx context.Context, hrmsIDs []string, leaveType string) ([]LeaveBalance, error)
	// AdjustBalances increments every matched balance by delta and appends
	// the history entry, as one statement across all targets.
	AdjustBalances(ctx context.Context, hrmsIDs []string, leaveType string, delta float64, entry HistoryEntry) (int64, error)
	// ReplaceBalance sets one record's balance and appends the history
	// entry. Replacement depends on per-record state, so this is per-row.
	ReplaceBalance(ctx context.Context, hrmsID, leaveType string, balance float64, entry HistoryEntry) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDs(ctx context.Context, hrmsIDs []string, leaveType string) ([]LeaveBalance, error) {
	var records []LeaveBalance
	err := r.db.WithContext(ctx).
		Where("hrms_id IN ?", hrmsIDs).
		Where("leave_type = ?", leaveType).
		Order("hrms_id ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) AdjustBalances(ctx context.Context, hrmsIDs []string, leaveType string, delta float64, entry HistoryEntry) (int64, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return 0, err
	}

	tx := r.db.WithContext(ctx).Exec(`
		UPDATE leave_balances
		SET balance = balance + ?,
		    history = history || ?::jsonb,
		    updated_at = now()
		WHERE hrms_id IN ? AND leave_type = ?
	`, delta, string(payload), hrmsIDs, leaveType)

	return tx.RowsAffected, tx.Error
}

func (r *repository) ReplaceBalance(ctx context.Context, hrmsID, leaveType string, balance float64, entry HistoryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(`
		UPDATE leave_balances
		SET balance = ?,
		    history = history || ?::jsonb,
		    updated_at = now()
		WHERE hrms_id = ? AND leave_type = ?
	`, balance, string(payload), hrmsID, leaveType).Error
}
