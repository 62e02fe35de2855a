package leavebalance

import (
	"context"
	"math"
	"strconv"
	"time"

	leavebalanceerrors "hrms/internal/leavebalance/errors"

	"go.uber.org/zap"
)

type Operation string

const (
	OpAddToExisting      Operation = "ADD_TO_EXISTING"
	OpRemoveFromExisting Operation = "REMOVE_FROM_EXISTING"
	OpReplaceAllWith     Operation = "REPLACE_ALL_WITH"
)

// ParseAmount converts the raw mutation value into a finite float.
// Failure is reported to the caller as invalid input; the caller decides
// whether to abort the whole bulk change.
func ParseAmount(value string) (float64, error) {
	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, leavebalanceerrors.ErrInvalidAmount
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, leavebalanceerrors.ErrInvalidAmount
	}
	return amount, nil
}

// Validate reports a missing or unknown operation. Callers that persist
// other changes in the same request check this first, so a bad leave
// input rejects the request before anything is written.
func (op Operation) Validate() error {
	switch op {
	case OpAddToExisting, OpRemoveFromExisting, OpReplaceAllWith:
		return nil
	case "":
		return leavebalanceerrors.ErrMissingOperation
	default:
		return leavebalanceerrors.ErrUnknownOperation
	}
}

//go:generate mockgen -source=leave_balance_updater.go -destination=mock/leave_balance_updater_mock.go -package=mock
type Updater interface {
	Apply(ctx context.Context, op Operation, amount float64, hrmsIDs []string) error
}

type updater struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewUpdater(repo Repository, logger ...*zap.Logger) Updater {
	l := zap.L().Named("leavebalance.updater")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.updater")
	}
	return &updater{repo: repo, logger: l, now: time.Now}
}

func (u *updater) Apply(ctx context.Context, op Operation, amount float64, hrmsIDs []string) error {
	switch op {
	case OpAddToExisting:
		return u.adjust(ctx, hrmsIDs, amount)
	case OpRemoveFromExisting:
		return u.adjust(ctx, hrmsIDs, -amount)
	case OpReplaceAllWith:
		return u.replaceAll(ctx, hrmsIDs, amount)
	case "":
		u.logger.Info("leave operation not given")
		return leavebalanceerrors.ErrMissingOperation
	default:
		u.logger.Warn("unknown leave operation", zap.String("operation", string(op)))
		return leavebalanceerrors.ErrUnknownOperation
	}
}

func (u *updater) adjust(ctx context.Context, hrmsIDs []string, delta float64) error {
	entry := HistoryEntry{
		Date:   u.now().UTC().Format(time.RFC3339),
		Credit: delta,
	}

	modified, err := u.repo.AdjustBalances(ctx, hrmsIDs, LeaveTypeAnnual, delta, entry)
	if err != nil {
		u.logger.Error("bulk leave balance adjust failed", zap.Error(err))
		return err
	}

	u.logger.Info("leave balances adjusted",
		zap.Float64("delta", delta),
		zap.Int64("modified", modified),
		zap.Int("targets", len(hrmsIDs)),
	)
	return nil
}

// replaceAll recomputes each record individually: the new balance and the
// history delta both depend on the record's current balance and taken
// counter, so there is no single set-update for this operation.
func (u *updater) replaceAll(ctx context.Context, hrmsIDs []string, amount float64) error {
	records, err := u.repo.FindByIDs(ctx, hrmsIDs, LeaveTypeAnnual)
	if err != nil {
		u.logger.Error("load leave balances failed", zap.Error(err))
		return err
	}

	for _, rec := range records {
		newBalance := amount + rec.Taken
		entry := HistoryEntry{
			Date:   u.now().UTC().Format(time.RFC3339),
			Credit: amount - rec.Balance + rec.Taken,
		}

		if err := u.repo.ReplaceBalance(ctx, rec.HrmsID, LeaveTypeAnnual, newBalance, entry); err != nil {
			u.logger.Error("replace leave balance failed",
				zap.String("hrms_id", rec.HrmsID),
				zap.Error(err),
			)
			return err
		}
	}

	u.logger.Info("leave balances replaced",
		zap.Float64("amount", amount),
		zap.Int("targets", len(records)),
	)
	return nil
}
