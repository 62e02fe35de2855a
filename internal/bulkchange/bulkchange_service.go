package bulkchange

import (
	"context"
	"time"

	"hrms/internal/coc"
	"hrms/internal/employee"
	"hrms/internal/events"
	"hrms/internal/leavebalance"
	"hrms/internal/rbac"
	"hrms/internal/shared/codegen"
	"hrms/internal/shared/contextutil"

	bulkchangeerrors "hrms/internal/bulkchange/errors"

	"go.uber.org/zap"
)

// SubUpdateGradeDesignation names the grade/designation block in
// Result.Skipped when its validation fails and the block is skipped.
const SubUpdateGradeDesignation = "grade_designation"

// Actor is the authenticated caller as resolved by the auth middleware.
type Actor struct {
	HrmsID string
	Roles  []string
}

// Result carries the per-call outcome detail that is not an error: which
// sub-updates were skipped and which company switches were refused.
type Result struct {
	Skipped   []string
	FailedIDs []string
}

// Notifier enqueues a notification event for asynchronous delivery.
type Notifier interface {
	Enqueue(ctx context.Context, eventType string, payload any) error
}

//go:generate mockgen -source=bulkchange_service.go -destination=mock/bulkchange_service_mock.go -package=mock
type Service interface {
	BulkChange(ctx context.Context, actor Actor, req BulkChangeRequest) (Result, error)
}

type service struct {
	employees employee.Repository
	leaves    leavebalance.Updater
	catalog   coc.Catalog
	codes     codegen.Generator
	perms     rbac.Service
	notifier  Notifier
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	employees employee.Repository,
	leaves leavebalance.Updater,
	catalog coc.Catalog,
	codes codegen.Generator,
	perms rbac.Service,
	notifier Notifier,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("bulkchange.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bulkchange.service")
	}
	return &service{
		employees: employees,
		leaves:    leaves,
		catalog:   catalog,
		codes:     codes,
		perms:     perms,
		notifier:  notifier,
		logger:    l,
		now:       time.Now,
	}
}

// BulkChange applies a sparse field patch plus an optional leave operation
// to every target employee. Sub-updates run in a fixed order; whatever was
// persisted before a failure stays persisted, the error only reports what
// did not apply.
func (s *service) BulkChange(ctx context.Context, actor Actor, req BulkChangeRequest) (Result, error) {
	var res Result
	log := contextutil.GetLogger(ctx, s.logger)

	if len(req.HrmsIDs) == 0 {
		return res, bulkchangeerrors.ErrNoTargetIDs
	}

	isAdmin := hasRole(actor.Roles, rbac.RoleAdmin)
	isPMO := hasRole(actor.Roles, rbac.RolePMO)
	if !isAdmin && !isPMO {
		log.Warn("bulk change rejected", zap.Strings("roles", actor.Roles))
		return res, bulkchangeerrors.ErrRoleNotAllowed
	}

	// The leave input is validated before anything is persisted so a bad
	// operation or amount invalidates the whole request instead of half
	// of it.
	var leaveOp leavebalance.Operation
	var leaveAmount float64
	if req.LeaveFieldInput != nil {
		leaveOp = leavebalance.Operation(req.LeaveFieldInput.Operation)
		if err := leaveOp.Validate(); err != nil {
			return res, err
		}
		amount, err := leavebalance.ParseAmount(req.LeaveFieldInput.Value)
		if err != nil {
			return res, err
		}
		leaveAmount = amount
	}

	records, err := s.employees.FindByIDs(ctx, req.HrmsIDs)
	if err != nil {
		return res, err
	}
	snaps := employee.SnapshotAll(records)

	patch := NewFieldPatch(req.GeneralFieldInput)
	for _, field := range patch.FieldNames() {
		allowed, err := s.perms.CanUpdateAny(actor.Roles, field)
		if err != nil {
			return res, err
		}
		if !allowed {
			log.Info("field dropped by role gate",
				zap.String("field", field),
				zap.Strings("roles", actor.Roles),
			)
			patch.Drop(field)
		}
	}

	if !patch.IsEmpty() {
		if isAdmin {
			err = s.applyAllFields(ctx, req.HrmsIDs, snaps, patch, &res)
		} else {
			err = s.applyManagerAndGroup(ctx, req.HrmsIDs, snaps, patch)
		}
		if err != nil {
			return res, err
		}
	}

	if req.LeaveFieldInput != nil {
		if err := s.leaves.Apply(ctx, leaveOp, leaveAmount, req.HrmsIDs); err != nil {
			return res, err
		}
	}

	log.Info("bulk change applied",
		zap.Int("targets", len(req.HrmsIDs)),
		zap.Strings("skipped", res.Skipped),
	)
	return res, nil
}

// applyAllFields is the Admin path over every sub-update.
func (s *service) applyAllFields(ctx context.Context, ids []string, snaps []employee.Snapshot, patch *FieldPatch, res *Result) error {
	// Employee type is announced first; its value lands with the generic
	// apply below.
	if patch.Has(FieldEmployeeType) {
		s.notify(ctx, events.TypeEmployeeTypeChanged, events.EmployeeTypeChanged{
			Employees:    snaps,
			EmployeeType: patch.Get(FieldEmployeeType),
			OccurredAt:   s.now().UTC(),
		})
	}

	if patch.Has(FieldDesignation) && patch.Has(FieldGrade) {
		if err := s.applyGradeDesignation(ctx, ids, snaps, patch, res); err != nil {
			return err
		}
		patch.Consume(FieldDesignation)
		patch.Consume(FieldGrade)
	}

	if patch.Has(FieldShiftType) {
		s.notify(ctx, events.TypeShiftChanged, events.ShiftChanged{
			HrmsIDs:    ids,
			ShiftType:  patch.Get(FieldShiftType),
			OccurredAt: s.now().UTC(),
		})
	}

	if patch.Has(FieldBusinessGroup) {
		// Admin persists the group through the generic apply; only the
		// event is dispatched here.
		s.notify(ctx, events.TypeBusinessGroupChanged, events.BusinessGroupChanged{
			HrmsIDs:       ids,
			BusinessGroup: patch.Get(FieldBusinessGroup),
			OccurredAt:    s.now().UTC(),
		})
	}

	if patch.Has(FieldDirectManager) {
		if err := s.applyDirectManager(ctx, ids, snaps, patch.Get(FieldDirectManager)); err != nil {
			return err
		}
		patch.Consume(FieldDirectManager)
	}

	if patch.Has(FieldSaral) {
		if err := s.applyCompanySwitch(ctx, snaps, patch.Get(FieldSaral), res); err != nil {
			return err
		}
		patch.Consume(FieldSaral)
	}

	if fields := patch.Remaining(); len(fields) > 0 {
		modified, err := s.employees.SetFields(ctx, ids, fields)
		if err != nil {
			return err
		}
		contextutil.GetLogger(ctx, s.logger).Info("generic field update applied",
			zap.Int("fields", len(fields)),
			zap.Int64("modified", modified),
		)
	}

	if len(res.FailedIDs) > 0 {
		return &bulkchangeerrors.CompanySwitchError{FailedIDs: res.FailedIDs}
	}
	return nil
}

// applyManagerAndGroup is the PMO path. Unlike the Admin path, the
// business group is persisted inline as its own set-update.
func (s *service) applyManagerAndGroup(ctx context.Context, ids []string, snaps []employee.Snapshot, patch *FieldPatch) error {
	if patch.Has(FieldBusinessGroup) {
		group := patch.Get(FieldBusinessGroup)
		if _, err := s.employees.SetFields(ctx, ids, map[string]any{FieldBusinessGroup: group}); err != nil {
			return err
		}
		s.notify(ctx, events.TypeBusinessGroupChanged, events.BusinessGroupChanged{
			HrmsIDs:       ids,
			BusinessGroup: group,
			OccurredAt:    s.now().UTC(),
		})
		patch.Consume(FieldBusinessGroup)
	}

	if patch.Has(FieldDirectManager) {
		if err := s.applyDirectManager(ctx, ids, snaps, patch.Get(FieldDirectManager)); err != nil {
			return err
		}
		patch.Consume(FieldDirectManager)
	}

	return nil
}

func (s *service) applyGradeDesignation(ctx context.Context, ids []string, snaps []employee.Snapshot, patch *FieldPatch, res *Result) error {
	log := contextutil.GetLogger(ctx, s.logger)
	designation := patch.Get(FieldDesignation)
	grade := patch.Get(FieldGrade)

	grades, err := s.catalog.ResolveGradesForDesignation(ctx, designation)
	if err != nil {
		return err
	}
	if !contains(grades, grade) {
		log.Warn("grade is not valid for designation, sub-update skipped",
			zap.String("designation", designation),
			zap.String("grade", grade),
		)
		res.Skipped = append(res.Skipped, SubUpdateGradeDesignation)
		return nil
	}

	// History rows capture pre-change values, so they go in before the
	// set-update.
	histories := employee.BuildDesignationGradeHistories(snaps, designation, grade)
	if err := s.employees.InsertDesignationGradeHistories(ctx, histories); err != nil {
		return err
	}

	modified, err := s.employees.SetFields(ctx, ids, map[string]any{
		FieldDesignation: designation,
		FieldGrade:       grade,
	})
	if err != nil {
		return err
	}
	if modified != int64(len(ids)) {
		log.Error("grade/designation update incomplete",
			zap.Int64("modified", modified),
			zap.Int("expected", len(ids)),
		)
		return &bulkchangeerrors.PartialUpdateError{
			Expected: int64(len(ids)),
			Modified: modified,
		}
	}

	occurred := s.now().UTC()
	s.notify(ctx, events.TypeDesignationChanged, events.DesignationChanged{
		Employees:   snaps,
		Designation: designation,
		OccurredAt:  occurred,
	})
	s.notify(ctx, events.TypeGradeChanged, events.GradeChanged{
		Employees:   snaps,
		Designation: designation,
		Grade:       grade,
		OccurredAt:  occurred,
	})
	return nil
}

func (s *service) applyDirectManager(ctx context.Context, ids []string, snaps []employee.Snapshot, manager string) error {
	if _, err := s.employees.SetFields(ctx, ids, map[string]any{FieldDirectManager: manager}); err != nil {
		return err
	}

	s.notify(ctx, events.TypeDirectManagerChanged, events.DirectManagerChanged{
		Employees:     snaps,
		DirectManager: manager,
		OccurredAt:    s.now().UTC(),
	})
	return nil
}

// applyCompanySwitch hands out company employee codes one record at a
// time, chaining each generated code off the previous one so codes never
// collide within a call. A record that already holds a code is recorded as
// failed and the rest of the batch continues.
func (s *service) applyCompanySwitch(ctx context.Context, snaps []employee.Snapshot, company string, res *Result) error {
	mark, err := s.codes.HighestCode(ctx, company)
	if err != nil {
		return err
	}

	for _, snap := range snaps {
		if snap.Saral == company {
			continue
		}
		if snap.CdsCode != "" {
			res.FailedIDs = append(res.FailedIDs, snap.HrmsID)
			continue
		}

		mark = s.codes.Next(mark, company)
		if err := s.employees.UpdateOne(ctx, snap.HrmsID, map[string]any{
			"cds_code": mark,
			FieldSaral: company,
		}); err != nil {
			return err
		}
	}

	return nil
}

// notify is fire and forget: an enqueue failure is logged, never surfaced
// to the caller.
func (s *service) notify(ctx context.Context, eventType string, payload any) {
	if err := s.notifier.Enqueue(ctx, eventType, payload); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("enqueue notification failed",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func hasRole(roles []string, role string) bool {
	return contains(roles, role)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
