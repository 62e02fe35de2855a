package bulkchange_test

import (
	"context"
	"errors"
	"testing"

	"hrms/internal/bulkchange"
	"hrms/internal/employee"
	"hrms/internal/events"
	"hrms/internal/leavebalance"
	"hrms/internal/rbac"
	"hrms/internal/shared/codegen"
	"hrms/internal/shared/contextutil"

	bulkchangeerrors "hrms/internal/bulkchange/errors"
	leavebalanceerrors "hrms/internal/leavebalance/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type setFieldsCall struct {
	ids    []string
	fields map[string]any
}

type updateOneCall struct {
	id     string
	fields map[string]any
}

type fakeEmployeeRepo struct {
	findByIDsFn       func(ctx context.Context, ids []string) ([]employee.Employee, error)
	setFieldsFn       func(ctx context.Context, ids []string, fields map[string]any) (int64, error)
	updateOneFn       func(ctx context.Context, id string, fields map[string]any) error
	insertHistoriesFn func(ctx context.Context, rows []employee.DesignationGradeHistory) error

	setFieldsCalls []setFieldsCall
	updateOneCalls []updateOneCall
	historyRows    []employee.DesignationGradeHistory
}

func (f *fakeEmployeeRepo) FindByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	return f.findByIDsFn(ctx, ids)
}

func (f *fakeEmployeeRepo) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) SetFields(ctx context.Context, ids []string, fields map[string]any) (int64, error) {
	f.setFieldsCalls = append(f.setFieldsCalls, setFieldsCall{ids: ids, fields: fields})
	if f.setFieldsFn != nil {
		return f.setFieldsFn(ctx, ids, fields)
	}
	return int64(len(ids)), nil
}

func (f *fakeEmployeeRepo) UpdateOne(ctx context.Context, id string, fields map[string]any) error {
	f.updateOneCalls = append(f.updateOneCalls, updateOneCall{id: id, fields: fields})
	if f.updateOneFn != nil {
		return f.updateOneFn(ctx, id, fields)
	}
	return nil
}

func (f *fakeEmployeeRepo) InsertDesignationGradeHistories(ctx context.Context, rows []employee.DesignationGradeHistory) error {
	f.historyRows = append(f.historyRows, rows...)
	if f.insertHistoriesFn != nil {
		return f.insertHistoriesFn(ctx, rows)
	}
	return nil
}

type leaveCall struct {
	op     leavebalance.Operation
	amount float64
	ids    []string
}

type fakeLeaveUpdater struct {
	applyFn func(ctx context.Context, op leavebalance.Operation, amount float64, ids []string) error
	calls   []leaveCall
}

func (f *fakeLeaveUpdater) Apply(ctx context.Context, op leavebalance.Operation, amount float64, ids []string) error {
	f.calls = append(f.calls, leaveCall{op: op, amount: amount, ids: ids})
	if f.applyFn != nil {
		return f.applyFn(ctx, op, amount, ids)
	}
	return nil
}

type fakeCatalog struct {
	resolveFn func(ctx context.Context, designation string) ([]string, error)
}

func (f *fakeCatalog) ResolveGradesForDesignation(ctx context.Context, designation string) ([]string, error) {
	return f.resolveFn(ctx, designation)
}

type fakeGenerator struct {
	highestFn func(ctx context.Context, company string) (string, error)
}

func (f *fakeGenerator) HighestCode(ctx context.Context, company string) (string, error) {
	return f.highestFn(ctx, company)
}

func (f *fakeGenerator) Next(current, company string) string {
	return codegen.DefaultSuccessor(current, company)
}

type enqueuedEvent struct {
	eventType string
	payload   any
}

type fakeNotifier struct {
	events []enqueuedEvent
	err    error
}

func (f *fakeNotifier) Enqueue(ctx context.Context, eventType string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, enqueuedEvent{eventType: eventType, payload: payload})
	return nil
}

func (f *fakeNotifier) typesOf() []string {
	types := make([]string, len(f.events))
	for i, e := range f.events {
		types[i] = e.eventType
	}
	return types
}

type serviceDeps struct {
	repo     *fakeEmployeeRepo
	leaves   *fakeLeaveUpdater
	catalog  *fakeCatalog
	notifier *fakeNotifier
	service  bulkchange.Service
}

func setupService(t *testing.T, records []employee.Employee, gen *fakeGenerator) *serviceDeps {
	t.Helper()

	perms, err := rbac.NewService()
	require.NoError(t, err)

	repo := &fakeEmployeeRepo{
		findByIDsFn: func(ctx context.Context, ids []string) ([]employee.Employee, error) {
			return records, nil
		},
	}
	leaves := &fakeLeaveUpdater{}
	catalog := &fakeCatalog{
		resolveFn: func(ctx context.Context, designation string) ([]string, error) {
			return nil, nil
		},
	}
	if gen == nil {
		gen = &fakeGenerator{
			highestFn: func(ctx context.Context, company string) (string, error) { return "", nil },
		}
	}
	notifier := &fakeNotifier{}

	return &serviceDeps{
		repo:     repo,
		leaves:   leaves,
		catalog:  catalog,
		notifier: notifier,
		service:  bulkchange.NewService(repo, leaves, catalog, gen, perms, notifier),
	}
}

func strPtr(s string) *string { return &s }

func testEmployees() []employee.Employee {
	return []employee.Employee{
		{HrmsID: "E001", EmpCode: "A1", FirstName: "Asha", Email: "asha@corp.test", Designation: "SSE", Grade: "G5", EmployeeType: "FTE", Saral: "Y"},
		{HrmsID: "E002", EmpCode: "A2", FirstName: "Ben", Email: "ben@corp.test", Designation: "SSE", Grade: "G5", EmployeeType: "FTE", Saral: "Y", DirectManager: strPtr("E009")},
	}
}

func adminActor() bulkchange.Actor {
	return bulkchange.Actor{HrmsID: "ADM-1", Roles: []string{rbac.RoleAdmin}}
}

func TestBulkChange_DirectManagerOnly(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)
	ctx := context.Background()

	res, err := deps.service.BulkChange(ctx, adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs:           []string{"E001", "E002"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{DirectManager: strPtr("E100")},
	})

	require.NoError(t, err)
	assert.Empty(t, res.Skipped)
	assert.Empty(t, res.FailedIDs)

	require.Len(t, deps.repo.setFieldsCalls, 1)
	call := deps.repo.setFieldsCalls[0]
	assert.Equal(t, []string{"E001", "E002"}, call.ids)
	assert.Equal(t, map[string]any{"direct_manager": "E100"}, call.fields)

	require.Len(t, deps.notifier.events, 1)
	assert.Equal(t, events.TypeDirectManagerChanged, deps.notifier.events[0].eventType)
	payload, ok := deps.notifier.events[0].payload.(events.DirectManagerChanged)
	require.True(t, ok)
	assert.Equal(t, "E100", payload.DirectManager)
	require.Len(t, payload.Employees, 2)
	assert.Equal(t, "E009", payload.Employees[1].PrevManager)
}

func TestBulkChange_GradeDesignationPartialFailure(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)
	deps.catalog.resolveFn = func(ctx context.Context, designation string) ([]string, error) {
		return []string{"G6", "G7"}, nil
	}
	deps.repo.setFieldsFn = func(ctx context.Context, ids []string, fields map[string]any) (int64, error) {
		return 1, nil
	}

	_, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs: []string{"E001", "E002"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{
			Designation: strPtr("PE"),
			Grade:       strPtr("G6"),
		},
	})

	var partialErr *bulkchangeerrors.PartialUpdateError
	require.ErrorAs(t, err, &partialErr)
	assert.Equal(t, int64(2), partialErr.Expected)
	assert.Equal(t, int64(1), partialErr.Modified)

	// history rows precede the set-update, so they are already written
	assert.Len(t, deps.repo.historyRows, 2)
	assert.Empty(t, deps.notifier.events)
}

func TestBulkChange_InvalidGradeSkipsOnlyThatSubUpdate(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)
	deps.catalog.resolveFn = func(ctx context.Context, designation string) ([]string, error) {
		return []string{"G7"}, nil
	}

	res, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs: []string{"E001", "E002"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{
			Designation: strPtr("PE"),
			Grade:       strPtr("G6"),
			ShiftType:   strPtr("NIGHT"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{bulkchange.SubUpdateGradeDesignation}, res.Skipped)

	// grade/designation never reach the store, shift still applies
	assert.Empty(t, deps.repo.historyRows)
	require.Len(t, deps.repo.setFieldsCalls, 1)
	assert.Equal(t, map[string]any{"shift_type": "NIGHT"}, deps.repo.setFieldsCalls[0].fields)
	assert.Equal(t, []string{events.TypeShiftChanged}, deps.notifier.typesOf())
}

func TestBulkChange_SubUpdateLogsUseRequestLogger(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)
	deps.catalog.resolveFn = func(ctx context.Context, designation string) ([]string, error) {
		return []string{"G7"}, nil
	}

	core, observed := observer.New(zapcore.WarnLevel)
	reqLogger := zap.New(core).With(zap.String("request_id", "req-42"))
	ctx := contextutil.WithLogger(context.Background(), reqLogger)

	_, err := deps.service.BulkChange(ctx, adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs: []string{"E001", "E002"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{
			Designation: strPtr("PE"),
			Grade:       strPtr("G6"),
		},
	})
	require.NoError(t, err)

	entries := observed.FilterMessage("grade is not valid for designation, sub-update skipped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}

func TestBulkChange_GradeDesignationSuccess(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)
	deps.catalog.resolveFn = func(ctx context.Context, designation string) ([]string, error) {
		assert.Equal(t, "PE", designation)
		return []string{"G6", "G7"}, nil
	}

	res, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs: []string{"E001", "E002"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{
			Designation: strPtr("PE"),
			Grade:       strPtr("G6"),
		},
	})

	require.NoError(t, err)
	assert.Empty(t, res.Skipped)

	require.Len(t, deps.repo.historyRows, 2)
	assert.Equal(t, "SSE", deps.repo.historyRows[0].OldDesignation)
	assert.Equal(t, "PE", deps.repo.historyRows[0].NewDesignation)

	require.Len(t, deps.repo.setFieldsCalls, 1)
	assert.Equal(t, map[string]any{"designation": "PE", "grade": "G6"}, deps.repo.setFieldsCalls[0].fields)
	assert.Equal(t, []string{events.TypeDesignationChanged, events.TypeGradeChanged}, deps.notifier.typesOf())
}

func TestBulkChange_CompanySwitchGeneratesDistinctCodes(t *testing.T) {
	gen := &fakeGenerator{
		highestFn: func(ctx context.Context, company string) (string, error) {
			assert.Equal(t, "X", company)
			return "X-00007", nil
		},
	}
	deps := setupService(t, testEmployees(), gen)

	res, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs:           []string{"E001", "E002"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{Saral: strPtr("X")},
	})

	require.NoError(t, err)
	assert.Empty(t, res.FailedIDs)

	require.Len(t, deps.repo.updateOneCalls, 2)
	assert.Equal(t, map[string]any{"cds_code": "X-00008", "saral": "X"}, deps.repo.updateOneCalls[0].fields)
	assert.Equal(t, map[string]any{"cds_code": "X-00009", "saral": "X"}, deps.repo.updateOneCalls[1].fields)
}

func TestBulkChange_CompanySwitchConflictAggregatesFailures(t *testing.T) {
	records := testEmployees()
	records[0].CdsCode = "X-00003"
	deps := setupService(t, records, &fakeGenerator{
		highestFn: func(ctx context.Context, company string) (string, error) { return "X-00003", nil },
	})

	res, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs: []string{"E001", "E002"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{
			Saral:     strPtr("X"),
			ShiftType: strPtr("NIGHT"),
		},
	})

	var switchErr *bulkchangeerrors.CompanySwitchError
	require.ErrorAs(t, err, &switchErr)
	assert.Equal(t, []string{"E001"}, switchErr.FailedIDs)
	assert.Equal(t, []string{"E001"}, res.FailedIDs)

	// the clean record is still switched and the generic apply still ran
	require.Len(t, deps.repo.updateOneCalls, 1)
	assert.Equal(t, "E002", deps.repo.updateOneCalls[0].id)
	require.Len(t, deps.repo.setFieldsCalls, 1)
	assert.Equal(t, map[string]any{"shift_type": "NIGHT"}, deps.repo.setFieldsCalls[0].fields)

	// a raised conflict suppresses the leave operation
	assert.Empty(t, deps.leaves.calls)
}

func TestBulkChange_PMOCannotTouchDesignation(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)
	deps.catalog.resolveFn = func(ctx context.Context, designation string) ([]string, error) {
		t.Fatal("catalog must not be consulted for a PMO actor")
		return nil, nil
	}
	actor := bulkchange.Actor{HrmsID: "PMO-1", Roles: []string{rbac.RolePMO}}

	_, err := deps.service.BulkChange(context.Background(), actor, bulkchange.BulkChangeRequest{
		HrmsIDs: []string{"E001", "E002"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{
			Designation:   strPtr("PE"),
			Grade:         strPtr("G6"),
			BusinessGroup: strPtr("PLATFORM"),
			DirectManager: strPtr("E100"),
		},
	})

	require.NoError(t, err)

	// business group first as its own set-update, then direct manager
	require.Len(t, deps.repo.setFieldsCalls, 2)
	assert.Equal(t, map[string]any{"business_group": "PLATFORM"}, deps.repo.setFieldsCalls[0].fields)
	assert.Equal(t, map[string]any{"direct_manager": "E100"}, deps.repo.setFieldsCalls[1].fields)
	assert.Equal(t, []string{events.TypeBusinessGroupChanged, events.TypeDirectManagerChanged}, deps.notifier.typesOf())
}

func TestBulkChange_AdminDefersBusinessGroupToGenericApply(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)

	_, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs:           []string{"E001", "E002"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{BusinessGroup: strPtr("PLATFORM")},
	})

	require.NoError(t, err)
	require.Len(t, deps.repo.setFieldsCalls, 1)
	assert.Equal(t, map[string]any{"business_group": "PLATFORM"}, deps.repo.setFieldsCalls[0].fields)
	assert.Equal(t, []string{events.TypeBusinessGroupChanged}, deps.notifier.typesOf())
}

func TestBulkChange_EmployeeTypeEventPrecedesOthers(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)

	_, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs: []string{"E001", "E002"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{
			EmployeeType: strPtr("CONTRACT"),
			ShiftType:    strPtr("NIGHT"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{events.TypeEmployeeTypeChanged, events.TypeShiftChanged}, deps.notifier.typesOf())

	require.Len(t, deps.repo.setFieldsCalls, 1)
	assert.Equal(t, map[string]any{"employee_type": "CONTRACT", "shift_type": "NIGHT"}, deps.repo.setFieldsCalls[0].fields)
}

func TestBulkChange_RejectsUnknownRole(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)
	actor := bulkchange.Actor{HrmsID: "E050", Roles: []string{"Employee"}}

	_, err := deps.service.BulkChange(context.Background(), actor, bulkchange.BulkChangeRequest{
		HrmsIDs:           []string{"E001"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{DirectManager: strPtr("E100")},
	})

	assert.ErrorIs(t, err, bulkchangeerrors.ErrRoleNotAllowed)
	assert.Empty(t, deps.repo.setFieldsCalls)
}

func TestBulkChange_RejectsEmptyTargets(t *testing.T) {
	deps := setupService(t, nil, nil)

	_, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{})

	assert.ErrorIs(t, err, bulkchangeerrors.ErrNoTargetIDs)
}

func TestBulkChange_InvalidLeaveAmountAbortsBeforePersistence(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)
	deps.repo.findByIDsFn = func(ctx context.Context, ids []string) ([]employee.Employee, error) {
		t.Fatal("store must not be read when the leave amount is invalid")
		return nil, nil
	}

	_, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs:           []string{"E001"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{ShiftType: strPtr("NIGHT")},
		LeaveFieldInput:   &bulkchange.LeaveFieldInput{Operation: "ADD_TO_EXISTING", Value: "ten"},
	})

	assert.ErrorIs(t, err, leavebalanceerrors.ErrInvalidAmount)
	assert.Empty(t, deps.repo.setFieldsCalls)
}

func TestBulkChange_MissingLeaveOperationAbortsBeforePersistence(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)
	deps.repo.findByIDsFn = func(ctx context.Context, ids []string) ([]employee.Employee, error) {
		t.Fatal("store must not be read when the leave operation is missing")
		return nil, nil
	}

	_, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs:           []string{"E001", "E002"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{ShiftType: strPtr("NIGHT")},
		LeaveFieldInput:   &bulkchange.LeaveFieldInput{Operation: "", Value: "3"},
	})

	assert.ErrorIs(t, err, leavebalanceerrors.ErrMissingOperation)
	assert.Empty(t, deps.repo.setFieldsCalls)
}

func TestBulkChange_UnknownLeaveOperationAbortsBeforePersistence(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)
	deps.repo.findByIDsFn = func(ctx context.Context, ids []string) ([]employee.Employee, error) {
		t.Fatal("store must not be read when the leave operation is unknown")
		return nil, nil
	}

	_, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs:         []string{"E001"},
		LeaveFieldInput: &bulkchange.LeaveFieldInput{Operation: "MULTIPLY_BY", Value: "3"},
	})

	assert.ErrorIs(t, err, leavebalanceerrors.ErrUnknownOperation)
	assert.Empty(t, deps.repo.setFieldsCalls)
}

func TestBulkChange_LeaveRunsAfterGeneralFields(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)

	_, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs:         []string{"E001", "E002"},
		LeaveFieldInput: &bulkchange.LeaveFieldInput{Operation: "ADD_TO_EXISTING", Value: "3"},
	})

	require.NoError(t, err)
	require.Len(t, deps.leaves.calls, 1)
	assert.Equal(t, leavebalance.OpAddToExisting, deps.leaves.calls[0].op)
	assert.Equal(t, 3.0, deps.leaves.calls[0].amount)
	assert.Equal(t, []string{"E001", "E002"}, deps.leaves.calls[0].ids)
}

func TestBulkChange_NotifierFailureIsSwallowed(t *testing.T) {
	deps := setupService(t, testEmployees(), nil)
	deps.notifier.err = errors.New("outbox unavailable")

	_, err := deps.service.BulkChange(context.Background(), adminActor(), bulkchange.BulkChangeRequest{
		HrmsIDs:           []string{"E001", "E002"},
		GeneralFieldInput: &bulkchange.GeneralFieldInput{DirectManager: strPtr("E100")},
	})

	require.NoError(t, err)
	require.Len(t, deps.repo.setFieldsCalls, 1)
}
