package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hrms/internal/employee"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOptionsRepo struct {
	findOptionsFn func(ctx context.Context) ([]employee.Employee, error)
}

func (f *fakeOptionsRepo) FindByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeOptionsRepo) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return f.findOptionsFn(ctx)
}

func (f *fakeOptionsRepo) SetFields(ctx context.Context, ids []string, fields map[string]any) (int64, error) {
	return 0, nil
}

func (f *fakeOptionsRepo) UpdateOne(ctx context.Context, id string, fields map[string]any) error {
	return nil
}

func (f *fakeOptionsRepo) InsertDesignationGradeHistories(ctx context.Context, rows []employee.DesignationGradeHistory) error {
	return nil
}

func TestService_GetOptionsCacheHit(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	cached := []employee.EmployeeOption{{HrmsID: "E001", FirstName: "Asha"}}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	redisMock.ExpectGet(employee.OptionsCacheKey).SetVal(string(payload))

	repo := &fakeOptionsRepo{
		findOptionsFn: func(ctx context.Context) ([]employee.Employee, error) {
			t.Fatal("repository must not be hit on a cache hit")
			return nil, nil
		},
	}

	got, err := employee.NewService(repo, rdb).GetOptions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, cached, got)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_GetOptionsCacheMissLoadsAndCaches(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()

	records := []employee.Employee{
		{HrmsID: "E001", EmpCode: "A1", FirstName: "Asha", Email: "asha@corp.test"},
	}
	expected := []employee.EmployeeOption{
		{HrmsID: "E001", EmpCode: "A1", FirstName: "Asha", Email: "asha@corp.test"},
	}
	payload, err := json.Marshal(expected)
	require.NoError(t, err)

	redisMock.ExpectGet(employee.OptionsCacheKey).RedisNil()
	redisMock.ExpectSet(employee.OptionsCacheKey, payload, time.Hour).SetVal("OK")

	repo := &fakeOptionsRepo{
		findOptionsFn: func(ctx context.Context) ([]employee.Employee, error) {
			return records, nil
		},
	}

	got, err := employee.NewService(repo, rdb).GetOptions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, got)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestService_GetOptionsRepoFailure(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()
	redisMock.ExpectGet(employee.OptionsCacheKey).RedisNil()

	repo := &fakeOptionsRepo{
		findOptionsFn: func(ctx context.Context) ([]employee.Employee, error) {
			return nil, errors.New("connection refused")
		},
	}

	_, err := employee.NewService(repo, rdb).GetOptions(context.Background())

	assert.Error(t, err)
}
