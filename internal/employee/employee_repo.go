package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByIDs(ctx context.Context, hrmsIDs []string) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	// SetFields applies one set-update across every matched record and
	// reports how many rows were modified so callers can verify bulk
	// completeness.
	SetFields(ctx context.Context, hrmsIDs []string, fields map[string]any) (int64, error)
	UpdateOne(ctx context.Context, hrmsID string, fields map[string]any) error
	InsertDesignationGradeHistories(ctx context.Context, rows []DesignationGradeHistory) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDs(ctx context.Context, hrmsIDs []string) ([]Employee, error) {
	var records []Employee
	err := r.db.WithContext(ctx).
		Where("hrms_id IN ?", hrmsIDs).
		Order("hrms_id ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var records []Employee
	err := r.db.WithContext(ctx).
		Select("hrms_id", "emp_code", "first_name", "email").
		Order("first_name ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) SetFields(ctx context.Context, hrmsIDs []string, fields map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("hrms_id IN ?", hrmsIDs).
		Updates(fields)
	return tx.RowsAffected, tx.Error
}

func (r *repository) UpdateOne(ctx context.Context, hrmsID string, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("hrms_id = ?", hrmsID).
		Updates(fields).Error
}

func (r *repository) InsertDesignationGradeHistories(ctx context.Context, rows []DesignationGradeHistory) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}
