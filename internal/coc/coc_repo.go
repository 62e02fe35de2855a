package coc

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=coc_repo.go -destination=mock/coc_repo_mock.go -package=mock
type Repository interface {
	FindByCategoryAndCode(ctx context.Context, category, code string) (*COC, error)
	FindChildCodes(ctx context.Context, category, parent string) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByCategoryAndCode(ctx context.Context, category, code string) (*COC, error) {
	var c COC
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		First(&c, "code = ?", code).Error
	return &c, err
}

func (r *repository) FindChildCodes(ctx context.Context, category, parent string) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&COC{}).
		Where("category = ?", category).
		Where("parent = ?", parent).
		Pluck("code", &codes).Error
	return codes, err
}
