package coc

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=coc_catalog.go -destination=mock/coc_catalog_mock.go -package=mock
type Catalog interface {
	// ResolveGradesForDesignation returns the grade codes that are valid
	// children of the designation's parent grade group. A missing
	// designation or grade group yields an empty set, not an error;
	// callers treat empty as "invalid, skip".
	ResolveGradesForDesignation(ctx context.Context, designationCode string) ([]string, error)
}

type catalog struct {
	repo   Repository
	logger *zap.Logger
}

func NewCatalog(repo Repository, logger ...*zap.Logger) Catalog {
	l := zap.L().Named("coc.catalog")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("coc.catalog")
	}
	return &catalog{repo: repo, logger: l}
}

func (c *catalog) ResolveGradesForDesignation(ctx context.Context, designationCode string) ([]string, error) {
	designation, err := c.repo.FindByCategoryAndCode(ctx, CategoryDesignation, designationCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.logger.Error("designation does not exist for coc code",
				zap.String("designation", designationCode),
			)
			return nil, nil
		}
		return nil, err
	}

	gradeGroup, err := c.repo.FindByCategoryAndCode(ctx, CategoryGrade, designation.Parent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.logger.Error("grade group does not exist for coc code",
				zap.String("designation", designationCode),
				zap.String("parent", designation.Parent),
			)
			return nil, nil
		}
		return nil, err
	}

	return c.repo.FindChildCodes(ctx, CategoryGrade, gradeGroup.Code)
}
