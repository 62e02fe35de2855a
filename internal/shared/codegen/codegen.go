package codegen

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// SuccessorFunc derives the next CDS employee code from the current
// highest code for a company. It must be deterministic so repeated calls
// within one bulk operation never hand out the same code twice.
type SuccessorFunc func(current, company string) string

//go:generate mockgen -source=codegen.go -destination=mock/codegen_mock.go -package=mock
type Repository interface {
	HighestCode(ctx context.Context, company string) (string, error)
}

type Generator interface {
	HighestCode(ctx context.Context, company string) (string, error)
	Next(current, company string) string
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// HighestCode orders assigned codes by their numeric suffix, not
// lexicographically, so CDS-99 ranks below CDS-100.
func (r *repository) HighestCode(ctx context.Context, company string) (string, error) {
	var code string

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE((
			SELECT cds_code FROM employees
			WHERE saral = ? AND cds_code <> ''
			ORDER BY NULLIF(regexp_replace(cds_code, '\D', '', 'g'), '')::bigint DESC NULLS LAST
			LIMIT 1
		), '')
	`, company).Scan(&code).Error

	if err != nil {
		return "", err
	}

	return code, nil
}

type generator struct {
	repo Repository
	next SuccessorFunc
}

// NewGenerator builds a Generator around the default successor unless the
// caller supplies its own.
func NewGenerator(repo Repository, next ...SuccessorFunc) Generator {
	fn := DefaultSuccessor
	if len(next) > 0 && next[0] != nil {
		fn = next[0]
	}
	return &generator{repo: repo, next: fn}
}

func (g *generator) HighestCode(ctx context.Context, company string) (string, error) {
	return g.repo.HighestCode(ctx, company)
}

func (g *generator) Next(current, company string) string {
	return g.next(current, company)
}

// DefaultSuccessor increments the numeric suffix of the current code,
// preserving its prefix and zero padding. An empty baseline seeds the
// company's sequence.
func DefaultSuccessor(current, company string) string {
	if current == "" {
		return strings.ToUpper(company) + "-00001"
	}

	i := len(current)
	for i > 0 && current[i-1] >= '0' && current[i-1] <= '9' {
		i--
	}
	prefix, digits := current[:i], current[i:]
	if digits == "" {
		return current + "-00001"
	}

	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return current + "-00001"
	}

	return prefix + fmt.Sprintf("%0*d", len(digits), n+1)
}
