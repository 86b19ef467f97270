package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// Querier is the read-only subset of *pgxpool.Pool the repositories use
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	CutoffRepository  *CutoffRepository
	MeritRepository   *MeritRepository
	CollegeRepository *CollegeRepository
}

// NewRepositories initializes all repositories over a shared executor
func NewRepositories(db Querier, exec *Executor) *Repositories {
	return &Repositories{
		CutoffRepository:  NewCutoffRepository(db, exec),
		MeritRepository:   NewMeritRepository(db, exec),
		CollegeRepository: NewCollegeRepository(db, exec),
	}
}
