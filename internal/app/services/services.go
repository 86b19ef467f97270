package services

import (
	"context"

	"github.com/engimate/backend/internal/app/models"
	"github.com/engimate/backend/internal/app/repositories"
	"github.com/engimate/backend/internal/domain"
)

// Services defined in this package:
// - PreferenceService: turns a student profile into a ranked college preference list
// - CollegeService: read-only college catalogue and per-college cutoffs
//
// The store-facing interfaces below are satisfied by the repositories package
// and by in-memory fakes in tests.

// CutoffSource runs band queries against the cutoff store
type CutoffSource interface {
	FetchStateBand(ctx context.Context, q repositories.BandQuery) ([]models.CollegeChoice, error)
	FetchAllIndiaBand(ctx context.Context, q repositories.BandQuery) ([]models.CollegeChoice, error)
	FetchCollegeCutoffs(ctx context.Context, tables domain.TableSet, collegeCode string) ([]models.BranchCutoff, error)
}

// MeritSource resolves a percentile to a merit rank
type MeritSource interface {
	RankForPercentile(ctx context.Context, tables domain.TableSet, percentile float64) (int64, error)
}

// CollegeStore reads the college catalogue
type CollegeStore interface {
	GetCollege(ctx context.Context, tables domain.TableSet, code string) (*models.College, error)
	ListColleges(ctx context.Context, tables domain.TableSet, university string) ([]models.College, error)
	ListCollegeNames(ctx context.Context, tables domain.TableSet) ([]models.CollegeName, error)
	ListCities(ctx context.Context, tables domain.TableSet) ([]string, error)
	ListUniversities(ctx context.Context, tables domain.TableSet) ([]string, error)
}

// Services holds all the service instances
type Services struct {
	PreferenceService PreferenceService
	CollegeService    CollegeService
}

// NewServices wires the services over the repositories
func NewServices(repos *repositories.Repositories, cfg PredictorConfig) *Services {
	return &Services{
		PreferenceService: NewPreferenceService(repos.CutoffRepository, repos.MeritRepository, cfg),
		CollegeService:    NewCollegeService(repos.CollegeRepository, repos.CutoffRepository, cfg.DefaultYear),
	}
}
