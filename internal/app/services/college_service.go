package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/engimate/backend/internal/app/models"
	"github.com/engimate/backend/internal/app/models/dto"
	"github.com/engimate/backend/internal/app/repositories"
	"github.com/engimate/backend/internal/domain"
	"github.com/engimate/backend/internal/pkg/apperrors"
	"github.com/engimate/backend/internal/pkg/helpers"
)

// CollegeService defines the interface for college catalogue operations
type CollegeService interface {
	ListCollegeNames(ctx context.Context) ([]models.CollegeName, error)
	GetCollege(ctx context.Context, code string) (*models.College, error)
	GetCollegeCutoffs(ctx context.Context, code string, q dto.CutoffQuery) (*dto.CollegeCutoffsResponse, error)
	ListCities(ctx context.Context) ([]string, error)
	ListUniversities(ctx context.Context) ([]string, error)
	TopColleges(ctx context.Context, req dto.TopCollegesRequest) (*dto.PaginatedResponse, error)
}

// collegeServiceImpl implements the CollegeService interface
type collegeServiceImpl struct {
	colleges    CollegeStore
	cutoffs     CutoffSource
	defaultYear int
}

// NewCollegeService creates a new college service instance
func NewCollegeService(colleges CollegeStore, cutoffs CutoffSource, defaultYear int) CollegeService {
	if defaultYear == 0 {
		defaultYear = domain.Year2025
	}
	return &collegeServiceImpl{
		colleges:    colleges,
		cutoffs:     cutoffs,
		defaultYear: defaultYear,
	}
}

// catalogueTables returns the table set of the default year. The catalogue
// tables only vary by year, so round 1 is used.
func (s *collegeServiceImpl) catalogueTables() (domain.TableSet, error) {
	return resolveTables(s.defaultYear, 1, s.defaultYear)
}

// ListCollegeNames implements CollegeService
func (s *collegeServiceImpl) ListCollegeNames(ctx context.Context) ([]models.CollegeName, error) {
	tables, err := s.catalogueTables()
	if err != nil {
		return nil, err
	}
	return s.colleges.ListCollegeNames(ctx, tables)
}

// GetCollege implements CollegeService
func (s *collegeServiceImpl) GetCollege(ctx context.Context, code string) (*models.College, error) {
	tables, err := s.catalogueTables()
	if err != nil {
		return nil, err
	}
	return s.getCollege(ctx, tables, code)
}

func (s *collegeServiceImpl) getCollege(ctx context.Context, tables domain.TableSet, code string) (*models.College, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.NewInputError("code", "college code is required")
	}

	college, err := s.colleges.GetCollege(ctx, tables, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("college %s not found", code))
		}
		return nil, err
	}
	return college, nil
}

// GetCollegeCutoffs implements CollegeService
func (s *collegeServiceImpl) GetCollegeCutoffs(ctx context.Context, code string, q dto.CutoffQuery) (*dto.CollegeCutoffsResponse, error) {
	tables, err := resolveTables(q.Year, q.Round, s.defaultYear)
	if err != nil {
		return nil, err
	}

	college, err := s.getCollege(ctx, tables, code)
	if err != nil {
		return nil, err
	}

	branches, err := s.cutoffs.FetchCollegeCutoffs(ctx, tables, college.CollegeCode)
	if err != nil {
		return nil, err
	}

	return &dto.CollegeCutoffsResponse{
		College:  *college,
		Year:     tables.Year,
		Round:    tables.Round,
		Branches: branches,
	}, nil
}

// ListCities implements CollegeService
func (s *collegeServiceImpl) ListCities(ctx context.Context) ([]string, error) {
	tables, err := s.catalogueTables()
	if err != nil {
		return nil, err
	}
	return s.colleges.ListCities(ctx, tables)
}

// ListUniversities implements CollegeService
func (s *collegeServiceImpl) ListUniversities(ctx context.Context) ([]string, error) {
	tables, err := s.catalogueTables()
	if err != nil {
		return nil, err
	}
	return s.colleges.ListUniversities(ctx, tables)
}

// TopColleges implements CollegeService. Colleges come back best ranked first;
// cities match after trimming and Unicode case folding.
func (s *collegeServiceImpl) TopColleges(ctx context.Context, req dto.TopCollegesRequest) (*dto.PaginatedResponse, error) {
	tables, err := s.catalogueTables()
	if err != nil {
		return nil, err
	}

	university := strings.TrimSpace(req.University)
	if strings.EqualFold(university, "All") {
		university = ""
	}

	colleges, err := s.colleges.ListColleges(ctx, tables, university)
	if err != nil {
		return nil, err
	}

	if cities := foldedSet(cleanFilter(req.Cities)); cities != nil {
		filtered := colleges[:0]
		for _, c := range colleges {
			if _, ok := cities[foldCity(c.City)]; ok {
				filtered = append(filtered, c)
			}
		}
		colleges = filtered
	}

	page, info := helpers.Paginate(colleges, req.Page, req.Size)
	return &dto.PaginatedResponse{Items: page, Pagination: info}, nil
}

// foldCity normalizes a city name for comparison
func foldCity(city string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(city)))
}

func foldedSet(values []string) map[string]struct{} {
	if values == nil {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[foldCity(v)] = struct{}{}
	}
	return set
}
