package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/engimate/backend/internal/app/models"
	"github.com/engimate/backend/internal/app/models/dto"
	"github.com/engimate/backend/internal/app/repositories"
	"github.com/engimate/backend/internal/domain"
	"github.com/engimate/backend/internal/pkg/apperrors"
	"github.com/engimate/backend/internal/pkg/helpers"
)

// resolveTables validates year and round, applying defaults, and returns the table set
func resolveTables(year, round, defaultYear int) (domain.TableSet, error) {
	if year == 0 {
		year = defaultYear
	}
	if round == 0 {
		round = 1
	}
	if !domain.SupportedYear(year) {
		return domain.TableSet{}, apperrors.NewInputError("year", fmt.Sprintf("year %d is not supported", year))
	}
	tables, err := domain.Tables(year, round)
	if err != nil {
		return domain.TableSet{}, apperrors.NewInputError("round",
			fmt.Sprintf("round must be between 1 and %d for %d", domain.MaxRound(year), year))
	}
	return tables, nil
}

// cleanFilter trims a city/branch filter; nil means "All"
func cleanFilter(values []string) []string {
	if helpers.TrimmedOrAll(values) {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func validPercentile(p *float64) bool {
	return p == nil || (*p >= 0 && *p <= 100)
}

// profileFromRequest validates a prediction request into a StudentProfile.
// Every failure is an InputError raised before the cutoff tables are queried;
// only a percentile-only request touches the merit list.
func (s *preferenceServiceImpl) profileFromRequest(ctx context.Context, req dto.PreferenceListRequest) (models.StudentProfile, domain.TableSet, error) {
	var p models.StudentProfile

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return p, domain.TableSet{}, apperrors.NewInputError("category", err.Error())
	}
	gender, err := domain.ParseGender(req.Gender)
	if err != nil {
		return p, domain.TableSet{}, apperrors.NewInputError("gender", err.Error())
	}
	special, err := domain.ParseSpecialReservation(req.SpecialReservation)
	if err != nil {
		return p, domain.TableSet{}, apperrors.NewInputError("specialReservation", err.Error())
	}
	tables, err := resolveTables(req.Year, req.Round, s.cfg.DefaultYear)
	if err != nil {
		return p, domain.TableSet{}, err
	}
	if !validPercentile(req.Percentile) {
		return p, domain.TableSet{}, apperrors.NewInputError("percentile", "percentile must be between 0 and 100")
	}
	if !validPercentile(req.SecondaryPercentile) {
		return p, domain.TableSet{}, apperrors.NewInputError("secondaryPercentile", "percentile must be between 0 and 100")
	}
	if req.SecondaryRank != nil && *req.SecondaryRank <= 0 {
		return p, domain.TableSet{}, apperrors.NewInputError("secondaryRank", "rank must be a positive number")
	}

	p = models.StudentProfile{
		Percentile:          req.Percentile,
		Category:            category,
		Gender:              gender,
		Special:             special,
		TFWS:                req.TFWS,
		Branches:            cleanFilter(req.BranchCategory),
		Cities:              cleanFilter(req.City),
		SecondaryPercentile: req.SecondaryPercentile,
		Year:                tables.Year,
		Round:               tables.Round,
	}
	if req.SecondaryRank != nil {
		p.SecondaryRank = *req.SecondaryRank
	}

	switch {
	case req.Rank != nil:
		if *req.Rank <= 0 {
			return p, domain.TableSet{}, apperrors.NewInputError("rank", "rank must be a positive number")
		}
		p.Rank = *req.Rank
	case req.Percentile != nil:
		rank, err := s.merit.RankForPercentile(ctx, tables, *req.Percentile)
		if errors.Is(err, repositories.ErrNotFound) {
			return p, domain.TableSet{}, apperrors.NewInputError("percentile", "no merit list rank matches the percentile")
		}
		if err != nil {
			return p, domain.TableSet{}, err
		}
		p.Rank = rank
	default:
		return p, domain.TableSet{}, apperrors.NewInputError("rank", "rank or percentile is required")
	}

	return p, tables, nil
}

// profileFromAllIndiaRequest validates an all-India only request
func (s *preferenceServiceImpl) profileFromAllIndiaRequest(req dto.AllIndiaRequest) (models.StudentProfile, domain.TableSet, error) {
	var p models.StudentProfile

	if req.SecondaryRank == nil || *req.SecondaryRank <= 0 {
		return p, domain.TableSet{}, apperrors.NewInputError("secondaryRank", "all-India rank is required")
	}
	gender, err := domain.ParseGender(req.Gender)
	if err != nil {
		return p, domain.TableSet{}, apperrors.NewInputError("gender", err.Error())
	}
	tables, err := resolveTables(req.Year, req.Round, s.cfg.DefaultYear)
	if err != nil {
		return p, domain.TableSet{}, err
	}
	if !validPercentile(req.SecondaryPercentile) {
		return p, domain.TableSet{}, apperrors.NewInputError("secondaryPercentile", "percentile must be between 0 and 100")
	}

	p = models.StudentProfile{
		Category:            domain.CategoryOpen,
		Gender:              gender,
		Special:             domain.SpecialNone,
		Branches:            cleanFilter(req.BranchCategory),
		Cities:              cleanFilter(req.City),
		SecondaryRank:       *req.SecondaryRank,
		SecondaryPercentile: req.SecondaryPercentile,
		Year:                tables.Year,
		Round:               tables.Round,
	}
	return p, tables, nil
}
