package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/engimate/backend/internal/app/models"
	"github.com/engimate/backend/internal/domain"
	"github.com/engimate/backend/internal/pkg/logger"
)

// CutoffRepository reads the CAP round cutoff tables
type CutoffRepository struct {
	db   Querier
	exec *Executor
	sb   squirrel.StatementBuilderType
}

// NewCutoffRepository creates a new CutoffRepository
func NewCutoffRepository(db Querier, exec *Executor) *CutoffRepository {
	return &CutoffRepository{
		db:   db,
		exec: exec,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// FetchStateBand returns the state-quota rows inside the band. An empty slice is a valid result.
func (r *CutoffRepository) FetchStateBand(ctx context.Context, q BandQuery) ([]models.CollegeChoice, error) {
	sql, args, err := BuildStateQuery(r.sb, q).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building state band SQL")
		return nil, fmt.Errorf("failed to build state band query: %w", err)
	}

	slots := q.slotColumns()
	choices := []models.CollegeChoice{}
	err = r.exec.Do(ctx, QueryStateBand, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		choices = choices[:0]
		for rows.Next() {
			choice, err := scanStateRow(rows, slots)
			if err != nil {
				return fmt.Errorf("error scanning state cutoff row: %w", err)
			}
			choices = append(choices, choice)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Debug().
		Str("table", q.Tables.Cutoff).
		Int64("minRank", q.Band.Min).
		Int64("maxRank", q.Band.Max).
		Int("rows", len(choices)).
		Msg("Fetched state band")
	return choices, nil
}

func scanStateRow(rows pgx.Rows, slots []domain.ColumnRef) (models.CollegeChoice, error) {
	choice := models.CollegeChoice{Track: models.TrackState}

	ranks := make([]*int64, len(slots))
	displays := make([]*string, len(slots))
	var aiRank *int64
	var aiDisplay *string

	dest := []any{
		&choice.ChoiceCode, &choice.CollegeCode, &choice.CollegeName, &choice.BranchName,
		&choice.BranchCategory, &choice.City, &choice.University, &choice.CollegeRank, &choice.BranchType,
	}
	for i := range slots {
		dest = append(dest, &ranks[i], &displays[i])
	}
	dest = append(dest, &aiRank, &aiDisplay)

	if err := rows.Scan(dest...); err != nil {
		return choice, err
	}

	for i, ref := range slots {
		if !ref.Applicable || displays[i] == nil {
			continue
		}
		var rank int64
		if ranks[i] != nil {
			rank = *ranks[i]
		}
		choice.SetCutoff(ref.Column.Label, rank, *displays[i])
	}
	if aiDisplay != nil {
		var rank int64
		if aiRank != nil {
			rank = *aiRank
		}
		choice.SetCutoff(domain.LabelAllIndia, rank, *aiDisplay)
	}
	return choice, nil
}

// FetchAllIndiaBand returns the all-India quota rows inside the band
func (r *CutoffRepository) FetchAllIndiaBand(ctx context.Context, q BandQuery) ([]models.CollegeChoice, error) {
	sql, args, err := BuildAllIndiaQuery(r.sb, q).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building all-India band SQL")
		return nil, fmt.Errorf("failed to build all-India band query: %w", err)
	}

	choices := []models.CollegeChoice{}
	err = r.exec.Do(ctx, QueryAllIndiaBand, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		choices = choices[:0]
		for rows.Next() {
			choice := models.CollegeChoice{Track: models.TrackAllIndia}
			var rank int64
			var display string
			if err := rows.Scan(
				&choice.ChoiceCode, &choice.CollegeCode, &choice.CollegeName, &choice.BranchName,
				&choice.BranchCategory, &choice.City, &choice.University, &choice.CollegeRank, &choice.BranchType,
				&rank, &display, &choice.AIPercentile,
			); err != nil {
				return fmt.Errorf("error scanning all-India cutoff row: %w", err)
			}
			choice.SetCutoff(domain.LabelAllIndia, rank, display)
			choices = append(choices, choice)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Debug().
		Str("table", q.Tables.AllIndia).
		Int64("minRank", q.Band.Min).
		Int64("maxRank", q.Band.Max).
		Int("rows", len(choices)).
		Msg("Fetched all-India band")
	return choices, nil
}

// FetchCollegeCutoffs returns every branch of a college with all category cutoffs rendered
func (r *CutoffRepository) FetchCollegeCutoffs(ctx context.Context, tables domain.TableSet, collegeCode string) ([]models.BranchCutoff, error) {
	sql, args, err := BuildCollegeCutoffsQuery(r.sb, tables, collegeCode).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building college cutoffs SQL")
		return nil, fmt.Errorf("failed to build college cutoffs query: %w", err)
	}

	catalog := domain.Catalog()
	branches := []models.BranchCutoff{}
	err = r.exec.Do(ctx, QueryCollegeCutoffs, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		branches = branches[:0]
		for rows.Next() {
			var b models.BranchCutoff
			var branchType string
			displays := make([]string, len(catalog)+1)

			dest := []any{&b.ChoiceCode, &b.BranchName, &b.BranchCategory, &branchType}
			for i := range displays {
				dest = append(dest, &displays[i])
			}
			if err := rows.Scan(dest...); err != nil {
				return fmt.Errorf("error scanning college cutoff row: %w", err)
			}

			b.FemaleOnly = branchType == "F"
			b.Cutoffs = make(map[string]string, len(displays))
			for i, col := range catalog {
				b.Cutoffs[col.Label] = displays[i]
			}
			b.Cutoffs[domain.LabelAllIndia] = displays[len(catalog)]
			branches = append(branches, b)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return branches, nil
}
