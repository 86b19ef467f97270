package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/engimate/backend/internal/app/models"
	"github.com/engimate/backend/internal/domain"
	"github.com/engimate/backend/internal/pkg/helpers"
	"github.com/engimate/backend/internal/pkg/logger"
)

// CollegeRepository reads the college catalogue of a year
type CollegeRepository struct {
	db   Querier
	exec *Executor
	sb   squirrel.StatementBuilderType
}

// NewCollegeRepository creates a new CollegeRepository
func NewCollegeRepository(db Querier, exec *Executor) *CollegeRepository {
	return &CollegeRepository{
		db:   db,
		exec: exec,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var collegeColumns = []string{
	"college_code",
	"college_name",
	"COALESCE(TRIM(city), '')",
	"COALESCE(university, '')",
	"COALESCE(rank, 0)",
}

func scanCollege(row pgx.Row, c *models.College) error {
	return row.Scan(&c.CollegeCode, &c.CollegeName, &c.City, &c.University, &c.Rank)
}

// GetCollege retrieves a college by code
func (r *CollegeRepository) GetCollege(ctx context.Context, tables domain.TableSet, code string) (*models.College, error) {
	sql, args, err := r.sb.Select(collegeColumns...).
		From(helpers.QuoteIdent(tables.College)).
		Where(squirrel.Eq{"college_code": code}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get college SQL")
		return nil, fmt.Errorf("failed to build get college query: %w", err)
	}

	college := &models.College{}
	err = r.exec.Do(ctx, QueryCollege, func(ctx context.Context) error {
		if err := scanCollege(r.db.QueryRow(ctx, sql, args...), college); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return college, nil
}

// ListColleges returns the colleges of a university ("" for all), best ranked
// first and unranked colleges last
func (r *CollegeRepository) ListColleges(ctx context.Context, tables domain.TableSet, university string) ([]models.College, error) {
	builder := r.sb.Select(collegeColumns...).
		From(helpers.QuoteIdent(tables.College)).
		OrderBy("CASE WHEN COALESCE(rank, 0) = 0 THEN 1 ELSE 0 END", "rank ASC", "college_name ASC")
	if university != "" {
		builder = builder.Where(squirrel.Eq{"university": university})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list colleges SQL")
		return nil, fmt.Errorf("failed to build list colleges query: %w", err)
	}

	colleges := []models.College{}
	err = r.exec.Do(ctx, QueryColleges, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		colleges = colleges[:0]
		for rows.Next() {
			var c models.College
			if err := scanCollege(rows, &c); err != nil {
				return fmt.Errorf("error scanning college row: %w", err)
			}
			colleges = append(colleges, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return colleges, nil
}

// ListCollegeNames returns code and name of every college, ordered by name
func (r *CollegeRepository) ListCollegeNames(ctx context.Context, tables domain.TableSet) ([]models.CollegeName, error) {
	sql, args, err := r.sb.Select("college_code", "college_name").
		From(helpers.QuoteIdent(tables.College)).
		OrderBy("college_name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building college names SQL")
		return nil, fmt.Errorf("failed to build college names query: %w", err)
	}

	names := []models.CollegeName{}
	err = r.exec.Do(ctx, QueryCollegeNames, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		names = names[:0]
		for rows.Next() {
			var n models.CollegeName
			if err := rows.Scan(&n.CollegeCode, &n.CollegeName); err != nil {
				return fmt.Errorf("error scanning college name row: %w", err)
			}
			names = append(names, n)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ListCities returns the distinct trimmed city names, ascending
func (r *CollegeRepository) ListCities(ctx context.Context, tables domain.TableSet) ([]string, error) {
	return r.distinct(ctx, QueryCities, tables, "TRIM(city)")
}

// ListUniversities returns the distinct universities, ascending
func (r *CollegeRepository) ListUniversities(ctx context.Context, tables domain.TableSet) ([]string, error) {
	return r.distinct(ctx, QueryUniversities, tables, "TRIM(university)")
}

func (r *CollegeRepository) distinct(ctx context.Context, query string, tables domain.TableSet, expr string) ([]string, error) {
	sql, args, err := r.sb.Select(expr + " AS value").
		Distinct().
		From(helpers.QuoteIdent(tables.College)).
		Where(expr + " <> ''").
		OrderBy("value ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Str("query", query).Msg("Error building distinct SQL")
		return nil, fmt.Errorf("failed to build %s query: %w", query, err)
	}

	values := []string{}
	err = r.exec.Do(ctx, query, func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		values = values[:0]
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return fmt.Errorf("error scanning %s row: %w", query, err)
			}
			values = append(values, v)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}
