package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/engimate/backend/internal/domain"
	"github.com/engimate/backend/internal/pkg/helpers"
	"github.com/engimate/backend/internal/pkg/logger"
)

// MeritRepository reads the per-year merit lists mapping rank to percentile
type MeritRepository struct {
	db   Querier
	exec *Executor
	sb   squirrel.StatementBuilderType
}

// NewMeritRepository creates a new MeritRepository
func NewMeritRepository(db Querier, exec *Executor) *MeritRepository {
	return &MeritRepository{
		db:   db,
		exec: exec,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// RankForPercentile returns the best rank whose percentile does not exceed percentile.
// ErrNotFound means the merit list has no such rank.
func (r *MeritRepository) RankForPercentile(ctx context.Context, tables domain.TableSet, percentile float64) (int64, error) {
	sql, args, err := r.sb.Select("rank").
		From(helpers.QuoteIdent(tables.Merit)).
		Where(squirrel.LtOrEq{"percentile": percentile}).
		OrderBy("rank ASC").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building merit rank SQL")
		return 0, fmt.Errorf("failed to build merit rank query: %w", err)
	}

	var rank int64
	err = r.exec.Do(ctx, QueryMeritRank, func(ctx context.Context) error {
		if err := r.db.QueryRow(ctx, sql, args...).Scan(&rank); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rank, nil
}
