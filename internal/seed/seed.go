package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/engimate/backend/internal/domain"
	"github.com/engimate/backend/internal/pkg/helpers"
)

// Execer is the write half of pgxpool.Pool the seed needs
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type sampleCollege struct {
	code, name, city, university string
	rank                         int
}

type sampleBranch struct {
	choiceCode, collegeCode, branchCode, name, category, branchType string
	// GOPEN, LOPEN, GOBC, GSC, EWS, TFWS closing ranks. LOPEN stays 0 when not offered.
	gopen, lopen, gobc, gsc, ews, tfws int64
	// all-India round 1 closing rank and percentile
	aiRank       int64
	aiPercentile float64
}

var sampleColleges = []sampleCollege{
	{"1001", "Sample Government College of Engineering", "Pune", "Savitribai Phule Pune University", 1},
	{"2001", "Sample Institute of Technology", "Mumbai", "University of Mumbai", 4},
	{"3001", "Sample Women's College of Engineering", "Nagpur", "RTM Nagpur University", 25},
}

var sampleBranches = []sampleBranch{
	{"100124510", "1001", "24510", "Computer Engineering", "CS", "", 1200, 1500, 2100, 6800, 2600, 900, 3500, 99.6},
	{"100161210", "1001", "61210", "Mechanical Engineering", "ME", "", 9800, 12500, 15000, 38000, 16000, 8000, 21000, 97.1},
	{"200124510", "2001", "24510", "Computer Engineering", "CS", "", 4300, 5200, 6900, 19000, 8100, 3900, 9000, 98.8},
	{"200129310", "2001", "29310", "Electrical Engineering", "EE", "", 22000, 0, 31000, 65000, 34000, 20000, 0, 0},
	{"300124510", "3001", "24510", "Computer Science and Engineering", "CS", "F", 31000, 36000, 42000, 90000, 45000, 30000, 0, 0},
}

// rank to percentile points, descending percentile
var sampleMerit = []struct {
	rank       int64
	percentile float64
}{
	{1, 100}, {1200, 99.6}, {4300, 98.8}, {9800, 97.1}, {22000, 93.4}, {31000, 90.2}, {90000, 72.5},
}

// CreateSampleData inserts a small catalogue into the year's tables so the
// prediction routes have something to serve against a fresh development schema.
// Existing rows are left untouched.
func CreateSampleData(ctx context.Context, db Execer, year int, lgr zerolog.Logger) error {
	tables, err := domain.Tables(year, 1)
	if err != nil {
		return err
	}

	lgr.Info().Int("year", year).Msg("Checking/Creating sample catalogue data...")
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	var finalErr error

	colleges := sb.Insert(helpers.QuoteIdent(tables.College)).
		Columns("college_code", "college_name", "city", "university", "rank")
	for _, c := range sampleColleges {
		colleges = colleges.Values(c.code, c.name, c.city, c.university, c.rank)
	}
	finalErr = errors.Join(finalErr, exec(ctx, db, lgr, "colleges", colleges.Suffix("ON CONFLICT DO NOTHING")))

	branches := sb.Insert(helpers.QuoteIdent(tables.Branch)).
		Columns("choice_code", "college_code", "branch_code", "branch_name", "branch_category", "branch_type")
	for _, b := range sampleBranches {
		branches = branches.Values(b.choiceCode, b.collegeCode, b.branchCode, b.name, b.category, b.branchType)
	}
	finalErr = errors.Join(finalErr, exec(ctx, db, lgr, "branches", branches.Suffix("ON CONFLICT DO NOTHING")))

	merit := sb.Insert(helpers.QuoteIdent(tables.Merit)).Columns("rank", "percentile")
	for _, m := range sampleMerit {
		merit = merit.Values(m.rank, m.percentile)
	}
	finalErr = errors.Join(finalErr, exec(ctx, db, lgr, "merit list", merit.Suffix("ON CONFLICT DO NOTHING")))

	cutoffs := sb.Insert(helpers.QuoteIdent(tables.Cutoff)).
		Columns("choice_code", "college_code", "branch_code",
			`"GOPENS"`, `"GOPENH"`, `"LOPENS"`, `"LOPENH"`, `"GOBCS"`, `"GOBCH"`, `"GSCS"`, `"GSCH"`, `"EWS"`, `"TFWS"`)
	for _, b := range sampleBranches {
		cutoffs = cutoffs.Values(b.choiceCode, b.collegeCode, b.branchCode,
			b.gopen, b.gopen, b.lopen, b.lopen, b.gobc, b.gobc, b.gsc, b.gsc, b.ews, b.tfws)
	}
	finalErr = errors.Join(finalErr, exec(ctx, db, lgr, "state cutoffs", cutoffs.Suffix("ON CONFLICT DO NOTHING")))

	allIndia := sb.Insert(helpers.QuoteIdent(tables.AllIndia)).
		Columns("choice_code", "college_code", "branch_code", tables.AllIndiaRank, tables.AllIndiaPercentile)
	offered := 0
	for _, b := range sampleBranches {
		if b.aiRank == 0 {
			continue
		}
		allIndia = allIndia.Values(b.choiceCode, b.collegeCode, b.branchCode, b.aiRank, b.aiPercentile)
		offered++
	}
	if offered > 0 {
		finalErr = errors.Join(finalErr, exec(ctx, db, lgr, "all-India cutoffs", allIndia.Suffix("ON CONFLICT DO NOTHING")))
	}

	if finalErr != nil {
		lgr.Warn().Err(finalErr).Msg("Sample data seeding completed with errors.")
		return finalErr
	}
	lgr.Info().Msg("Sample data check/creation complete.")
	return nil
}

func exec(ctx context.Context, db Execer, lgr zerolog.Logger, what string, q squirrel.InsertBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build %s insert: %w", what, err)
	}
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		lgr.Error().Err(err).Str("table", what).Msg("Error seeding sample rows")
		return fmt.Errorf("seed %s: %w", what, err)
	}
	lgr.Debug().Str("table", what).Int64("inserted", tag.RowsAffected()).Msg("Sample rows seeded")
	return nil
}
