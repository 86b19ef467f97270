package repositories

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/engimate/backend/internal/app/models"
	"github.com/engimate/backend/internal/domain"
	"github.com/engimate/backend/internal/pkg/helpers"
)

// Table aliases used by every cutoff query
const (
	cutoffAlias   = "c"
	branchAlias   = "b"
	collegeAlias  = "ci"
	allIndiaAlias = "ai"
	meritAlias    = "m"
)

// Fixed projection aliases of a state band row, in scan order after the base columns
var stateSlotAliases = []string{"gopen", "primary_col", "gender_open", "ews", "tfws", "special"}

// BandQuery is the input of one band query
type BandQuery struct {
	Tables     domain.TableSet
	Descriptor domain.Descriptor
	Band       models.RankBand
	// WithAllIndia adds the all-India cutoff of the same choice code to state rows
	WithAllIndia bool
}

// slotColumns returns the projected column refs of a state row, baseline GOPEN first
func (q BandQuery) slotColumns() []domain.ColumnRef {
	gopen, _ := domain.Column(domain.LabelGeneralOpen)
	return append([]domain.ColumnRef{{Column: gopen, Applicable: true}}, q.Descriptor.Slots()...)
}

// effectiveRank returns the SQL expression of a column's effective rank. For
// dual columns the state value wins only when it is set and the home value is not.
// NULL is read as the 0 sentinel.
func effectiveRank(col domain.CategoryColumn) string {
	std := fmt.Sprintf("COALESCE(%s, 0)", helpers.Qualify(cutoffAlias, col.Standard))
	if !col.Dual() {
		return std
	}
	alt := fmt.Sprintf("COALESCE(%s, 0)", helpers.Qualify(cutoffAlias, col.Alternate))
	return fmt.Sprintf("(CASE WHEN %[1]s <> 0 AND %[2]s = 0 THEN %[1]s ELSE %[2]s END)", std, alt)
}

// displayExpr renders "rank (percentile)" with the percentile looked up in the merit list
func displayExpr(rankExpr, meritTable string) string {
	return fmt.Sprintf(
		"%[1]s::TEXT || ' (' || COALESCE((SELECT %[3]s.percentile::TEXT FROM %[2]s AS %[3]s WHERE %[3]s.rank = %[1]s LIMIT 1), '0') || ')'",
		rankExpr, helpers.QuoteIdent(meritTable), meritAlias,
	)
}

// bandPredicate matches a rank inside the band or the "not offered" sentinel
func bandPredicate(rankExpr string, band models.RankBand) squirrel.Sqlizer {
	return squirrel.Expr(fmt.Sprintf("(%[1]s BETWEEN ? AND ? OR %[1]s = 0)", rankExpr), band.Min, band.Max)
}

// alwaysTrue stands in for a slot that does not apply, keeping the predicate shape fixed
var alwaysTrue = squirrel.Expr("TRUE")

func allIndiaRankExpr(tables domain.TableSet, alias string) string {
	return fmt.Sprintf("COALESCE(%s, 0)", helpers.Qualify(alias, tables.AllIndiaRank))
}

func allIndiaDisplayExpr(tables domain.TableSet, alias string) string {
	rank := allIndiaRankExpr(tables, alias)
	return fmt.Sprintf("CASE WHEN %[1]s = 0 THEN '%[3]s' ELSE %[1]s::TEXT || ' (' || COALESCE(%[2]s::TEXT, '0') || ')' END",
		rank, helpers.Qualify(alias, tables.AllIndiaPercentile), models.NotOffered)
}

func baseColumns(choiceSource string) []string {
	return []string{
		choiceSource + ".choice_code",
		choiceSource + ".college_code",
		collegeAlias + ".college_name",
		branchAlias + ".branch_name",
		"COALESCE(" + branchAlias + ".branch_category, '')",
		"COALESCE(TRIM(" + collegeAlias + ".city), '')",
		"COALESCE(" + collegeAlias + ".university, '')",
		"COALESCE(" + collegeAlias + ".rank, 0)",
		"COALESCE(" + branchAlias + ".branch_type, '')",
	}
}

// BuildStateQuery compiles the state-quota band query: every applicable slot
// must hold a rank inside the band or the 0 sentinel, and every slot is
// projected (as NULL when it does not apply) so rows have a fixed shape.
func BuildStateQuery(sb squirrel.StatementBuilderType, q BandQuery) squirrel.SelectBuilder {
	t := q.Tables
	cols := baseColumns(cutoffAlias)

	var conds squirrel.And
	for i, ref := range q.slotColumns() {
		alias := stateSlotAliases[i]
		if !ref.Applicable {
			cols = append(cols, "NULL::BIGINT AS "+alias+"_rank", "NULL::TEXT AS "+alias)
			conds = append(conds, alwaysTrue)
			continue
		}
		eff := effectiveRank(ref.Column)
		cols = append(cols, eff+" AS "+alias+"_rank", displayExpr(eff, t.Merit)+" AS "+alias)
		// the baseline GOPEN column is display only
		if i > 0 {
			conds = append(conds, bandPredicate(eff, q.Band))
		}
	}

	if q.WithAllIndia {
		sub := fmt.Sprintf("FROM %s AS %s WHERE %s.choice_code = %s.choice_code LIMIT 1",
			helpers.QuoteIdent(t.AllIndia), allIndiaAlias, allIndiaAlias, cutoffAlias)
		cols = append(cols,
			fmt.Sprintf("COALESCE((SELECT %s %s), 0) AS all_india_rank", allIndiaRankExpr(t, allIndiaAlias), sub),
			fmt.Sprintf("COALESCE((SELECT %s %s), '%s') AS all_india", allIndiaDisplayExpr(t, allIndiaAlias), sub, models.NotOffered),
		)
	} else {
		cols = append(cols, "NULL::BIGINT AS all_india_rank", "NULL::TEXT AS all_india")
	}

	return sb.Select(cols...).
		From(fmt.Sprintf("%s AS %s", helpers.QuoteIdent(t.Cutoff), cutoffAlias)).
		Join(fmt.Sprintf("%s AS %s ON %s.choice_code = %s.choice_code", helpers.QuoteIdent(t.Branch), branchAlias, branchAlias, cutoffAlias)).
		Join(fmt.Sprintf("%s AS %s ON %s.college_code = %s.college_code", helpers.QuoteIdent(t.College), collegeAlias, collegeAlias, cutoffAlias)).
		Where(conds).
		OrderBy(cutoffAlias + ".choice_code")
}

// BuildAllIndiaQuery compiles the all-India quota band query over the round's
// rank column
func BuildAllIndiaQuery(sb squirrel.StatementBuilderType, q BandQuery) squirrel.SelectBuilder {
	t := q.Tables
	const src = "a"
	rank := allIndiaRankExpr(t, src)

	cols := append(baseColumns(src),
		rank+" AS ai_rank",
		allIndiaDisplayExpr(t, src)+" AS ai",
		helpers.Qualify(src, t.AllIndiaPercentile)+"::FLOAT8 AS ai_percentile",
	)

	return sb.Select(cols...).
		From(fmt.Sprintf("%s AS %s", helpers.QuoteIdent(t.AllIndia), src)).
		Join(fmt.Sprintf("%s AS %s ON %s.choice_code = %s.choice_code", helpers.QuoteIdent(t.Branch), branchAlias, branchAlias, src)).
		Join(fmt.Sprintf("%s AS %s ON %s.college_code = %s.college_code", helpers.QuoteIdent(t.College), collegeAlias, collegeAlias, src)).
		Where(bandPredicate(rank, q.Band)).
		OrderBy(src + ".choice_code")
}

// BuildCollegeCutoffsQuery projects every catalog column of every branch of one college
func BuildCollegeCutoffsQuery(sb squirrel.StatementBuilderType, t domain.TableSet, collegeCode string) squirrel.SelectBuilder {
	cols := []string{
		cutoffAlias + ".choice_code",
		branchAlias + ".branch_name",
		"COALESCE(" + branchAlias + ".branch_category, '')",
		"COALESCE(" + branchAlias + ".branch_type, '')",
	}
	for _, col := range domain.Catalog() {
		cols = append(cols, displayExpr(effectiveRank(col), t.Merit)+" AS "+col.Alias)
	}
	cols = append(cols, fmt.Sprintf("COALESCE((SELECT %s FROM %s AS %s WHERE %s.choice_code = %s.choice_code LIMIT 1), '%s') AS all_india",
		allIndiaDisplayExpr(t, allIndiaAlias), helpers.QuoteIdent(t.AllIndia), allIndiaAlias, allIndiaAlias, cutoffAlias, models.NotOffered))

	return sb.Select(cols...).
		From(fmt.Sprintf("%s AS %s", helpers.QuoteIdent(t.Cutoff), cutoffAlias)).
		Join(fmt.Sprintf("%s AS %s ON %s.choice_code = %s.choice_code", helpers.QuoteIdent(t.Branch), branchAlias, branchAlias, cutoffAlias)).
		Where(squirrel.Eq{cutoffAlias + ".college_code": collegeCode}).
		OrderBy(branchAlias + ".branch_name")
}
