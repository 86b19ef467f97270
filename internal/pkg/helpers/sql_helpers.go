package helpers

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// QuoteIdent quotes a table or column name for PostgreSQL.
// The cutoff tables use mixed-case names, so every identifier is quoted.
func QuoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// Qualify quotes a column and prefixes it with a table alias
func Qualify(alias, column string) string {
	return alias + "." + QuoteIdent(column)
}

// TrimmedOrAll reports whether a filter list is empty or contains the "All" sentinel
func TrimmedOrAll(values []string) bool {
	if len(values) == 0 {
		return true
	}
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), "All") {
			return true
		}
	}
	return false
}
