package database

import (
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// Contains appends a substring match of value against column to q. The match
// is case-sensitive unless insensitive is set. An empty value matches every
// non-NULL column.
func Contains(q *bun.SelectQuery, column string, value string, insensitive bool) *bun.SelectQuery {
	query, args := containsExpr(q.DB().Dialect().Name(), column, value, insensitive)
	return q.Where(query, args...)
}

// OrContains is Contains joined with OR.
func OrContains(q *bun.SelectQuery, column string, value string, insensitive bool) *bun.SelectQuery {
	query, args := containsExpr(q.DB().Dialect().Name(), column, value, insensitive)
	return q.WhereOr(query, args...)
}

func containsExpr(name dialect.Name, column string, value string, insensitive bool) (query string, args []interface{}) {
	// strpos/instr compare bytes, LIKE would treat % and _ in value as wildcards.
	fn := "instr"
	if name == dialect.PG {
		fn = "strpos"
	}

	if insensitive {
		return fn + "(lower(?), ?) > 0", []interface{}{bun.Ident(column), strings.ToLower(value)}
	}

	return fn + "(?, ?) > 0", []interface{}{bun.Ident(column), value}
}
