// Package search builds the case-insensitive OR-of-contains filters used by
// the list routes.
package search

import (
	"strings"

	"gorm.io/gorm"
)

// Spec lists the column expressions one entity matches against, in order.
// Joins are added to the query whenever a filter is applied, so Fields may
// reference joined tables by alias.
type Spec struct {
	Joins  []string
	Fields []string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Pattern turns a user query into a contains LIKE pattern with the wildcards
// in q taken literally. Case is folded in SQL so both sides of the LIKE use
// the database's own LOWER, which matters for non-ASCII text.
func Pattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

// Where returns the SQL fragment and its arguments for q.
func (s Spec) Where(q string) (string, []any) {
	if len(s.Fields) == 0 {
		return "", nil
	}
	pattern := Pattern(q)
	parts := make([]string, len(s.Fields))
	args := make([]any, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = "LOWER(" + f + `) LIKE LOWER(?) ESCAPE '\'`
		args[i] = pattern
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// Apply narrows db to the records matching q. An empty q leaves db as is.
func Apply(db *gorm.DB, spec Spec, q string) *gorm.DB {
	if q == "" || len(spec.Fields) == 0 {
		return db
	}
	for _, j := range spec.Joins {
		db = db.Joins(j)
	}
	where, args := spec.Where(q)
	return db.Where(where, args...)
}
