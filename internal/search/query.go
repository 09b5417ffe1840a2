// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package search builds the filtered product queries behind the admin
// product search form.
package search

import (
	"fmt"
	"slices"
	"strings"
)

// Query accumulates the pieces of a SELECT. Conditions use ? placeholders,
// which SQL rewrites to PostgreSQL's $1, $2, ... in argument order.
type Query struct {
	from     string
	columns  []string
	joins    []string
	where    []string
	args     []any
	orderBy  string
	limit    int
	distinct bool
}

// NewQuery starts a query selecting columns from a table expression.
func NewQuery(from string, columns ...string) *Query {
	return &Query{from: from, columns: columns}
}

// Join adds a join clause. Adding the same clause twice keeps one copy,
// so independent filters can share a join.
func (q *Query) Join(clause string) *Query {
	if !slices.Contains(q.joins, clause) {
		q.joins = append(q.joins, clause)
	}
	return q
}

// Where ANDs a condition onto the query.
func (q *Query) Where(cond string, args ...any) *Query {
	if n := strings.Count(cond, "?"); n != len(args) {
		panic(fmt.Sprintf("search: condition %q has %d placeholders but %d args", cond, n, len(args)))
	}
	q.where = append(q.where, cond)
	q.args = append(q.args, args...)
	return q
}

// Distinct collapses rows repeated by one-to-many joins.
func (q *Query) Distinct() *Query {
	q.distinct = true
	return q
}

// OrderBy sets the ORDER BY expression.
func (q *Query) OrderBy(expr string) *Query {
	q.orderBy = expr
	return q
}

// Limit caps the number of rows. Zero means no limit.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// SQL renders the statement and its arguments.
func (q *Query) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	if q.distinct {
		b.WriteString("DISTINCT ")
	}
	b.WriteString(strings.Join(q.columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(q.from)
	for _, j := range q.joins {
		b.WriteString(" ")
		b.WriteString(j)
	}
	if len(q.where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(numberPlaceholders(strings.Join(q.where, " AND ")))
	}
	if q.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.orderBy)
	}
	if q.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.limit)
	}

	args := make([]any, len(q.args))
	copy(args, q.args)
	return b.String(), args
}

func numberPlaceholders(s string) string {
	var b strings.Builder
	n := 0
	for _, r := range s {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
