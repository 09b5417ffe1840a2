// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package search

import (
	"strings"

	"github.com/google/uuid"
)

// Filter narrows a product search. Filters whose IsEmpty reports true are
// skipped entirely.
type Filter interface {
	IsEmpty() bool
	Apply(q *Query)
	Exclude(q *Query)
}

// ApplyAll applies every non-empty filter to q.
func ApplyAll(q *Query, filters ...Filter) {
	for _, f := range filters {
		if f == nil || f.IsEmpty() {
			continue
		}
		f.Apply(q)
	}
}

// likeEscaper escapes LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Contains returns a LIKE pattern matching value anywhere in a string.
func Contains(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

// CategoryFilter keeps products assigned to a category. A Value that parses
// as a UUID selects that category by id, as submitted by the admin category
// picker; any other Value matches title or menu title, ignoring case. The
// product table must be aliased p.
type CategoryFilter struct {
	Value string
}

func (f CategoryFilter) IsEmpty() bool {
	return strings.TrimSpace(f.Value) == ""
}

func (f CategoryFilter) Apply(q *Query) {
	value := strings.TrimSpace(f.Value)
	q.Join("INNER JOIN category_products cp ON cp.product_id = p.id").
		Join("INNER JOIN pages cat ON cat.id = cp.category_id").
		Distinct()
	if id, err := uuid.Parse(value); err == nil {
		q.Where("cat.id = ?", id)
		return
	}
	pattern := Contains(value)
	q.Where("(cat.title ILIKE ? OR cat.menu_title ILIKE ?)", pattern, pattern)
}

// Exclude is not supported for categories and leaves q unchanged.
func (f CategoryFilter) Exclude(q *Query) {}

// TitleFilter matches products whose title contains Value, ignoring case.
type TitleFilter struct {
	Value string
}

func (f TitleFilter) IsEmpty() bool {
	return strings.TrimSpace(f.Value) == ""
}

func (f TitleFilter) Apply(q *Query) {
	q.Where("p.title ILIKE ?", Contains(strings.TrimSpace(f.Value)))
}

func (f TitleFilter) Exclude(q *Query) {
	q.Where("p.title NOT ILIKE ?", Contains(strings.TrimSpace(f.Value)))
}

// Not inverts a filter: applying it runs the wrapped filter's Exclude.
type Not struct {
	Filter Filter
}

func (n Not) IsEmpty() bool {
	return n.Filter == nil || n.Filter.IsEmpty()
}

func (n Not) Apply(q *Query) {
	n.Filter.Exclude(q)
}

func (n Not) Exclude(q *Query) {
	n.Filter.Apply(q)
}
