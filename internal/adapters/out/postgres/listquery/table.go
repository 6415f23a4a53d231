// Package listquery translates querybuilder.Query values into GORM scopes.
//
// A Table maps API field names to columns. Search becomes a case-insensitive
// LIKE over the searchable columns, filters become equality conditions on
// coerced values, and sorting and pagination become ORDER BY, OFFSET and LIMIT.
package listquery

import (
	"strings"

	"feedme/internal/pkg/querybuilder"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const likeEscape = `\`

// Column describes how an API field is stored.
type Column struct {
	Name string

	// Convert turns a coerced filter value into the stored representation.
	// Returning false makes the filter match nothing.
	Convert func(v any) (any, bool)
}

// Table binds a resource schema to its storage columns.
type Table struct {
	Schema  querybuilder.Schema
	Columns map[string]Column
	// KeyColumn breaks ordering ties so pages are stable.
	KeyColumn string
}

func (t Table) column(field string) (Column, bool) {
	c, ok := t.Columns[field]
	return c, ok
}

// Filter applies search and filters.
func (t Table) Filter(q querybuilder.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = t.search(db, q.Search)

		for _, field := range q.FilterKeys() {
			condition, ok := t.condition(field, q.Filters[field])
			if !ok {
				return db.Where("1 = 0")
			}
			db = db.Where(condition)
		}
		return db
	}
}

// Paginate applies ordering, offset and limit.
func (t Table) Paginate(q querybuilder.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sort := t.Schema.ResolveSort(q.Sort)
		if c, ok := t.column(sort.Field); ok {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: c.Name}, Desc: sort.Descending})
		}
		if t.KeyColumn != "" {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: t.KeyColumn}})
		}

		if q.Page != nil {
			db = db.Offset(q.Page.Skip()).Limit(q.Page.Limit)
		}
		return db
	}
}

func (t Table) search(db *gorm.DB, s *querybuilder.Search) *gorm.DB {
	if s == nil || s.Term == "" {
		return db
	}

	pattern := "%" + EscapeLike(strings.ToLower(s.Term)) + "%"
	conditions := make([]string, 0, len(s.Fields))
	args := make([]any, 0, len(s.Fields))
	for _, field := range s.Fields {
		c, ok := t.column(field)
		if !ok {
			continue
		}
		conditions = append(conditions, "LOWER("+quote(c.Name)+") LIKE ? ESCAPE '"+likeEscape+"'")
		args = append(args, pattern)
	}
	if len(conditions) == 0 {
		return db
	}

	return db.Where("("+strings.Join(conditions, " OR ")+")", args...)
}

func (t Table) condition(field, raw string) (clause.Expression, bool) {
	c, ok := t.column(field)
	if !ok {
		return nil, false
	}
	value, ok := t.Schema.Coerce(field, raw)
	if !ok {
		return nil, false
	}
	if c.Convert != nil {
		if value, ok = c.Convert(value); !ok {
			return nil, false
		}
	}
	return clause.Eq{Column: clause.Column{Name: c.Name}, Value: value}, true
}

// EscapeLike escapes LIKE wildcards so the term matches literally.
func EscapeLike(term string) string {
	return strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	).Replace(term)
}

// quote accepts only the plain identifiers used in Column.Name.
func quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
