// Package listquery translates querybuilder.Query values into MongoDB filters
// and find options.
package listquery

import (
	"regexp"

	"feedme/internal/pkg/querybuilder"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Field describes how an API field is stored in a document.
type Field struct {
	Name string

	// Convert turns a coerced filter value into the stored representation.
	// Returning false makes the filter match nothing.
	Convert func(v any) (any, bool)
}

// Collection binds a resource schema to its document fields.
type Collection struct {
	Schema querybuilder.Schema
	Fields map[string]Field
}

// matchNothing is a filter no document satisfies.
var matchNothing = bson.D{{Key: "_id", Value: bson.D{{Key: "$exists", Value: false}}}}

// Filter appends search and filter criteria to base.
func (c Collection) Filter(q querybuilder.Query, base bson.D) bson.D {
	filter := append(bson.D{}, base...)

	if search := c.search(q.Search); search != nil {
		filter = append(filter, bson.E{Key: "$or", Value: search})
	}

	for _, field := range q.FilterKeys() {
		name, value, ok := c.condition(field, q.Filters[field])
		if !ok {
			return matchNothing
		}
		filter = append(filter, bson.E{Key: name, Value: value})
	}
	return filter
}

// FindOptions applies ordering, skip and limit. Ties are broken by _id.
func (c Collection) FindOptions(q querybuilder.Query) *options.FindOptions {
	opts := options.Find()

	sort := c.Schema.ResolveSort(q.Sort)
	order := bson.D{}
	if f, ok := c.Fields[sort.Field]; ok {
		direction := 1
		if sort.Descending {
			direction = -1
		}
		order = append(order, bson.E{Key: f.Name, Value: direction})
	}
	opts.SetSort(append(order, bson.E{Key: "_id", Value: 1}))

	if q.Page != nil {
		opts.SetSkip(int64(q.Page.Skip())).SetLimit(int64(q.Page.Limit))
	}
	return opts
}

func (c Collection) search(s *querybuilder.Search) bson.A {
	if s == nil || s.Term == "" {
		return nil
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(s.Term), Options: "i"}
	var alternatives bson.A
	for _, field := range s.Fields {
		if f, ok := c.Fields[field]; ok {
			alternatives = append(alternatives, bson.D{{Key: f.Name, Value: pattern}})
		}
	}
	return alternatives
}

func (c Collection) condition(field, raw string) (string, any, bool) {
	f, ok := c.Fields[field]
	if !ok {
		return "", nil, false
	}
	value, ok := c.Schema.Coerce(field, raw)
	if !ok {
		return "", nil, false
	}
	if f.Convert != nil {
		if value, ok = f.Convert(value); !ok {
			return "", nil, false
		}
	}
	return f.Name, value, true
}
